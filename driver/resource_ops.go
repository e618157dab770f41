// Copyright (C) 2026 The AeroGPU Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/protocol"
	"github.com/wilsonzlin/aerogpu/texture"
)

// BufferDesc describes a buffer to create.
type BufferDesc struct {
	UsageFlags         uint32
	SizeBytes          uint64
	StructureStride    uint32
	BackingAllocID     uint32
	BackingOffsetBytes uint32
}

// CreateBuffer creates a buffer resource and encodes its creation.
func (d *Device) CreateBuffer(ctx context.Context, desc BufferDesc) (*Resource, error) {
	if desc.SizeBytes == 0 {
		return nil, errors.Wrap(ErrInvalidArgs, "zero-sized buffer")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	r := &Resource{
		handle:             newHandle(),
		Kind:               KindBuffer,
		UsageFlags:         desc.UsageFlags,
		SizeBytes:          desc.SizeBytes,
		StructureStride:    desc.StructureStride,
		BackingAllocID:     desc.BackingAllocID,
		BackingOffsetBytes: desc.BackingOffsetBytes,
	}
	d.noteAllocation(desc.BackingAllocID, desc.SizeBytes)
	d.w.CreateBuffer(r.handle, desc.UsageFlags, desc.SizeBytes, desc.BackingAllocID, desc.BackingOffsetBytes)
	log.D(ctx, "aerogpu: created buffer %v, %d bytes", r.handle, desc.SizeBytes)
	return r, nil
}

// Texture2DDesc describes a 2D texture to create. MipLevels 0 requests the
// full chain down to 1x1. RowPitchBytes 0 requests the tight mip 0 pitch.
type Texture2DDesc struct {
	UsageFlags         uint32
	Format             protocol.Format
	Width              uint32
	Height             uint32
	MipLevels          uint32
	ArrayLayers        uint32
	RowPitchBytes      uint32
	BackingAllocID     uint32
	BackingOffsetBytes uint32
}

// CreateTexture2D creates a 2D texture, computes its subresource layouts
// and encodes its creation.
func (d *Device) CreateTexture2D(ctx context.Context, desc Texture2DDesc) (*Resource, error) {
	layers := desc.ArrayLayers
	if layers == 0 {
		layers = 1
	}
	mips := desc.MipLevels
	if mips == 0 {
		mips = texture.FullMipLevels(desc.Width, desc.Height)
	}
	rowPitch := desc.RowPitchBytes
	if rowPitch == 0 {
		rowPitch = texture.MinRowPitch(desc.Format, desc.Width)
	}
	layouts, total, err := texture.SubresourceLayouts(desc.Format, desc.Width, desc.Height, mips, layers, rowPitch)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	r := &Resource{
		handle:             newHandle(),
		Kind:               KindTexture2D,
		UsageFlags:         desc.UsageFlags,
		Format:             desc.Format,
		Width:              desc.Width,
		Height:             desc.Height,
		MipLevels:          mips,
		ArrayLayers:        layers,
		RowPitchBytes:      rowPitch,
		Subresources:       layouts,
		TotalBytes:         total,
		BackingAllocID:     desc.BackingAllocID,
		BackingOffsetBytes: desc.BackingOffsetBytes,
	}
	d.noteAllocation(desc.BackingAllocID, total)
	d.w.CreateTexture2D(r.handle, desc.UsageFlags, desc.Format, desc.Width, desc.Height,
		mips, layers, rowPitch, desc.BackingAllocID, desc.BackingOffsetBytes)
	log.D(ctx, "aerogpu: created texture %v, %dx%d %v, %d mips, %d layers",
		r.handle, desc.Width, desc.Height, desc.Format, mips, layers)
	return r, nil
}

// CreateRenderTargetView creates a color output view over one subresource.
func (d *Device) CreateRenderTargetView(ctx context.Context, res *Resource, mipLevel, layer uint32) (*RenderTargetView, error) {
	if res == nil || res.destroyed {
		return nil, errors.WithStack(ErrDestroyed)
	}
	if res.Kind != KindTexture2D || res.UsageFlags&protocol.UsageRenderTarget == 0 {
		return nil, errors.Wrapf(ErrInvalidArgs, "%v is not a render target texture", res.Handle())
	}
	if mipLevel >= res.MipLevels || layer >= res.ArrayLayers {
		return nil, errors.Wrapf(ErrInvalidArgs, "mip %d layer %d out of range", mipLevel, layer)
	}
	return &RenderTargetView{resource: res, MipLevel: mipLevel, Layer: layer}, nil
}

// CreateDepthStencilView creates a depth output view over one subresource.
func (d *Device) CreateDepthStencilView(ctx context.Context, res *Resource, mipLevel, layer uint32) (*DepthStencilView, error) {
	if res == nil || res.destroyed {
		return nil, errors.WithStack(ErrDestroyed)
	}
	if res.Kind != KindTexture2D || res.UsageFlags&protocol.UsageDepthStencil == 0 {
		return nil, errors.Wrapf(ErrInvalidArgs, "%v is not a depth-stencil texture", res.Handle())
	}
	if !res.Format.IsDepthStencil() {
		return nil, errors.Wrapf(ErrInvalidArgs, "%v is not a depth format", res.Format)
	}
	if mipLevel >= res.MipLevels || layer >= res.ArrayLayers {
		return nil, errors.Wrapf(ErrInvalidArgs, "mip %d layer %d out of range", mipLevel, layer)
	}
	return &DepthStencilView{resource: res, MipLevel: mipLevel, Layer: layer}, nil
}

// ShaderResourceViewDesc describes a shader input view. Zero MipCount or
// LayerCount selects the remaining range.
type ShaderResourceViewDesc struct {
	Format     protocol.Format
	BaseMip    uint32
	MipCount   uint32
	BaseLayer  uint32
	LayerCount uint32
}

// CreateShaderResourceView creates a shader input view over a resource.
func (d *Device) CreateShaderResourceView(ctx context.Context, res *Resource, desc ShaderResourceViewDesc) (*ShaderResourceView, error) {
	if res == nil || res.destroyed {
		return nil, errors.WithStack(ErrDestroyed)
	}
	v := &ShaderResourceView{
		resource:   res,
		Format:     desc.Format,
		BaseMip:    desc.BaseMip,
		MipCount:   desc.MipCount,
		BaseLayer:  desc.BaseLayer,
		LayerCount: desc.LayerCount,
	}
	if res.Kind == KindTexture2D {
		if desc.BaseMip >= res.MipLevels || desc.BaseLayer >= res.ArrayLayers {
			return nil, errors.Wrapf(ErrInvalidArgs, "mip %d layer %d out of range", desc.BaseMip, desc.BaseLayer)
		}
		if v.MipCount == 0 {
			v.MipCount = res.MipLevels - desc.BaseMip
		}
		if v.LayerCount == 0 {
			v.LayerCount = res.ArrayLayers - desc.BaseLayer
		}
		if desc.BaseMip+v.MipCount > res.MipLevels || desc.BaseLayer+v.LayerCount > res.ArrayLayers {
			return nil, errors.Wrapf(ErrInvalidArgs, "view range out of bounds")
		}
		if v.Format == protocol.FormatInvalid {
			v.Format = res.Format
		}
	}
	return v, nil
}

// DestroyRenderTargetView unbinds the view from any output-merger slot and
// releases it. The viewed resource is not touched.
func (d *Device) DestroyRenderTargetView(ctx context.Context, v *RenderTargetView) {
	if v == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	changed := false
	for i := range d.om.colors {
		if d.om.colors[i] == v {
			d.om.colors[i] = nil
			changed = true
		}
	}
	if changed {
		d.emitRenderTargets()
	}
	v.resource = nil
}

// DestroyDepthStencilView unbinds the view if bound and releases it.
func (d *Device) DestroyDepthStencilView(ctx context.Context, v *DepthStencilView) {
	if v == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.om.depth == v {
		d.om.depth = nil
		d.emitRenderTargets()
	}
	v.resource = nil
}

// DestroyShaderResourceView unbinds the view from every stage slot it is
// bound to and releases it.
func (d *Device) DestroyShaderResourceView(ctx context.Context, v *ShaderResourceView) {
	if v == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for s := range d.stages {
		for slot, bound := range d.stages[s].srvs {
			if bound == v {
				d.stages[s].srvs[slot] = nil
				d.w.SetTexture(protocol.ShaderStage(s), protocol.StageExNone, uint32(slot), protocol.HandleNone)
			}
		}
	}
	v.resource = nil
}

// DestroyResource clears every binding slot referencing res, encodes its
// destruction and invalidates its handle. Live views over res must be
// destroyed by the caller before the backend releases the storage; slots
// bound through such views are cleared here.
func (d *Device) DestroyResource(ctx context.Context, res *Resource) error {
	if res == nil || res.destroyed {
		return errors.WithStack(ErrDestroyed)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.unbindAliasedSRVs(ctx, res)
	if d.clearOMSlotsFor(res) {
		d.emitRenderTargets()
	}
	for s := range d.stages {
		for slot, b := range d.stages[s].constants {
			if b == res {
				d.stages[s].constants[slot] = nil
				d.w.SetConstantBuffers(protocol.ShaderStage(s), protocol.StageExNone, uint32(slot),
					[]protocol.ConstantBufferBinding{{}})
			}
		}
	}
	for slot := range d.vertexBuffers {
		if d.vertexBuffers[slot].buffer == res {
			d.vertexBuffers[slot] = vertexBinding{}
			d.w.SetVertexBuffers(uint32(slot), []protocol.VertexBufferBinding{{}})
		}
	}
	if d.indexBuffer == res {
		d.indexBuffer = nil
		d.w.SetIndexBuffer(protocol.HandleNone, d.indexFormat, 0)
	}
	for slot := range d.computeUAVs {
		if d.computeUAVs[slot].buffer == res {
			d.computeUAVs[slot] = uavBinding{}
			d.w.SetUnorderedAccessBuffers(protocol.StageCompute, protocol.StageExNone, uint32(slot),
				[]protocol.UAVBinding{{InitialCount: protocol.UAVKeepCount}})
		}
	}

	d.w.DestroyResource(res.handle)
	log.D(ctx, "aerogpu: destroyed %v %v", res.Kind, res.handle)
	res.destroyed = true
	res.handle = protocol.HandleNone
	return nil
}

// Upload encodes an inline data upload into res at the given byte offset.
func (d *Device) Upload(ctx context.Context, res *Resource, offsetBytes uint64, data []byte) error {
	if res == nil || res.destroyed {
		return errors.WithStack(ErrDestroyed)
	}
	if total := res.totalSize(); offsetBytes+uint64(len(data)) > total {
		return errors.Wrapf(ErrInvalidArgs, "upload of %d bytes at %d past size %d", len(data), offsetBytes, total)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.UploadResource(res.handle, offsetBytes, data)
	return nil
}

// DirtyRange encodes that guest-backed bytes of res changed and must be
// re-read by the backend before the next batch that samples them.
func (d *Device) DirtyRange(ctx context.Context, res *Resource, offsetBytes, sizeBytes uint64) error {
	if res == nil || res.destroyed {
		return errors.WithStack(ErrDestroyed)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.ResourceDirtyRange(res.handle, offsetBytes, sizeBytes)
	return nil
}

func (r *Resource) totalSize() uint64 {
	if r.Kind == KindBuffer {
		return r.SizeBytes
	}
	return r.TotalBytes
}

// CopyBuffer encodes a buffer to buffer copy. The destination is stamped
// with the next submission fence.
func (d *Device) CopyBuffer(ctx context.Context, dst, src *Resource, dstOffset, srcOffset, sizeBytes uint64, flags uint32) error {
	if dst == nil || dst.destroyed || src == nil || src.destroyed {
		return errors.WithStack(ErrDestroyed)
	}
	if dst.Kind != KindBuffer || src.Kind != KindBuffer {
		return errors.Wrap(ErrInvalidArgs, "copy endpoints must be buffers")
	}
	if dstOffset+sizeBytes > dst.SizeBytes || srcOffset+sizeBytes > src.SizeBytes {
		return errors.Wrap(ErrInvalidArgs, "copy range out of bounds")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.CopyBuffer(dst.handle, src.handle, dstOffset, srcOffset, sizeBytes, flags)
	d.noteWrite(dst)
	return nil
}

// TextureCopy describes a CopyTexture2D region.
type TextureCopy struct {
	DstMipLevel, DstArrayLayer uint32
	SrcMipLevel, SrcArrayLayer uint32
	DstX, DstY                 uint32
	SrcX, SrcY                 uint32
	Width, Height              uint32
	Flags                      uint32
}

// CopyTexture2D encodes a texture to texture region copy. The destination
// is stamped with the next submission fence.
func (d *Device) CopyTexture2D(ctx context.Context, dst, src *Resource, c TextureCopy) error {
	if dst == nil || dst.destroyed || src == nil || src.destroyed {
		return errors.WithStack(ErrDestroyed)
	}
	if dst.Kind != KindTexture2D || src.Kind != KindTexture2D {
		return errors.Wrap(ErrInvalidArgs, "copy endpoints must be textures")
	}
	if dst.Subresource(c.DstMipLevel, c.DstArrayLayer) == nil || src.Subresource(c.SrcMipLevel, c.SrcArrayLayer) == nil {
		return errors.Wrap(ErrInvalidArgs, "copy subresource out of range")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.CopyTexture2D(protocol.CopyTexture2DArgs{
		Dst: dst.handle, Src: src.handle,
		DstMipLevel: c.DstMipLevel, DstArrayLayer: c.DstArrayLayer,
		SrcMipLevel: c.SrcMipLevel, SrcArrayLayer: c.SrcArrayLayer,
		DstX: c.DstX, DstY: c.DstY,
		SrcX: c.SrcX, SrcY: c.SrcY,
		Width: c.Width, Height: c.Height,
		Flags: c.Flags,
	})
	d.noteWrite(dst)
	return nil
}

// ExportSharedSurface encodes publication of res under a share token.
func (d *Device) ExportSharedSurface(ctx context.Context, res *Resource, shareToken uint64) error {
	if res == nil || res.destroyed {
		return errors.WithStack(ErrDestroyed)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.ExportSharedSurface(res.handle, shareToken)
	return nil
}

// ImportSharedSurface creates a local texture resource adopting a surface
// previously exported under shareToken.
func (d *Device) ImportSharedSurface(ctx context.Context, shareToken uint64, desc Texture2DDesc) (*Resource, error) {
	mips := desc.MipLevels
	if mips == 0 {
		mips = texture.FullMipLevels(desc.Width, desc.Height)
	}
	rowPitch := desc.RowPitchBytes
	if rowPitch == 0 {
		rowPitch = texture.MinRowPitch(desc.Format, desc.Width)
	}
	layers := desc.ArrayLayers
	if layers == 0 {
		layers = 1
	}
	layouts, total, err := texture.SubresourceLayouts(desc.Format, desc.Width, desc.Height, mips, layers, rowPitch)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	r := &Resource{
		handle:        newHandle(),
		Kind:          KindTexture2D,
		UsageFlags:    desc.UsageFlags,
		Format:        desc.Format,
		Width:         desc.Width,
		Height:        desc.Height,
		MipLevels:     mips,
		ArrayLayers:   layers,
		RowPitchBytes: rowPitch,
		Subresources:  layouts,
		TotalBytes:    total,
	}
	d.w.ImportSharedSurface(r.handle, shareToken)
	log.D(ctx, "aerogpu: imported shared surface %v, token %#x", r.handle, shareToken)
	return r, nil
}

// ReleaseSharedSurface encodes release of a share token.
func (d *Device) ReleaseSharedSurface(ctx context.Context, shareToken uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.ReleaseSharedSurface(shareToken)
}
