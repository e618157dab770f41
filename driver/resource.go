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
	"github.com/wilsonzlin/aerogpu/protocol"
	"github.com/wilsonzlin/aerogpu/texture"
)

// ResourceKind distinguishes buffers from 2D textures.
type ResourceKind int

const (
	KindBuffer ResourceKind = iota
	KindTexture2D
)

func (k ResourceKind) String() string {
	switch k {
	case KindBuffer:
		return "Buffer"
	case KindTexture2D:
		return "Texture2D"
	default:
		return "Unknown"
	}
}

// Resource is a buffer or 2D texture owned by a Device. Its externally
// visible handle can change over its lifetime through identity rotation, so
// anything that needs the current handle must read it through Handle rather
// than caching the value.
type Resource struct {
	handle     protocol.Handle
	Kind       ResourceKind
	UsageFlags uint32

	// Buffer fields.
	SizeBytes       uint64
	StructureStride uint32

	// Texture2D fields.
	Format        protocol.Format
	Width         uint32
	Height        uint32
	MipLevels     uint32
	ArrayLayers   uint32
	RowPitchBytes uint32
	Subresources  []texture.SubresourceLayout
	TotalBytes    uint64

	// Backing allocation, 0 for host-owned storage.
	BackingAllocID     uint32
	BackingOffsetBytes uint32

	// lastWriteFence is the fence of the most recent submission that writes
	// this resource, for staging readback.
	lastWriteFence uint64

	destroyed bool
}

// Handle returns the resource's current externally visible handle, or 0
// after destruction.
func (r *Resource) Handle() protocol.Handle {
	if r == nil || r.destroyed {
		return protocol.HandleNone
	}
	return r.handle
}

// LastWriteFence returns the fence of the most recent submission known to
// write this resource.
func (r *Resource) LastWriteFence() uint64 {
	if r == nil {
		return 0
	}
	return r.lastWriteFence
}

// Subresource returns the layout of one (mip, layer) slice, or nil if out
// of range or not a texture.
func (r *Resource) Subresource(mipLevel, arrayLayer uint32) *texture.SubresourceLayout {
	if r == nil || r.Kind != KindTexture2D {
		return nil
	}
	return texture.Find(r.Subresources, mipLevel, arrayLayer, r.MipLevels)
}

// RenderTargetView is a color output view over a texture resource. Views
// hold the *Resource itself, never a handle snapshot, so a view resolves to
// whatever handle its resource currently reports.
type RenderTargetView struct {
	resource *Resource
	MipLevel uint32
	Layer    uint32
}

// Resource returns the viewed resource.
func (v *RenderTargetView) Resource() *Resource {
	if v == nil {
		return nil
	}
	return v.resource
}

func (v *RenderTargetView) resolve() protocol.Handle {
	if v == nil {
		return protocol.HandleNone
	}
	return v.resource.Handle()
}

// DepthStencilView is a depth output view over a texture resource.
type DepthStencilView struct {
	resource *Resource
	MipLevel uint32
	Layer    uint32
}

// Resource returns the viewed resource.
func (v *DepthStencilView) Resource() *Resource {
	if v == nil {
		return nil
	}
	return v.resource
}

func (v *DepthStencilView) resolve() protocol.Handle {
	if v == nil {
		return protocol.HandleNone
	}
	return v.resource.Handle()
}

// ShaderResourceView is a shader input view over a resource.
type ShaderResourceView struct {
	resource   *Resource
	Format     protocol.Format
	BaseMip    uint32
	MipCount   uint32
	BaseLayer  uint32
	LayerCount uint32
}

// Resource returns the viewed resource.
func (v *ShaderResourceView) Resource() *Resource {
	if v == nil {
		return nil
	}
	return v.resource
}

func (v *ShaderResourceView) resolve() protocol.Handle {
	if v == nil {
		return protocol.HandleNone
	}
	return v.resource.Handle()
}

// Shader is a compiled shader bound through BindShaders.
type Shader struct {
	handle  protocol.Handle
	Stage   protocol.ShaderStage
	StageEx protocol.StageEx
}

// Handle returns the shader's handle, or 0 for a nil shader.
func (s *Shader) Handle() protocol.Handle {
	if s == nil {
		return protocol.HandleNone
	}
	return s.handle
}

// InputLayout is a created vertex input layout.
type InputLayout struct {
	handle   protocol.Handle
	Elements []protocol.InputElement
}

// Handle returns the layout's handle, or 0 for a nil layout.
func (l *InputLayout) Handle() protocol.Handle {
	if l == nil {
		return protocol.HandleNone
	}
	return l.handle
}

// Sampler is a created sampler state object.
type Sampler struct {
	handle   protocol.Handle
	Filter   protocol.SamplerFilter
	AddressU protocol.SamplerAddressMode
	AddressV protocol.SamplerAddressMode
	AddressW protocol.SamplerAddressMode
}

// Handle returns the sampler's handle, or 0 for a nil sampler.
func (s *Sampler) Handle() protocol.Handle {
	if s == nil {
		return protocol.HandleNone
	}
	return s.handle
}

// RasterizerState is an immutable rasterizer state object.
type RasterizerState struct {
	Desc protocol.RasterizerState
}

// BlendState is an immutable blend state object.
type BlendState struct {
	Desc protocol.BlendState
}

// DepthStencilState is an immutable depth-stencil state object.
type DepthStencilState struct {
	Desc protocol.DepthStencilState
}

// DefaultDepthStencilState returns the D3D11 default depth-stencil state:
// depth test enabled with LESS, writes enabled, stencil disabled.
func DefaultDepthStencilState() *DepthStencilState {
	return &DepthStencilState{Desc: protocol.DepthStencilState{
		DepthEnable:      true,
		DepthWriteEnable: true,
		DepthFunc:        protocol.CompareLess,
		StencilEnable:    false,
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
	}}
}

// DefaultRasterizerState returns the D3D11 default rasterizer state: solid
// fill, back-face culling, clockwise front faces.
func DefaultRasterizerState() *RasterizerState {
	return &RasterizerState{Desc: protocol.RasterizerState{
		FillMode: protocol.FillSolid,
		CullMode: protocol.CullBack,
	}}
}

// DefaultBlendState returns the D3D11 default blend state: blending
// disabled, full color write.
func DefaultBlendState() *BlendState {
	return &BlendState{Desc: protocol.BlendState{
		Enable:         false,
		SrcFactor:      protocol.BlendOne,
		DstFactor:      protocol.BlendZero,
		Op:             protocol.BlendOpAdd,
		ColorWriteMask: 0xF,
		SrcFactorAlpha: protocol.BlendOne,
		DstFactorAlpha: protocol.BlendZero,
		OpAlpha:        protocol.BlendOpAdd,
		ConstantRGBA:   [4]float32{1, 1, 1, 1},
		SampleMask:     0xFFFFFFFF,
	}}
}
