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
)

// SetRenderTargets binds the output-merger state. Up to
// protocol.MaxRenderTargets color views are retained; extra entries are
// dropped. Null entries inside the bound range are kept as gaps. Any shader
// resource slot on any stage aliasing a newly bound resource is unbound
// first, so the stream never binds a resource as input and output at once.
func (d *Device) SetRenderTargets(ctx context.Context, colors []*RenderTargetView, depth *DepthStencilView) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(colors) > protocol.MaxRenderTargets {
		log.W(ctx, "aerogpu: %d render targets requested, clamping to %d", len(colors), protocol.MaxRenderTargets)
		colors = colors[:protocol.MaxRenderTargets]
	}

	for _, v := range colors {
		if v != nil {
			d.unbindAliasedSRVs(ctx, v.resource)
		}
	}
	if depth != nil {
		d.unbindAliasedSRVs(ctx, depth.resource)
	}

	for i := range d.om.colors {
		if i < len(colors) {
			d.om.colors[i] = colors[i]
		} else {
			d.om.colors[i] = nil
		}
	}
	d.om.colorCount = uint32(len(colors))
	d.om.depth = depth
	d.emitRenderTargets()
}

// SetShaderResources binds a contiguous range of shader resource slots on
// one stage. For each newly bound view whose resource is currently an
// output-merger target, every aliasing output-merger slot is cleared and
// the render targets re-emitted before the texture bind. Null views clear
// their slot with no aliasing checks.
func (d *Device) SetShaderResources(ctx context.Context, stage protocol.ShaderStage, startSlot uint32, views []*ShaderResourceView) error {
	s, ok := stageIndex(stage)
	if !ok {
		return errors.Wrapf(ErrInvalidArgs, "stage %v", stage)
	}
	if int(startSlot)+len(views) > MaxShaderResourceSlots {
		return errors.Wrapf(ErrInvalidArgs, "slots [%d, %d) out of range", startSlot, int(startSlot)+len(views))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, v := range views {
		slot := startSlot + uint32(i)
		if v != nil && d.clearOMSlotsFor(v.resource) {
			log.D(ctx, "aerogpu: unbound output slots aliasing %v", v.resource.Handle())
			d.emitRenderTargets()
		}
		d.stages[s].srvs[slot] = v
		d.w.SetTexture(stage, protocol.StageExNone, slot, v.resolve())
	}
	return nil
}

// SetConstantBuffers binds a contiguous range of constant buffer slots on
// one stage. Nil entries clear their slot.
func (d *Device) SetConstantBuffers(ctx context.Context, stage protocol.ShaderStage, startSlot uint32, buffers []*Resource) error {
	s, ok := stageIndex(stage)
	if !ok {
		return errors.Wrapf(ErrInvalidArgs, "stage %v", stage)
	}
	if int(startSlot)+len(buffers) > MaxConstantBufferSlots {
		return errors.Wrapf(ErrInvalidArgs, "slots [%d, %d) out of range", startSlot, int(startSlot)+len(buffers))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	bindings := make([]protocol.ConstantBufferBinding, len(buffers))
	for i, b := range buffers {
		d.stages[s].constants[startSlot+uint32(i)] = b
		if b != nil {
			bindings[i] = protocol.ConstantBufferBinding{
				Buffer:    b.Handle(),
				SizeBytes: uint32(b.SizeBytes),
			}
		}
	}
	d.w.SetConstantBuffers(stage, protocol.StageExNone, startSlot, bindings)
	return nil
}

// SetSamplers binds a contiguous range of sampler slots on one stage.
func (d *Device) SetSamplers(ctx context.Context, stage protocol.ShaderStage, startSlot uint32, samplers []*Sampler) error {
	s, ok := stageIndex(stage)
	if !ok {
		return errors.Wrapf(ErrInvalidArgs, "stage %v", stage)
	}
	if int(startSlot)+len(samplers) > MaxSamplerSlots {
		return errors.Wrapf(ErrInvalidArgs, "slots [%d, %d) out of range", startSlot, int(startSlot)+len(samplers))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	handles := make([]protocol.Handle, len(samplers))
	for i, smp := range samplers {
		d.stages[s].samplers[startSlot+uint32(i)] = smp
		handles[i] = smp.Handle()
	}
	d.w.SetSamplers(stage, protocol.StageExNone, startSlot, handles)
	return nil
}

// SetUnorderedAccessBuffers binds compute stage UAV buffer slots. An
// InitialCount of protocol.UAVKeepCount preserves the current counter.
func (d *Device) SetUnorderedAccessBuffers(ctx context.Context, startSlot uint32, bindings []UAVBufferBinding) error {
	if int(startSlot)+len(bindings) > MaxUAVSlots {
		return errors.Wrapf(ErrInvalidArgs, "slots [%d, %d) out of range", startSlot, int(startSlot)+len(bindings))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	wire := make([]protocol.UAVBinding, len(bindings))
	for i, b := range bindings {
		d.computeUAVs[startSlot+uint32(i)] = uavBinding{
			buffer:       b.Buffer,
			offsetBytes:  b.OffsetBytes,
			sizeBytes:    b.SizeBytes,
			initialCount: b.InitialCount,
		}
		wire[i] = protocol.UAVBinding{
			OffsetBytes:  b.OffsetBytes,
			SizeBytes:    b.SizeBytes,
			InitialCount: b.InitialCount,
		}
		if b.Buffer != nil {
			wire[i].Buffer = b.Buffer.Handle()
		}
	}
	d.w.SetUnorderedAccessBuffers(protocol.StageCompute, protocol.StageExNone, startSlot, wire)
	return nil
}

// UAVBufferBinding is one compute UAV slot binding.
type UAVBufferBinding struct {
	Buffer       *Resource
	OffsetBytes  uint32
	SizeBytes    uint32
	InitialCount uint32
}

// VertexBufferSlot is one input-assembler vertex buffer binding.
type VertexBufferSlot struct {
	Buffer      *Resource
	StrideBytes uint32
	OffsetBytes uint32
}

// SetVertexBuffers binds a contiguous range of vertex buffer slots.
func (d *Device) SetVertexBuffers(ctx context.Context, startSlot uint32, bindings []VertexBufferSlot) error {
	if int(startSlot)+len(bindings) > MaxVertexBufferSlots {
		return errors.Wrapf(ErrInvalidArgs, "slots [%d, %d) out of range", startSlot, int(startSlot)+len(bindings))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	wire := make([]protocol.VertexBufferBinding, len(bindings))
	for i, b := range bindings {
		d.vertexBuffers[startSlot+uint32(i)] = vertexBinding{
			buffer:      b.Buffer,
			strideBytes: b.StrideBytes,
			offsetBytes: b.OffsetBytes,
		}
		wire[i] = protocol.VertexBufferBinding{
			StrideBytes: b.StrideBytes,
			OffsetBytes: b.OffsetBytes,
		}
		if b.Buffer != nil {
			wire[i].Buffer = b.Buffer.Handle()
		}
	}
	d.w.SetVertexBuffers(startSlot, wire)
	return nil
}

// SetIndexBuffer binds the index buffer. A nil buffer unbinds it.
func (d *Device) SetIndexBuffer(ctx context.Context, buffer *Resource, format protocol.IndexFormat, offsetBytes uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.indexBuffer = buffer
	d.indexFormat = format
	d.indexOffset = offsetBytes
	d.w.SetIndexBuffer(buffer.Handle(), format, offsetBytes)
}

// SetPrimitiveTopology sets the input-assembler topology. Re-binding the
// current topology encodes nothing.
func (d *Device) SetPrimitiveTopology(ctx context.Context, topology protocol.PrimitiveTopology) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.topology == topology {
		return
	}
	d.topology = topology
	d.w.SetPrimitiveTopology(topology)
}

// CreateShader creates a shader from DXBC bytecode and encodes it.
func (d *Device) CreateShader(ctx context.Context, stage protocol.ShaderStage, stageEx protocol.StageEx, dxbc []byte) (*Shader, error) {
	if len(dxbc) == 0 {
		return nil, errors.Wrap(ErrInvalidArgs, "empty shader bytecode")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &Shader{handle: newHandle(), Stage: stage, StageEx: stageEx}
	d.w.CreateShaderDXBC(s.handle, stage, stageEx, dxbc)
	return s, nil
}

// DestroyShader unbinds the shader if bound and encodes its destruction.
func (d *Device) DestroyShader(ctx context.Context, s *Shader) {
	if s == nil || s.handle == protocol.HandleNone {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	rebind := false
	for _, bound := range []**Shader{&d.vs, &d.ps, &d.gs, &d.cs} {
		if *bound == s {
			*bound = nil
			rebind = true
		}
	}
	if rebind {
		d.emitShaders()
	}
	d.w.DestroyShader(s.handle)
	s.handle = protocol.HandleNone
}

// SetShader binds a shader to the stage it was created for. A nil shader
// with an explicit stage unbinds that stage.
func (d *Device) SetShader(ctx context.Context, stage protocol.ShaderStage, s *Shader) error {
	if s != nil && s.Stage != stage {
		return errors.Wrapf(ErrInvalidArgs, "%v shader bound to %v stage", s.Stage, stage)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	switch stage {
	case protocol.StageVertex:
		d.vs = s
	case protocol.StagePixel:
		d.ps = s
	case protocol.StageGeometry:
		d.gs = s
	case protocol.StageCompute:
		d.cs = s
	default:
		return errors.Wrapf(ErrInvalidArgs, "stage %v", stage)
	}
	d.emitShaders()
	return nil
}

func (d *Device) emitShaders() {
	if d.gs != nil {
		d.w.BindShadersEx(d.vs.Handle(), d.ps.Handle(), d.cs.Handle(), d.gs.Handle(), protocol.HandleNone, protocol.HandleNone)
		return
	}
	d.w.BindShaders(d.vs.Handle(), d.ps.Handle(), d.cs.Handle())
}

// SetShaderConstantsF encodes a float4 constant register upload.
func (d *Device) SetShaderConstantsF(ctx context.Context, stage protocol.ShaderStage, startRegister uint32, data []float32) error {
	if len(data)%4 != 0 {
		return errors.Wrap(ErrInvalidArgs, "partial float4 register")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.SetShaderConstantsF(stage, protocol.StageExNone, startRegister, data)
	return nil
}

// CreateInputLayout builds the layout blob from elements and encodes its
// creation.
func (d *Device) CreateInputLayout(ctx context.Context, elements []protocol.InputElement) (*InputLayout, error) {
	if len(elements) == 0 {
		return nil, errors.Wrap(ErrInvalidArgs, "empty input layout")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	l := &InputLayout{handle: newHandle(), Elements: elements}
	d.w.CreateInputLayout(l.handle, protocol.BuildInputLayoutBlob(elements))
	return l, nil
}

// DestroyInputLayout unbinds the layout if bound and encodes its
// destruction.
func (d *Device) DestroyInputLayout(ctx context.Context, l *InputLayout) {
	if l == nil || l.handle == protocol.HandleNone {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inputLayout == l {
		d.inputLayout = nil
		d.w.SetInputLayout(protocol.HandleNone)
	}
	d.w.DestroyInputLayout(l.handle)
	l.handle = protocol.HandleNone
}

// SetInputLayout binds the vertex input layout. Nil unbinds it.
func (d *Device) SetInputLayout(ctx context.Context, l *InputLayout) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputLayout = l
	d.w.SetInputLayout(l.Handle())
}

// CreateSampler creates a sampler state object and encodes it.
func (d *Device) CreateSampler(ctx context.Context, filter protocol.SamplerFilter, u, v, w protocol.SamplerAddressMode) (*Sampler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &Sampler{handle: newHandle(), Filter: filter, AddressU: u, AddressV: v, AddressW: w}
	d.w.CreateSampler(s.handle, filter, u, v, w)
	return s, nil
}

// DestroySampler unbinds the sampler from every stage slot and encodes its
// destruction.
func (d *Device) DestroySampler(ctx context.Context, s *Sampler) {
	if s == nil || s.handle == protocol.HandleNone {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for st := range d.stages {
		for slot, bound := range d.stages[st].samplers {
			if bound == s {
				d.stages[st].samplers[slot] = nil
				d.w.SetSamplers(protocol.ShaderStage(st), protocol.StageExNone, uint32(slot),
					[]protocol.Handle{protocol.HandleNone})
			}
		}
	}
	d.w.DestroySampler(s.handle)
	s.handle = protocol.HandleNone
}

// SetViewports applies viewport state. The protocol has exactly one active
// viewport: the first entry is authoritative, and extra entries are
// tolerated only when equal to the first or degenerate. Otherwise the first
// entry is still applied and ErrNotSupported returned. A zero count
// disables the viewport with a degenerate region.
func (d *Device) SetViewports(ctx context.Context, viewports []Viewport) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	vp := Viewport{}
	if len(viewports) > 0 {
		vp = viewports[0]
	}
	var err error
	for _, extra := range viewports[min(1, len(viewports)):] {
		if extra != vp && !extra.degenerate() {
			log.W(ctx, "aerogpu: %d non-uniform viewports, applying the first", len(viewports))
			err = errors.Wrapf(ErrNotSupported, "%d non-uniform viewports", len(viewports))
			break
		}
	}
	d.viewport = vp
	d.w.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
	return err
}

// SetScissorRects applies scissor state under the same single-rect policy
// as SetViewports.
func (d *Device) SetScissorRects(ctx context.Context, rects []Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rc := Rect{}
	if len(rects) > 0 {
		rc = rects[0]
	}
	var err error
	for _, extra := range rects[min(1, len(rects)):] {
		if extra != rc && !extra.degenerate() {
			log.W(ctx, "aerogpu: %d non-uniform scissor rects, applying the first", len(rects))
			err = errors.Wrapf(ErrNotSupported, "%d non-uniform scissor rects", len(rects))
			break
		}
	}
	d.scissor = rc
	w := rc.Right - rc.Left
	h := rc.Bottom - rc.Top
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	d.w.SetScissor(rc.Left, rc.Top, w, h)
	return err
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SetRasterizerState applies a rasterizer state object. Nil restores the
// default state.
func (d *Device) SetRasterizerState(ctx context.Context, s *RasterizerState) {
	if s == nil {
		s = DefaultRasterizerState()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rasterizer = s
	d.w.SetRasterizerState(s.Desc)
}

// SetBlendState applies a blend state object with a blend constant and
// sample mask. Nil restores the default state.
func (d *Device) SetBlendState(ctx context.Context, s *BlendState, blendFactor [4]float32, sampleMask uint32) {
	if s == nil {
		s = DefaultBlendState()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	desc := s.Desc
	desc.ConstantRGBA = blendFactor
	desc.SampleMask = sampleMask
	d.blend = &BlendState{Desc: desc}
	d.w.SetBlendState(desc)
}

// SetDepthStencilState applies a depth-stencil state object. Nil restores
// the default state. Depth writes require the depth test to be enabled.
func (d *Device) SetDepthStencilState(ctx context.Context, s *DepthStencilState) {
	if s == nil {
		s = DefaultDepthStencilState()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	desc := s.Desc
	desc.DepthWriteEnable = desc.DepthEnable && desc.DepthWriteEnable
	d.depthStencil = s
	d.w.SetDepthStencilState(desc)
}
