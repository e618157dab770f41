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

package protocol

import (
	"bytes"
	eb "encoding/binary"
	"fmt"
	"math"

	"github.com/wilsonzlin/aerogpu/core/data/binary"
	"github.com/wilsonzlin/aerogpu/core/data/endian"
	"github.com/wilsonzlin/aerogpu/core/fault"
)

// ErrStreamTooLarge is latched on the Writer when an append would grow the
// stream past the u32 size_bytes limit. The buffer is left unchanged by the
// failed append.
const ErrStreamTooLarge = fault.Const("Command stream too large")

// Writer builds a command stream. A fresh Writer (or one that has been
// Reset) contains only the stream header. Appends after Finish are invalid
// until the Writer is Reset.
//
// Errors are latched: once an append fails every later append is a no-op and
// Finish returns the error.
type Writer struct {
	buf bytes.Buffer
	w   binary.Writer
}

// NewWriter returns a Writer primed with a stream header.
func NewWriter() *Writer {
	out := &Writer{}
	out.Reset()
	return out
}

// Reset clears the stream to a header-only state and clears any latched
// error.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.w = endian.Writer(&w.buf, endian.Little)
	w.w.Uint32(StreamMagic)
	w.w.Uint32(ABIVersion)
	w.w.Uint32(StreamHeaderSize) // patched by Finish
	w.w.Uint32(0)                // flags
	w.w.Uint32(0)                // reserved0
	w.w.Uint32(0)                // reserved1
}

// IsEmpty reports whether only the stream header is present.
func (w *Writer) IsEmpty() bool {
	return w.buf.Len() <= StreamHeaderSize
}

// Len returns the current stream length in bytes, including the header.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Error returns the latched append error, or nil.
func (w *Writer) Error() error {
	return w.w.Error()
}

// Finish patches the stream header's size_bytes and returns the stream
// bytes. The returned slice aliases the Writer's buffer and is invalidated
// by Reset.
func (w *Writer) Finish() ([]byte, error) {
	if err := w.w.Error(); err != nil {
		return nil, err
	}
	b := w.buf.Bytes()
	eb.LittleEndian.PutUint32(b[8:12], uint32(len(b)))
	return b, nil
}

var padding [3]byte

// begin writes the packet header for a packet with the given payload size
// and returns the number of trailing padding bytes the caller must append
// after the payload.
func (w *Writer) begin(op Opcode, payloadSize int) (pad int) {
	aligned := (PacketHeaderSize + payloadSize + 3) &^ 3
	if uint64(w.buf.Len())+uint64(aligned) > math.MaxUint32 {
		w.w.SetError(ErrStreamTooLarge)
		return 0
	}
	w.w.Uint32(uint32(op))
	w.w.Uint32(uint32(aligned))
	return aligned - PacketHeaderSize - payloadSize
}

func (w *Writer) end(pad int) {
	if pad > 0 {
		w.w.Data(padding[:pad])
	}
}

// Nop appends a NOP packet.
func (w *Writer) Nop() {
	w.begin(OpNop, 0)
}

// DebugMarker appends a DEBUG_MARKER packet with a UTF-8 label.
func (w *Writer) DebugMarker(label string) {
	pad := w.begin(OpDebugMarker, len(label))
	w.w.Data([]byte(label))
	w.end(pad)
}

// CreateBuffer appends a CREATE_BUFFER packet.
func (w *Writer) CreateBuffer(buffer Handle, usageFlags uint32, sizeBytes uint64, backingAllocID, backingOffsetBytes uint32) {
	w.begin(OpCreateBuffer, 32)
	w.w.Uint32(uint32(buffer))
	w.w.Uint32(usageFlags)
	w.w.Uint64(sizeBytes)
	w.w.Uint32(backingAllocID)
	w.w.Uint32(backingOffsetBytes)
	w.w.Uint64(0) // reserved0
}

// CreateTexture2D appends a CREATE_TEXTURE2D packet.
func (w *Writer) CreateTexture2D(texture Handle, usageFlags uint32, format Format, width, height, mipLevels, arrayLayers, rowPitchBytes, backingAllocID, backingOffsetBytes uint32) {
	w.begin(OpCreateTexture2D, 48)
	w.w.Uint32(uint32(texture))
	w.w.Uint32(usageFlags)
	w.w.Uint32(uint32(format))
	w.w.Uint32(width)
	w.w.Uint32(height)
	w.w.Uint32(mipLevels)
	w.w.Uint32(arrayLayers)
	w.w.Uint32(rowPitchBytes)
	w.w.Uint32(backingAllocID)
	w.w.Uint32(backingOffsetBytes)
	w.w.Uint64(0) // reserved0
}

// CreateTextureView appends a CREATE_TEXTURE_VIEW packet.
func (w *Writer) CreateTextureView(view, texture Handle, format Format, baseMip, mipCount, baseLayer, layerCount uint32) {
	w.begin(OpCreateTextureView, 36)
	w.w.Uint32(uint32(view))
	w.w.Uint32(uint32(texture))
	w.w.Uint32(uint32(format))
	w.w.Uint32(baseMip)
	w.w.Uint32(mipCount)
	w.w.Uint32(baseLayer)
	w.w.Uint32(layerCount)
	w.w.Uint64(0) // reserved0
}

// DestroyResource appends a DESTROY_RESOURCE packet.
func (w *Writer) DestroyResource(resource Handle) {
	w.begin(OpDestroyResource, 8)
	w.w.Uint32(uint32(resource))
	w.w.Uint32(0) // reserved0
}

// DestroyTextureView appends a DESTROY_TEXTURE_VIEW packet.
func (w *Writer) DestroyTextureView(view Handle) {
	w.begin(OpDestroyTextureView, 8)
	w.w.Uint32(uint32(view))
	w.w.Uint32(0) // reserved0
}

// ResourceDirtyRange appends a RESOURCE_DIRTY_RANGE packet.
func (w *Writer) ResourceDirtyRange(resource Handle, offsetBytes, sizeBytes uint64) {
	w.begin(OpResourceDirtyRange, 24)
	w.w.Uint32(uint32(resource))
	w.w.Uint32(0) // reserved0
	w.w.Uint64(offsetBytes)
	w.w.Uint64(sizeBytes)
}

// UploadResource appends an UPLOAD_RESOURCE packet with inline data.
func (w *Writer) UploadResource(resource Handle, offsetBytes uint64, data []byte) {
	pad := w.begin(OpUploadResource, 24+len(data))
	w.w.Uint32(uint32(resource))
	w.w.Uint32(0) // reserved0
	w.w.Uint64(offsetBytes)
	w.w.Uint64(uint64(len(data)))
	w.w.Data(data)
	w.end(pad)
}

// CopyBuffer appends a COPY_BUFFER packet.
func (w *Writer) CopyBuffer(dst, src Handle, dstOffsetBytes, srcOffsetBytes, sizeBytes uint64, flags uint32) {
	w.begin(OpCopyBuffer, 40)
	w.w.Uint32(uint32(dst))
	w.w.Uint32(uint32(src))
	w.w.Uint64(dstOffsetBytes)
	w.w.Uint64(srcOffsetBytes)
	w.w.Uint64(sizeBytes)
	w.w.Uint32(flags)
	w.w.Uint32(0) // reserved0
}

// CopyTexture2DArgs names the COPY_TEXTURE2D packet fields.
type CopyTexture2DArgs struct {
	Dst, Src                   Handle
	DstMipLevel, DstArrayLayer uint32
	SrcMipLevel, SrcArrayLayer uint32
	DstX, DstY                 uint32
	SrcX, SrcY                 uint32
	Width, Height              uint32
	Flags                      uint32
}

// CopyTexture2D appends a COPY_TEXTURE2D packet.
func (w *Writer) CopyTexture2D(a CopyTexture2DArgs) {
	w.begin(OpCopyTexture2D, 56)
	w.w.Uint32(uint32(a.Dst))
	w.w.Uint32(uint32(a.Src))
	w.w.Uint32(a.DstMipLevel)
	w.w.Uint32(a.DstArrayLayer)
	w.w.Uint32(a.SrcMipLevel)
	w.w.Uint32(a.SrcArrayLayer)
	w.w.Uint32(a.DstX)
	w.w.Uint32(a.DstY)
	w.w.Uint32(a.SrcX)
	w.w.Uint32(a.SrcY)
	w.w.Uint32(a.Width)
	w.w.Uint32(a.Height)
	w.w.Uint32(a.Flags)
	w.w.Uint32(0) // reserved0
}

// CreateShaderDXBC appends a CREATE_SHADER_DXBC packet with the shader
// bytecode inline. stageEx carries the extended stage when stage is
// StageCompute.
func (w *Writer) CreateShaderDXBC(shader Handle, stage ShaderStage, stageEx StageEx, dxbc []byte) {
	pad := w.begin(OpCreateShaderDXBC, 16+len(dxbc))
	w.w.Uint32(uint32(shader))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(uint32(len(dxbc)))
	w.w.Uint32(uint32(stageEx))
	w.w.Data(dxbc)
	w.end(pad)
}

// DestroyShader appends a DESTROY_SHADER packet.
func (w *Writer) DestroyShader(shader Handle) {
	w.begin(OpDestroyShader, 8)
	w.w.Uint32(uint32(shader))
	w.w.Uint32(0) // reserved0
}

// BindShaders appends the 24-byte BIND_SHADERS packet binding the vertex,
// pixel and compute shaders.
func (w *Writer) BindShaders(vs, ps, cs Handle) {
	w.begin(OpBindShaders, 16)
	w.w.Uint32(uint32(vs))
	w.w.Uint32(uint32(ps))
	w.w.Uint32(uint32(cs))
	w.w.Uint32(0) // reserved0
}

// BindShadersEx appends the extended 36-byte BIND_SHADERS packet carrying
// geometry, hull and domain shader handles. gs is mirrored into reserved0
// for hosts that only understand the base packet.
func (w *Writer) BindShadersEx(vs, ps, cs, gs, hs, ds Handle) {
	w.begin(OpBindShaders, 28)
	w.w.Uint32(uint32(vs))
	w.w.Uint32(uint32(ps))
	w.w.Uint32(uint32(cs))
	w.w.Uint32(uint32(gs)) // reserved0 mirror
	w.w.Uint32(uint32(gs))
	w.w.Uint32(uint32(hs))
	w.w.Uint32(uint32(ds))
}

// SetShaderConstantsF appends a SET_SHADER_CONSTANTS_F packet. data holds
// float4 registers, so its length must be a multiple of 4.
func (w *Writer) SetShaderConstantsF(stage ShaderStage, stageEx StageEx, startRegister uint32, data []float32) {
	if len(data)%4 != 0 {
		panic(fmt.Errorf("constant data must be a whole number of float4 registers, got %d floats", len(data)))
	}
	w.begin(OpSetShaderConstantsF, 16+4*len(data))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startRegister)
	w.w.Uint32(uint32(len(data) / 4))
	w.w.Uint32(uint32(stageEx))
	for _, v := range data {
		w.w.Float32(v)
	}
}

// SetShaderConstantsI appends a SET_SHADER_CONSTANTS_I packet. data holds
// int4 registers, so its length must be a multiple of 4.
func (w *Writer) SetShaderConstantsI(stage ShaderStage, stageEx StageEx, startRegister uint32, data []int32) {
	if len(data)%4 != 0 {
		panic(fmt.Errorf("constant data must be a whole number of int4 registers, got %d ints", len(data)))
	}
	w.begin(OpSetShaderConstantsI, 16+4*len(data))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startRegister)
	w.w.Uint32(uint32(len(data) / 4))
	w.w.Uint32(uint32(stageEx))
	for _, v := range data {
		w.w.Int32(v)
	}
}

// SetShaderConstantsB appends a SET_SHADER_CONSTANTS_B packet. Each bool
// register occupies four u32 values in data.
func (w *Writer) SetShaderConstantsB(stage ShaderStage, stageEx StageEx, startRegister uint32, data []uint32) {
	if len(data)%4 != 0 {
		panic(fmt.Errorf("constant data must be a whole number of bool registers, got %d words", len(data)))
	}
	w.begin(OpSetShaderConstantsB, 16+4*len(data))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startRegister)
	w.w.Uint32(uint32(len(data) / 4))
	w.w.Uint32(uint32(stageEx))
	for _, v := range data {
		w.w.Uint32(v)
	}
}

// CreateInputLayout appends a CREATE_INPUT_LAYOUT packet with the opaque
// layout blob inline.
func (w *Writer) CreateInputLayout(layout Handle, blob []byte) {
	pad := w.begin(OpCreateInputLayout, 12+len(blob))
	w.w.Uint32(uint32(layout))
	w.w.Uint32(uint32(len(blob)))
	w.w.Uint32(0) // reserved0
	w.w.Data(blob)
	w.end(pad)
}

// DestroyInputLayout appends a DESTROY_INPUT_LAYOUT packet.
func (w *Writer) DestroyInputLayout(layout Handle) {
	w.begin(OpDestroyInputLayout, 8)
	w.w.Uint32(uint32(layout))
	w.w.Uint32(0) // reserved0
}

// SetInputLayout appends a SET_INPUT_LAYOUT packet.
func (w *Writer) SetInputLayout(layout Handle) {
	w.begin(OpSetInputLayout, 8)
	w.w.Uint32(uint32(layout))
	w.w.Uint32(0) // reserved0
}

// SetBlendState appends a SET_BLEND_STATE packet.
func (w *Writer) SetBlendState(s BlendState) {
	w.begin(OpSetBlendState, 52)
	w.w.Bool(s.Enable)
	w.w.Data(padding[:3])
	w.w.Uint32(uint32(s.SrcFactor))
	w.w.Uint32(uint32(s.DstFactor))
	w.w.Uint32(uint32(s.Op))
	w.w.Uint8(s.ColorWriteMask)
	w.w.Data(padding[:3])
	w.w.Uint32(uint32(s.SrcFactorAlpha))
	w.w.Uint32(uint32(s.DstFactorAlpha))
	w.w.Uint32(uint32(s.OpAlpha))
	for _, c := range s.ConstantRGBA {
		w.w.Float32(c)
	}
	w.w.Uint32(s.SampleMask)
}

// SetDepthStencilState appends a SET_DEPTH_STENCIL_STATE packet.
func (w *Writer) SetDepthStencilState(s DepthStencilState) {
	w.begin(OpSetDepthStencilState, 20)
	w.w.Bool(s.DepthEnable)
	w.w.Data(padding[:3])
	w.w.Bool(s.DepthWriteEnable)
	w.w.Data(padding[:3])
	w.w.Uint32(uint32(s.DepthFunc))
	w.w.Bool(s.StencilEnable)
	w.w.Data(padding[:3])
	w.w.Uint8(s.StencilReadMask)
	w.w.Uint8(s.StencilWriteMask)
	w.w.Data(padding[:2])
}

// SetRasterizerState appends a SET_RASTERIZER_STATE packet.
func (w *Writer) SetRasterizerState(s RasterizerState) {
	w.begin(OpSetRasterizerState, 24)
	w.w.Uint32(uint32(s.FillMode))
	w.w.Uint32(uint32(s.CullMode))
	w.w.Bool(s.FrontCCW)
	w.w.Data(padding[:3])
	w.w.Bool(s.ScissorEnable)
	w.w.Data(padding[:3])
	w.w.Int32(s.DepthBias)
	w.w.Uint32(s.Flags)
}

// SetRenderTargets appends a SET_RENDER_TARGETS packet. colors may contain
// up to MaxRenderTargets handles, null gaps included; unused trailing slots
// are encoded as null.
func (w *Writer) SetRenderTargets(colors []Handle, depthStencil Handle) {
	if len(colors) > MaxRenderTargets {
		panic(fmt.Errorf("too many render targets (%d > %d)", len(colors), MaxRenderTargets))
	}
	w.begin(OpSetRenderTargets, 8+4*MaxRenderTargets)
	w.w.Uint32(uint32(len(colors)))
	w.w.Uint32(uint32(depthStencil))
	for _, h := range colors {
		w.w.Uint32(uint32(h))
	}
	for i := len(colors); i < MaxRenderTargets; i++ {
		w.w.Uint32(0)
	}
}

// SetViewport appends a SET_VIEWPORT packet.
func (w *Writer) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	w.begin(OpSetViewport, 24)
	w.w.Float32(x)
	w.w.Float32(y)
	w.w.Float32(width)
	w.w.Float32(height)
	w.w.Float32(minDepth)
	w.w.Float32(maxDepth)
}

// SetScissor appends a SET_SCISSOR packet.
func (w *Writer) SetScissor(x, y, width, height int32) {
	w.begin(OpSetScissor, 16)
	w.w.Int32(x)
	w.w.Int32(y)
	w.w.Int32(width)
	w.w.Int32(height)
}

// SetVertexBuffers appends a SET_VERTEX_BUFFERS packet.
func (w *Writer) SetVertexBuffers(startSlot uint32, bindings []VertexBufferBinding) {
	w.begin(OpSetVertexBuffers, 8+16*len(bindings))
	w.w.Uint32(startSlot)
	w.w.Uint32(uint32(len(bindings)))
	for _, b := range bindings {
		w.w.Uint32(uint32(b.Buffer))
		w.w.Uint32(b.StrideBytes)
		w.w.Uint32(b.OffsetBytes)
		w.w.Uint32(0) // reserved0
	}
}

// SetIndexBuffer appends a SET_INDEX_BUFFER packet.
func (w *Writer) SetIndexBuffer(buffer Handle, format IndexFormat, offsetBytes uint32) {
	w.begin(OpSetIndexBuffer, 16)
	w.w.Uint32(uint32(buffer))
	w.w.Uint32(uint32(format))
	w.w.Uint32(offsetBytes)
	w.w.Uint32(0) // reserved0
}

// SetPrimitiveTopology appends a SET_PRIMITIVE_TOPOLOGY packet.
func (w *Writer) SetPrimitiveTopology(topology PrimitiveTopology) {
	w.begin(OpSetPrimitiveTopology, 8)
	w.w.Uint32(uint32(topology))
	w.w.Uint32(0) // reserved0
}

// SetTexture appends a SET_TEXTURE packet. texture 0 unbinds the slot.
func (w *Writer) SetTexture(stage ShaderStage, stageEx StageEx, slot uint32, texture Handle) {
	w.begin(OpSetTexture, 16)
	w.w.Uint32(uint32(stage))
	w.w.Uint32(slot)
	w.w.Uint32(uint32(texture))
	w.w.Uint32(uint32(stageEx))
}

// SetSamplerState appends a SET_SAMPLER_STATE packet.
func (w *Writer) SetSamplerState(stage ShaderStage, slot, state, value uint32) {
	w.begin(OpSetSamplerState, 16)
	w.w.Uint32(uint32(stage))
	w.w.Uint32(slot)
	w.w.Uint32(state)
	w.w.Uint32(value)
}

// SetRenderState appends a SET_RENDER_STATE packet.
func (w *Writer) SetRenderState(state, value uint32) {
	w.begin(OpSetRenderState, 8)
	w.w.Uint32(state)
	w.w.Uint32(value)
}

// CreateSampler appends a CREATE_SAMPLER packet.
func (w *Writer) CreateSampler(sampler Handle, filter SamplerFilter, addressU, addressV, addressW SamplerAddressMode) {
	w.begin(OpCreateSampler, 20)
	w.w.Uint32(uint32(sampler))
	w.w.Uint32(uint32(filter))
	w.w.Uint32(uint32(addressU))
	w.w.Uint32(uint32(addressV))
	w.w.Uint32(uint32(addressW))
}

// DestroySampler appends a DESTROY_SAMPLER packet.
func (w *Writer) DestroySampler(sampler Handle) {
	w.begin(OpDestroySampler, 8)
	w.w.Uint32(uint32(sampler))
	w.w.Uint32(0) // reserved0
}

// SetSamplers appends a SET_SAMPLERS packet binding a contiguous range of
// sampler slots.
func (w *Writer) SetSamplers(stage ShaderStage, stageEx StageEx, startSlot uint32, samplers []Handle) {
	w.begin(OpSetSamplers, 16+4*len(samplers))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startSlot)
	w.w.Uint32(uint32(len(samplers)))
	w.w.Uint32(uint32(stageEx))
	for _, h := range samplers {
		w.w.Uint32(uint32(h))
	}
}

// SetConstantBuffers appends a SET_CONSTANT_BUFFERS packet binding a
// contiguous range of constant buffer slots.
func (w *Writer) SetConstantBuffers(stage ShaderStage, stageEx StageEx, startSlot uint32, bindings []ConstantBufferBinding) {
	w.begin(OpSetConstantBuffers, 16+16*len(bindings))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startSlot)
	w.w.Uint32(uint32(len(bindings)))
	w.w.Uint32(uint32(stageEx))
	for _, b := range bindings {
		w.w.Uint32(uint32(b.Buffer))
		w.w.Uint32(b.OffsetBytes)
		w.w.Uint32(b.SizeBytes)
		w.w.Uint32(0) // reserved0
	}
}

// SetShaderResourceBuffers appends a SET_SHADER_RESOURCE_BUFFERS packet
// binding buffer SRV slots.
func (w *Writer) SetShaderResourceBuffers(stage ShaderStage, stageEx StageEx, startSlot uint32, bindings []ConstantBufferBinding) {
	w.begin(OpSetShaderResourceBuffers, 16+16*len(bindings))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startSlot)
	w.w.Uint32(uint32(len(bindings)))
	w.w.Uint32(uint32(stageEx))
	for _, b := range bindings {
		w.w.Uint32(uint32(b.Buffer))
		w.w.Uint32(b.OffsetBytes)
		w.w.Uint32(b.SizeBytes)
		w.w.Uint32(0) // reserved0
	}
}

// SetUnorderedAccessBuffers appends a SET_UNORDERED_ACCESS_BUFFERS packet
// binding buffer UAV slots.
func (w *Writer) SetUnorderedAccessBuffers(stage ShaderStage, stageEx StageEx, startSlot uint32, bindings []UAVBinding) {
	w.begin(OpSetUnorderedAccessBuffers, 16+16*len(bindings))
	w.w.Uint32(uint32(stage))
	w.w.Uint32(startSlot)
	w.w.Uint32(uint32(len(bindings)))
	w.w.Uint32(uint32(stageEx))
	for _, b := range bindings {
		w.w.Uint32(uint32(b.Buffer))
		w.w.Uint32(b.OffsetBytes)
		w.w.Uint32(b.SizeBytes)
		w.w.Uint32(b.InitialCount)
	}
}

// Clear appends a CLEAR packet.
func (w *Writer) Clear(flags uint32, colorRGBA [4]float32, depth float32, stencil uint32) {
	w.begin(OpClear, 28)
	w.w.Uint32(flags)
	for _, c := range colorRGBA {
		w.w.Float32(c)
	}
	w.w.Float32(depth)
	w.w.Uint32(stencil)
}

// Draw appends a DRAW packet.
func (w *Writer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	w.begin(OpDraw, 16)
	w.w.Uint32(vertexCount)
	w.w.Uint32(instanceCount)
	w.w.Uint32(firstVertex)
	w.w.Uint32(firstInstance)
}

// DrawIndexed appends a DRAW_INDEXED packet.
func (w *Writer) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	w.begin(OpDrawIndexed, 20)
	w.w.Uint32(indexCount)
	w.w.Uint32(instanceCount)
	w.w.Uint32(firstIndex)
	w.w.Int32(baseVertex)
	w.w.Uint32(firstInstance)
}

// Dispatch appends a DISPATCH packet.
func (w *Writer) Dispatch(groupCountX, groupCountY, groupCountZ uint32) {
	w.begin(OpDispatch, 16)
	w.w.Uint32(groupCountX)
	w.w.Uint32(groupCountY)
	w.w.Uint32(groupCountZ)
	w.w.Uint32(0) // reserved0
}

// Present appends a PRESENT packet.
func (w *Writer) Present(scanoutID, flags uint32) {
	w.begin(OpPresent, 8)
	w.w.Uint32(scanoutID)
	w.w.Uint32(flags)
}

// PresentEx appends a PRESENT_EX packet.
func (w *Writer) PresentEx(scanoutID, flags, d3d9PresentFlags uint32) {
	w.begin(OpPresentEx, 16)
	w.w.Uint32(scanoutID)
	w.w.Uint32(flags)
	w.w.Uint32(d3d9PresentFlags)
	w.w.Uint32(0) // reserved0
}

// ExportSharedSurface appends an EXPORT_SHARED_SURFACE packet.
func (w *Writer) ExportSharedSurface(resource Handle, shareToken uint64) {
	w.begin(OpExportSharedSurface, 16)
	w.w.Uint32(uint32(resource))
	w.w.Uint32(0) // reserved0
	w.w.Uint64(shareToken)
}

// ImportSharedSurface appends an IMPORT_SHARED_SURFACE packet.
func (w *Writer) ImportSharedSurface(outResource Handle, shareToken uint64) {
	w.begin(OpImportSharedSurface, 16)
	w.w.Uint32(uint32(outResource))
	w.w.Uint32(0) // reserved0
	w.w.Uint64(shareToken)
}

// ReleaseSharedSurface appends a RELEASE_SHARED_SURFACE packet.
func (w *Writer) ReleaseSharedSurface(shareToken uint64) {
	w.begin(OpReleaseSharedSurface, 16)
	w.w.Uint64(shareToken)
	w.w.Uint64(0) // reserved0
}

// Flush appends a FLUSH packet.
func (w *Writer) Flush() {
	w.begin(OpFlush, 8)
	w.w.Uint32(0) // reserved0
	w.w.Uint32(0) // reserved1
}
