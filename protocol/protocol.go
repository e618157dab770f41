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

// Package protocol defines the AeroGPU command stream wire format and
// provides an encoder and decoder for it.
//
// A command stream is a little-endian byte buffer starting with a 24-byte
// stream header followed by a sequence of packets. Each packet starts with a
// {opcode, size_bytes} pair where size_bytes covers the packet header and
// payload and is always a multiple of 4. Decoders skip packets with opcodes
// they do not understand using size_bytes.
package protocol

import "fmt"

// Handle identifies a resource, view, shader, sampler or input layout in the
// device's global handle namespace. Handle 0 always means unbound.
type Handle uint32

// HandleNone is the null handle.
const HandleNone = Handle(0)

const (
	// StreamMagic is the stream header magic, "ACMD" little-endian.
	StreamMagic = uint32(0x444D4341)

	// ABIMajor and ABIMinor identify the command stream ABI revision.
	ABIMajor = uint32(1)
	ABIMinor = uint32(3)

	// ABIVersion is the abi_version field value: (major << 16) | minor.
	ABIVersion = ABIMajor<<16 | ABIMinor

	// StageExMinABIMinor is the minimum ABI minor version that enables the
	// stage_ex encoding on stage-carrying packets.
	StageExMinABIMinor = uint32(3)

	// StreamHeaderSize is the byte size of the stream header.
	StreamHeaderSize = 24

	// PacketHeaderSize is the byte size of the {opcode, size_bytes} pair.
	PacketHeaderSize = 8

	// MaxRenderTargets is the number of color slots in SET_RENDER_TARGETS.
	MaxRenderTargets = 8
)

// Opcode is the u32 command selector at the start of every packet.
type Opcode uint32

const (
	OpNop         Opcode = 0
	OpDebugMarker Opcode = 1

	OpCreateBuffer       Opcode = 0x100
	OpCreateTexture2D    Opcode = 0x101
	OpDestroyResource    Opcode = 0x102
	OpResourceDirtyRange Opcode = 0x103
	OpUploadResource     Opcode = 0x104
	OpCopyBuffer         Opcode = 0x105
	OpCopyTexture2D      Opcode = 0x106
	OpCreateTextureView  Opcode = 0x107
	OpDestroyTextureView Opcode = 0x108

	OpCreateShaderDXBC    Opcode = 0x200
	OpDestroyShader       Opcode = 0x201
	OpBindShaders         Opcode = 0x202
	OpSetShaderConstantsF Opcode = 0x203
	OpCreateInputLayout   Opcode = 0x204
	OpDestroyInputLayout  Opcode = 0x205
	OpSetInputLayout      Opcode = 0x206
	OpSetShaderConstantsI Opcode = 0x207
	OpSetShaderConstantsB Opcode = 0x208

	OpSetBlendState        Opcode = 0x300
	OpSetDepthStencilState Opcode = 0x301
	OpSetRasterizerState   Opcode = 0x302

	OpSetRenderTargets Opcode = 0x400
	OpSetViewport      Opcode = 0x401
	OpSetScissor       Opcode = 0x402

	OpSetVertexBuffers     Opcode = 0x500
	OpSetIndexBuffer       Opcode = 0x501
	OpSetPrimitiveTopology Opcode = 0x502

	OpSetTexture      Opcode = 0x510
	OpSetSamplerState Opcode = 0x511
	OpSetRenderState  Opcode = 0x512

	OpCreateSampler             Opcode = 0x520
	OpDestroySampler            Opcode = 0x521
	OpSetSamplers               Opcode = 0x522
	OpSetConstantBuffers        Opcode = 0x523
	OpSetShaderResourceBuffers  Opcode = 0x524
	OpSetUnorderedAccessBuffers Opcode = 0x525

	OpClear       Opcode = 0x600
	OpDraw        Opcode = 0x601
	OpDrawIndexed Opcode = 0x602
	OpDispatch    Opcode = 0x603

	OpPresent   Opcode = 0x700
	OpPresentEx Opcode = 0x701

	OpExportSharedSurface  Opcode = 0x710
	OpImportSharedSurface  Opcode = 0x711
	OpReleaseSharedSurface Opcode = 0x712

	OpFlush Opcode = 0x720
)

var opcodeNames = map[Opcode]string{
	OpNop:                       "NOP",
	OpDebugMarker:               "DEBUG_MARKER",
	OpCreateBuffer:              "CREATE_BUFFER",
	OpCreateTexture2D:           "CREATE_TEXTURE2D",
	OpDestroyResource:           "DESTROY_RESOURCE",
	OpResourceDirtyRange:        "RESOURCE_DIRTY_RANGE",
	OpUploadResource:            "UPLOAD_RESOURCE",
	OpCopyBuffer:                "COPY_BUFFER",
	OpCopyTexture2D:             "COPY_TEXTURE2D",
	OpCreateTextureView:         "CREATE_TEXTURE_VIEW",
	OpDestroyTextureView:        "DESTROY_TEXTURE_VIEW",
	OpCreateShaderDXBC:          "CREATE_SHADER_DXBC",
	OpDestroyShader:             "DESTROY_SHADER",
	OpBindShaders:               "BIND_SHADERS",
	OpSetShaderConstantsF:       "SET_SHADER_CONSTANTS_F",
	OpCreateInputLayout:         "CREATE_INPUT_LAYOUT",
	OpDestroyInputLayout:        "DESTROY_INPUT_LAYOUT",
	OpSetInputLayout:            "SET_INPUT_LAYOUT",
	OpSetShaderConstantsI:       "SET_SHADER_CONSTANTS_I",
	OpSetShaderConstantsB:       "SET_SHADER_CONSTANTS_B",
	OpSetBlendState:             "SET_BLEND_STATE",
	OpSetDepthStencilState:      "SET_DEPTH_STENCIL_STATE",
	OpSetRasterizerState:        "SET_RASTERIZER_STATE",
	OpSetRenderTargets:          "SET_RENDER_TARGETS",
	OpSetViewport:               "SET_VIEWPORT",
	OpSetScissor:                "SET_SCISSOR",
	OpSetVertexBuffers:          "SET_VERTEX_BUFFERS",
	OpSetIndexBuffer:            "SET_INDEX_BUFFER",
	OpSetPrimitiveTopology:      "SET_PRIMITIVE_TOPOLOGY",
	OpSetTexture:                "SET_TEXTURE",
	OpSetSamplerState:           "SET_SAMPLER_STATE",
	OpSetRenderState:            "SET_RENDER_STATE",
	OpCreateSampler:             "CREATE_SAMPLER",
	OpDestroySampler:            "DESTROY_SAMPLER",
	OpSetSamplers:               "SET_SAMPLERS",
	OpSetConstantBuffers:        "SET_CONSTANT_BUFFERS",
	OpSetShaderResourceBuffers:  "SET_SHADER_RESOURCE_BUFFERS",
	OpSetUnorderedAccessBuffers: "SET_UNORDERED_ACCESS_BUFFERS",
	OpClear:                     "CLEAR",
	OpDraw:                      "DRAW",
	OpDrawIndexed:               "DRAW_INDEXED",
	OpDispatch:                  "DISPATCH",
	OpPresent:                   "PRESENT",
	OpPresentEx:                 "PRESENT_EX",
	OpExportSharedSurface:       "EXPORT_SHARED_SURFACE",
	OpImportSharedSurface:       "IMPORT_SHARED_SURFACE",
	OpReleaseSharedSurface:      "RELEASE_SHARED_SURFACE",
	OpFlush:                     "FLUSH",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE<0x%x>", uint32(o))
}

// ShaderStage is the legacy shader stage selector.
type ShaderStage uint32

const (
	StageVertex   ShaderStage = 0
	StagePixel    ShaderStage = 1
	StageCompute  ShaderStage = 2
	StageGeometry ShaderStage = 3
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StagePixel:
		return "pixel"
	case StageCompute:
		return "compute"
	case StageGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("STAGE<%d>", uint32(s))
	}
}

// StageEx is the extended shader stage override carried in reserved0 of
// stage-carrying packets when the legacy stage is StageCompute. The numeric
// values match the DXBC program type numbering. 0 means no override and 1
// (DXBC vertex) is intentionally not encodable.
type StageEx uint32

const (
	StageExNone     StageEx = 0
	StageExGeometry StageEx = 2
	StageExHull     StageEx = 3
	StageExDomain   StageEx = 4
	StageExCompute  StageEx = 5
)

// IndexFormat selects the index element width for SET_INDEX_BUFFER.
type IndexFormat uint32

const (
	IndexUint16 IndexFormat = 0
	IndexUint32 IndexFormat = 1
)

// SamplerFilter is the CREATE_SAMPLER filter mode.
type SamplerFilter uint32

const (
	FilterNearest SamplerFilter = 0
	FilterLinear  SamplerFilter = 1
)

// SamplerAddressMode is the CREATE_SAMPLER addressing mode per axis.
type SamplerAddressMode uint32

const (
	AddressClampToEdge  SamplerAddressMode = 0
	AddressRepeat       SamplerAddressMode = 1
	AddressMirrorRepeat SamplerAddressMode = 2
)

// PrimitiveTopology is the input assembler topology.
type PrimitiveTopology uint32

const (
	TopologyPointList     PrimitiveTopology = 1
	TopologyLineList      PrimitiveTopology = 2
	TopologyLineStrip     PrimitiveTopology = 3
	TopologyTriangleList  PrimitiveTopology = 4
	TopologyTriangleStrip PrimitiveTopology = 5
	TopologyTriangleFan   PrimitiveTopology = 6

	TopologyLineListAdj      PrimitiveTopology = 10
	TopologyLineStripAdj     PrimitiveTopology = 11
	TopologyTriangleListAdj  PrimitiveTopology = 12
	TopologyTriangleStripAdj PrimitiveTopology = 13

	// Patchlist topologies with n control points are TopologyPatchList1+n-1.
	TopologyPatchList1  PrimitiveTopology = 33
	TopologyPatchList32 PrimitiveTopology = 64
)

// Usage flags for CREATE_BUFFER / CREATE_TEXTURE2D.
const (
	UsageNone           = uint32(0)
	UsageVertexBuffer   = uint32(1) << 0
	UsageIndexBuffer    = uint32(1) << 1
	UsageConstantBuffer = uint32(1) << 2
	UsageTexture        = uint32(1) << 3
	UsageRenderTarget   = uint32(1) << 4
	UsageDepthStencil   = uint32(1) << 5
	UsageScanout        = uint32(1) << 6
	UsageStorage        = uint32(1) << 7
)

// Copy flags for COPY_BUFFER / COPY_TEXTURE2D.
const (
	CopyFlagNone         = uint32(0)
	CopyFlagWritebackDst = uint32(1) << 0
)

// Clear flags for CLEAR.
const (
	ClearColor   = uint32(1) << 0
	ClearDepth   = uint32(1) << 1
	ClearStencil = uint32(1) << 2
)

// Present flags for PRESENT / PRESENT_EX.
const (
	PresentFlagNone  = uint32(0)
	PresentFlagVSync = uint32(1) << 0
)

// BlendFactor is a SET_BLEND_STATE blend factor.
type BlendFactor uint32

const (
	BlendZero         BlendFactor = 0
	BlendOne          BlendFactor = 1
	BlendSrcAlpha     BlendFactor = 2
	BlendInvSrcAlpha  BlendFactor = 3
	BlendDestAlpha    BlendFactor = 4
	BlendInvDestAlpha BlendFactor = 5
	BlendConstant     BlendFactor = 6
	BlendInvConstant  BlendFactor = 7
)

// BlendOp is a SET_BLEND_STATE blend operation.
type BlendOp uint32

const (
	BlendOpAdd         BlendOp = 0
	BlendOpSubtract    BlendOp = 1
	BlendOpRevSubtract BlendOp = 2
	BlendOpMin         BlendOp = 3
	BlendOpMax         BlendOp = 4
)

// CompareFunc is a depth or stencil comparison function.
type CompareFunc uint32

const (
	CompareNever        CompareFunc = 0
	CompareLess         CompareFunc = 1
	CompareEqual        CompareFunc = 2
	CompareLessEqual    CompareFunc = 3
	CompareGreater      CompareFunc = 4
	CompareNotEqual     CompareFunc = 5
	CompareGreaterEqual CompareFunc = 6
	CompareAlways       CompareFunc = 7
)

// FillMode is the SET_RASTERIZER_STATE fill mode.
type FillMode uint32

const (
	FillSolid     FillMode = 0
	FillWireframe FillMode = 1
)

// CullMode is the SET_RASTERIZER_STATE cull mode.
type CullMode uint32

const (
	CullNone  CullMode = 0
	CullFront CullMode = 1
	CullBack  CullMode = 2
)

// Rasterizer flags for SET_RASTERIZER_STATE.
const (
	RasterizerFlagNone             = uint32(0)
	RasterizerFlagDepthClipDisable = uint32(1) << 0
)

// UAVKeepCount is the SET_UNORDERED_ACCESS_BUFFERS initial_count value that
// preserves the current append/consume counter.
const UAVKeepCount = uint32(0xFFFFFFFF)

// BlendState is the 52-byte SET_BLEND_STATE payload block.
type BlendState struct {
	Enable         bool
	SrcFactor      BlendFactor
	DstFactor      BlendFactor
	Op             BlendOp
	ColorWriteMask uint8
	SrcFactorAlpha BlendFactor
	DstFactorAlpha BlendFactor
	OpAlpha        BlendOp
	ConstantRGBA   [4]float32
	SampleMask     uint32
}

// DepthStencilState is the 20-byte SET_DEPTH_STENCIL_STATE payload block.
type DepthStencilState struct {
	DepthEnable      bool
	DepthWriteEnable bool
	DepthFunc        CompareFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
}

// RasterizerState is the 24-byte SET_RASTERIZER_STATE payload block.
type RasterizerState struct {
	FillMode      FillMode
	CullMode      CullMode
	FrontCCW      bool
	ScissorEnable bool
	DepthBias     int32
	Flags         uint32
}

// VertexBufferBinding is one element of the SET_VERTEX_BUFFERS payload.
type VertexBufferBinding struct {
	Buffer      Handle
	StrideBytes uint32
	OffsetBytes uint32
}

// ConstantBufferBinding is one element of the SET_CONSTANT_BUFFERS and
// SET_SHADER_RESOURCE_BUFFERS payloads. A zero SizeBytes means "whole
// buffer".
type ConstantBufferBinding struct {
	Buffer      Handle
	OffsetBytes uint32
	SizeBytes   uint32
}

// UAVBinding is one element of the SET_UNORDERED_ACCESS_BUFFERS payload.
type UAVBinding struct {
	Buffer       Handle
	OffsetBytes  uint32
	SizeBytes    uint32
	InitialCount uint32
}
