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

// aerogpu_dump decodes a captured command stream file and prints one line
// per packet.
package main

import (
	"bytes"
	eb "encoding/binary"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"strings"

	"github.com/wilsonzlin/aerogpu/protocol"
)

var (
	verbose = flag.Bool("v", false, "also hex-dump every packet payload")
	layouts = flag.Bool("layouts", true, "decode CREATE_INPUT_LAYOUT blobs")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: aerogpu_dump [flags] <stream-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := dump(flag.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "aerogpu_dump: %v\n", err)
		os.Exit(1)
	}
}

func dump(path string, out io.Writer) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	r, err := protocol.NewReader(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "stream: abi %d.%d, %d bytes, flags 0x%x\n",
		r.Header.ABIMajorVersion(), r.Header.ABIMinorVersion(),
		r.Header.SizeBytes, r.Header.Flags)
	for i := 0; r.More(); i++ {
		p, err := r.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%5d  %-26v %s\n", i, p.Opcode, describe(p))
		if *verbose && len(p.Payload) > 0 {
			hexdump(out, p.Payload)
		}
	}
	return nil
}

// u32s returns the payload of p as little-endian words.
func u32s(p protocol.Packet) []uint32 {
	w := make([]uint32, len(p.Payload)/4)
	for i := range w {
		w[i] = eb.LittleEndian.Uint32(p.Payload[4*i:])
	}
	return w
}

func u64(w []uint32, i int) uint64 {
	return uint64(w[i]) | uint64(w[i+1])<<32
}

func f32(w []uint32, i int) float32 {
	return math.Float32frombits(w[i])
}

// minWords is the payload word count each decoded opcode needs. Packet
// framing is validated by the Reader but payload contents are not, so a
// shorter payload falls back to the raw byte count line.
var minWords = map[protocol.Opcode]int{
	protocol.OpNop:                       0,
	protocol.OpFlush:                     0,
	protocol.OpDebugMarker:               0,
	protocol.OpCreateBuffer:              6,
	protocol.OpCreateTexture2D:           10,
	protocol.OpCreateTextureView:         7,
	protocol.OpDestroyResource:           1,
	protocol.OpDestroyTextureView:        1,
	protocol.OpDestroyShader:             1,
	protocol.OpDestroyInputLayout:        1,
	protocol.OpSetInputLayout:            1,
	protocol.OpDestroySampler:            1,
	protocol.OpResourceDirtyRange:        6,
	protocol.OpUploadResource:            6,
	protocol.OpCopyBuffer:                9,
	protocol.OpCopyTexture2D:             13,
	protocol.OpCreateShaderDXBC:          4,
	protocol.OpBindShaders:               3,
	protocol.OpSetShaderConstantsF:       3,
	protocol.OpSetShaderConstantsI:       3,
	protocol.OpSetShaderConstantsB:       3,
	protocol.OpCreateInputLayout:         3,
	protocol.OpSetRenderTargets:          2,
	protocol.OpSetViewport:               6,
	protocol.OpSetScissor:                4,
	protocol.OpSetVertexBuffers:          2,
	protocol.OpSetIndexBuffer:            3,
	protocol.OpSetPrimitiveTopology:      1,
	protocol.OpSetTexture:                3,
	protocol.OpSetSamplerState:           4,
	protocol.OpSetRenderState:            2,
	protocol.OpCreateSampler:             5,
	protocol.OpSetSamplers:               4,
	protocol.OpSetConstantBuffers:        4,
	protocol.OpSetShaderResourceBuffers:  4,
	protocol.OpSetUnorderedAccessBuffers: 4,
	protocol.OpClear:                     7,
	protocol.OpDraw:                      4,
	protocol.OpDrawIndexed:               5,
	protocol.OpDispatch:                  3,
	protocol.OpPresent:                   2,
	protocol.OpPresentEx:                 3,
	protocol.OpExportSharedSurface:       4,
	protocol.OpImportSharedSurface:       4,
	protocol.OpReleaseSharedSurface:      2,
	protocol.OpSetBlendState:             8,
	protocol.OpSetDepthStencilState:      4,
	protocol.OpSetRasterizerState:        6,
}

func describe(p protocol.Packet) string {
	w := u32s(p)
	if need, ok := minWords[p.Opcode]; !ok || len(w) < need {
		return fmt.Sprintf("%d payload bytes", len(p.Payload))
	}
	switch p.Opcode {
	case protocol.OpNop, protocol.OpFlush:
		return ""
	case protocol.OpDebugMarker:
		return fmt.Sprintf("%q", string(bytes.TrimRight(p.Payload, "\x00")))
	case protocol.OpCreateBuffer:
		return fmt.Sprintf("buffer=%d usage=0x%x size=%d alloc=%d+%d",
			w[0], w[1], u64(w, 2), w[4], w[5])
	case protocol.OpCreateTexture2D:
		return fmt.Sprintf("texture=%d usage=0x%x format=%v %dx%d mips=%d layers=%d pitch=%d alloc=%d+%d",
			w[0], w[1], protocol.Format(w[2]), w[3], w[4], w[5], w[6], w[7], w[8], w[9])
	case protocol.OpCreateTextureView:
		return fmt.Sprintf("view=%d texture=%d format=%v mips=%d+%d layers=%d+%d",
			w[0], w[1], protocol.Format(w[2]), w[3], w[4], w[5], w[6])
	case protocol.OpDestroyResource, protocol.OpDestroyTextureView,
		protocol.OpDestroyShader, protocol.OpDestroyInputLayout,
		protocol.OpSetInputLayout, protocol.OpDestroySampler:
		return fmt.Sprintf("handle=%d", w[0])
	case protocol.OpResourceDirtyRange:
		return fmt.Sprintf("resource=%d offset=%d size=%d", w[0], u64(w, 2), u64(w, 4))
	case protocol.OpUploadResource:
		return fmt.Sprintf("resource=%d offset=%d size=%d", w[0], u64(w, 2), u64(w, 4))
	case protocol.OpCopyBuffer:
		return fmt.Sprintf("dst=%d src=%d dstOff=%d srcOff=%d size=%d flags=0x%x",
			w[0], w[1], u64(w, 2), u64(w, 4), u64(w, 6), w[8])
	case protocol.OpCopyTexture2D:
		return fmt.Sprintf("dst=%d[%d,%d] src=%d[%d,%d] dstXY=%d,%d srcXY=%d,%d %dx%d flags=0x%x",
			w[0], w[2], w[3], w[1], w[4], w[5], w[6], w[7], w[8], w[9], w[10], w[11], w[12])
	case protocol.OpCreateShaderDXBC:
		return fmt.Sprintf("shader=%d stage=%v stageEx=%d dxbc=%d bytes",
			w[0], protocol.ShaderStage(w[1]), w[3], w[2])
	case protocol.OpBindShaders:
		if len(w) >= 7 {
			return fmt.Sprintf("vs=%d ps=%d cs=%d gs=%d hs=%d ds=%d",
				w[0], w[1], w[2], w[4], w[5], w[6])
		}
		return fmt.Sprintf("vs=%d ps=%d cs=%d", w[0], w[1], w[2])
	case protocol.OpSetShaderConstantsF, protocol.OpSetShaderConstantsI, protocol.OpSetShaderConstantsB:
		return fmt.Sprintf("stage=%v start=%d count=%d", protocol.ShaderStage(w[0]), w[1], w[2])
	case protocol.OpCreateInputLayout:
		end := 12 + int(w[1])
		if end < 12 || end > len(p.Payload) {
			return fmt.Sprintf("layout=%d truncated blob (%d of %d bytes)", w[0], len(p.Payload)-12, w[1])
		}
		return describeInputLayout(w[0], p.Payload[12:end])
	case protocol.OpSetRenderTargets:
		return describeRenderTargets(w)
	case protocol.OpSetViewport:
		return fmt.Sprintf("x=%g y=%g w=%g h=%g depth=%g..%g",
			f32(w, 0), f32(w, 1), f32(w, 2), f32(w, 3), f32(w, 4), f32(w, 5))
	case protocol.OpSetScissor:
		return fmt.Sprintf("x=%d y=%d w=%d h=%d", int32(w[0]), int32(w[1]), int32(w[2]), int32(w[3]))
	case protocol.OpSetVertexBuffers:
		return describeVertexBuffers(w)
	case protocol.OpSetIndexBuffer:
		return fmt.Sprintf("buffer=%d format=%d offset=%d", w[0], w[1], w[2])
	case protocol.OpSetPrimitiveTopology:
		return fmt.Sprintf("topology=%d", w[0])
	case protocol.OpSetTexture:
		return fmt.Sprintf("stage=%v slot=%d texture=%d", protocol.ShaderStage(w[0]), w[1], w[2])
	case protocol.OpSetSamplerState:
		return fmt.Sprintf("stage=%v slot=%d state=%d value=%d", protocol.ShaderStage(w[0]), w[1], w[2], w[3])
	case protocol.OpSetRenderState:
		return fmt.Sprintf("state=%d value=%d", w[0], w[1])
	case protocol.OpCreateSampler:
		return fmt.Sprintf("sampler=%d filter=%d address=%d,%d,%d", w[0], w[1], w[2], w[3], w[4])
	case protocol.OpSetSamplers:
		n := int(w[2])
		if n > len(w)-4 {
			n = len(w) - 4
		}
		return fmt.Sprintf("stage=%v slots=%d+%d samplers=%v", protocol.ShaderStage(w[0]), w[1], w[2], w[4:4+n])
	case protocol.OpSetConstantBuffers, protocol.OpSetShaderResourceBuffers, protocol.OpSetUnorderedAccessBuffers:
		return describeBufferBindings(w)
	case protocol.OpClear:
		return fmt.Sprintf("flags=0x%x color=[%g %g %g %g] depth=%g stencil=%d",
			w[0], f32(w, 1), f32(w, 2), f32(w, 3), f32(w, 4), f32(w, 5), w[6])
	case protocol.OpDraw:
		return fmt.Sprintf("vertices=%d instances=%d first=%d,%d", w[0], w[1], w[2], w[3])
	case protocol.OpDrawIndexed:
		return fmt.Sprintf("indices=%d instances=%d firstIndex=%d baseVertex=%d firstInstance=%d",
			w[0], w[1], w[2], int32(w[3]), w[4])
	case protocol.OpDispatch:
		return fmt.Sprintf("groups=%dx%dx%d", w[0], w[1], w[2])
	case protocol.OpPresent:
		return fmt.Sprintf("scanout=%d flags=0x%x", w[0], w[1])
	case protocol.OpPresentEx:
		return fmt.Sprintf("scanout=%d flags=0x%x d3d9Flags=0x%x", w[0], w[1], w[2])
	case protocol.OpExportSharedSurface:
		return fmt.Sprintf("resource=%d token=0x%x", w[0], u64(w, 2))
	case protocol.OpImportSharedSurface:
		return fmt.Sprintf("resource=%d token=0x%x", w[0], u64(w, 2))
	case protocol.OpReleaseSharedSurface:
		return fmt.Sprintf("token=0x%x", u64(w, 0))
	case protocol.OpSetBlendState:
		return fmt.Sprintf("enable=%d rgb=%d,%d,%d a=%d,%d,%d mask=0x%02x",
			w[0], w[1], w[2], w[3], w[5], w[6], w[7], w[4]&0xff)
	case protocol.OpSetDepthStencilState:
		return fmt.Sprintf("depth=%d write=%d func=%d stencil=%d", w[0], w[1], w[2], w[3])
	case protocol.OpSetRasterizerState:
		return fmt.Sprintf("fill=%d cull=%d ccw=%d scissor=%d bias=%d flags=0x%x",
			w[0], w[1], w[2], w[3], int32(w[4]), w[5])
	default:
		return fmt.Sprintf("%d payload bytes", len(p.Payload))
	}
}

func describeRenderTargets(w []uint32) string {
	count := int(w[0])
	if count > protocol.MaxRenderTargets {
		count = protocol.MaxRenderTargets
	}
	if count > len(w)-2 {
		count = len(w) - 2
	}
	return fmt.Sprintf("count=%d depth=%d colors=%v", w[0], w[1], w[2:2+count])
}

func describeVertexBuffers(w []uint32) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "slots=%d+%d", w[0], w[1])
	for i := 0; i < int(w[1]) && 2+4*i+3 < len(w); i++ {
		b := w[2+4*i:]
		fmt.Fprintf(&sb, " [buffer=%d stride=%d offset=%d]", b[0], b[1], b[2])
	}
	return sb.String()
}

func describeBufferBindings(w []uint32) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "stage=%v slots=%d+%d", protocol.ShaderStage(w[0]), w[1], w[2])
	for i := 0; i < int(w[2]) && 4+4*i+3 < len(w); i++ {
		b := w[4+4*i:]
		fmt.Fprintf(&sb, " [buffer=%d offset=%d size=%d]", b[0], b[1], b[2])
	}
	return sb.String()
}

func describeInputLayout(handle uint32, blob []byte) string {
	if !*layouts {
		return fmt.Sprintf("layout=%d blob=%d bytes", handle, len(blob))
	}
	elements, err := protocol.ParseInputLayoutBlob(blob)
	if err != nil {
		return fmt.Sprintf("layout=%d bad blob: %v", handle, err)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "layout=%d elements=%d", handle, len(elements))
	for _, e := range elements {
		fmt.Fprintf(&sb, " [hash=0x%08x:%d dxgi=%d slot=%d offset=%d",
			e.SemanticNameHash, e.SemanticIndex, e.Format, e.InputSlot, e.AlignedByteOffset)
		if e.SlotClass == protocol.InputPerInstance {
			fmt.Fprintf(&sb, " step=%d", e.InstanceDataStepRate)
		}
		sb.WriteString("]")
	}
	return sb.String()
}

func hexdump(out io.Writer, data []byte) {
	for o := 0; o < len(data); o += 16 {
		end := o + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(out, "       %04x  % x\n", o, data[o:end])
	}
}
