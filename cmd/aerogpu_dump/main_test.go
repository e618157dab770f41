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

package main

import (
	"bytes"
	eb "encoding/binary"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wilsonzlin/aerogpu/core/assert"
	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/protocol"
)

func words(p ...uint32) []byte {
	buf := &bytes.Buffer{}
	for _, w := range p {
		b := [4]byte{}
		eb.LittleEndian.PutUint32(b[:], w)
		buf.Write(b[:])
	}
	return buf.Bytes()
}

// stream hand-builds a framed command stream so packets can carry payloads
// shorter than their opcode's layout requires.
func stream(packets ...[]uint32) []byte {
	body := &bytes.Buffer{}
	for _, p := range packets {
		body.Write(words(p[0], uint32(8+4*(len(p)-1))))
		body.Write(words(p[1:]...))
	}
	total := uint32(protocol.StreamHeaderSize + body.Len())
	out := words(protocol.StreamMagic, protocol.ABIVersion, total, 0, 0, 0)
	return append(out, body.Bytes()...)
}

// Framing is validated by the Reader, payload contents are not: a packet may
// legally be shorter than its opcode's fields. describe must degrade to the
// raw byte count rather than index past the payload.
func TestDescribeShortPayloads(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name   string
		packet protocol.Packet
		expect string
	}{
		{"empty draw", protocol.Packet{Opcode: protocol.OpDraw}, "0 payload bytes"},
		{"short clear", protocol.Packet{Opcode: protocol.OpClear, Payload: words(1, 2)}, "8 payload bytes"},
		{"short copy", protocol.Packet{Opcode: protocol.OpCopyTexture2D, Payload: words(1)}, "4 payload bytes"},
		{"unknown opcode", protocol.Packet{Opcode: 0x9999, Payload: words(1, 2)}, "8 payload bytes"},
		{"render target count past payload",
			protocol.Packet{Opcode: protocol.OpSetRenderTargets, Payload: words(8, 0)},
			"count=8 depth=0 colors=[]"},
		{"vertex buffer count past payload",
			protocol.Packet{Opcode: protocol.OpSetVertexBuffers, Payload: words(0, 4)},
			"slots=0+4"},
		{"sampler count past payload",
			protocol.Packet{Opcode: protocol.OpSetSamplers, Payload: words(1, 0, 5, 0)},
			"stage=pixel slots=0+5 samplers=[]"},
		{"input layout blob past payload",
			protocol.Packet{Opcode: protocol.OpCreateInputLayout, Payload: words(5, 100, 0)},
			"layout=5 truncated blob (0 of 100 bytes)"},
	} {
		got := describe(test.packet)
		assert.For(ctx, "%s", test.name).That(got).Equals(test.expect)
	}
}

func TestDumpTruncatedStreamFile(t *testing.T) {
	ctx := log.Testing(t)
	data := stream(
		[]uint32{uint32(protocol.OpDraw)},
		[]uint32{uint32(protocol.OpSetRenderTargets), 8, 0},
		[]uint32{uint32(protocol.OpPresent), 0, 0},
	)
	path := filepath.Join(t.TempDir(), "short.acmd")
	err := ioutil.WriteFile(path, data, 0666)
	assert.For(ctx, "write").ThatError(err).Succeeded()

	out := &bytes.Buffer{}
	err = dump(path, out)
	assert.For(ctx, "dump").ThatError(err).Succeeded()
	assert.For(ctx, "draw line").That(strings.Contains(out.String(), "0 payload bytes")).Equals(true)
	assert.For(ctx, "present line").That(strings.Contains(out.String(), "scanout=0")).Equals(true)
}
