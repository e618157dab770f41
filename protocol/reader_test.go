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

package protocol_test

import (
	"encoding/binary"
	"testing"

	"github.com/wilsonzlin/aerogpu/core/assert"
	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/protocol"
)

// stream hand-builds a command stream from raw (opcode, payload) pairs.
func stream(packets ...[]uint32) []byte {
	data := make([]byte, protocol.StreamHeaderSize)
	binary.LittleEndian.PutUint32(data[0:], protocol.StreamMagic)
	binary.LittleEndian.PutUint32(data[4:], protocol.ABIVersion)
	for _, p := range packets {
		pkt := make([]byte, 4*len(p))
		for i, v := range p {
			binary.LittleEndian.PutUint32(pkt[4*i:], v)
		}
		data = append(data, pkt...)
	}
	binary.LittleEndian.PutUint32(data[8:], uint32(len(data)))
	return data
}

func TestUnknownOpcodeSkipped(t *testing.T) {
	ctx := log.Testing(t)
	data := stream(
		[]uint32{0x9999, 16, 0xDEAD, 0xBEEF},
		[]uint32{uint32(protocol.OpFlush), 16, 0, 0},
	)

	r, err := protocol.NewReader(data)
	assert.For(ctx, "NewReader").ThatError(err).Succeeded()

	p, err := r.Next()
	assert.For(ctx, "unknown").ThatError(err).Succeeded()
	assert.For(ctx, "unknown opcode").That(p.Opcode).Equals(protocol.Opcode(0x9999))
	assert.For(ctx, "unknown payload").ThatInteger(len(p.Payload)).Equals(8)

	p, err = r.Next()
	assert.For(ctx, "flush").ThatError(err).Succeeded()
	assert.For(ctx, "flush opcode").That(p.Opcode).Equals(protocol.OpFlush)
	assert.For(ctx, "More").That(r.More()).Equals(false)
}

func TestBadMagic(t *testing.T) {
	ctx := log.Testing(t)
	data := stream()
	binary.LittleEndian.PutUint32(data[0:], 0x12345678)
	_, err := protocol.NewReader(data)
	assert.For(ctx, "NewReader").ThatError(err).HasCause(protocol.ErrBadMagic)
}

func TestMajorVersionMismatch(t *testing.T) {
	ctx := log.Testing(t)
	data := stream()
	binary.LittleEndian.PutUint32(data[4:], 2<<16|0)
	_, err := protocol.NewReader(data)
	assert.For(ctx, "NewReader").ThatError(err).HasCause(protocol.ErrVersionMismatch)
}

func TestNewerMinorVersionAccepted(t *testing.T) {
	ctx := log.Testing(t)
	data := stream()
	binary.LittleEndian.PutUint32(data[4:], protocol.ABIMajor<<16|99)
	r, err := protocol.NewReader(data)
	assert.For(ctx, "NewReader").ThatError(err).Succeeded()
	assert.For(ctx, "minor").That(r.Header.ABIMinorVersion()).Equals(uint32(99))
}

func TestTruncatedStream(t *testing.T) {
	ctx := log.Testing(t)

	_, err := protocol.NewReader(make([]byte, protocol.StreamHeaderSize-1))
	assert.For(ctx, "short header").ThatError(err).HasCause(protocol.ErrTruncated)

	data := stream()
	binary.LittleEndian.PutUint32(data[8:], uint32(len(data)+4))
	_, err = protocol.NewReader(data)
	assert.For(ctx, "size past data").ThatError(err).HasCause(protocol.ErrTruncated)
}

func TestPacketPastStreamEnd(t *testing.T) {
	ctx := log.Testing(t)
	data := stream([]uint32{uint32(protocol.OpFlush), 64, 0, 0})
	r, err := protocol.NewReader(data)
	assert.For(ctx, "NewReader").ThatError(err).Succeeded()
	_, err = r.Next()
	assert.For(ctx, "Next").ThatError(err).HasCause(protocol.ErrTruncated)
}

func TestBadPacketSize(t *testing.T) {
	ctx := log.Testing(t)

	data := stream([]uint32{uint32(protocol.OpFlush), 4, 0, 0})
	r, _ := protocol.NewReader(data)
	_, err := r.Next()
	assert.For(ctx, "below header size").ThatError(err).HasCause(protocol.ErrBadPacketSize)

	data = stream([]uint32{uint32(protocol.OpFlush), 14, 0, 0})
	r, _ = protocol.NewReader(data)
	_, err = r.Next()
	assert.For(ctx, "unaligned").ThatError(err).HasCause(protocol.ErrBadPacketSize)
}

func TestInputLayoutBlobRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	elements := []protocol.InputElement{
		{
			SemanticNameHash:  protocol.SemanticNameHash("POSITION"),
			Format:            6, // DXGI_FORMAT_R32G32B32_FLOAT
			AlignedByteOffset: 0,
			SlotClass:         protocol.InputPerVertex,
		},
		{
			SemanticNameHash:     protocol.SemanticNameHash("TEXCOORD"),
			SemanticIndex:        1,
			Format:               16, // DXGI_FORMAT_R32G32_FLOAT
			InputSlot:            1,
			AlignedByteOffset:    12,
			SlotClass:            protocol.InputPerInstance,
			InstanceDataStepRate: 2,
		},
	}

	blob := protocol.BuildInputLayoutBlob(elements)
	assert.For(ctx, "magic").That(binary.LittleEndian.Uint32(blob[0:])).Equals(uint32(protocol.InputLayoutBlobMagic))

	parsed, err := protocol.ParseInputLayoutBlob(blob)
	assert.For(ctx, "parse").ThatError(err).Succeeded()
	assert.For(ctx, "elements").ThatSlice(parsed).DeepEquals(elements)
}

func TestSemanticNameHashIsCaseInsensitive(t *testing.T) {
	ctx := log.Testing(t)
	upper := protocol.SemanticNameHash("POSITION")
	lower := protocol.SemanticNameHash("position")
	assert.For(ctx, "case folded").That(lower).Equals(upper)
	assert.For(ctx, "distinct names").That(protocol.SemanticNameHash("NORMAL")).NotEquals(upper)
}

func TestParseInputLayoutBlobRejectsBad(t *testing.T) {
	ctx := log.Testing(t)

	_, err := protocol.ParseInputLayoutBlob(nil)
	assert.For(ctx, "empty").ThatError(err).HasCause(protocol.ErrBadInputLayoutBlob)

	blob := protocol.BuildInputLayoutBlob([]protocol.InputElement{{}})
	binary.LittleEndian.PutUint32(blob[4:], 2)
	_, err = protocol.ParseInputLayoutBlob(blob)
	assert.For(ctx, "version").ThatError(err).HasCause(protocol.ErrBadInputLayoutBlob)

	blob = protocol.BuildInputLayoutBlob([]protocol.InputElement{{}})
	binary.LittleEndian.PutUint32(blob[8:], 3)
	_, err = protocol.ParseInputLayoutBlob(blob)
	assert.For(ctx, "count").ThatError(err).HasCause(protocol.ErrBadInputLayoutBlob)
}
