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

	"github.com/pkg/errors"

	"github.com/wilsonzlin/aerogpu/core/data/binary"
	"github.com/wilsonzlin/aerogpu/core/data/endian"
	"github.com/wilsonzlin/aerogpu/core/fault"
)

const (
	// ErrBadMagic indicates the stream does not begin with the ACMD magic.
	ErrBadMagic = fault.Const("Bad command stream magic")
	// ErrVersionMismatch indicates the stream's major ABI version is not the
	// one this package speaks.
	ErrVersionMismatch = fault.Const("Unsupported command stream ABI version")
	// ErrTruncated indicates the stream or a packet extends past the data.
	ErrTruncated = fault.Const("Truncated command stream")
	// ErrBadPacketSize indicates a packet header with a size that is smaller
	// than the header itself or not 4-byte aligned.
	ErrBadPacketSize = fault.Const("Bad packet size")
)

// StreamHeader is the decoded fixed-size header at the start of a command
// stream.
type StreamHeader struct {
	Magic      uint32
	ABIVersion uint32
	SizeBytes  uint32
	Flags      uint32
}

// ABIMajorVersion returns the major half of the header's ABI version.
func (h StreamHeader) ABIMajorVersion() uint32 { return h.ABIVersion >> 16 }

// ABIMinorVersion returns the minor half of the header's ABI version.
func (h StreamHeader) ABIMinorVersion() uint32 { return h.ABIVersion & 0xffff }

// Packet is a single decoded packet. Payload holds the bytes between the
// packet header and the next packet, alignment padding included, aliasing
// the stream data.
type Packet struct {
	Opcode  Opcode
	Payload []byte
}

// Reader returns a little-endian reader over the packet payload.
func (p Packet) Reader() binary.Reader {
	return endian.Reader(bytes.NewReader(p.Payload), endian.Little)
}

// Reader decodes a command stream from a byte slice. Packets with opcodes
// the caller does not recognise can be skipped, as every packet carries its
// own size.
type Reader struct {
	Header StreamHeader
	data   []byte
	offset int
}

// NewReader validates the stream header of data and returns a Reader
// positioned at the first packet. Minor version differences are tolerated,
// a major version mismatch is not.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < StreamHeaderSize {
		return nil, errors.WithStack(ErrTruncated)
	}
	hdr := StreamHeader{
		Magic:      eb.LittleEndian.Uint32(data[0:]),
		ABIVersion: eb.LittleEndian.Uint32(data[4:]),
		SizeBytes:  eb.LittleEndian.Uint32(data[8:]),
		Flags:      eb.LittleEndian.Uint32(data[12:]),
	}
	if hdr.Magic != StreamMagic {
		return nil, errors.WithStack(ErrBadMagic)
	}
	if hdr.ABIMajorVersion() != ABIMajor {
		return nil, errors.Wrapf(ErrVersionMismatch, "got %d.%d, want major %d",
			hdr.ABIMajorVersion(), hdr.ABIMinorVersion(), ABIMajor)
	}
	if int(hdr.SizeBytes) < StreamHeaderSize || int(hdr.SizeBytes) > len(data) {
		return nil, errors.Wrapf(ErrTruncated, "header size %d, data %d", hdr.SizeBytes, len(data))
	}
	return &Reader{
		Header: hdr,
		data:   data[:hdr.SizeBytes],
		offset: StreamHeaderSize,
	}, nil
}

// More reports whether any packets remain.
func (r *Reader) More() bool {
	return r.offset < len(r.data)
}

// Next decodes the packet at the current position and advances past it.
func (r *Reader) Next() (Packet, error) {
	if len(r.data)-r.offset < PacketHeaderSize {
		return Packet{}, errors.Wrapf(ErrTruncated, "at offset %d", r.offset)
	}
	op := Opcode(eb.LittleEndian.Uint32(r.data[r.offset:]))
	size := int(eb.LittleEndian.Uint32(r.data[r.offset+4:]))
	if size < PacketHeaderSize || size%4 != 0 {
		return Packet{}, errors.Wrapf(ErrBadPacketSize, "%v size %d at offset %d", op, size, r.offset)
	}
	if size > len(r.data)-r.offset {
		return Packet{}, errors.Wrapf(ErrTruncated, "%v size %d at offset %d", op, size, r.offset)
	}
	p := Packet{
		Opcode:  op,
		Payload: r.data[r.offset+PacketHeaderSize : r.offset+size],
	}
	r.offset += size
	return p, nil
}
