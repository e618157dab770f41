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

	"github.com/wilsonzlin/aerogpu/core/data/endian"
	"github.com/wilsonzlin/aerogpu/core/fault"
)

// Input layout blobs are the opaque payload of CREATE_INPUT_LAYOUT.
const (
	InputLayoutBlobMagic   = 0x59414C49 // "ILAY"
	InputLayoutBlobVersion = 1

	inputLayoutHeaderSize  = 16
	inputLayoutElementSize = 28
)

// ErrBadInputLayoutBlob indicates a blob with a bad magic, version or size.
const ErrBadInputLayoutBlob = fault.Const("Bad input layout blob")

// Input slot classes for InputElement.SlotClass.
const (
	InputPerVertex   = 0
	InputPerInstance = 1
)

// InputElement describes one vertex attribute in an input layout. Semantic
// names are carried as case-insensitive FNV-1a hashes rather than strings.
type InputElement struct {
	SemanticNameHash     uint32
	SemanticIndex        uint32
	Format               uint32 // DXGI_FORMAT value
	InputSlot            uint32
	AlignedByteOffset    uint32
	SlotClass            uint32
	InstanceDataStepRate uint32
}

// SemanticNameHash returns the 32-bit FNV-1a hash of the semantic name
// folded to upper case, matching the hash carried in input layout blobs.
func SemanticNameHash(name string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

// BuildInputLayoutBlob encodes elements as a CREATE_INPUT_LAYOUT blob.
func BuildInputLayoutBlob(elements []InputElement) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, inputLayoutHeaderSize+inputLayoutElementSize*len(elements)))
	w := endian.Writer(buf, endian.Little)
	w.Uint32(InputLayoutBlobMagic)
	w.Uint32(InputLayoutBlobVersion)
	w.Uint32(uint32(len(elements)))
	w.Uint32(0) // reserved0
	for _, e := range elements {
		w.Uint32(e.SemanticNameHash)
		w.Uint32(e.SemanticIndex)
		w.Uint32(e.Format)
		w.Uint32(e.InputSlot)
		w.Uint32(e.AlignedByteOffset)
		w.Uint32(e.SlotClass)
		w.Uint32(e.InstanceDataStepRate)
	}
	return buf.Bytes()
}

// ParseInputLayoutBlob decodes a CREATE_INPUT_LAYOUT blob.
func ParseInputLayoutBlob(blob []byte) ([]InputElement, error) {
	if len(blob) < inputLayoutHeaderSize {
		return nil, errors.Wrapf(ErrBadInputLayoutBlob, "blob of %d bytes", len(blob))
	}
	if eb.LittleEndian.Uint32(blob[0:]) != InputLayoutBlobMagic {
		return nil, errors.Wrap(ErrBadInputLayoutBlob, "bad magic")
	}
	if v := eb.LittleEndian.Uint32(blob[4:]); v != InputLayoutBlobVersion {
		return nil, errors.Wrapf(ErrBadInputLayoutBlob, "version %d", v)
	}
	count := int(eb.LittleEndian.Uint32(blob[8:]))
	if len(blob) < inputLayoutHeaderSize+inputLayoutElementSize*count {
		return nil, errors.Wrapf(ErrBadInputLayoutBlob, "%d elements in %d bytes", count, len(blob))
	}
	elements := make([]InputElement, count)
	for i := range elements {
		b := blob[inputLayoutHeaderSize+inputLayoutElementSize*i:]
		elements[i] = InputElement{
			SemanticNameHash:     eb.LittleEndian.Uint32(b[0:]),
			SemanticIndex:        eb.LittleEndian.Uint32(b[4:]),
			Format:               eb.LittleEndian.Uint32(b[8:]),
			InputSlot:            eb.LittleEndian.Uint32(b[12:]),
			AlignedByteOffset:    eb.LittleEndian.Uint32(b[16:]),
			SlotClass:            eb.LittleEndian.Uint32(b[20:]),
			InstanceDataStepRate: eb.LittleEndian.Uint32(b[24:]),
		}
	}
	return elements, nil
}
