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

// Package texture computes linear memory layouts for 2D textures, including
// block-compressed formats and mip chains.
package texture

import (
	"github.com/pkg/errors"

	"github.com/wilsonzlin/aerogpu/core/fault"
	"github.com/wilsonzlin/aerogpu/protocol"
)

const (
	// ErrUnknownFormat indicates a format with no known memory layout.
	ErrUnknownFormat = fault.Const("Unknown texture format")
	// ErrZeroExtent indicates a zero width, height or layer count.
	ErrZeroExtent = fault.Const("Zero texture extent")
	// ErrRowPitchTooSmall indicates a mip 0 row pitch below the tight pitch.
	ErrRowPitchTooSmall = fault.Const("Row pitch below minimum")
	// ErrLayoutOverflow indicates a layout whose total size overflows uint64.
	ErrLayoutOverflow = fault.Const("Texture layout size overflow")
)

// MipDim returns the extent of a mip level given the base extent. The extent
// halves per level and clamps at 1. A zero base stays zero.
func MipDim(base, mipLevel uint32) uint32 {
	if base == 0 {
		return 0
	}
	if mipLevel >= 32 {
		return 1
	}
	if d := base >> mipLevel; d > 0 {
		return d
	}
	return 1
}

// FullMipLevels returns the number of mip levels in a full chain down to
// 1x1. A MipLevels of 0 in a texture description means the full chain.
func FullMipLevels(width, height uint32) uint32 {
	w, h := width, height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	levels := uint32(1)
	for w > 1 || h > 1 {
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
		levels++
	}
	return levels
}

// MinRowPitch returns the tight row pitch in bytes for a row of the given
// width. For block-compressed formats a row is a row of blocks. Returns 0
// for a zero width or an unknown format.
func MinRowPitch(format protocol.Format, width uint32) uint32 {
	if width == 0 {
		return 0
	}
	l, ok := format.Layout()
	if !ok {
		return 0
	}
	blocksW := uint64((width + l.BlockWidth - 1) / l.BlockWidth)
	rowBytes := blocksW * uint64(l.BytesPerBlock)
	if rowBytes > 0xFFFFFFFF {
		return 0
	}
	return uint32(rowBytes)
}

// NumRows returns the number of layout rows for the given height: texel
// rows for linear formats, block rows for block-compressed ones. Returns 0
// for a zero height or an unknown format.
func NumRows(format protocol.Format, height uint32) uint32 {
	if height == 0 {
		return 0
	}
	l, ok := format.Layout()
	if !ok {
		return 0
	}
	return (height + l.BlockHeight - 1) / l.BlockHeight
}

// RequiredSize returns the byte size of a subresource with the given row
// pitch and height.
func RequiredSize(format protocol.Format, rowPitchBytes, height uint32) uint64 {
	if rowPitchBytes == 0 {
		return 0
	}
	return uint64(rowPitchBytes) * uint64(NumRows(format, height))
}

// SubresourceLayout describes the placement of one (mip, layer) subresource
// within a texture's linear memory.
type SubresourceLayout struct {
	MipLevel   uint32
	ArrayLayer uint32
	Width      uint32
	Height     uint32
	// OffsetBytes is the subresource's offset from the start of the texture.
	OffsetBytes uint64
	// RowPitchBytes is the stride between layout rows.
	RowPitchBytes uint32
	// RowsInLayout is the number of layout rows.
	RowsInLayout uint32
	SizeBytes    uint64
}

// SubresourceLayouts computes the layout of every subresource of a 2D
// texture, layer-major with mips packed consecutively inside each layer.
// mipLevels 0 selects the full chain. Mip 0 uses mip0RowPitch when non-zero,
// which must be at least the tight pitch; other mips are tightly packed.
// The returned total is the texture's full byte size.
func SubresourceLayouts(format protocol.Format, width, height, mipLevels, arrayLayers, mip0RowPitch uint32) ([]SubresourceLayout, uint64, error) {
	if width == 0 || height == 0 || arrayLayers == 0 {
		return nil, 0, errors.Wrapf(ErrZeroExtent, "%dx%d x%d layers", width, height, arrayLayers)
	}
	if _, ok := format.Layout(); !ok {
		return nil, 0, errors.Wrapf(ErrUnknownFormat, "format %v", format)
	}
	if mipLevels == 0 {
		mipLevels = FullMipLevels(width, height)
	}
	tight0 := MinRowPitch(format, width)
	if mip0RowPitch == 0 {
		mip0RowPitch = tight0
	}
	if mip0RowPitch < tight0 {
		return nil, 0, errors.Wrapf(ErrRowPitchTooSmall, "pitch %d, need %d", mip0RowPitch, tight0)
	}

	layouts := make([]SubresourceLayout, 0, mipLevels*arrayLayers)
	offset := uint64(0)
	for layer := uint32(0); layer < arrayLayers; layer++ {
		for mip := uint32(0); mip < mipLevels; mip++ {
			mipW := MipDim(width, mip)
			mipH := MipDim(height, mip)
			rowPitch := MinRowPitch(format, mipW)
			rows := NumRows(format, mipH)
			if mip == 0 {
				rowPitch = mip0RowPitch
			}
			size := uint64(rowPitch) * uint64(rows)
			layouts = append(layouts, SubresourceLayout{
				MipLevel:      mip,
				ArrayLayer:    layer,
				Width:         mipW,
				Height:        mipH,
				OffsetBytes:   offset,
				RowPitchBytes: rowPitch,
				RowsInLayout:  rows,
				SizeBytes:     size,
			})
			next := offset + size
			if next < offset {
				return nil, 0, errors.WithStack(ErrLayoutOverflow)
			}
			offset = next
		}
	}
	return layouts, offset, nil
}

// Find returns the layout for the given mip and layer, or nil if out of
// range. layouts must have come from SubresourceLayouts.
func Find(layouts []SubresourceLayout, mipLevel, arrayLayer, mipLevels uint32) *SubresourceLayout {
	if mipLevels == 0 {
		return nil
	}
	i := int(arrayLayer)*int(mipLevels) + int(mipLevel)
	if mipLevel >= mipLevels || i >= len(layouts) {
		return nil
	}
	return &layouts[i]
}
