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

import "fmt"

// Format is the texel format of a 2D texture.
type Format uint32

const (
	FormatInvalid Format = iota
	FormatB8G8R8A8Unorm
	FormatB8G8R8X8Unorm
	FormatR8G8B8A8Unorm
	FormatR8G8B8X8Unorm
	FormatB5G6R5Unorm
	FormatB5G5R5A1Unorm
	FormatB8G8R8A8UnormSRGB
	FormatB8G8R8X8UnormSRGB
	FormatR8G8B8A8UnormSRGB
	FormatR8G8B8X8UnormSRGB
	FormatD24UnormS8Uint
	FormatD32Float
	FormatBC1RGBAUnorm
	FormatBC1RGBAUnormSRGB
	FormatBC2RGBAUnorm
	FormatBC2RGBAUnormSRGB
	FormatBC3RGBAUnorm
	FormatBC3RGBAUnormSRGB
	FormatBC7RGBAUnorm
	FormatBC7RGBAUnormSRGB
)

func (f Format) String() string {
	switch f {
	case FormatB8G8R8A8Unorm:
		return "B8G8R8A8_UNORM"
	case FormatB8G8R8X8Unorm:
		return "B8G8R8X8_UNORM"
	case FormatR8G8B8A8Unorm:
		return "R8G8B8A8_UNORM"
	case FormatR8G8B8X8Unorm:
		return "R8G8B8X8_UNORM"
	case FormatB5G6R5Unorm:
		return "B5G6R5_UNORM"
	case FormatB5G5R5A1Unorm:
		return "B5G5R5A1_UNORM"
	case FormatB8G8R8A8UnormSRGB:
		return "B8G8R8A8_UNORM_SRGB"
	case FormatB8G8R8X8UnormSRGB:
		return "B8G8R8X8_UNORM_SRGB"
	case FormatR8G8B8A8UnormSRGB:
		return "R8G8B8A8_UNORM_SRGB"
	case FormatR8G8B8X8UnormSRGB:
		return "R8G8B8X8_UNORM_SRGB"
	case FormatD24UnormS8Uint:
		return "D24_UNORM_S8_UINT"
	case FormatD32Float:
		return "D32_FLOAT"
	case FormatBC1RGBAUnorm:
		return "BC1_RGBA_UNORM"
	case FormatBC1RGBAUnormSRGB:
		return "BC1_RGBA_UNORM_SRGB"
	case FormatBC2RGBAUnorm:
		return "BC2_RGBA_UNORM"
	case FormatBC2RGBAUnormSRGB:
		return "BC2_RGBA_UNORM_SRGB"
	case FormatBC3RGBAUnorm:
		return "BC3_RGBA_UNORM"
	case FormatBC3RGBAUnormSRGB:
		return "BC3_RGBA_UNORM_SRGB"
	case FormatBC7RGBAUnorm:
		return "BC7_RGBA_UNORM"
	case FormatBC7RGBAUnormSRGB:
		return "BC7_RGBA_UNORM_SRGB"
	default:
		return fmt.Sprintf("FORMAT<%d>", uint32(f))
	}
}

// BlockLayout describes the block geometry of a Format. Linear formats use
// 1x1 blocks, block-compressed formats use 4x4.
type BlockLayout struct {
	BlockWidth    uint32
	BlockHeight   uint32
	BytesPerBlock uint32
}

var formatLayouts = map[Format]BlockLayout{
	FormatB8G8R8A8Unorm:     {1, 1, 4},
	FormatB8G8R8X8Unorm:     {1, 1, 4},
	FormatR8G8B8A8Unorm:     {1, 1, 4},
	FormatR8G8B8X8Unorm:     {1, 1, 4},
	FormatB5G6R5Unorm:       {1, 1, 2},
	FormatB5G5R5A1Unorm:     {1, 1, 2},
	FormatB8G8R8A8UnormSRGB: {1, 1, 4},
	FormatB8G8R8X8UnormSRGB: {1, 1, 4},
	FormatR8G8B8A8UnormSRGB: {1, 1, 4},
	FormatR8G8B8X8UnormSRGB: {1, 1, 4},
	FormatD24UnormS8Uint:    {1, 1, 4},
	FormatD32Float:          {1, 1, 4},
	FormatBC1RGBAUnorm:      {4, 4, 8},
	FormatBC1RGBAUnormSRGB:  {4, 4, 8},
	FormatBC2RGBAUnorm:      {4, 4, 16},
	FormatBC2RGBAUnormSRGB:  {4, 4, 16},
	FormatBC3RGBAUnorm:      {4, 4, 16},
	FormatBC3RGBAUnormSRGB:  {4, 4, 16},
	FormatBC7RGBAUnorm:      {4, 4, 16},
	FormatBC7RGBAUnormSRGB:  {4, 4, 16},
}

// Layout returns the block geometry for the format and whether the format is
// known.
func (f Format) Layout() (BlockLayout, bool) {
	l, ok := formatLayouts[f]
	return l, ok
}

// IsBlockCompressed returns true for BC formats.
func (f Format) IsBlockCompressed() bool {
	l, ok := formatLayouts[f]
	return ok && l.BlockWidth > 1
}

// IsDepthStencil returns true for formats with a depth aspect.
func (f Format) IsDepthStencil() bool {
	return f == FormatD24UnormS8Uint || f == FormatD32Float
}
