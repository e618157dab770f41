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
	"testing"

	"github.com/wilsonzlin/aerogpu/core/assert"
	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/protocol"
)

func TestFormatLayouts(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		format protocol.Format
		layout protocol.BlockLayout
	}{
		{protocol.FormatB8G8R8A8Unorm, protocol.BlockLayout{BlockWidth: 1, BlockHeight: 1, BytesPerBlock: 4}},
		{protocol.FormatB5G6R5Unorm, protocol.BlockLayout{BlockWidth: 1, BlockHeight: 1, BytesPerBlock: 2}},
		{protocol.FormatD24UnormS8Uint, protocol.BlockLayout{BlockWidth: 1, BlockHeight: 1, BytesPerBlock: 4}},
		{protocol.FormatBC1RGBAUnorm, protocol.BlockLayout{BlockWidth: 4, BlockHeight: 4, BytesPerBlock: 8}},
		{protocol.FormatBC3RGBAUnorm, protocol.BlockLayout{BlockWidth: 4, BlockHeight: 4, BytesPerBlock: 16}},
		{protocol.FormatBC7RGBAUnorm, protocol.BlockLayout{BlockWidth: 4, BlockHeight: 4, BytesPerBlock: 16}},
	} {
		layout, ok := test.format.Layout()
		assert.For(ctx, "%v known", test.format).That(ok).Equals(true)
		assert.For(ctx, "%v layout", test.format).That(layout).Equals(test.layout)
	}

	_, ok := protocol.FormatInvalid.Layout()
	assert.For(ctx, "invalid").That(ok).Equals(false)
}

func TestFormatClasses(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "BC1").That(protocol.FormatBC1RGBAUnorm.IsBlockCompressed()).Equals(true)
	assert.For(ctx, "BGRA8").That(protocol.FormatB8G8R8A8Unorm.IsBlockCompressed()).Equals(false)
	assert.For(ctx, "D24S8").That(protocol.FormatD24UnormS8Uint.IsDepthStencil()).Equals(true)
	assert.For(ctx, "D32F").That(protocol.FormatD32Float.IsDepthStencil()).Equals(true)
	assert.For(ctx, "BGRA8 depth").That(protocol.FormatB8G8R8A8Unorm.IsDepthStencil()).Equals(false)
}
