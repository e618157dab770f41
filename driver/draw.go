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

package driver

import (
	"context"

	"github.com/wilsonzlin/aerogpu/protocol"
)

// noteOutputWrites stamps the current output-merger targets (and compute
// UAVs for dispatches) as written by this batch.
func (d *Device) noteOutputWrites(compute bool) {
	if compute {
		for _, b := range d.computeUAVs {
			d.noteWrite(b.buffer)
		}
		return
	}
	for _, v := range d.om.colors {
		if v != nil {
			d.noteWrite(v.resource)
		}
	}
	if d.om.depth != nil {
		d.noteWrite(d.om.depth.resource)
	}
}

// ClearRenderTargetView clears one color view. If the view is not currently
// bound it is bound transiently for the clear without disturbing the cached
// output-merger state. Shader resource slots aliasing the view's resource
// are suppressed for the duration of the transient bind so the stream never
// binds the resource as input and output at once.
func (d *Device) ClearRenderTargetView(ctx context.Context, v *RenderTargetView, rgba [4]float32) {
	if v == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	bound := false
	for i := uint32(0); i < d.om.colorCount; i++ {
		if d.om.colors[i] == v {
			bound = true
			break
		}
	}
	var suppressed []boundSlot
	if !bound {
		suppressed = d.suppressAliasedSRVs(v.resource)
		d.w.SetRenderTargets([]protocol.Handle{v.resolve()}, protocol.HandleNone)
	}
	d.w.Clear(protocol.ClearColor, rgba, 0, 0)
	if !bound {
		d.emitRenderTargets()
		d.reemitSRVs(suppressed)
	}
	d.noteWrite(v.resource)
}

// ClearDepthStencilView clears a depth view, transiently binding it if it
// is not the current depth target, under the same aliasing suppression as
// ClearRenderTargetView.
func (d *Device) ClearDepthStencilView(ctx context.Context, v *DepthStencilView, flags uint32, depth float32, stencil uint32) {
	if v == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	bound := d.om.depth == v
	var suppressed []boundSlot
	if !bound {
		suppressed = d.suppressAliasedSRVs(v.resource)
		d.w.SetRenderTargets(nil, v.resolve())
	}
	d.w.Clear(flags&(protocol.ClearDepth|protocol.ClearStencil), [4]float32{}, depth, stencil)
	if !bound {
		d.emitRenderTargets()
		d.reemitSRVs(suppressed)
	}
	d.noteWrite(v.resource)
}

// Clear clears the currently bound targets.
func (d *Device) Clear(ctx context.Context, flags uint32, rgba [4]float32, depth float32, stencil uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.Clear(flags, rgba, depth, stencil)
	d.noteOutputWrites(false)
}

// Draw encodes a non-indexed draw.
func (d *Device) Draw(ctx context.Context, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
	d.noteOutputWrites(false)
}

// DrawIndexed encodes an indexed draw.
func (d *Device) DrawIndexed(ctx context.Context, indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
	d.noteOutputWrites(false)
}

// Dispatch encodes a compute dispatch.
func (d *Device) Dispatch(ctx context.Context, groupCountX, groupCountY, groupCountZ uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.Dispatch(groupCountX, groupCountY, groupCountZ)
	d.noteOutputWrites(true)
}

// Present encodes a present of the given scanout and submits the batch.
func (d *Device) Present(ctx context.Context, scanoutID, flags uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.Present(scanoutID, flags)
	return d.flushLocked(ctx)
}

// PresentEx encodes an extended present carrying D3D9 present flags and
// submits the batch.
func (d *Device) PresentEx(ctx context.Context, scanoutID, flags, d3d9Flags uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.PresentEx(scanoutID, flags, d3d9Flags)
	return d.flushLocked(ctx)
}
