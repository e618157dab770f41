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

// Package driver tracks resource bindings for a D3D10/11 style pipeline and
// encodes every effective state change into a command stream for
// submission.
package driver

import (
	"context"
	"sync"

	"github.com/wilsonzlin/aerogpu/core/fault"
	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/protocol"
)

// Pipeline slot counts.
const (
	MaxConstantBufferSlots = 14
	MaxShaderResourceSlots = 128
	MaxSamplerSlots        = 16
	MaxVertexBufferSlots   = 16
	MaxUAVSlots            = 8
)

const (
	// ErrInvalidArgs indicates a caller contract violation. The operation
	// does not change cached state or the command stream.
	ErrInvalidArgs = fault.Const("Invalid arguments")
	// ErrNotSupported indicates a configuration the device cannot express,
	// such as non-uniform multiple viewports. The first entry is still
	// applied.
	ErrNotSupported = fault.Const("Not supported")
	// ErrDestroyed indicates use of a destroyed resource or view.
	ErrDestroyed = fault.Const("Resource already destroyed")
)

// Allocation is one entry of a submission's allocation table, referencing
// an externally managed memory allocation used by the submitted stream.
type Allocation struct {
	ID        uint32
	SizeBytes uint64
}

// Submitter consumes finalized command streams. Implementations transmit
// the stream to the backend and return a monotonically increasing fence.
type Submitter interface {
	Submit(ctx context.Context, stream []byte, allocations []Allocation) (fence uint64, err error)
	CompletedFence(ctx context.Context) (uint64, error)
}

// stageCount covers the vertex, pixel, compute and geometry stages, indexed
// by protocol.ShaderStage.
const stageCount = 4

type stageBindings struct {
	srvs      [MaxShaderResourceSlots]*ShaderResourceView
	constants [MaxConstantBufferSlots]*Resource
	samplers  [MaxSamplerSlots]*Sampler
}

type outputMerger struct {
	colors     [protocol.MaxRenderTargets]*RenderTargetView
	colorCount uint32
	depth      *DepthStencilView
}

type vertexBinding struct {
	buffer      *Resource
	strideBytes uint32
	offsetBytes uint32
}

type uavBinding struct {
	buffer       *Resource
	offsetBytes  uint32
	sizeBytes    uint32
	initialCount uint32
}

// Viewport is the single active viewport.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Rect is a scissor rectangle.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// degenerate reports whether the rectangle has non-positive area.
func (r Rect) degenerate() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// degenerate reports whether the viewport has non-positive area.
func (v Viewport) degenerate() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Device is the binding tracker. It holds everything currently bound to the
// pipeline and drives the command stream encoder. All mutation happens
// under a single per-device lock.
type Device struct {
	mu  sync.Mutex
	w   *protocol.Writer
	sub Submitter

	stages [stageCount]stageBindings
	om     outputMerger

	vertexBuffers [MaxVertexBufferSlots]vertexBinding
	indexBuffer   *Resource
	indexFormat   protocol.IndexFormat
	indexOffset   uint32

	computeUAVs [MaxUAVSlots]uavBinding

	vs, ps, gs, cs *Shader
	inputLayout    *InputLayout
	topology       protocol.PrimitiveTopology

	viewport Viewport
	scissor  Rect

	rasterizer   *RasterizerState
	blend        *BlendState
	depthStencil *DepthStencilState

	lastFence     uint64
	pendingWrites []*Resource
	allocations   []Allocation
	allocSeen     map[uint32]bool
}

// NewDevice returns a Device that submits finished streams through sub.
func NewDevice(ctx context.Context, sub Submitter) *Device {
	d := &Device{
		w:         protocol.NewWriter(),
		sub:       sub,
		topology:  protocol.TopologyTriangleList,
		allocSeen: map[uint32]bool{},
	}
	d.rasterizer = DefaultRasterizerState()
	d.blend = DefaultBlendState()
	d.depthStencil = DefaultDepthStencilState()
	log.D(ctx, "aerogpu: device created")
	return d
}

func stageIndex(stage protocol.ShaderStage) (int, bool) {
	i := int(stage)
	return i, i >= 0 && i < stageCount
}

// noteAllocation records an external allocation for the current batch's
// allocation table.
func (d *Device) noteAllocation(id uint32, size uint64) {
	if id == 0 || d.allocSeen[id] {
		return
	}
	d.allocSeen[id] = true
	d.allocations = append(d.allocations, Allocation{ID: id, SizeBytes: size})
}

// noteWrite marks r as written by the current batch so it gets stamped with
// the submission fence.
func (d *Device) noteWrite(r *Resource) {
	if r == nil || r.destroyed {
		return
	}
	for _, p := range d.pendingWrites {
		if p == r {
			return
		}
	}
	d.pendingWrites = append(d.pendingWrites, r)
}

// emitRenderTargets re-encodes the cached output-merger state. Handles are
// resolved at emit time so rotated identities are always current.
func (d *Device) emitRenderTargets() {
	colors := make([]protocol.Handle, d.om.colorCount)
	for i := range colors {
		colors[i] = d.om.colors[i].resolve()
	}
	d.w.SetRenderTargets(colors, d.om.depth.resolve())
}

// unbindAliasedSRVs clears every shader-resource slot on every stage that
// references res, emitting a null SET_TEXTURE for each. Returns the number
// of slots cleared.
func (d *Device) unbindAliasedSRVs(ctx context.Context, res *Resource) int {
	cleared := 0
	for s := range d.stages {
		for slot, v := range d.stages[s].srvs {
			if v == nil || v.resource != res {
				continue
			}
			d.stages[s].srvs[slot] = nil
			d.w.SetTexture(protocol.ShaderStage(s), protocol.StageExNone, uint32(slot), protocol.HandleNone)
			cleared++
		}
	}
	if cleared > 0 {
		log.D(ctx, "aerogpu: unbound %d srv slot(s) aliasing %v", cleared, res.Handle())
	}
	return cleared
}

// boundSlot names one (stage, slot) shader resource binding.
type boundSlot struct {
	stage int
	slot  int
}

// suppressAliasedSRVs emits a null texture bind for every shader resource
// slot on every stage referencing res, leaving the cached bindings in
// place. The returned slots must be re-emitted with reemitSRVs once the
// transient output bind is undone, so the cached state and the stream agree
// again.
func (d *Device) suppressAliasedSRVs(res *Resource) []boundSlot {
	var suppressed []boundSlot
	for s := range d.stages {
		for slot, v := range d.stages[s].srvs {
			if v == nil || v.resource != res {
				continue
			}
			d.w.SetTexture(protocol.ShaderStage(s), protocol.StageExNone, uint32(slot), protocol.HandleNone)
			suppressed = append(suppressed, boundSlot{stage: s, slot: slot})
		}
	}
	return suppressed
}

// reemitSRVs re-encodes the cached binding of each slot.
func (d *Device) reemitSRVs(slots []boundSlot) {
	for _, b := range slots {
		d.w.SetTexture(protocol.ShaderStage(b.stage), protocol.StageExNone, uint32(b.slot),
			d.stages[b.stage].srvs[b.slot].resolve())
	}
}

// clearOMSlotsFor nulls every output-merger slot bound to res, keeping the
// color count unchanged. Returns true if any slot changed.
func (d *Device) clearOMSlotsFor(res *Resource) bool {
	changed := false
	for i := range d.om.colors {
		if d.om.colors[i] != nil && d.om.colors[i].resource == res {
			d.om.colors[i] = nil
			changed = true
		}
	}
	if d.om.depth != nil && d.om.depth.resource == res {
		d.om.depth = nil
		changed = true
	}
	return changed
}

// Error returns the encoder's latched error, if any. A device with a
// latched encoder error must be flushed (which reports and clears it)
// before further use.
func (d *Device) Error() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w.Error()
}

// LastFence returns the fence of the most recent submission.
func (d *Device) LastFence() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastFence
}

// CompletedFence queries the submitter for the last completed fence.
func (d *Device) CompletedFence(ctx context.Context) (uint64, error) {
	return d.sub.CompletedFence(ctx)
}

// Flush finalizes and submits the current stream. Empty streams are
// skipped. On success the encoder is reset for the next batch and every
// resource written by the batch is stamped with the submission fence.
func (d *Device) Flush(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushLocked(ctx)
}

func (d *Device) flushLocked(ctx context.Context) error {
	if err := d.w.Error(); err != nil {
		d.resetBatchLocked()
		return err
	}
	if d.w.IsEmpty() {
		return nil
	}
	stream, err := d.w.Finish()
	if err != nil {
		d.resetBatchLocked()
		return err
	}
	fence, err := d.sub.Submit(ctx, stream, d.allocations)
	if err != nil {
		d.resetBatchLocked()
		return err
	}
	if fence > d.lastFence {
		d.lastFence = fence
	}
	for _, r := range d.pendingWrites {
		if !r.destroyed {
			r.lastWriteFence = d.lastFence
		}
	}
	log.D(ctx, "aerogpu: submitted %d bytes, fence %d", len(stream), d.lastFence)
	d.resetBatchLocked()
	return nil
}

func (d *Device) resetBatchLocked() {
	d.w.Reset()
	d.pendingWrites = d.pendingWrites[:0]
	d.allocations = d.allocations[:0]
	for id := range d.allocSeen {
		delete(d.allocSeen, id)
	}
}
