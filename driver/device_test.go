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

package driver_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/wilsonzlin/aerogpu/core/assert"
	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/driver"
	"github.com/wilsonzlin/aerogpu/protocol"
)

// testSubmitter records every submitted stream and hands out sequential
// fences.
type testSubmitter struct {
	streams     [][]byte
	allocations [][]driver.Allocation
	fence       uint64
}

func (s *testSubmitter) Submit(ctx context.Context, stream []byte, allocations []driver.Allocation) (uint64, error) {
	s.streams = append(s.streams, append([]byte(nil), stream...))
	s.allocations = append(s.allocations, allocations)
	s.fence++
	return s.fence, nil
}

func (s *testSubmitter) CompletedFence(ctx context.Context) (uint64, error) {
	return s.fence, nil
}

func packets(t *testing.T, stream []byte) []protocol.Packet {
	r, err := protocol.NewReader(stream)
	if err != nil {
		t.Fatalf("bad stream: %v", err)
	}
	out := []protocol.Packet{}
	for r.More() {
		p, err := r.Next()
		if err != nil {
			t.Fatalf("bad packet: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func packetsOf(t *testing.T, stream []byte, op protocol.Opcode) []protocol.Packet {
	out := []protocol.Packet{}
	for _, p := range packets(t, stream) {
		if p.Opcode == op {
			out = append(out, p)
		}
	}
	return out
}

// flushPackets flushes and returns the raw submitted stream.
func flushPackets(ctx context.Context, t *testing.T, d *driver.Device, sub *testSubmitter) []byte {
	if err := d.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(sub.streams) == 0 {
		t.Fatal("flush submitted nothing")
	}
	return sub.streams[len(sub.streams)-1]
}

func newRenderTarget(ctx context.Context, t *testing.T, d *driver.Device) (*driver.Resource, *driver.RenderTargetView) {
	res, err := d.CreateTexture2D(ctx, driver.Texture2DDesc{
		UsageFlags: protocol.UsageTexture | protocol.UsageRenderTarget,
		Format:     protocol.FormatB8G8R8A8Unorm,
		Width:      64, Height: 64,
		MipLevels: 1, ArrayLayers: 1,
	})
	if err != nil {
		t.Fatalf("CreateTexture2D: %v", err)
	}
	rtv, err := d.CreateRenderTargetView(ctx, res, 0, 0)
	if err != nil {
		t.Fatalf("CreateRenderTargetView: %v", err)
	}
	return res, rtv
}

func newSRV(ctx context.Context, t *testing.T, d *driver.Device, res *driver.Resource) *driver.ShaderResourceView {
	srv, err := d.CreateShaderResourceView(ctx, res, driver.ShaderResourceViewDesc{})
	if err != nil {
		t.Fatalf("CreateShaderResourceView: %v", err)
	}
	return srv
}

// renderTargetsPayload decodes a SET_RENDER_TARGETS payload.
func renderTargetsPayload(p protocol.Packet) (count uint32, depth protocol.Handle, colors [protocol.MaxRenderTargets]protocol.Handle) {
	r := p.Reader()
	count = r.Uint32()
	depth = protocol.Handle(r.Uint32())
	for i := range colors {
		colors[i] = protocol.Handle(r.Uint32())
	}
	return count, depth, colors
}

func TestRenderTargetCountClamped(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	views := make([]*driver.RenderTargetView, 10)
	want := make([]protocol.Handle, 10)
	for i := range views {
		res, rtv := newRenderTarget(ctx, t, d)
		views[i] = rtv
		want[i] = res.Handle()
	}
	d.SetRenderTargets(ctx, views, nil)

	rts := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetRenderTargets)
	assert.For(ctx, "packets").ThatInteger(len(rts)).Equals(1)
	count, depth, colors := renderTargetsPayload(rts[0])
	assert.For(ctx, "count").That(count).Equals(uint32(8))
	assert.For(ctx, "depth").That(depth).Equals(protocol.HandleNone)
	for i := 0; i < 8; i++ {
		assert.For(ctx, "slot %d", i).That(colors[i]).Equals(want[i])
	}
}

func TestNullRenderTargetGapPreserved(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	resA, rtvA := newRenderTarget(ctx, t, d)
	resB, rtvB := newRenderTarget(ctx, t, d)
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtvA, nil, rtvB}, nil)

	rts := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetRenderTargets)
	assert.For(ctx, "packets").ThatInteger(len(rts)).Equals(1)
	count, _, colors := renderTargetsPayload(rts[0])
	assert.For(ctx, "count").That(count).Equals(uint32(3))
	assert.For(ctx, "slot 0").That(colors[0]).Equals(resA.Handle())
	assert.For(ctx, "slot 1").That(colors[1]).Equals(protocol.HandleNone)
	assert.For(ctx, "slot 2").That(colors[2]).Equals(resB.Handle())
	for i := 3; i < protocol.MaxRenderTargets; i++ {
		assert.For(ctx, "slot %d", i).That(colors[i]).Equals(protocol.HandleNone)
	}
}

func TestSRVUnboundBeforeRenderTargetBind(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	res, rtv := newRenderTarget(ctx, t, d)
	srv := newSRV(ctx, t, d, res)
	if err := d.SetShaderResources(ctx, protocol.StagePixel, 0, []*driver.ShaderResourceView{srv}); err != nil {
		t.Fatal(err)
	}
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtv}, nil)

	ps := packets(t, flushPackets(ctx, t, d, sub))
	// Expect: SET_TEXTURE(pixel, 0, res), then SET_TEXTURE(pixel, 0, 0)
	// strictly before the SET_RENDER_TARGETS binding res.
	nullUnbind, rtBind := -1, -1
	for i, p := range ps {
		switch p.Opcode {
		case protocol.OpSetTexture:
			r := p.Reader()
			stage, slot, tex := r.Uint32(), r.Uint32(), r.Uint32()
			if stage == uint32(protocol.StagePixel) && slot == 0 && tex == 0 {
				nullUnbind = i
			}
		case protocol.OpSetRenderTargets:
			count, _, colors := renderTargetsPayload(p)
			if count == 1 && colors[0] == res.Handle() {
				rtBind = i
			}
		}
	}
	assert.For(ctx, "null srv unbind emitted").ThatInteger(nullUnbind).IsAtLeast(0)
	assert.For(ctx, "render target bind emitted").ThatInteger(rtBind).IsAtLeast(0)
	assert.For(ctx, "unbind precedes target bind").That(nullUnbind < rtBind).Equals(true)
}

func TestSRVBindClearsAllAliasedOutputSlots(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	res, rtv0 := newRenderTarget(ctx, t, d)
	rtv1, err := d.CreateRenderTargetView(ctx, res, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtv0, rtv1}, nil)

	srv := newSRV(ctx, t, d, res)
	if err := d.SetShaderResources(ctx, protocol.StageVertex, 3, []*driver.ShaderResourceView{srv}); err != nil {
		t.Fatal(err)
	}

	rts := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetRenderTargets)
	assert.For(ctx, "packets").ThatInteger(len(rts)).Equals(2)
	count, _, colors := renderTargetsPayload(rts[1])
	assert.For(ctx, "count unchanged").That(count).Equals(uint32(2))
	assert.For(ctx, "slot 0 cleared").That(colors[0]).Equals(protocol.HandleNone)
	assert.For(ctx, "slot 1 cleared").That(colors[1]).Equals(protocol.HandleNone)
}

func TestUnbindingSRVSkipsAliasChecks(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	res, rtv := newRenderTarget(ctx, t, d)
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtv}, nil)
	if err := d.SetShaderResources(ctx, protocol.StagePixel, 0, []*driver.ShaderResourceView{nil}); err != nil {
		t.Fatal(err)
	}

	rts := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetRenderTargets)
	assert.For(ctx, "packets").ThatInteger(len(rts)).Equals(1)
	count, _, colors := renderTargetsPayload(rts[0])
	assert.For(ctx, "count").That(count).Equals(uint32(1))
	assert.For(ctx, "still bound").That(colors[0]).Equals(res.Handle())
}

// setTexturePayload decodes a SET_TEXTURE payload.
func setTexturePayload(p protocol.Packet) (stage, slot uint32, tex protocol.Handle) {
	r := p.Reader()
	stage, slot = r.Uint32(), r.Uint32()
	tex = protocol.Handle(r.Uint32())
	return stage, slot, tex
}

func TestTransientClearSuppressesAliasedSRV(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	res, rtv := newRenderTarget(ctx, t, d)
	srv := newSRV(ctx, t, d, res)
	if err := d.SetShaderResources(ctx, protocol.StagePixel, 0, []*driver.ShaderResourceView{srv}); err != nil {
		t.Fatal(err)
	}
	d.ClearRenderTargetView(ctx, rtv, [4]float32{1, 0, 0, 1})

	ps := packets(t, flushPackets(ctx, t, d, sub))
	// The transient bind of res must be bracketed by a null SET_TEXTURE
	// and a re-emit of the cached binding.
	srvBind, srvNull, rtBind, clear, rtRestore, srvReemit := -1, -1, -1, -1, -1, -1
	for i, p := range ps {
		switch p.Opcode {
		case protocol.OpSetTexture:
			stage, slot, tex := setTexturePayload(p)
			if stage != uint32(protocol.StagePixel) || slot != 0 {
				continue
			}
			switch {
			case tex == protocol.HandleNone && srvNull < 0:
				srvNull = i
			case tex == res.Handle() && srvBind < 0:
				srvBind = i
			case tex == res.Handle():
				srvReemit = i
			}
		case protocol.OpSetRenderTargets:
			count, _, colors := renderTargetsPayload(p)
			if count == 1 && colors[0] == res.Handle() {
				rtBind = i
			} else if count == 0 {
				rtRestore = i
			}
		case protocol.OpClear:
			clear = i
		}
	}
	assert.For(ctx, "initial srv bind").ThatInteger(srvBind).IsAtLeast(0)
	assert.For(ctx, "null srv emitted").ThatInteger(srvNull).IsAtLeast(0)
	assert.For(ctx, "transient target bind").ThatInteger(rtBind).IsAtLeast(0)
	assert.For(ctx, "clear emitted").ThatInteger(clear).IsAtLeast(0)
	assert.For(ctx, "restore emitted").ThatInteger(rtRestore).IsAtLeast(0)
	assert.For(ctx, "srv re-emitted").ThatInteger(srvReemit).IsAtLeast(0)
	assert.For(ctx, "null precedes transient bind").That(srvNull < rtBind).Equals(true)
	assert.For(ctx, "transient bind precedes clear").That(rtBind < clear).Equals(true)
	assert.For(ctx, "clear precedes restore").That(clear < rtRestore).Equals(true)
	assert.For(ctx, "restore precedes re-emit").That(rtRestore < srvReemit).Equals(true)
}

func TestTransientDepthClearSuppressesAliasedSRV(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	res, err := d.CreateTexture2D(ctx, driver.Texture2DDesc{
		UsageFlags: protocol.UsageTexture | protocol.UsageDepthStencil,
		Format:     protocol.FormatD32Float,
		Width:      64, Height: 64,
		MipLevels: 1, ArrayLayers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	dsv, err := d.CreateDepthStencilView(ctx, res, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	srv := newSRV(ctx, t, d, res)
	if err := d.SetShaderResources(ctx, protocol.StagePixel, 1, []*driver.ShaderResourceView{srv}); err != nil {
		t.Fatal(err)
	}
	d.ClearDepthStencilView(ctx, dsv, protocol.ClearDepth, 1, 0)

	ps := packets(t, flushPackets(ctx, t, d, sub))
	srvNull, depthBind, srvReemit := -1, -1, -1
	for i, p := range ps {
		switch p.Opcode {
		case protocol.OpSetTexture:
			stage, slot, tex := setTexturePayload(p)
			if stage != uint32(protocol.StagePixel) || slot != 1 {
				continue
			}
			if tex == protocol.HandleNone {
				srvNull = i
			} else if tex == res.Handle() && srvNull >= 0 {
				srvReemit = i
			}
		case protocol.OpSetRenderTargets:
			_, depth, _ := renderTargetsPayload(p)
			if depth == res.Handle() {
				depthBind = i
			}
		}
	}
	assert.For(ctx, "null srv emitted").ThatInteger(srvNull).IsAtLeast(0)
	assert.For(ctx, "transient depth bind").ThatInteger(depthBind).IsAtLeast(0)
	assert.For(ctx, "srv re-emitted").ThatInteger(srvReemit).IsAtLeast(0)
	assert.For(ctx, "null precedes depth bind").That(srvNull < depthBind).Equals(true)
	assert.For(ctx, "re-emit follows depth bind").That(depthBind < srvReemit).Equals(true)
}

func TestIdentityRotation(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	resA, rtvA := newRenderTarget(ctx, t, d)
	resB, _ := newRenderTarget(ctx, t, d)
	resC, _ := newRenderTarget(ctx, t, d)
	handleA, handleB, handleC := resA.Handle(), resB.Handle(), resC.Handle()

	srvA := newSRV(ctx, t, d, resA)
	if err := d.SetShaderResources(ctx, protocol.StagePixel, 2, []*driver.ShaderResourceView{srvA}); err != nil {
		t.Fatal(err)
	}
	// Binding A as a render target unbinds the aliasing SRV slot, so the
	// rotation below re-emits through the render target binding only.
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtvA}, nil)

	if err := d.RotateResourceIdentities(ctx, []*driver.Resource{resA, resB, resC}); err != nil {
		t.Fatal(err)
	}
	assert.For(ctx, "A adopts B's handle").That(resA.Handle()).Equals(handleB)
	assert.For(ctx, "B adopts C's handle").That(resB.Handle()).Equals(handleC)
	assert.For(ctx, "C adopts A's handle").That(resC.Handle()).Equals(handleA)
	assert.For(ctx, "view resolves through resource").That(srvA.Resource().Handle()).Equals(handleB)

	rts := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetRenderTargets)
	// First bind with A's old handle, then the rotation re-emit with B's.
	assert.For(ctx, "packets").ThatInteger(len(rts)).Equals(2)
	_, _, before := renderTargetsPayload(rts[0])
	_, _, after := renderTargetsPayload(rts[1])
	assert.For(ctx, "pre-rotation").That(before[0]).Equals(handleA)
	assert.For(ctx, "post-rotation").That(after[0]).Equals(handleB)
}

func TestRotationReemitsBoundSRVSlots(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	resA, err := d.CreateTexture2D(ctx, driver.Texture2DDesc{
		UsageFlags: protocol.UsageTexture,
		Format:     protocol.FormatB8G8R8A8Unorm,
		Width:      16, Height: 16, MipLevels: 1, ArrayLayers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	resB, err := d.CreateTexture2D(ctx, driver.Texture2DDesc{
		UsageFlags: protocol.UsageTexture,
		Format:     protocol.FormatB8G8R8A8Unorm,
		Width:      16, Height: 16, MipLevels: 1, ArrayLayers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	handleB := resB.Handle()

	srv := newSRV(ctx, t, d, resA)
	if err := d.SetShaderResources(ctx, protocol.StagePixel, 0, []*driver.ShaderResourceView{srv}); err != nil {
		t.Fatal(err)
	}
	if err := d.RotateResourceIdentities(ctx, []*driver.Resource{resA, resB}); err != nil {
		t.Fatal(err)
	}

	texs := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetTexture)
	assert.For(ctx, "packets").ThatInteger(len(texs)).Equals(2)
	r := texs[1].Reader()
	stage, slot, tex := r.Uint32(), r.Uint32(), r.Uint32()
	assert.For(ctx, "stage").That(stage).Equals(uint32(protocol.StagePixel))
	assert.For(ctx, "slot").That(slot).Equals(uint32(0))
	assert.For(ctx, "re-resolved handle").That(protocol.Handle(tex)).Equals(handleB)
}

func TestSetRenderTargetsIdempotent(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	_, rtv := newRenderTarget(ctx, t, d)
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtv}, nil)
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtv}, nil)

	rts := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetRenderTargets)
	assert.For(ctx, "packets").ThatInteger(len(rts)).Equals(2)
	assert.For(ctx, "identical payloads").That(bytes.Equal(rts[0].Payload, rts[1].Payload)).Equals(true)
}

func TestTopologyDedupe(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	d.SetPrimitiveTopology(ctx, protocol.TopologyTriangleList) // initial state
	d.SetPrimitiveTopology(ctx, protocol.TopologyLineList)
	d.SetPrimitiveTopology(ctx, protocol.TopologyLineList)
	d.Draw(ctx, 3, 1, 0, 0)

	tops := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetPrimitiveTopology)
	assert.For(ctx, "packets").ThatInteger(len(tops)).Equals(1)
	assert.For(ctx, "topology").That(tops[0].Reader().Uint32()).Equals(uint32(protocol.TopologyLineList))
}

func TestViewportPolicy(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	vp := driver.Viewport{Width: 640, Height: 480, MaxDepth: 1}
	err := d.SetViewports(ctx, []driver.Viewport{vp, vp, {}})
	assert.For(ctx, "uniform extras tolerated").ThatError(err).Succeeded()

	err = d.SetViewports(ctx, []driver.Viewport{vp, {Width: 320, Height: 240, MaxDepth: 1}})
	assert.For(ctx, "non-uniform flagged").ThatError(err).HasCause(driver.ErrNotSupported)

	err = d.SetViewports(ctx, nil)
	assert.For(ctx, "zero count disables").ThatError(err).Succeeded()

	vps := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetViewport)
	assert.For(ctx, "all applied").ThatInteger(len(vps)).Equals(3)
	r := vps[1].Reader()
	r.Float32()
	r.Float32()
	assert.For(ctx, "first entry applied").That(r.Float32()).Equals(float32(640))
	r = vps[2].Reader()
	r.Float32()
	r.Float32()
	assert.For(ctx, "disabled width").That(r.Float32()).Equals(float32(0))
}

func TestScissorPolicy(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	rc := driver.Rect{Left: 10, Top: 20, Right: 110, Bottom: 220}
	err := d.SetScissorRects(ctx, []driver.Rect{rc, {Left: 5, Top: 5, Right: 5, Bottom: 5}})
	assert.For(ctx, "degenerate extras tolerated").ThatError(err).Succeeded()
	err = d.SetScissorRects(ctx, []driver.Rect{rc, {Left: 0, Top: 0, Right: 50, Bottom: 50}})
	assert.For(ctx, "non-uniform flagged").ThatError(err).HasCause(driver.ErrNotSupported)

	scs := packetsOf(t, flushPackets(ctx, t, d, sub), protocol.OpSetScissor)
	assert.For(ctx, "all applied").ThatInteger(len(scs)).Equals(2)
	r := scs[0].Reader()
	assert.For(ctx, "x").That(r.Int32()).Equals(int32(10))
	assert.For(ctx, "y").That(r.Int32()).Equals(int32(20))
	assert.For(ctx, "width").That(r.Int32()).Equals(int32(100))
	assert.For(ctx, "height").That(r.Int32()).Equals(int32(200))
}

func TestFlushSkipsEmptyStream(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	assert.For(ctx, "flush").ThatError(d.Flush(ctx)).Succeeded()
	assert.For(ctx, "no submission").ThatInteger(len(sub.streams)).Equals(0)
}

func TestFenceStamping(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	src, err := d.CreateBuffer(ctx, driver.BufferDesc{UsageFlags: protocol.UsageVertexBuffer, SizeBytes: 256})
	if err != nil {
		t.Fatal(err)
	}
	dst, err := d.CreateBuffer(ctx, driver.BufferDesc{UsageFlags: protocol.UsageVertexBuffer, SizeBytes: 256})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.CopyBuffer(ctx, dst, src, 0, 0, 256, protocol.CopyFlagWritebackDst); err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	assert.For(ctx, "fence").That(d.LastFence()).Equals(uint64(1))
	assert.For(ctx, "dst stamped").That(dst.LastWriteFence()).Equals(uint64(1))
	assert.For(ctx, "src untouched").That(src.LastWriteFence()).Equals(uint64(0))

	fence, err := d.CompletedFence(ctx)
	assert.For(ctx, "completed").ThatError(err).Succeeded()
	assert.For(ctx, "completed fence").That(fence).Equals(uint64(1))
}

func TestAllocationTable(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	if _, err := d.CreateBuffer(ctx, driver.BufferDesc{
		UsageFlags: protocol.UsageVertexBuffer, SizeBytes: 512, BackingAllocID: 7,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateBuffer(ctx, driver.BufferDesc{
		UsageFlags: protocol.UsageIndexBuffer, SizeBytes: 128, BackingAllocID: 7,
	}); err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	assert.For(ctx, "one submission").ThatInteger(len(sub.allocations)).Equals(1)
	assert.For(ctx, "dedupe").ThatInteger(len(sub.allocations[0])).Equals(1)
	assert.For(ctx, "id").That(sub.allocations[0][0].ID).Equals(uint32(7))
}

func TestDestroyResourceClearsBindings(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	buf, err := d.CreateBuffer(ctx, driver.BufferDesc{UsageFlags: protocol.UsageVertexBuffer, SizeBytes: 64})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetVertexBuffers(ctx, 0, []driver.VertexBufferSlot{{Buffer: buf, StrideBytes: 16}}); err != nil {
		t.Fatal(err)
	}
	handle := buf.Handle()
	if err := d.DestroyResource(ctx, buf); err != nil {
		t.Fatal(err)
	}
	assert.For(ctx, "handle invalidated").That(buf.Handle()).Equals(protocol.HandleNone)
	assert.For(ctx, "double destroy").ThatError(d.DestroyResource(ctx, buf)).HasCause(driver.ErrDestroyed)

	stream := flushPackets(ctx, t, d, sub)
	vbs := packetsOf(t, stream, protocol.OpSetVertexBuffers)
	assert.For(ctx, "bind and unbind").ThatInteger(len(vbs)).Equals(2)
	r := vbs[1].Reader()
	r.Uint32() // start slot
	r.Uint32() // count
	assert.For(ctx, "unbound").That(r.Uint32()).Equals(uint32(0))

	dels := packetsOf(t, stream, protocol.OpDestroyResource)
	assert.For(ctx, "destroy emitted").ThatInteger(len(dels)).Equals(1)
	assert.For(ctx, "destroy handle").That(protocol.Handle(dels[0].Reader().Uint32())).Equals(handle)
}

func TestPresentSubmits(t *testing.T) {
	ctx := log.Testing(t)
	sub := &testSubmitter{}
	d := driver.NewDevice(ctx, sub)

	_, rtv := newRenderTarget(ctx, t, d)
	d.SetRenderTargets(ctx, []*driver.RenderTargetView{rtv}, nil)
	if err := d.Present(ctx, 0, protocol.PresentFlagVSync); err != nil {
		t.Fatal(err)
	}

	assert.For(ctx, "submitted").ThatInteger(len(sub.streams)).Equals(1)
	ps := packetsOf(t, sub.streams[0], protocol.OpPresent)
	assert.For(ctx, "present last").ThatInteger(len(ps)).Equals(1)
	all := packets(t, sub.streams[0])
	assert.For(ctx, "present is final packet").That(all[len(all)-1].Opcode).Equals(protocol.OpPresent)
}
