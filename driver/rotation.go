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

	"github.com/pkg/errors"

	"github.com/wilsonzlin/aerogpu/core/log"
	"github.com/wilsonzlin/aerogpu/protocol"
)

// RotateResourceIdentities cyclically remaps the externally visible handles
// of a fixed group of resources: resources[i] adopts the handle previously
// held by resources[i+1]. Views keep pointing at the same Resource objects
// and resolve to the new handles through their back-references, so only the
// currently bound slots need re-emitting. Every bound slot whose resolved
// handle changed is re-encoded, keeping the stream free of stale handles.
func (d *Device) RotateResourceIdentities(ctx context.Context, resources []*Resource) error {
	if len(resources) < 2 {
		return nil
	}
	for _, r := range resources {
		if r == nil || r.destroyed {
			return errors.WithStack(ErrDestroyed)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	first := resources[0].handle
	for i := 0; i < len(resources)-1; i++ {
		resources[i].handle = resources[i+1].handle
	}
	resources[len(resources)-1].handle = first
	log.D(ctx, "aerogpu: rotated %d resource identities", len(resources))

	rotated := func(r *Resource) bool {
		for _, m := range resources {
			if m == r {
				return true
			}
		}
		return false
	}

	for s := range d.stages {
		for slot, v := range d.stages[s].srvs {
			if v != nil && rotated(v.resource) {
				d.w.SetTexture(protocol.ShaderStage(s), protocol.StageExNone, uint32(slot), v.resolve())
			}
		}
	}

	om := false
	for i := uint32(0); i < d.om.colorCount; i++ {
		if v := d.om.colors[i]; v != nil && rotated(v.resource) {
			om = true
		}
	}
	if d.om.depth != nil && rotated(d.om.depth.resource) {
		om = true
	}
	if om {
		d.emitRenderTargets()
	}
	return nil
}
