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
	"sync/atomic"

	"github.com/wilsonzlin/aerogpu/protocol"
)

// handleCounter is shared by every device in the process so that handles
// are unique across devices on the same adapter.
var handleCounter uint32

// newHandle returns the next process-wide handle. Handle 0 means unbound
// and is never returned.
func newHandle() protocol.Handle {
	for {
		h := atomic.AddUint32(&handleCounter, 1)
		if h != 0 {
			return protocol.Handle(h)
		}
	}
}
