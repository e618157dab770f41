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

package log

import (
	"context"
	"sort"
)

// V is a map of named values that can be bound to a context for logging.
type V map[string]interface{}

// Bind returns a new context with the values in v merged with any values
// already assigned to ctx.
func (v V) Bind(ctx context.Context) context.Context {
	prev := getValues(ctx)
	merged := make(V, len(prev)+len(v))
	for n, val := range prev {
		merged[n] = val
	}
	for n, val := range v {
		merged[n] = val
	}
	return context.WithValue(ctx, valuesKey, merged)
}

func getValues(ctx context.Context) V {
	out, _ := ctx.Value(valuesKey).(V)
	return out
}

// ordered returns the values sorted by name.
func (v V) ordered() []*Value {
	if len(v) == 0 {
		return nil
	}
	names := make([]string, 0, len(v))
	for n := range v {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Value, len(names))
	for i, n := range names {
		out[i] = &Value{Name: n, Value: v[n]}
	}
	return out
}
