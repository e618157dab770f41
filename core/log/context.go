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

import "context"

type handlerKeyTy string
type filterKeyTy string
type tagKeyTy string
type traceKeyTy string
type valuesKeyTy string

const (
	handlerKey handlerKeyTy = "log.handlerKey"
	filterKey  filterKeyTy  = "log.filterKey"
	tagKey     tagKeyTy     = "log.tagKey"
	traceKey   traceKeyTy   = "log.traceKey"
	valuesKey  valuesKeyTy  = "log.valuesKey"
)

// PutHandler returns a new context with the Handler assigned to w.
func PutHandler(ctx context.Context, w Handler) context.Context {
	return context.WithValue(ctx, handlerKey, w)
}

// GetHandler returns the Handler assigned to ctx.
func GetHandler(ctx context.Context) Handler {
	out, _ := ctx.Value(handlerKey).(Handler)
	return out
}

// PutFilter returns a new context with the Filter assigned to f.
func PutFilter(ctx context.Context, f Filter) context.Context {
	return context.WithValue(ctx, filterKey, f)
}

// GetFilter returns the Filter assigned to ctx.
func GetFilter(ctx context.Context) Filter {
	out, _ := ctx.Value(filterKey).(Filter)
	return out
}

// PutTag returns a new context with the tag assigned to t.
func PutTag(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// GetTag returns the tag assigned to ctx.
func GetTag(ctx context.Context) string {
	out, _ := ctx.Value(tagKey).(string)
	return out
}

// Enter returns a new context with name appended to the trace chain.
func Enter(ctx context.Context, name string) context.Context {
	prev := GetTrace(ctx)
	trace := make([]string, len(prev), len(prev)+1)
	copy(trace, prev)
	trace = append(trace, name)
	return context.WithValue(ctx, traceKey, trace)
}

// GetTrace returns the trace chain assigned to ctx.
func GetTrace(ctx context.Context) []string {
	out, _ := ctx.Value(traceKey).([]string)
	return out
}
