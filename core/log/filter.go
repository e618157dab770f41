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

// Filter is the interface implemented by types that filter messages by
// severity.
type Filter interface {
	ShowSeverity(s Severity) bool
}

// SeverityFilter implements Filter, showing all messages at or above the
// given severity.
type SeverityFilter Severity

// ShowSeverity returns true if s is at or above the filter's severity.
func (f SeverityFilter) ShowSeverity(s Severity) bool {
	return s >= Severity(f)
}

// NoLimit is a Filter that shows all messages.
const NoLimit = SeverityFilter(Verbose)
