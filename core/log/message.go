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
	"bytes"
	"fmt"
	"time"
)

// Message is a structured log message.
type Message struct {
	// Text is the message text.
	Text string
	// Time is the time the message was logged.
	Time time.Time
	// Severity is the message severity.
	Severity Severity
	// Tag is the optional tag associated with the log record.
	Tag string
	// Trace is the chain of Enter scopes the message was logged in.
	Trace []string
	// Values is the ordered list of values attached to the message.
	Values []*Value
	// StopProcess indicates the process should stop after logging this
	// message.
	StopProcess bool
}

// Value is a name-value pair attached to a Message.
type Value struct {
	Name  string
	Value interface{}
}

func (v *Value) String() string {
	return fmt.Sprintf("%v: %v", v.Name, v.Value)
}

func (m *Message) String() string {
	buf := bytes.Buffer{}
	buf.WriteString(m.Time.Format("15:04:05.000"))
	buf.WriteRune(' ')
	buf.WriteString(m.Severity.Short())
	if m.Tag != "" {
		fmt.Fprintf(&buf, " [%v]", m.Tag)
	}
	for _, t := range m.Trace {
		fmt.Fprintf(&buf, " <%v>", t)
	}
	buf.WriteRune(' ')
	buf.WriteString(m.Text)
	for _, v := range m.Values {
		fmt.Fprintf(&buf, " %v", v)
	}
	return buf.String()
}
