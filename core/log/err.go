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
	stdfmt "fmt"
)

type err struct {
	msg   string
	cause error
}

func (e err) Cause() error { return e.cause }

func (e err) Unwrap() error { return e.cause }

func (e err) Error() string {
	if e.cause != nil {
		return stdfmt.Sprintf("%v: %v", e.msg, e.cause)
	}
	return e.msg
}

// Err logs and returns an error wrapping cause with the message msg.
func (l *Logger) Err(cause error, msg string) error {
	l.Logf(Error, false, "%v: %v", msg, cause)
	return err{msg: msg, cause: cause}
}

// Errf logs and returns an error wrapping cause with a printf-style message.
func (l *Logger) Errf(cause error, fmt string, args ...interface{}) error {
	return l.Err(cause, stdfmt.Sprintf(fmt, args...))
}

// Err logs and returns an error wrapping cause with the message msg.
func Err(ctx context.Context, cause error, msg string) error {
	return From(ctx).Err(cause, msg)
}

// Errf logs and returns an error wrapping cause with a printf-style message.
func Errf(ctx context.Context, cause error, fmt string, args ...interface{}) error {
	return From(ctx).Errf(cause, fmt, args...)
}
