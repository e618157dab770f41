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
	"fmt"
	"io"
	"os"
	"sync"
)

// Handler is the interface implemented by types that consume log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

type handler struct {
	handle func(*Message)
	close  func()
}

func (h handler) Handle(m *Message) { h.handle(m) }
func (h handler) Close() {
	if h.close != nil {
		h.close()
	}
}

// NewHandler returns a Handler that calls handle for each message and close
// when the handler is closed.
func NewHandler(handle func(*Message), close func()) Handler {
	return handler{handle, close}
}

// Writer returns a Handler that writes each message as a line to w.
func Writer(w io.Writer) Handler {
	mutex := sync.Mutex{}
	return NewHandler(func(m *Message) {
		mutex.Lock()
		defer mutex.Unlock()
		fmt.Fprintln(w, m.String())
	}, nil)
}

// Std returns a Handler that writes to stdout and stderr, splitting on
// message severity.
func Std() Handler {
	mutex := sync.Mutex{}
	return NewHandler(func(m *Message) {
		mutex.Lock()
		defer mutex.Unlock()
		if m.Severity >= Error {
			fmt.Fprintln(os.Stderr, m.String())
		} else {
			fmt.Fprintln(os.Stdout, m.String())
		}
	}, nil)
}

// Channel returns a Handler that passes messages to the inner Handler on a
// separate go-routine, and a done function that flushes and closes it.
func Channel(inner Handler) Handler {
	c := make(chan *Message, 64)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for m := range c {
			inner.Handle(m)
		}
	}()
	return NewHandler(func(m *Message) { c <- m }, func() {
		close(c)
		wg.Wait()
		inner.Close()
	})
}

// Testing returns a context with a TestHandler bound, for use at the top of
// tests.
func Testing(t interface {
	Log(...interface{})
	Fail()
}) context.Context {
	return PutHandler(context.Background(), TestHandler{t})
}

// TestHandler is a Handler that logs messages through a testing.T style Log
// function, failing the test on Error or Fatal messages.
type TestHandler struct {
	T interface {
		Log(...interface{})
		Fail()
	}
}

// Handle writes the message through the test logger.
func (h TestHandler) Handle(m *Message) {
	h.T.Log(m.String())
	if m.Severity >= Error {
		h.T.Fail()
	}
}

// Close conforms to Handler.
func (h TestHandler) Close() {}
