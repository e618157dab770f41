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

// Package endian provides binary.Reader and binary.Writer implementations
// over io streams with an explicit byte order.
package endian

import (
	eb "encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/wilsonzlin/aerogpu/core/data/binary"
)

// Endian is the byte ordering used by a Reader or Writer.
type Endian int

const (
	// Little is little-endian byte ordering.
	Little Endian = iota
	// Big is big-endian byte ordering.
	Big
)

func byteOrder(endian Endian) eb.ByteOrder {
	switch endian {
	case Big:
		return eb.BigEndian
	default:
		return eb.LittleEndian
	}
}

// Reader creates a binary.Reader that reads from the provided io.Reader, with
// the specified byte order.
func Reader(r io.Reader, endian Endian) binary.Reader {
	return &reader{reader: r, byteOrder: byteOrder(endian)}
}

// Writer creates a binary.Writer that writes to the supplied stream, with the
// specified byte order.
func Writer(w io.Writer, endian Endian) binary.Writer {
	return &writer{writer: w, byteOrder: byteOrder(endian)}
}

type reader struct {
	reader    io.Reader
	tmp       [8]byte
	byteOrder eb.ByteOrder
	err       error
}

type writer struct {
	writer    io.Writer
	tmp       [8]byte
	byteOrder eb.ByteOrder
	err       error
}

func (r *reader) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.reader, p)
	if err != nil {
		r.err = fmt.Errorf("%v after reading %d bytes", err, n)
	}
}

func (w *writer) Data(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.writer.Write(data)
	if err != nil {
		w.err = err
	} else if n != len(data) {
		w.err = io.ErrShortWrite
	}
}

func (r *reader) Bool() bool {
	return r.Uint8() != 0
}

func (w *writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (r *reader) Int8() int8 {
	return int8(r.Uint8())
}

func (w *writer) Int8(v int8) {
	w.Uint8(uint8(v))
}

func (r *reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	_, err := io.ReadFull(r.reader, r.tmp[:1])
	if err != nil {
		r.err = err
		return 0
	}
	return r.tmp[0]
}

func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (r *reader) Int16() int16 {
	return int16(r.Uint16())
}

func (w *writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

func (r *reader) Uint16() uint16 {
	if r.err != nil {
		return 0
	}
	_, err := io.ReadFull(r.reader, r.tmp[:2])
	if err != nil {
		r.err = err
		return 0
	}
	return r.byteOrder.Uint16(r.tmp[:])
}

func (w *writer) Uint16(v uint16) {
	if w.err != nil {
		return
	}
	w.byteOrder.PutUint16(w.tmp[:], v)
	w.Data(w.tmp[:2])
}

func (r *reader) Int32() int32 {
	return int32(r.Uint32())
}

func (w *writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

func (r *reader) Uint32() uint32 {
	if r.err != nil {
		return 0
	}
	_, err := io.ReadFull(r.reader, r.tmp[:4])
	if err != nil {
		r.err = err
		return 0
	}
	return r.byteOrder.Uint32(r.tmp[:])
}

func (w *writer) Uint32(v uint32) {
	if w.err != nil {
		return
	}
	w.byteOrder.PutUint32(w.tmp[:], v)
	w.Data(w.tmp[:4])
}

func (r *reader) Int64() int64 {
	return int64(r.Uint64())
}

func (w *writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

func (r *reader) Uint64() uint64 {
	if r.err != nil {
		return 0
	}
	_, err := io.ReadFull(r.reader, r.tmp[:8])
	if err != nil {
		r.err = err
		return 0
	}
	return r.byteOrder.Uint64(r.tmp[:])
}

func (w *writer) Uint64(v uint64) {
	if w.err != nil {
		return
	}
	w.byteOrder.PutUint64(w.tmp[:], v)
	w.Data(w.tmp[:8])
}

func (r *reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (w *writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (r *reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

func (w *writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

func (r *reader) Error() error {
	return r.err
}

func (w *writer) Error() error {
	return w.err
}

func (r *reader) SetError(err error) {
	if r.err != nil {
		return
	}
	r.err = err
}

func (w *writer) SetError(err error) {
	if w.err != nil {
		return
	}
	w.err = err
}
