// Copyright 2026 The slogscope Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package swapio provides an io.Writer whose destination can be replaced at
// runtime.
package swapio

import (
	"io"
	"os"
	"sync"
)

// Writer directs writes to a replaceable destination. The facade's console
// handler writes through one so the output can be redirected after
// construction without rebuilding the handler chain.
//
// Writer also implements io.Closer: Close closes the destination when it is
// closable and then parks the Writer on io.Discard so later writes are
// harmless.
type Writer struct {
	mu  sync.Mutex
	dst io.Writer
}

// New returns a Writer delivering to dst. A nil dst means io.Discard.
func New(dst io.Writer) *Writer {
	if dst == nil {
		dst = io.Discard
	}
	return &Writer{dst: dst}
}

// Write delivers p to the current destination. Safe for concurrent use.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	dst := w.dst
	w.mu.Unlock()

	if dst == nil {
		return 0, os.ErrClosed
	}
	return dst.Write(p)
}

// Set replaces the destination. The previous destination is not closed;
// its lifecycle stays with whoever supplied it. A nil dst means io.Discard.
func (w *Writer) Set(dst io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dst == nil {
		dst = io.Discard
	}
	w.dst = dst
}

// Current returns the destination writes are being delivered to. Callers
// should not hold on to the result if Set may run concurrently.
func (w *Writer) Current() io.Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dst
}

// Close closes the current destination when it implements io.Closer and
// parks the Writer on io.Discard. Subsequent calls operate on io.Discard
// and report nil.
func (w *Writer) Close() error {
	w.mu.Lock()
	dst := w.dst
	w.dst = io.Discard
	w.mu.Unlock()

	if c, ok := dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ io.WriteCloser = (*Writer)(nil)
