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

package slogscope

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// captureSink consumes records while its registration is active. Delivery
// is synchronous on the emitting goroutine; implementations latch their own
// I/O errors for reporting at teardown.
type captureSink interface {
	consume(rec Record)
}

// registration ties a sink to its filters inside a registry. Removal is by
// identity, so a stop function deregisters exactly the sink it created no
// matter how many registrations share a target.
type registration struct {
	minLevel *Level
	origin   string
	target   captureSink
}

// accepts reports whether rec passes this registration's filters.
func (reg *registration) accepts(rec Record) bool {
	if reg.minLevel != nil && rec.Level < *reg.minLevel {
		return false
	}
	if reg.origin != "" && !originMatches(reg.origin, rec.Origin) {
		return false
	}
	return true
}

// originMatches reports whether origin equals filter or descends from it.
// Matching respects dot boundaries: "acme" covers "acme.fluxsim" but not
// "acmeco".
func originMatches(filter, origin string) bool {
	if origin == filter {
		return true
	}
	return strings.HasPrefix(origin, filter+".")
}

// sinkRegistry holds the active capture registrations for one Logger.
//
// Dispatch runs under the read lock, so a record in flight reaches every
// sink registered at emission time; deregistration takes the write lock and
// therefore waits out in-flight delivery before returning.
type sinkRegistry struct {
	mu   sync.RWMutex
	regs []*registration
}

func (r *sinkRegistry) register(reg *registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = append(r.regs, reg)
}

func (r *sinkRegistry) deregister(reg *registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.regs {
		if cur == reg {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return
		}
	}
}

func (r *sinkRegistry) dispatch(rec Record) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reg := range r.regs {
		if reg.accepts(rec) {
			reg.target.consume(rec)
		}
	}
}

// active returns the number of live registrations.
func (r *sinkRegistry) active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.regs)
}

// CaptureOption adjusts what a capture sink accepts.
type CaptureOption func(*captureConfig)

type captureConfig struct {
	minLevel *Level
	origin   string
}

// FilterLevel restricts a capture sink to records at min or above. Records
// below the logger's own minimum level never reach sinks regardless.
func FilterLevel(min Level) CaptureOption {
	return func(cfg *captureConfig) {
		cfg.minLevel = &min
	}
}

// FilterOrigin restricts a capture sink to records whose origin equals
// origin or descends from it ("acme.fluxsim" covers itself and
// "acme.fluxsim.pipeline", not "acme.fluxsimulator").
func FilterOrigin(origin string) CaptureOption {
	return func(cfg *captureConfig) {
		cfg.origin = origin
	}
}

func applyCaptureOptions(opts []CaptureOption) captureConfig {
	var cfg captureConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// RecordList accumulates records captured by LogToList. It stays readable
// after the capture scope ends; no further records arrive once the scope's
// stop function has returned.
type RecordList struct {
	mu   sync.Mutex
	recs []Record
}

func (l *RecordList) consume(rec Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recs = append(l.recs, rec)
}

// Len returns the number of captured records.
func (l *RecordList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recs)
}

// Records returns a snapshot of the captured records in emission order.
func (l *RecordList) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.recs...)
}

// LogToList registers an in-memory capture sink and returns the list it
// fills together with a stop function that deregisters it. Calling stop
// more than once is harmless. Typical use:
//
//	list, stop := logger.LogToList()
//	defer stop()
func (l *Logger) LogToList(opts ...CaptureOption) (*RecordList, func()) {
	cfg := applyCaptureOptions(opts)
	list := &RecordList{}
	reg := &registration{minLevel: cfg.minLevel, origin: cfg.origin, target: list}
	l.core.sinks.register(reg)
	return list, func() { l.core.sinks.deregister(reg) }
}

// LogToFile registers a capture sink appending one line per record to the
// file at path, creating it when absent. The returned stop function
// deregisters the sink and closes the file, reporting the first write or
// close error encountered. A failed open is returned directly and registers
// nothing.
//
// Each line has the form
//
//	'<time>', '<origin>', '<LEVEL>', '<message>'
//
// with the time in RFC 3339 form.
func (l *Logger) LogToFile(path string, opts ...CaptureOption) (func() error, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	cfg := applyCaptureOptions(opts)
	fs := &fileSink{f: f}
	reg := &registration{minLevel: cfg.minLevel, origin: cfg.origin, target: fs}
	l.core.sinks.register(reg)

	stop := func() error {
		l.core.sinks.deregister(reg)
		return fs.close()
	}
	return stop, nil
}

// LogToList registers an in-memory capture sink on the default logger.
func LogToList(opts ...CaptureOption) (*RecordList, func()) {
	return Default().LogToList(opts...)
}

// LogToFile registers a file capture sink on the default logger.
func LogToFile(path string, opts ...CaptureOption) (func() error, error) {
	return Default().LogToFile(path, opts...)
}

// fileSink writes captured records to an open file, latching the first
// write error for close to report.
type fileSink struct {
	mu  sync.Mutex
	f   *os.File
	err error
}

func (s *fileSink) consume(rec Record) {
	line := formatFileLine(rec)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return
	}
	if _, err := io.WriteString(s.f, line); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *fileSink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f != nil {
		if err := s.f.Close(); err != nil && s.err == nil {
			s.err = err
		}
		s.f = nil
	}
	return s.err
}

func formatFileLine(rec Record) string {
	return fmt.Sprintf("'%s', '%s', '%s', '%s'\n",
		rec.Time.Format(time.RFC3339), rec.Origin, rec.Level, rec.Message)
}
