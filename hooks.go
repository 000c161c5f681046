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
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/quillback/slogscope/internal/origin"
	"github.com/quillback/slogscope/panichook"
)

// EnableWarningsLogging installs the warnings hook: while enabled, output
// printed through the standard library log package is emitted by this
// logger as WARNING records instead of reaching the previous log writer.
// The message is captured as written, so a conventional "Category: "
// prefix (for example via log.SetPrefix) is preserved, and the origin is
// the package that called log.Print.
//
// Returns ErrWarningsAlreadyEnabled when the hook is already installed.
func (l *Logger) EnableWarningsLogging() error { return l.core.warnings.enable() }

// DisableWarningsLogging removes the warnings hook and restores the log
// writer and flags that were in place when it was enabled.
//
// Returns ErrWarningsNotEnabled when the hook is not installed, and
// ErrWarningsOverridden, leaving all state unchanged, when something else
// has replaced the log writer since the hook was installed.
func (l *Logger) DisableWarningsLogging() error { return l.core.warnings.disable() }

// WarningsLoggingEnabled reports whether the warnings hook is installed.
func (l *Logger) WarningsLoggingEnabled() bool { return l.core.warnings.enabled() }

// EnableExceptionLogging installs the exception hook: panics routed
// through the panichook package are emitted by this logger as ERROR
// records of the form "TypeName: value" before the previously installed
// handler runs, so terminal panic reporting is preserved. A panic value
// carrying its own stack (github.com/pkg/errors style) keeps its raise
// site as the record origin.
//
// Returns ErrExceptionAlreadyEnabled when the hook is already installed.
func (l *Logger) EnableExceptionLogging() error { return l.core.exceptions.enable() }

// DisableExceptionLogging removes the exception hook and reinstates the
// panic handler that was installed when it was enabled.
//
// Returns ErrExceptionNotEnabled when the hook is not installed, and
// ErrExceptionOverridden, leaving all state unchanged, when something else
// has replaced the panic handler since the hook was installed.
func (l *Logger) DisableExceptionLogging() error { return l.core.exceptions.disable() }

// ExceptionLoggingEnabled reports whether the exception hook is installed.
func (l *Logger) ExceptionLoggingEnabled() bool { return l.core.exceptions.enabled() }

// EnableWarningsLogging installs the warnings hook on the default logger.
func EnableWarningsLogging() error { return Default().EnableWarningsLogging() }

// DisableWarningsLogging removes the warnings hook from the default logger.
func DisableWarningsLogging() error { return Default().DisableWarningsLogging() }

// WarningsLoggingEnabled reports whether the default logger's warnings
// hook is installed.
func WarningsLoggingEnabled() bool { return Default().WarningsLoggingEnabled() }

// EnableExceptionLogging installs the exception hook on the default logger.
func EnableExceptionLogging() error { return Default().EnableExceptionLogging() }

// DisableExceptionLogging removes the exception hook from the default
// logger.
func DisableExceptionLogging() error { return Default().DisableExceptionLogging() }

// ExceptionLoggingEnabled reports whether the default logger's exception
// hook is installed.
func ExceptionLoggingEnabled() bool { return Default().ExceptionLoggingEnabled() }

// hookPoint is one process-wide interception location a hookManager
// operates on. install puts a capture shim for c in place, returning a
// token identifying the shim and the occupant it displaced; current
// returns whatever occupies the point right now; restore reinstates a
// displaced occupant.
//
// Tokens and occupants are always pointers to concrete types, so the
// manager's identity comparisons never panic.
type hookPoint interface {
	install(c *core) (token, prev any)
	current() any
	restore(prev any)
}

// hookManager drives one hook point through its lifecycle: enable saves
// the previous occupant and installs the shim, disable verifies the shim
// is still in place and restores the saved occupant. Both are strict about
// repeated calls, and a failed tamper check changes nothing.
type hookManager struct {
	mu                sync.Mutex
	core              *core
	point             hookPoint
	errNotEnabled     *LoggingError
	errAlreadyEnabled *LoggingError
	errOverridden     *LoggingError

	installed bool
	token     any
	prev      any
}

func (m *hookManager) enable() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.installed {
		return m.errAlreadyEnabled
	}
	m.token, m.prev = m.point.install(m.core)
	m.installed = true
	return nil
}

func (m *hookManager) disable() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.installed {
		return m.errNotEnabled
	}
	if m.point.current() != m.token {
		return m.errOverridden
	}
	m.point.restore(m.prev)
	m.installed = false
	m.token, m.prev = nil, nil
	return nil
}

func (m *hookManager) enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.installed
}

// logWriterPoint binds the warnings hook to the standard library log
// package's package-level output. Install saves the current writer and
// flags, then zeroes the flags so each log call delivers the bare message
// to the shim; restore puts both back.
type logWriterPoint struct {
	savedFlags int
}

func (p *logWriterPoint) install(c *core) (token, prev any) {
	prevWriter := log.Writer()
	p.savedFlags = log.Flags()
	shim := &logCaptureWriter{core: c}
	log.SetFlags(0)
	log.SetOutput(shim)
	return shim, prevWriter
}

func (p *logWriterPoint) current() any { return log.Writer() }

func (p *logWriterPoint) restore(prev any) {
	log.SetFlags(p.savedFlags)
	if w, ok := prev.(io.Writer); ok {
		log.SetOutput(w)
	}
}

// logCaptureWriter receives the bytes of one log call per Write and emits
// them as a WARNING record. The previous writer is not teed; while the
// hook is installed the facade fully replaces terminal warning output.
type logCaptureWriter struct {
	core *core
}

func (w *logCaptureWriter) Write(p []byte) (int, error) {
	if w.core.enabled(LevelWarning) {
		msg := strings.TrimSuffix(string(p), "\n")
		org, frame := origin.Resolve()
		w.core.emit(context.Background(), LevelWarning, msg, org, frame.PC, nil)
	}
	return len(p), nil
}

// panicHandlerPoint binds the exception hook to the panichook package's
// process-wide handler.
type panicHandlerPoint struct{}

func (p *panicHandlerPoint) install(c *core) (token, prev any) {
	shim := &panicCaptureHandler{core: c}
	prevHandler := panichook.Set(shim)
	shim.next = prevHandler
	return shim, prevHandler
}

func (p *panicHandlerPoint) current() any { return panichook.Current() }

func (p *panicHandlerPoint) restore(prev any) {
	if h, ok := prev.(panichook.Handler); ok {
		panichook.Set(h)
	}
}

// panicCaptureHandler logs panics routed through panichook as ERROR
// records, then forwards to the handler it displaced so default terminal
// reporting still happens.
type panicCaptureHandler struct {
	core *core
	next panichook.Handler
}

func (h *panicCaptureHandler) HandlePanic(v any, stack []byte) {
	if h.core.enabled(LevelError) {
		org, pc := panicOrigin(v)
		h.core.emit(context.Background(), LevelError, panicMessage(v), org, pc, nil)
	}
	if h.next != nil {
		h.next.HandlePanic(v, stack)
	}
}

// panicMessage renders a recovered value as "TypeName: value", using the
// bare type name without pointer marker or package qualifier.
func panicMessage(v any) string {
	t := fmt.Sprintf("%T", v)
	t = strings.TrimPrefix(t, "*")
	if i := strings.LastIndexByte(t, '.'); i >= 0 {
		t = t[i+1:]
	}
	return t + ": " + fmt.Sprint(v)
}

// panicOrigin resolves where a panic came from: the raise site recorded in
// a stack-carrying value when there is one, otherwise the live stack below
// the recovery point.
func panicOrigin(v any) (string, uintptr) {
	if pcs := origin.StackPCs(v); len(pcs) > 0 {
		if org, frame := origin.FromPCs(pcs); org != "" {
			return org, frame.PC
		}
	}
	org, frame := origin.Resolve()
	return org, frame.PC
}
