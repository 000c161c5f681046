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

package panichook

import (
	"fmt"
	"os"
	"runtime"
	"sync"
)

// stackBufSize bounds the goroutine stack text captured for handlers.
const stackBufSize = 8192

// Handler receives panics routed through Dispatch. The value is whatever
// panic was called with; stack is the panicking goroutine's stack in
// runtime.Stack text form, captured before the handler runs.
//
// Handlers run synchronously on the panicking goroutine and must not panic
// themselves.
type Handler interface {
	HandlePanic(v any, stack []byte)
}

// Default reports panics the way the runtime reports an uncaught one: the
// value and the stack trace, written to standard error. It is the handler
// installed at process start, and the usual tail of a handler chain.
var Default Handler = &terminalReporter{}

var (
	mu      sync.Mutex
	current Handler = Default
)

// Set installs h as the process-wide panic handler and returns the handler
// it replaced. It panics when h is nil; install Default to restore terminal
// reporting.
func Set(h Handler) Handler {
	if h == nil {
		panic("panichook: Set called with nil Handler")
	}
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = h
	return prev
}

// Current returns the installed handler.
func Current() Handler {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Dispatch routes a recovered panic value to the installed handler. A nil
// value, as returned by recover when no panic is in flight, is ignored.
func Dispatch(v any) {
	if v == nil {
		return
	}
	buf := make([]byte, stackBufSize)
	n := runtime.Stack(buf, false)
	Current().HandlePanic(v, buf[:n])
}

// Recover recovers an in-flight panic and routes it through Dispatch. It
// must be deferred directly:
//
//	defer panichook.Recover()
func Recover() {
	if v := recover(); v != nil {
		Dispatch(v)
	}
}

// Guard runs fn, routing any panic it raises through Dispatch instead of
// letting it unwind past the caller.
func Guard(fn func()) {
	defer Recover()
	fn()
}

type terminalReporter struct{}

func (*terminalReporter) HandlePanic(v any, stack []byte) {
	fmt.Fprintf(os.Stderr, "panic: %v\n\n%s\n", v, stack)
}
