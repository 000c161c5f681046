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

// Package origin resolves the dotted caller identity attached to every log
// record. The origin of a call site is its package import path with path
// separators replaced by dots and a leading host element (github.com,
// gopkg.in, and similar) removed, so "github.com/acme/fluxsim/pipeline"
// becomes "acme.fluxsim.pipeline".
package origin

import (
	stderrors "errors"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// maxFrames bounds how deep a single resolution walks.
const maxFrames = 64

var pcPool = sync.Pool{
	New: func() any {
		buf := make([]uintptr, maxFrames)
		return &buf
	},
}

// Resolve walks the current goroutine stack and returns the origin of the
// first frame that does not belong to the facade or its runtime shims,
// together with that frame. It returns an empty origin when every frame is
// internal, which happens when the facade is driven directly by the runtime.
func Resolve() (string, runtime.Frame) {
	bufPtr := pcPool.Get().(*[]uintptr)
	pcs := (*bufPtr)[:cap(*bufPtr)]

	n := runtime.Callers(0, pcs)
	if n == 0 {
		pcPool.Put(bufPtr)
		return "", runtime.Frame{}
	}

	org, frame := FromPCs(pcs[:n])
	pcPool.Put(bufPtr)
	return org, frame
}

// FromPCs resolves the origin from caller-supplied program counters, as
// returned by runtime.Callers or carried by a stack-bearing error. The same
// frame-skipping rules as Resolve apply.
func FromPCs(pcs []uintptr) (string, runtime.Frame) {
	if len(pcs) == 0 {
		return "", runtime.Frame{}
	}
	if len(pcs) > maxFrames {
		pcs = pcs[:maxFrames]
	}

	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !SkipInternalFrame(frame.Function) {
			return FromFunction(frame.Function), frame
		}
		if !more {
			return "", runtime.Frame{}
		}
	}
}

// StackPCs extracts program counters from values that carry their own stack.
// It understands the github.com/pkg/errors shape (StackTrace() StackTrace)
// and the raw form (StackTrace() []uintptr), unwrapping error chains for
// both. It returns nil when the value carries no stack.
func StackPCs(v any) []uintptr {
	type rawTracer interface {
		StackTrace() []uintptr
	}
	type pkgTracer interface {
		StackTrace() errors.StackTrace
	}

	if err, ok := v.(error); ok {
		var pt pkgTracer
		if stderrors.As(err, &pt) {
			return framePCs(pt.StackTrace())
		}
		var rt rawTracer
		if stderrors.As(err, &rt) {
			return rt.StackTrace()
		}
		return nil
	}

	switch t := v.(type) {
	case pkgTracer:
		return framePCs(t.StackTrace())
	case rawTracer:
		return t.StackTrace()
	}
	return nil
}

func framePCs(st errors.StackTrace) []uintptr {
	if len(st) == 0 {
		return nil
	}
	pcs := make([]uintptr, len(st))
	for i, f := range st {
		pcs[i] = uintptr(f)
	}
	return pcs
}

// SkipInternalFrame reports whether a stack frame belongs to the facade or
// to the runtime machinery between a caller and the facade, and therefore
// cannot be an origin.
func SkipInternalFrame(funcName string) bool {
	if funcName == "" {
		return false
	}
	if strings.HasPrefix(funcName, "runtime.") {
		return true
	}
	if strings.HasPrefix(funcName, "github.com/quillback/slogscope/") ||
		strings.HasPrefix(funcName, "github.com/quillback/slogscope.") {
		return true
	}
	// Records forwarded from the standard library log package originate at
	// whoever called log.Print, not inside log itself.
	if strings.HasPrefix(funcName, "log.") ||
		strings.HasPrefix(funcName, "log/slog.") {
		return true
	}
	return false
}

// FromFunction derives the origin from a fully qualified function name as
// found in runtime.Frame.Function.
func FromFunction(funcName string) string {
	return Dotted(packagePath(funcName))
}

// Dotted converts a package import path to origin form: path separators
// become dots and a leading element containing a dot (a host such as
// github.com) is dropped.
func Dotted(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}
	parts := strings.Split(pkgPath, "/")
	if len(parts) > 1 && strings.Contains(parts[0], ".") {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

// packagePath extracts the import path from a qualified function name. The
// package qualifier ends at the first dot after the final path separator,
// which also handles methods ("pkg.(*T).M") and generic instantiations.
func packagePath(funcName string) string {
	slash := strings.LastIndexByte(funcName, '/')
	dot := strings.IndexByte(funcName[slash+1:], '.')
	if dot < 0 {
		return funcName
	}
	return funcName[:slash+1+dot]
}
