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

package origin

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestDotted(t *testing.T) {
	tests := []struct {
		name    string
		pkgPath string
		want    string
	}{
		{"hosted path", "github.com/acme/fluxsim/pipeline", "acme.fluxsim.pipeline"},
		{"hosted two elements", "example.com/fluxsim", "fluxsim"},
		{"stdlib single", "log", "log"},
		{"stdlib nested", "net/http", "net.http"},
		{"main package", "main", "main"},
		{"no host prefix", "internal/poll", "internal.poll"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dotted(tt.pkgPath); got != tt.want {
				t.Errorf("Dotted(%q) = %q, want %q", tt.pkgPath, got, tt.want)
			}
		})
	}
}

func TestFromFunction(t *testing.T) {
	tests := []struct {
		name     string
		funcName string
		want     string
	}{
		{"plain function", "github.com/acme/app/worker.Run", "acme.app.worker"},
		{"method", "github.com/acme/app/worker.(*Pool).Run", "acme.app.worker"},
		{"closure", "github.com/acme/app.Run.func1", "acme.app"},
		{"generic", "github.com/acme/app.Map[go.shape.int]", "acme.app"},
		{"stdlib", "log.Print", "log"},
		{"main", "main.main", "main"},
		{"no qualifier", "mystery", "mystery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFunction(tt.funcName); got != tt.want {
				t.Errorf("FromFunction(%q) = %q, want %q", tt.funcName, got, tt.want)
			}
		})
	}
}

func TestSkipInternalFrame(t *testing.T) {
	tests := []struct {
		name     string
		funcName string
		want     bool
	}{
		{"runtime callers", "runtime.Callers", true},
		{"runtime panic", "runtime.gopanic", true},
		{"facade root", "github.com/quillback/slogscope.(*Logger).Info", true},
		{"facade subpackage", "github.com/quillback/slogscope/panichook.Dispatch", true},
		{"external test package", "github.com/quillback/slogscope_test.TestLogger", false},
		{"stdlib log", "log.Print", true},
		{"stdlib log method", "log.(*Logger).Output", true},
		{"stdlib slog", "log/slog.(*Logger).log", true},
		{"user code", "github.com/acme/app.Run", false},
		{"testing harness", "testing.tRunner", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkipInternalFrame(tt.funcName); got != tt.want {
				t.Errorf("SkipInternalFrame(%q) = %v, want %v", tt.funcName, got, tt.want)
			}
		})
	}
}

// Resolving from inside this package must skip every facade frame, so the
// nearest reportable frame is the test harness itself.
func TestResolveSkipsOwnFrames(t *testing.T) {
	org, frame := Resolve()
	if org != "testing" {
		t.Errorf("Resolve() origin = %q, want %q", org, "testing")
	}
	if frame.Function == "" {
		t.Error("Resolve() returned zero frame")
	}
}

func TestStackPCs(t *testing.T) {
	carried := errors.New("boom")
	if pcs := StackPCs(carried); len(pcs) == 0 {
		t.Error("StackPCs() = empty for a stack-carrying error")
	}

	wrapped := fmt.Errorf("wrap: %w", carried)
	if pcs := StackPCs(wrapped); len(pcs) == 0 {
		t.Error("StackPCs() = empty for a wrapped stack-carrying error")
	}

	if pcs := StackPCs(fmt.Errorf("plain")); pcs != nil {
		t.Errorf("StackPCs() = %v for a plain error, want nil", pcs)
	}
	if pcs := StackPCs(42); pcs != nil {
		t.Errorf("StackPCs() = %v for a non-error value, want nil", pcs)
	}
	if pcs := StackPCs(nil); pcs != nil {
		t.Errorf("StackPCs() = %v for nil, want nil", pcs)
	}
}

func TestStackPCsRawShape(t *testing.T) {
	raw := rawCarrier{pcs: []uintptr{1, 2, 3}}
	if got := len(StackPCs(raw)); got != 3 {
		t.Errorf("StackPCs() returned %d counters, want 3", got)
	}
}

type rawCarrier struct {
	pcs []uintptr
}

func (c rawCarrier) Error() string         { return "raw" }
func (c rawCarrier) StackTrace() []uintptr { return c.pcs }
