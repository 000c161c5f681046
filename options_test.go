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
	"bytes"
	"io"
	"strings"
	"testing"
)

// applyOptions applies a series of Option functions to a new options struct
// and returns the resulting struct.
func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// TestOptionsApplication verifies that each With... Option function
// correctly modifies the internal options struct used during logger
// initialization.
func TestOptionsApplication(t *testing.T) {
	t.Run("WithLevel", func(t *testing.T) {
		testCases := []struct {
			name string
			in   Level
		}{
			{"Debug", LevelDebug},
			{"Info", LevelInfo},
			{"Warning", LevelWarning},
			{"Error", LevelError},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				opts := applyOptions(WithLevel(tc.in))
				if opts.level == nil {
					t.Fatalf("WithLevel(%v): opts.level is nil", tc.in)
				}
				if *opts.level != tc.in {
					t.Errorf("WithLevel(%v): got %v", tc.in, *opts.level)
				}
			})
		}
	})

	t.Run("WithSourceLocationEnabled", func(t *testing.T) {
		for _, enabled := range []bool{true, false} {
			opts := applyOptions(WithSourceLocationEnabled(enabled))
			if opts.addSource == nil || *opts.addSource != enabled {
				t.Errorf("WithSourceLocationEnabled(%v): got %v", enabled, opts.addSource)
			}
		}
	})

	t.Run("WithFormat", func(t *testing.T) {
		opts := applyOptions(WithFormat(FormatJSON))
		if opts.format == nil || *opts.format != FormatJSON {
			t.Errorf("WithFormat(FormatJSON): got %v", opts.format)
		}
	})

	t.Run("WithWriter", func(t *testing.T) {
		var buf bytes.Buffer
		opts := applyOptions(WithWriter(&buf))
		if opts.writer != &buf {
			t.Errorf("WithWriter: stored writer differs from input")
		}
	})

	t.Run("WithLogFile", func(t *testing.T) {
		opts := applyOptions(WithLogFile("/var/log/app.log"))
		if opts.filePath == nil || *opts.filePath != "/var/log/app.log" {
			t.Errorf("WithLogFile: got %v", opts.filePath)
		}
	})

	t.Run("WithOrigin", func(t *testing.T) {
		opts := applyOptions(WithOrigin("acme.fluxsim"))
		if opts.origin == nil || *opts.origin != "acme.fluxsim" {
			t.Errorf("WithOrigin: got %v", opts.origin)
		}
	})

	t.Run("NilOptionIgnored", func(t *testing.T) {
		opts := applyOptions(nil, WithLevel(LevelError))
		if opts.level == nil || *opts.level != LevelError {
			t.Errorf("nil option disturbed later options: %v", opts.level)
		}
	})
}

// TestNewOptionOverridesEnvironment checks the precedence order: defaults,
// then environment, then explicit options.
func TestNewOptionOverridesEnvironment(t *testing.T) {
	t.Setenv(envLogLevel, "error")

	fromEnv := New(WithWriter(io.Discard))
	if got := fromEnv.GetLevel(); got != LevelError {
		t.Fatalf("env-configured level = %v, want %v", got, LevelError)
	}

	fromOption := New(WithWriter(io.Discard), WithLevel(LevelDebug))
	if got := fromOption.GetLevel(); got != LevelDebug {
		t.Errorf("option-configured level = %v, want %v (options win over env)", got, LevelDebug)
	}
}

// TestNewFormatSelection emits one record per format and inspects the
// console bytes for the format's signature.
func TestNewFormatSelection(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(WithWriter(&buf), WithFormat(FormatText))
		logger.Info("text mode")
		if out := buf.String(); !strings.Contains(out, "msg=") {
			t.Errorf("text output missing msg= token: %q", out)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(WithWriter(&buf), WithFormat(FormatJSON))
		logger.Info("json mode")
		if out := buf.String(); !strings.HasPrefix(out, "{") || !strings.Contains(out, `"msg"`) {
			t.Errorf("JSON output not in JSON form: %q", out)
		}
	})
}

// TestNewEnvFormat drives format selection through the environment variable.
func TestNewEnvFormat(t *testing.T) {
	t.Setenv(envLogFormat, "json")

	var buf bytes.Buffer
	logger := New(WithWriter(&buf))
	logger.Info("env json")
	if out := buf.String(); !strings.HasPrefix(out, "{") {
		t.Errorf("SLOGSCOPE_LOG_FORMAT=json output not JSON: %q", out)
	}
}
