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

package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"

	"github.com/quillback/slogscope"
)

func TestProcessOptionsDefaults(t *testing.T) {
	cfg := processOptions()

	if !cfg.panicRecovery {
		t.Error("panic recovery disabled by default")
	}
	if !cfg.attachLogger {
		t.Error("context logger disabled by default")
	}
	if !cfg.statsHandlers {
		t.Error("stats handlers disabled by default")
	}
	if cfg.logPayloads || cfg.logMetadata {
		t.Error("payload or metadata logging enabled by default")
	}
	if cfg.maxPayloadSize != 0 {
		t.Errorf("maxPayloadSize = %d, want 0", cfg.maxPayloadSize)
	}
	if !cfg.shouldLogFunc(context.Background(), "/users.UserService/GetUser") {
		t.Error("default shouldLog rejected a call")
	}
}

func TestDefaultCodeToLevel(t *testing.T) {
	testCases := []struct {
		code codes.Code
		want slogscope.Level
	}{
		{codes.OK, slogscope.LevelInfo},
		{codes.Canceled, slogscope.LevelInfo},
		{codes.InvalidArgument, slogscope.LevelWarning},
		{codes.NotFound, slogscope.LevelWarning},
		{codes.Unauthenticated, slogscope.LevelWarning},
		{codes.DeadlineExceeded, slogscope.LevelWarning},
		{codes.Unavailable, slogscope.LevelWarning},
		{codes.Internal, slogscope.LevelError},
		{codes.Unimplemented, slogscope.LevelError},
		{codes.DataLoss, slogscope.LevelError},
		{codes.Code(999), slogscope.LevelError},
	}

	for _, tc := range testCases {
		t.Run(tc.code.String(), func(t *testing.T) {
			if got := defaultCodeToLevel(tc.code); got != tc.want {
				t.Errorf("defaultCodeToLevel(%v) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestWithLevelsNilRestoresDefault(t *testing.T) {
	custom := func(codes.Code) slogscope.Level { return slogscope.LevelDebug }
	cfg := processOptions(WithLevels(custom), WithLevels(nil))

	if got := cfg.levelFunc(codes.Internal); got != slogscope.LevelError {
		t.Errorf("levelFunc(Internal) after nil reset = %v, want %v", got, slogscope.LevelError)
	}
}

func TestWithSkipMethods(t *testing.T) {
	cfg := processOptions(WithSkipMethods("grpc.health.v1.Health", "/debug."))

	testCases := []struct {
		fullMethod string
		want       bool
	}{
		{"/users.UserService/GetUser", true},
		{"/grpc.health.v1.Health/Check", false},
		{"/grpc.health.v1.Health/Watch", false},
		{"/debug.Probe/Snapshot", false},
	}

	for _, tc := range testCases {
		t.Run(tc.fullMethod, func(t *testing.T) {
			if got := cfg.shouldLogFunc(context.Background(), tc.fullMethod); got != tc.want {
				t.Errorf("shouldLog(%q) = %t, want %t", tc.fullMethod, got, tc.want)
			}
		})
	}
}

func TestWithSkipMethodsComposesWithShouldLog(t *testing.T) {
	onlyUsers := func(_ context.Context, fullMethod string) bool {
		return fullMethod == "/users.UserService/GetUser"
	}
	cfg := processOptions(WithShouldLog(onlyUsers), WithSkipMethods("UserService"))

	// The user filter accepts the call but the skip list still rejects it.
	if cfg.shouldLogFunc(context.Background(), "/users.UserService/GetUser") {
		t.Error("skip list did not compose over the user filter")
	}
	if cfg.shouldLogFunc(context.Background(), "/orders.OrderService/GetOrder") {
		t.Error("user filter did not reject a non-matching call")
	}
}

func TestWithMaxPayloadSizeClampsNegative(t *testing.T) {
	cfg := processOptions(WithMaxPayloadSize(-10))
	if cfg.maxPayloadSize != 0 {
		t.Errorf("maxPayloadSize = %d, want 0", cfg.maxPayloadSize)
	}
}
