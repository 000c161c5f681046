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
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestOriginMatches pins the dot-boundary prefix rule used by FilterOrigin.
func TestOriginMatches(t *testing.T) {
	testCases := []struct {
		filter string
		origin string
		want   bool
		name   string
	}{
		{"acme", "acme", true, "Equal"},
		{"acme", "acme.fluxsim", true, "DirectChild"},
		{"acme", "acme.fluxsim.pipeline", true, "Descendant"},
		{"acme", "acmeco", false, "SiblingPrefix"},
		{"acme.fluxsim", "acme.fluxsimulator", false, "LastElementPrefix"},
		{"acme.fluxsim", "acme", false, "Ancestor"},
		{"acme", "", false, "EmptyOrigin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := originMatches(tc.filter, tc.origin); got != tc.want {
				t.Errorf("originMatches(%q, %q) = %v, want %v", tc.filter, tc.origin, got, tc.want)
			}
		})
	}
}

// TestRegistrationAccepts covers the combined level and origin gate.
func TestRegistrationAccepts(t *testing.T) {
	minWarn := LevelWarning

	testCases := []struct {
		reg  registration
		rec  Record
		want bool
		name string
	}{
		{registration{}, Record{Level: LevelDebug}, true, "Unfiltered"},
		{registration{minLevel: &minWarn}, Record{Level: LevelInfo}, false, "BelowLevelFloor"},
		{registration{minLevel: &minWarn}, Record{Level: LevelWarning}, true, "AtLevelFloor"},
		{registration{minLevel: &minWarn}, Record{Level: LevelError}, true, "AboveLevelFloor"},
		{registration{origin: "acme"}, Record{Level: LevelError, Origin: "acme.sub"}, true, "OriginMatch"},
		{registration{origin: "acme"}, Record{Level: LevelError, Origin: "other"}, false, "OriginMiss"},
		{
			registration{minLevel: &minWarn, origin: "acme"},
			Record{Level: LevelWarning, Origin: "acme"},
			true, "BothPass",
		},
		{
			registration{minLevel: &minWarn, origin: "acme"},
			Record{Level: LevelInfo, Origin: "acme"},
			false, "LevelFailsOriginPasses",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.reg.accepts(tc.rec); got != tc.want {
				t.Errorf("accepts(%+v) = %v, want %v", tc.rec, got, tc.want)
			}
		})
	}
}

// TestSinkRegistryIdentityRemoval guards against removing a different
// registration that happens to share a target.
func TestSinkRegistryIdentityRemoval(t *testing.T) {
	var reg sinkRegistry
	list := &RecordList{}
	a := &registration{target: list}
	b := &registration{target: list}

	reg.register(a)
	reg.register(b)
	if got := reg.active(); got != 2 {
		t.Fatalf("active() = %d, want 2", got)
	}

	reg.deregister(a)
	if got := reg.active(); got != 1 {
		t.Fatalf("active() = %d after one deregister, want 1", got)
	}

	// Deregistering the same registration again is a no-op.
	reg.deregister(a)
	if got := reg.active(); got != 1 {
		t.Fatalf("active() = %d after repeated deregister, want 1", got)
	}

	reg.dispatch(Record{Level: LevelInfo, Message: "still delivered"})
	if list.Len() != 1 {
		t.Errorf("surviving registration missed dispatch: len = %d", list.Len())
	}
}

// TestLogToListStopIsIdempotent checks stop can be called repeatedly and
// the list stays readable afterward.
func TestLogToListStopIsIdempotent(t *testing.T) {
	logger := New(WithWriter(io.Discard))

	list, stop := logger.LogToList()
	logger.Info("captured")
	stop()
	stop()

	logger.Info("after stop")

	if list.Len() != 1 {
		t.Fatalf("list has %d records after stop, want 1", list.Len())
	}
	if got := list.Records()[0].Message; got != "captured" {
		t.Errorf("record message = %q, want %q", got, "captured")
	}
	if got := logger.core.sinks.active(); got != 0 {
		t.Errorf("registry still holds %d registrations after stop", got)
	}
}

// TestConcurrentEmissionAndCapture exercises the registry under parallel
// writers and a mid-flight deregistration.
func TestConcurrentEmissionAndCapture(t *testing.T) {
	logger := New(WithWriter(io.Discard))
	list, stop := logger.LogToList()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				logger.Info("concurrent")
			}
		}()
	}
	wg.Wait()
	stop()

	if got := list.Len(); got != writers*perWriter {
		t.Errorf("captured %d records, want %d", got, writers*perWriter)
	}

	// Emission after stop must be safe and invisible to the list.
	logger.Info("late")
	if got := list.Len(); got != writers*perWriter {
		t.Errorf("list grew to %d after stop", got)
	}
}

// TestFormatFileLine pins the quoted tuple layout of file sink lines.
func TestFormatFileLine(t *testing.T) {
	rec := Record{
		Time:    time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC),
		Level:   LevelWarning,
		Message: "flux drift detected",
		Origin:  "acme.fluxsim",
	}

	got := formatFileLine(rec)
	want := "'2026-03-14T09:26:53Z', 'acme.fluxsim', 'WARNING', 'flux drift detected'\n"
	if got != want {
		t.Errorf("formatFileLine() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "'acme.fluxsim', 'WARNING', 'flux drift detected'\n") {
		t.Errorf("line does not end with the origin/level/message tuple: %q", got)
	}
}

// TestFileSinkLatchesWriteError delivers to an already closed file and
// expects close to surface the latched write error.
func TestFileSinkLatchesWriteError(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "sink.log"))
	if err != nil {
		t.Fatalf("os.Create: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fs := &fileSink{f: f}
	fs.consume(Record{Level: LevelInfo, Message: "doomed"})

	if err := fs.close(); err == nil {
		t.Error("close() = nil, want the latched write error")
	}
}
