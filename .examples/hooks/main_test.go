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

package main

import (
	"io"
	"log"
	"testing"

	"github.com/quillback/slogscope"
	"github.com/quillback/slogscope/panichook"
)

// quietHandler keeps recovered panics off the test's stderr.
type quietHandler struct{}

func (quietHandler) HandlePanic(any, []byte) {}

func TestWarningsHookCapturesLogOutput(t *testing.T) {
	prevWriter := log.Writer()
	prevFlags := log.Flags()
	t.Cleanup(func() {
		log.SetOutput(prevWriter)
		log.SetFlags(prevFlags)
	})

	logger := slogscope.New(slogscope.WithWriter(io.Discard))
	defer logger.Close()

	list, stop := logger.LogToList()
	defer stop()

	if err := logger.EnableWarningsLogging(); err != nil {
		t.Fatalf("EnableWarningsLogging: %v", err)
	}
	log.Print("DeprecationWarning: the mark II coil is deprecated")
	if err := logger.DisableWarningsLogging(); err != nil {
		t.Fatalf("DisableWarningsLogging: %v", err)
	}

	recs := list.Records()
	if len(recs) != 1 {
		t.Fatalf("captured %d records, want 1", len(recs))
	}
	if recs[0].Level != slogscope.LevelWarning {
		t.Fatalf("level = %v, want WARNING", recs[0].Level)
	}
	if got, want := recs[0].Message, "DeprecationWarning: the mark II coil is deprecated"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestExceptionHookCapturesPanics(t *testing.T) {
	prev := panichook.Set(quietHandler{})
	t.Cleanup(func() { panichook.Set(prev) })

	logger := slogscope.New(slogscope.WithWriter(io.Discard))
	defer logger.Close()

	list, stop := logger.LogToList()
	defer stop()

	if err := logger.EnableExceptionLogging(); err != nil {
		t.Fatalf("EnableExceptionLogging: %v", err)
	}
	t.Cleanup(func() {
		if err := logger.DisableExceptionLogging(); err != nil {
			t.Errorf("DisableExceptionLogging: %v", err)
		}
	})

	panichook.Guard(func() {
		panic("coolant pressure lost")
	})

	recs := list.Records()
	if len(recs) != 1 {
		t.Fatalf("captured %d records, want 1", len(recs))
	}
	if recs[0].Level != slogscope.LevelError {
		t.Fatalf("level = %v, want ERROR", recs[0].Level)
	}
	if got, want := recs[0].Message, "string: coolant pressure lost"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}
