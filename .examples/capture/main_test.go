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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quillback/slogscope"
)

func TestListCaptureRespectsFilter(t *testing.T) {
	t.Parallel()

	logger := slogscope.New(
		slogscope.WithWriter(io.Discard),
		slogscope.WithOrigin("acme.fluxsim"),
	)
	defer logger.Close()

	list, stop := logger.LogToList(slogscope.FilterLevel(slogscope.LevelWarning))
	logger.Info("below the filter")
	logger.Warn("captured")
	stop()

	if got := list.Len(); got != 1 {
		t.Fatalf("captured %d records, want 1", got)
	}
	if got := list.Records()[0].Message; got != "captured" {
		t.Fatalf("message = %q, want %q", got, "captured")
	}
}

func TestFileCaptureWritesTuple(t *testing.T) {
	t.Parallel()

	logger := slogscope.New(
		slogscope.WithWriter(io.Discard),
		slogscope.WithOrigin("acme.fluxsim"),
	)
	defer logger.Close()

	path := filepath.Join(t.TempDir(), "capture.log")
	stopFile, err := logger.LogToFile(path)
	if err != nil {
		t.Fatalf("LogToFile: %v", err)
	}
	logger.Error("persisted to disk")
	if err := stopFile(); err != nil {
		t.Fatalf("stop file capture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read capture file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.HasSuffix(line, "'acme.fluxsim', 'ERROR', 'persisted to disk'") {
		t.Fatalf("file line = %q, want the quoted origin/level/message tuple", line)
	}
}
