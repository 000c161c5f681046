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

package slogscope_test

import (
	"strings"
	"testing"

	"github.com/quillback/slogscope"
)

// TestGetVersionReflectsVariable ensures GetVersion mirrors manual overrides.
func TestGetVersionReflectsVariable(t *testing.T) {
	original := slogscope.Version
	slogscope.Version = "test-version"
	t.Cleanup(func() {
		slogscope.Version = original
	})

	if got := slogscope.GetVersion(); got != "test-version" {
		t.Fatalf("GetVersion() = %q, want %q", got, "test-version")
	}
}

// TestVersionIsSemver checks the shipped version string carries the v prefix.
func TestVersionIsSemver(t *testing.T) {
	if !strings.HasPrefix(slogscope.Version, "v") {
		t.Errorf("Version = %q, want a v-prefixed semantic version", slogscope.Version)
	}
}
