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

// Command dynamic-level raises and lowers the minimum level while the
// process runs. Child loggers share the parent's level gate, so one
// SetLevel call retunes the whole family at once.
package main

import (
	"github.com/quillback/slogscope"
)

func main() {
	logger := slogscope.New(slogscope.WithLevel(slogscope.LevelWarning))
	defer logger.Close()

	worker := logger.WithOrigin("acme.fluxsim.worker")

	logger.Info("dropped: below the WARNING minimum")
	worker.Info("dropped for the child too")

	logger.SetLevel(slogscope.LevelDebug)

	logger.Debug("visible after SetLevel(DEBUG)")
	worker.Info("the child follows without its own call")

	logger.SetLevel(slogscope.LevelError)
	worker.Warn("dropped again once the gate is raised")
	worker.Error("errors always clear an ERROR gate")
}
