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

// Command basic illustrates the minimal slogscope pattern: construct a
// logger, emit leveled records, close on the way out.
package main

import (
	"github.com/quillback/slogscope"
)

func main() {
	logger := slogscope.New()
	defer logger.Close()

	logger.Info("simulation starting", "nodes", 4)
	logger.Warn("flux estimate above nominal", "estimate", 1.07)

	// DEBUG is below the default INFO minimum, so this line stays silent
	// unless LOG_LEVEL=debug is set in the environment.
	logger.Debug("per-node seed table", "seed", 42)
}
