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

// Command configuration walks through the construction knobs and the
// environment variables that mirror them.
//
// Every option has an environment twin resolved at New:
//
//	LOG_LEVEL             WithLevel        debug|info|warning|error or an integer
//	LOG_SOURCE_LOCATION   WithSourceLocationEnabled
//	SLOGSCOPE_LOG_FORMAT  WithFormat       text|json
//	SLOGSCOPE_LOG_TARGET  WithWriter/WithLogFile   stderr|stdout|discard|file:<path>
//
// Explicit options win over the environment, which wins over defaults.
package main

import (
	"os"

	"github.com/quillback/slogscope"
)

func main() {
	// The environment would normally be set by the operator. LOG_LEVEL
	// lowers the minimum to DEBUG for everything built afterwards.
	os.Setenv("LOG_LEVEL", "debug")

	logger := slogscope.New(
		slogscope.WithFormat(slogscope.FormatJSON),
		slogscope.WithSourceLocationEnabled(true),
		slogscope.WithOrigin("acme.fluxsim"),
	)
	defer logger.Close()

	logger.Debug("visible because LOG_LEVEL=debug")
	logger.Info("structured console line", "format", "json")

	// An explicit option overrides the same setting from the environment.
	quiet := slogscope.New(slogscope.WithLevel(slogscope.LevelError))
	defer quiet.Close()
	quiet.Info("suppressed despite LOG_LEVEL=debug")
	quiet.Error("errors still get through")
}
