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

// Command slog is the baseline side of the emission benchmark: the same
// record batch as the sibling slogscope program, written straight through
// a JSON handler with no origin resolution and no capture sinks.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
)

const (
	batchSize    = 1000
	warmInterval = 100
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("slog benchmark failed: %v", err)
	}
}

func run(w io.Writer) error {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	for i := 0; i < batchSize; i++ {
		logger.Info("flux sample accepted",
			"node", i%16,
			"pass", i/16,
			"drift", 0.004,
		)
		if i%warmInterval == 0 {
			logger.Warn("drift above soft threshold", "node", i%16)
		}
	}

	fmt.Fprintf(w, "emitted %d records\n", batchSize+batchSize/warmInterval)
	return nil
}
