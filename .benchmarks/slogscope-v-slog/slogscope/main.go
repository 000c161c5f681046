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

// Command slogscope is the facade side of the emission benchmark. It runs
// the same record batch as the sibling slog program, with origin
// resolution active and a filtered capture sink attached, so the numbers
// show what the facade adds over a bare handler.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/quillback/slogscope"
)

const (
	batchSize    = 1000
	warmInterval = 100
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("slogscope benchmark failed: %v", err)
	}
}

func run(w io.Writer) error {
	logger := slogscope.New(
		slogscope.WithWriter(io.Discard),
		slogscope.WithFormat(slogscope.FormatJSON),
	)
	defer logger.Close()

	list, stop := logger.LogToList(slogscope.FilterLevel(slogscope.LevelWarning))
	defer stop()

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

	fmt.Fprintf(w, "emitted %d records, captured %d warnings\n",
		batchSize+batchSize/warmInterval, list.Len())
	return nil
}
