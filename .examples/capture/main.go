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

// Command capture scopes an in-memory list and a file onto a running
// logger. Console output continues unchanged while both sinks are active;
// filters narrow what each sink accepts.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/quillback/slogscope"
)

func main() {
	logger := slogscope.New(slogscope.WithOrigin("acme.fluxsim"))
	defer logger.Close()

	// Collect WARNING and above into a slice for the duration of a task.
	list, stop := logger.LogToList(slogscope.FilterLevel(slogscope.LevelWarning))
	logger.Info("below the filter, console only")
	logger.Warn("captured and on the console")
	stop()
	fmt.Printf("list captured %d record(s)\n", list.Len())

	// Append the same stream to a file, one quoted tuple per record.
	path := filepath.Join(os.TempDir(), "fluxsim-capture.log")
	stopFile, err := logger.LogToFile(path)
	if err != nil {
		log.Fatalf("log to file: %v", err)
	}
	logger.Error("persisted to disk")
	if err := stopFile(); err != nil {
		log.Fatalf("stop file capture: %v", err)
	}
	fmt.Println("wrote", path)
}
