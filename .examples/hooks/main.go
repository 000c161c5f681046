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

// Command hooks routes standard library log output and recovered panics
// through a slogscope logger. While the warnings hook is installed,
// log.Print lands as a WARNING record; while the exception hook is
// installed, panics dispatched through panichook land as ERROR records
// before the usual terminal report.
package main

import (
	"log"

	"github.com/quillback/slogscope"
	"github.com/quillback/slogscope/panichook"
)

func main() {
	logger := slogscope.New()
	defer logger.Close()

	if err := logger.EnableWarningsLogging(); err != nil {
		log.Fatalf("enable warnings logging: %v", err)
	}
	log.Print("DeprecationWarning: the mark II coil is deprecated")
	if err := logger.DisableWarningsLogging(); err != nil {
		log.Fatalf("disable warnings logging: %v", err)
	}

	if err := logger.EnableExceptionLogging(); err != nil {
		log.Fatalf("enable exception logging: %v", err)
	}
	defer func() {
		if err := logger.DisableExceptionLogging(); err != nil {
			log.Printf("disable exception logging: %v", err)
		}
	}()

	// Guard runs the function and hands any panic to the installed
	// handler chain instead of unwinding past us.
	panichook.Guard(func() {
		panic("coolant pressure lost")
	})

	logger.Info("still running after the recovered panic")
}
