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

// Package slogscope is a process-wide logging facade built on the standard
// library's [log/slog]. Every record carries an origin: the dotted package
// path of the call site ("acme.fluxsim.pipeline"), resolved automatically
// or pinned with [Logger.WithOrigin]. Records pass one dynamic minimum
// level and reach the console handler plus any capture sinks active at the
// time.
//
// Three capabilities distinguish it from plain slog:
//
//   - Scoped capture. [Logger.LogToList] and [Logger.LogToFile] register
//     temporary sinks that observe every qualifying record until their stop
//     function runs, optionally filtered by minimum level ([FilterLevel])
//     or origin subtree ([FilterOrigin]). Capture never disturbs console
//     output.
//   - Warning interception. [Logger.EnableWarningsLogging] redirects the
//     standard library log package's output into the leveled log as
//     WARNING records, restoring the previous writer symmetrically on
//     disable and refusing to tear down state it no longer owns.
//   - Panic interception. [Logger.EnableExceptionLogging] hooks the
//     [github.com/quillback/slogscope/panichook] handler so recovered
//     panics are logged as ERROR records before default terminal reporting
//     runs.
//
// Hook misuse (double enable, disabling an uninstalled hook, tearing down
// an overridden hook point) is reported as a [LoggingError] with a
// canonical message; environment failures pass through untouched.
//
// # Subpackages
//
//   - [github.com/quillback/slogscope/http] offers net/http middleware and
//     a client transport that log requests through the facade with pinned
//     origins and OpenTelemetry trace correlation.
//   - [github.com/quillback/slogscope/grpc] provides client and server
//     interceptors that log RPCs, route handler panics through panichook,
//     and bundle OpenTelemetry stats handlers.
//   - [github.com/quillback/slogscope/panichook] maintains the process
//     panic handler the exception hook installs into.
//
// # Quick Start
//
//	logger := slogscope.New(slogscope.WithLevel(slogscope.LevelDebug))
//	logger.Info("pipeline started", "stage", "ingest")
//
//	list, stop := logger.LogToList(slogscope.FilterLevel(slogscope.LevelWarning))
//	defer stop()
//
// The package-level functions ([Info], [LogToList], [EnableWarningsLogging],
// and the rest) operate on the shared [Default] logger.
//
// # Configuration
//
// New resolves defaults, then the LOG_LEVEL, LOG_SOURCE_LOCATION,
// SLOGSCOPE_LOG_FORMAT, and SLOGSCOPE_LOG_TARGET environment variables,
// then functional options such as [WithLevel], [WithFormat], [WithWriter],
// [WithLogFile], and [WithOrigin], so the same binary can be reconfigured
// without code changes.
package slogscope
