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

// Package panichook maintains a process-wide panic handler that recovered
// panics can be routed through, giving libraries a single replaceable seam
// for panic reporting.
//
// The Go runtime offers no hook over uncaught panics, so the hook only sees
// panics that some defer recovers and forwards. Integration points that do
// this include [Recover] and [Guard] in this package and the interceptors in
// the slogscope grpc package.
//
// # Handlers
//
// Exactly one [Handler] is installed at a time. [Set] installs a handler and
// returns the previous one, so handlers compose as a chain: a handler that
// wants to augment rather than replace reporting keeps the returned value
// and invokes it after its own work. [Default], installed at process start,
// reports the way an uncaught panic does: the value and a goroutine stack
// trace on standard error.
//
// # Usage
//
//	defer panichook.Recover()
//
// at the top of a goroutine recovers any panic and routes it to the current
// handler. [Dispatch] routes an already recovered value directly.
package panichook
