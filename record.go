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

package slogscope

import (
	"log/slog"
	"time"
)

// Record is one log event as delivered to capture sinks. Records are
// immutable once emitted; consumers must treat Attrs as read-only.
type Record struct {
	// Time is when the record was emitted.
	Time time.Time

	// Level is the record's severity.
	Level Level

	// Message is the rendered message text.
	Message string

	// Origin identifies the emitting call site as a dotted package path,
	// e.g. "acme.fluxsim.pipeline". Empty when the caller could not be
	// resolved.
	Origin string

	// TraceID and SpanID carry the OpenTelemetry trace identity active in
	// the emitting context, when there is one.
	TraceID string
	SpanID  string

	// TraceSampled reports whether that trace was sampled.
	TraceSampled bool

	// Attrs holds any structured attributes attached to the record.
	Attrs []slog.Attr
}
