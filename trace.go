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
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used for trace correlation in console output and by
// TraceAttributes.
const (
	// TraceIDKey is the field name for the 32-char hex trace ID.
	TraceIDKey = "trace_id"
	// SpanIDKey is the field name for the 16-char hex span ID.
	SpanIDKey = "span_id"
	// TraceSampledKey is the field name for the sampling decision.
	TraceSampledKey = "trace_sampled"
)

// traceIdentity extracts the OpenTelemetry trace identity active in ctx.
// It creates no spans and never mutates the context; upstream middleware
// is expected to have populated the span context via OTel propagators.
func traceIdentity(ctx context.Context) (traceID, spanID string, sampled bool, ok bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false, false
	}
	return sc.TraceID().String(), sc.SpanID().String(), sc.IsSampled(), true
}

// TraceAttributes extracts trace correlation attributes from ctx. The
// returned slice can be supplied to Logger.With when building per-request
// loggers, so every record they emit carries the trace identity even when
// later log calls lose the request context. The second return is false
// when ctx carries no valid span context.
func TraceAttributes(ctx context.Context) ([]slog.Attr, bool) {
	if ctx == nil {
		return nil, false
	}
	traceID, spanID, sampled, ok := traceIdentity(ctx)
	if !ok {
		return nil, false
	}
	return []slog.Attr{
		slog.String(TraceIDKey, traceID),
		slog.String(SpanIDKey, spanID),
		slog.Bool(TraceSampledKey, sampled),
	}, true
}
