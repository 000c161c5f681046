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

package http

import (
	"log/slog"
	stdhttp "net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/quillback/slogscope"
)

// Transport returns an [stdhttp.RoundTripper] that logs outbound requests
// through the provided logger under the origin "http.client" (override
// with [WithOrigin]). A start entry is logged at INFO before the request is
// sent and a finish entry afterwards at the level mapped from the response
// status code, with duration and response size.
//
// The current trace context is injected into request headers with the
// global OpenTelemetry propagator. With [WithTelemetry](true) the returned
// transport is wrapped in [otelhttp.NewTransport], which then owns span
// creation and injection.
//
// A nil base uses [stdhttp.DefaultTransport].
func Transport(logger *slogscope.Logger, base stdhttp.RoundTripper, opts ...Option) stdhttp.RoundTripper {
	cfg := processOptions(opts...)
	if base == nil {
		base = stdhttp.DefaultTransport
	}
	origin := cfg.origin
	if origin == "" {
		origin = clientOrigin
	}

	rt := &roundTripper{
		base:   base,
		logger: logger.WithOrigin(origin),
		cfg:    cfg,
	}
	if cfg.telemetry {
		return otelhttp.NewTransport(rt, otelTransportOptions(cfg)...)
	}
	return rt
}

// otelTransportOptions builds otelhttp transport options from the
// configuration.
func otelTransportOptions(cfg *options) []otelhttp.Option {
	var opts []otelhttp.Option
	if cfg.tracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.propagatorsSet && cfg.propagators != nil {
		opts = append(opts, otelhttp.WithPropagators(cfg.propagators))
	}
	return opts
}

type roundTripper struct {
	base   stdhttp.RoundTripper
	logger *slogscope.Logger
	cfg    *options
}

// RoundTrip logs the request, injects trace context, and forwards to the
// base transport. The incoming request is cloned before headers are added,
// as the RoundTripper contract requires.
func (t *roundTripper) RoundTrip(req *stdhttp.Request) (*stdhttp.Response, error) {
	if req == nil || !t.cfg.shouldLog(req) {
		return t.base.RoundTrip(req)
	}

	start := time.Now()
	ctx := req.Context()

	req = req.Clone(ctx)
	if !t.cfg.telemetry {
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	}

	attrs := clientRequestAttrs(t.cfg, req)
	t.logger.LogAttrs(ctx, slogscope.LevelInfo, "Starting HTTP client request", attrs...)

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	finishAttrs := append(attrs[:len(attrs):len(attrs)],
		slog.Duration("http.duration", duration))
	if err != nil {
		finishAttrs = append(finishAttrs, slog.Any("error", err))
		t.logger.LogAttrs(ctx, slogscope.LevelError, "Finished HTTP client request", finishAttrs...)
		return nil, err
	}

	finishAttrs = append(finishAttrs,
		slog.Int("http.status_code", resp.StatusCode),
		slog.Int64("http.response_size", resp.ContentLength),
	)
	t.logger.LogAttrs(ctx, t.cfg.levelFunc(resp.StatusCode), "Finished HTTP client request", finishAttrs...)
	return resp, nil
}

// clientRequestAttrs assembles the identifying attributes shared by the
// start and finish entries of an outbound request.
func clientRequestAttrs(cfg *options, req *stdhttp.Request) []slog.Attr {
	attrs := make([]slog.Attr, 0, 5)
	attrs = append(attrs, slog.String("http.method", req.Method))
	if req.URL != nil {
		attrs = append(attrs, slog.String("http.target", req.URL.Path))
		if cfg.logQuery && req.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("http.query", req.URL.RawQuery))
		}
		if req.URL.Host != "" {
			attrs = append(attrs, slog.String("http.host", req.URL.Host))
		}
	}
	return attrs
}
