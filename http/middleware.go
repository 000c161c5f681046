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
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	stdhttp "net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/quillback/slogscope"
	"github.com/quillback/slogscope/panichook"
)

const instrumentationName = "github.com/quillback/slogscope/http"

// Middleware returns middleware that logs requests through the provided
// logger. Entries are pinned to the origin "http.server" (override with
// [WithOrigin]): a start entry at INFO when the request arrives, and a
// finish entry with status code, response size, and duration when it
// completes, at the level mapped from the status code.
//
// Trace context is extracted from request headers with the global
// OpenTelemetry propagator when the request context does not already carry
// a span. Handler panics are recovered, routed through
// [panichook.Dispatch], and answered with status 500 when nothing has been
// written; [WithPanicRecovery](false) leaves recovery to an outer layer.
func Middleware(logger *slogscope.Logger, opts ...Option) func(stdhttp.Handler) stdhttp.Handler {
	cfg := processOptions(opts...)
	origin := cfg.origin
	if origin == "" {
		origin = serverOrigin
	}

	return func(next stdhttp.Handler) stdhttp.Handler {
		if next == nil {
			next = stdhttp.NotFoundHandler()
		}

		logging := stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if !cfg.shouldLog(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ctx := r.Context()
			if !cfg.telemetry && !trace.SpanContextFromContext(ctx).IsValid() {
				ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(r.Header))
			}

			reqLogger := logger.WithOrigin(origin)
			if cfg.attachLogger {
				ctx = slogscope.ContextWithLogger(ctx, reqLogger)
			}
			r = r.WithContext(ctx)

			attrs := requestAttrs(cfg, r)
			reqLogger.LogAttrs(ctx, slogscope.LevelInfo, "Starting HTTP request", attrs...)

			rec := newResponseRecorder(w)

			defer func() {
				var panicked bool
				if cfg.panicRecovery {
					if v := recover(); v != nil {
						panicked = true
						panichook.Dispatch(v)
						if !rec.wroteHeader {
							stdhttp.Error(rec, "internal server error", stdhttp.StatusInternalServerError)
						}
					}
				}

				level := cfg.levelFunc(rec.Status())
				if panicked {
					level = slogscope.LevelError
				}

				finishAttrs := append(attrs[:len(attrs):len(attrs)],
					slog.Int("http.status_code", rec.Status()),
					slog.Int64("http.response_size", rec.BytesWritten()),
					slog.Duration("http.duration", time.Since(start)),
				)

				msg := "Finished HTTP request"
				if panicked {
					msg = "Finished HTTP request after panic recovery"
				}
				reqLogger.LogAttrs(ctx, level, msg, finishAttrs...)
			}()

			next.ServeHTTP(rec, r)
		})

		if cfg.telemetry {
			return otelhttp.NewHandler(logging, instrumentationName, otelOptions(cfg)...)
		}
		return logging
	}
}

// requestAttrs assembles the identifying attributes shared by the start and
// finish entries of a server request.
func requestAttrs(cfg *options, r *stdhttp.Request) []slog.Attr {
	attrs := make([]slog.Attr, 0, 7)
	attrs = append(attrs, slog.String("http.method", r.Method))
	if r.URL != nil {
		attrs = append(attrs, slog.String("http.target", r.URL.Path))
		if cfg.logQuery && r.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("http.query", r.URL.RawQuery))
		}
	}
	if cfg.routeGetter != nil {
		if route := cfg.routeGetter(r); route != "" {
			attrs = append(attrs, slog.String("http.route", route))
		}
	}
	if r.Host != "" {
		attrs = append(attrs, slog.String("http.host", r.Host))
	}
	if ip := peerIP(r.RemoteAddr); ip != "" {
		attrs = append(attrs, slog.String("network.peer.ip", ip))
	}
	if cfg.logUserAgent {
		if ua := r.UserAgent(); ua != "" {
			attrs = append(attrs, slog.String("http.user_agent", ua))
		}
	}
	return attrs
}

// peerIP strips the port from a host:port remote address.
func peerIP(addr string) string {
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// otelOptions builds otelhttp options from the configuration.
func otelOptions(cfg *options) []otelhttp.Option {
	var opts []otelhttp.Option
	if cfg.tracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.propagatorsSet && cfg.propagators != nil {
		opts = append(opts, otelhttp.WithPropagators(cfg.propagators))
	}
	return opts
}

// responseRecorder captures the status code and byte count written to the
// client while forwarding the optional ResponseWriter interfaces the
// underlying writer supports.
type responseRecorder struct {
	stdhttp.ResponseWriter
	status       int
	wroteHeader  bool
	bytesWritten int64
}

func newResponseRecorder(w stdhttp.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w}
}

// Status returns the status code written to the client, defaulting to 200.
func (rr *responseRecorder) Status() int {
	if rr.status == 0 {
		return stdhttp.StatusOK
	}
	return rr.status
}

// BytesWritten reports the cumulative number of body bytes sent.
func (rr *responseRecorder) BytesWritten() int64 {
	return rr.bytesWritten
}

// WriteHeader records the first status code written.
func (rr *responseRecorder) WriteHeader(status int) {
	if !rr.wroteHeader {
		rr.status = status
		rr.wroteHeader = true
	}
	rr.ResponseWriter.WriteHeader(status)
}

// Write counts body bytes and forwards to the underlying writer.
func (rr *responseRecorder) Write(p []byte) (int, error) {
	if !rr.wroteHeader {
		rr.WriteHeader(stdhttp.StatusOK)
	}
	n, err := rr.ResponseWriter.Write(p)
	rr.bytesWritten += int64(n)
	if err != nil {
		return n, fmt.Errorf("write response body: %w", err)
	}
	return n, nil
}

// ReadFrom streams from src while counting bytes, using the underlying
// writer's ReaderFrom when available.
func (rr *responseRecorder) ReadFrom(src io.Reader) (int64, error) {
	if !rr.wroteHeader {
		rr.WriteHeader(stdhttp.StatusOK)
	}
	var n int64
	var err error
	if rf, ok := rr.ResponseWriter.(io.ReaderFrom); ok {
		n, err = rf.ReadFrom(src)
	} else {
		n, err = io.Copy(rr.ResponseWriter, src)
	}
	rr.bytesWritten += n
	if err != nil {
		return n, fmt.Errorf("copy response body: %w", err)
	}
	return n, nil
}

// Unwrap exposes the underlying ResponseWriter for http.ResponseController.
func (rr *responseRecorder) Unwrap() stdhttp.ResponseWriter {
	return rr.ResponseWriter
}

// Flush forwards to the underlying writer when it supports flushing.
func (rr *responseRecorder) Flush() {
	if f, ok := rr.ResponseWriter.(stdhttp.Flusher); ok {
		f.Flush()
	}
}

// Hijack delegates to the wrapped Hijacker when supported.
func (rr *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rr.ResponseWriter.(stdhttp.Hijacker); ok {
		conn, rw, err := h.Hijack()
		if err != nil {
			return nil, nil, fmt.Errorf("hijack connection: %w", err)
		}
		return conn, rw, nil
	}
	return nil, nil, stdhttp.ErrNotSupported
}

// Push forwards HTTP/2 pushes when the underlying writer supports them.
func (rr *responseRecorder) Push(target string, opts *stdhttp.PushOptions) error {
	if p, ok := rr.ResponseWriter.(stdhttp.Pusher); ok {
		if err := p.Push(target, opts); err != nil {
			return fmt.Errorf("http/2 push: %w", err)
		}
		return nil
	}
	return stdhttp.ErrNotSupported
}
