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
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/quillback/slogscope"
)

// Default origins pinned on logged entries. [WithOrigin] overrides both.
const (
	serverOrigin = "http.server"
	clientOrigin = "http.client"
)

// Option configures [Middleware] and [Transport]. It follows the functional
// options pattern.
type Option func(*options)

// StatusToLevel maps an HTTP status code to the level of the finish entry.
// A default mapping is used when [WithLevels] is not provided.
type StatusToLevel func(status int) slogscope.Level

// ShouldLogFunc decides whether a request should be logged at all.
// Returning false skips the start and finish entries; the request itself is
// unaffected. The default logs everything.
type ShouldLogFunc func(r *http.Request) bool

// RouteGetter reports the route pattern that matched a request, for the
// http.route attribute. Useful with routers that expose the matched
// template, such as http.ServeMux's Pattern field on the request.
type RouteGetter func(r *http.Request) string

type options struct {
	levelFunc      StatusToLevel
	shouldLog      ShouldLogFunc
	skipPaths      []string
	origin         string
	routeGetter    RouteGetter
	logQuery       bool
	logUserAgent   bool
	panicRecovery  bool
	attachLogger   bool
	telemetry      bool
	tracerProvider trace.TracerProvider
	propagators    propagation.TextMapPropagator
	propagatorsSet bool
}

// defaultStatusToLevel maps server errors to ERROR, client errors to
// WARNING, and everything else to INFO.
func defaultStatusToLevel(status int) slogscope.Level {
	switch {
	case status >= 500:
		return slogscope.LevelError
	case status >= 400:
		return slogscope.LevelWarning
	default:
		return slogscope.LevelInfo
	}
}

func defaultShouldLog(*http.Request) bool { return true }

// WithLevels sets the function mapping status codes to log levels for the
// finish entry. Passing nil restores the default mapping.
func WithLevels(f StatusToLevel) Option {
	return func(o *options) {
		if f != nil {
			o.levelFunc = f
		} else {
			o.levelFunc = defaultStatusToLevel
		}
	}
}

// WithShouldLog sets a filter deciding per request whether to log anything.
// Passing nil restores the default, which logs every request.
func WithShouldLog(f ShouldLogFunc) Option {
	return func(o *options) {
		if f != nil {
			o.shouldLog = f
		} else {
			o.shouldLog = defaultShouldLog
		}
	}
}

// WithSkipPaths excludes requests whose URL path contains any of the given
// substrings. Typical use is suppressing probe endpoints:
//
//	WithSkipPaths("/healthz", "/readyz")
func WithSkipPaths(paths ...string) Option {
	return func(o *options) {
		o.skipPaths = append([]string(nil), paths...)
	}
}

// WithOrigin overrides the origin pinned on logged entries. The middleware
// defaults to "http.server" and the transport to "http.client".
func WithOrigin(origin string) Option {
	return func(o *options) { o.origin = strings.TrimSpace(origin) }
}

// WithRouteGetter supplies the matched route pattern for the http.route
// attribute. Without it the attribute is omitted.
func WithRouteGetter(f RouteGetter) Option {
	return func(o *options) { o.routeGetter = f }
}

// WithQueryLogging includes the raw query string in logged entries.
// Disabled by default; query strings regularly carry tokens and IDs.
func WithQueryLogging(enabled bool) Option {
	return func(o *options) { o.logQuery = enabled }
}

// WithUserAgentLogging includes the User-Agent header in logged entries.
// Enabled by default.
func WithUserAgentLogging(enabled bool) Option {
	return func(o *options) { o.logUserAgent = enabled }
}

// WithPanicRecovery controls whether [Middleware] recovers handler panics
// itself. Set false when an outer middleware owns panic handling. Enabled
// by default.
func WithPanicRecovery(enabled bool) Option {
	return func(o *options) { o.panicRecovery = enabled }
}

// WithContextLogger controls whether the per-request logger is attached to
// the request context, retrievable with [slogscope.FromContext]. Enabled by
// default.
func WithContextLogger(enabled bool) Option {
	return func(o *options) { o.attachLogger = enabled }
}

// WithTelemetry wraps the middleware in [otelhttp.NewHandler] and the
// transport in [otelhttp.NewTransport]. Disabled by default; when enabled,
// otelhttp owns span creation and trace propagation.
func WithTelemetry(enabled bool) Option {
	return func(o *options) { o.telemetry = enabled }
}

// WithTracerProvider sets the tracer provider handed to otelhttp. When
// unset the global provider is used. Only effective with [WithTelemetry].
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithPropagators sets the propagators handed to otelhttp. When unset the
// global propagator is used. Only effective with [WithTelemetry].
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(o *options) {
		o.propagators = p
		o.propagatorsSet = true
	}
}

// processOptions applies the given options over the defaults and composes
// the skip list into the final shouldLog function.
func processOptions(opts ...Option) *options {
	o := &options{
		levelFunc:     defaultStatusToLevel,
		shouldLog:     defaultShouldLog,
		logUserAgent:  true,
		panicRecovery: true,
		attachLogger:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if len(o.skipPaths) > 0 {
		userShouldLog := o.shouldLog
		skip := o.skipPaths
		o.shouldLog = func(r *http.Request) bool {
			if !userShouldLog(r) {
				return false
			}
			if r.URL != nil {
				for _, p := range skip {
					if p != "" && strings.Contains(r.URL.Path, p) {
						return false
					}
				}
			}
			return true
		}
	}
	return o
}
