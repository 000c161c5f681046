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

package grpc

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"

	"github.com/quillback/slogscope"
)

// Option configures the interceptors created by this package, such as
// [UnaryServerInterceptor] and [StreamServerInterceptor]. It follows the
// functional options pattern.
type Option func(*options)

// CodeToLevel maps a gRPC status code to the level of the finish log entry
// for the call. A default mapping is used when [WithLevels] is not provided.
type CodeToLevel func(code codes.Code) slogscope.Level

// ShouldLogFunc decides whether a call identified by its full method name
// (for example "/users.UserService/GetUser") should be logged at all.
// Returning false skips the start, finish, payload, and metadata entries for
// that call. The default logs everything.
type ShouldLogFunc func(ctx context.Context, fullMethod string) bool

// MetadataFilterFunc decides whether a metadata key may appear in logs.
// Return true to keep the key. Keys arrive in their original case; filters
// should normally compare case-insensitively.
type MetadataFilterFunc func(key string) bool

// options holds the resolved interceptor configuration. It is populated by
// applying Option functions over the defaults in processOptions.
type options struct {
	levelFunc          CodeToLevel
	shouldLogFunc      ShouldLogFunc
	metadataFilterFunc MetadataFilterFunc
	skipMethods        []string
	logPayloads        bool
	maxPayloadSize     int
	logMetadata        bool
	panicRecovery      bool
	attachLogger       bool
	statsHandlers      bool
	tracerProvider     trace.TracerProvider
	propagators        propagation.TextMapPropagator
	propagatorsSet     bool
}

// defaultCodeToLevel maps gRPC status codes onto the four slogscope levels.
// Successful and cancelled calls are informational, client mistakes and
// transient server conditions are warnings, and definite server failures
// are errors.
func defaultCodeToLevel(code codes.Code) slogscope.Level {
	switch code {
	case codes.OK, codes.Canceled:
		return slogscope.LevelInfo
	case codes.InvalidArgument, codes.NotFound, codes.AlreadyExists,
		codes.Unauthenticated, codes.PermissionDenied:
		return slogscope.LevelWarning
	case codes.DeadlineExceeded, codes.ResourceExhausted, codes.FailedPrecondition,
		codes.Aborted, codes.OutOfRange, codes.Unavailable:
		return slogscope.LevelWarning
	case codes.Unknown, codes.Unimplemented, codes.Internal, codes.DataLoss:
		return slogscope.LevelError
	default:
		return slogscope.LevelError
	}
}

func defaultShouldLog(context.Context, string) bool { return true }

// defaultMetadataFilter blocks headers that commonly carry credentials or
// session state. Everything else passes.
func defaultMetadataFilter(key string) bool {
	switch strings.ToLower(key) {
	case "authorization", "cookie", "set-cookie", "x-csrf-token", "grpc-trace-bin":
		return false
	default:
		return true
	}
}

// WithLevels sets the function mapping gRPC status codes to log levels for
// the finish entry of each call. Passing nil restores the default mapping.
func WithLevels(f CodeToLevel) Option {
	return func(o *options) {
		if f != nil {
			o.levelFunc = f
		} else {
			o.levelFunc = defaultCodeToLevel
		}
	}
}

// WithShouldLog sets a filter deciding per call whether to log anything.
// Passing nil restores the default, which logs every call.
func WithShouldLog(f ShouldLogFunc) Option {
	return func(o *options) {
		if f != nil {
			o.shouldLogFunc = f
		} else {
			o.shouldLogFunc = defaultShouldLog
		}
	}
}

// WithSkipMethods excludes calls whose full method name contains any of the
// given substrings. Typical use is suppressing health check traffic:
//
//	WithSkipMethods("grpc.health.v1.Health")
func WithSkipMethods(methods ...string) Option {
	return func(o *options) {
		o.skipMethods = append([]string(nil), methods...)
	}
}

// WithPayloadLogging enables logging of request and response messages at
// DEBUG level. Disabled by default; payloads can be large and may carry
// sensitive data. Use [WithMaxPayloadSize] to bound the logged size.
func WithPayloadLogging(enabled bool) Option {
	return func(o *options) { o.logPayloads = enabled }
}

// WithMaxPayloadSize caps the rendered size in bytes of logged payloads.
// Larger payloads are truncated and marked as such. Zero or negative means
// no limit, which is the default.
func WithMaxPayloadSize(sizeBytes int) Option {
	return func(o *options) { o.maxPayloadSize = max(sizeBytes, 0) }
}

// WithMetadataLogging enables logging of call metadata, filtered through the
// configured [MetadataFilterFunc]. Disabled by default.
func WithMetadataLogging(enabled bool) Option {
	return func(o *options) { o.logMetadata = enabled }
}

// WithMetadataFilter sets the filter applied to metadata keys before
// logging. Passing nil restores the default filter, which strips common
// credential headers. Only effective together with [WithMetadataLogging].
func WithMetadataFilter(f MetadataFilterFunc) Option {
	return func(o *options) {
		if f != nil {
			o.metadataFilterFunc = f
		} else {
			o.metadataFilterFunc = defaultMetadataFilter
		}
	}
}

// WithPanicRecovery controls whether the server interceptors recover handler
// panics themselves. Set false when a dedicated recovery interceptor already
// owns panic handling. Enabled by default.
func WithPanicRecovery(enabled bool) Option {
	return func(o *options) { o.panicRecovery = enabled }
}

// WithContextLogger controls whether the interceptors attach the per-call
// logger to the handler context, retrievable with [slogscope.FromContext].
// Enabled by default.
func WithContextLogger(enabled bool) Option {
	return func(o *options) { o.attachLogger = enabled }
}

// WithStatsHandlers controls whether [ServerOptions] and [DialOptions]
// install otelgrpc stats handlers alongside the logging interceptors.
// Enabled by default.
func WithStatsHandlers(enabled bool) Option {
	return func(o *options) { o.statsHandlers = enabled }
}

// WithTracerProvider sets the tracer provider handed to the otelgrpc stats
// handlers. When unset they use the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithPropagators sets the propagators handed to the otelgrpc stats
// handlers. When unset they use the global propagator.
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
		levelFunc:          defaultCodeToLevel,
		shouldLogFunc:      defaultShouldLog,
		metadataFilterFunc: defaultMetadataFilter,
		panicRecovery:      true,
		attachLogger:       true,
		statsHandlers:      true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if len(o.skipMethods) > 0 {
		userShouldLog := o.shouldLogFunc
		skip := o.skipMethods
		o.shouldLogFunc = func(ctx context.Context, fullMethod string) bool {
			if !userShouldLog(ctx, fullMethod) {
				return false
			}
			for _, m := range skip {
				if m != "" && strings.Contains(fullMethod, m) {
					return false
				}
			}
			return true
		}
	}
	return o
}
