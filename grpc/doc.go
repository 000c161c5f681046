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

// Package grpc provides gRPC client and server interceptors that log RPC
// lifecycle events through a [slogscope.Logger]. Every entry carries an
// origin pinned to the dotted service and method name of the call
// (for example "users.UserService.GetUser"), so origin filters on scoped
// sinks select RPC traffic the same way they select package loggers.
//
// # Server Interceptors
//
// The server interceptors ([UnaryServerInterceptor], [StreamServerInterceptor])
// record for each incoming RPC:
//   - gRPC service and method names
//   - Duration of the call
//   - Final gRPC status code
//   - Peer address
//   - Any error returned by the handler
//
// Handler panics are recovered, routed through [panichook.Dispatch] so an
// installed exception hook observes them, and answered with codes.Internal.
// Trace context is extracted from incoming metadata with the global
// OpenTelemetry propagator before the handler runs, so trace and span IDs
// appear in every entry logged during the call.
//
// # Client Interceptors
//
// The client interceptors ([UnaryClientInterceptor], [StreamClientInterceptor])
// record the same identifying attributes for outgoing RPCs and inject the
// current trace context into outgoing metadata.
//
// # Basic Usage (Server)
//
//	logger := slogscope.New()
//	defer logger.Close()
//
//	server := grpc.NewServer(
//	    grpc.ChainUnaryInterceptor(slogscopegrpc.UnaryServerInterceptor(logger)),
//	    grpc.ChainStreamInterceptor(slogscopegrpc.StreamServerInterceptor(logger)),
//	)
//
// [ServerOptions] and [DialOptions] bundle the interceptors together with
// otelgrpc stats handlers when OpenTelemetry instrumentation is wanted:
//
//	server := grpc.NewServer(slogscopegrpc.ServerOptions(logger)...)
//
// # Configuration
//
// Both sides accept functional options:
//   - [WithLevels]: customize how gRPC status codes map to log levels.
//   - [WithShouldLog]: filter which calls are logged.
//   - [WithSkipMethods]: exclude methods by substring match, such as health checks.
//   - [WithPayloadLogging] and [WithMaxPayloadSize]: log message payloads at DEBUG.
//   - [WithMetadataLogging] and [WithMetadataFilter]: log filtered metadata.
//   - [WithPanicRecovery]: disable the built-in recovery when another interceptor owns it.
//   - [WithContextLogger]: attach the per-call logger to the handler context.
//   - [WithStatsHandlers], [WithTracerProvider], [WithPropagators]: control the
//     otelgrpc instrumentation installed by [ServerOptions] and [DialOptions].
//
// By default all calls are logged, payloads and metadata are not, and the
// standard code mapping is used (OK and Canceled log at INFO, client errors
// at WARNING, server failures at ERROR).
package grpc
