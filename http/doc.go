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

// Package http provides server middleware and a client transport that log
// HTTP traffic through a [slogscope.Logger].
//
// [Middleware] wraps an [net/http.Handler]: it logs a start entry when a
// request arrives and a finish entry with status code, duration, and
// response size when it completes, at a level derived from the status code.
// Entries carry the origin "http.server" unless overridden with
// [WithOrigin], so origin filters on scoped sinks select server traffic as
// a unit. The per-request logger is attached to the request context and
// retrievable in handlers with [slogscope.FromContext]. Handler panics are
// recovered, routed through [panichook.Dispatch], and answered with status
// 500 when no response has been written yet.
//
// [Transport] wraps an [net/http.RoundTripper] and logs outbound requests
// the same way under the origin "http.client", injecting the current trace
// context into request headers with the global OpenTelemetry propagator.
//
// With [WithTelemetry](true), the middleware is wrapped in
// [otelhttp.NewHandler] and the transport in [otelhttp.NewTransport], which
// take over span creation and context propagation.
//
// # Usage
//
//	logger := slogscope.New()
//	defer logger.Close()
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/users", listUsers)
//
//	srv := &http.Server{
//	    Addr:    ":8080",
//	    Handler: slogscopehttp.Middleware(logger)(mux),
//	}
//
//	client := &http.Client{
//	    Transport: slogscopehttp.Transport(logger, nil),
//	}
package http
