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
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/quillback/slogscope"
)

// ServerOptions returns [grpc.ServerOption] values installing the logging
// interceptors and, unless disabled with [WithStatsHandlers](false), an
// otelgrpc server stats handler for tracing and metrics.
func ServerOptions(logger *slogscope.Logger, opts ...Option) []grpc.ServerOption {
	cfg := processOptions(opts...)
	var serverOpts []grpc.ServerOption

	if cfg.statsHandlers {
		serverOpts = append(serverOpts,
			grpc.StatsHandler(otelgrpc.NewServerHandler(statsHandlerOptions(cfg)...)))
	}

	serverOpts = append(serverOpts,
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(logger, opts...)),
		grpc.ChainStreamInterceptor(StreamServerInterceptor(logger, opts...)),
	)
	return serverOpts
}

// DialOptions returns [grpc.DialOption] values installing the client
// logging interceptors and, unless disabled with [WithStatsHandlers](false),
// an otelgrpc client stats handler.
func DialOptions(logger *slogscope.Logger, opts ...Option) []grpc.DialOption {
	cfg := processOptions(opts...)
	var dialOpts []grpc.DialOption

	if cfg.statsHandlers {
		dialOpts = append(dialOpts,
			grpc.WithStatsHandler(otelgrpc.NewClientHandler(statsHandlerOptions(cfg)...)))
	}

	dialOpts = append(dialOpts,
		grpc.WithChainUnaryInterceptor(UnaryClientInterceptor(logger, opts...)),
		grpc.WithChainStreamInterceptor(StreamClientInterceptor(logger, opts...)),
	)
	return dialOpts
}

// statsHandlerOptions translates interceptor configuration into otelgrpc
// options.
func statsHandlerOptions(cfg *options) []otelgrpc.Option {
	var opts []otelgrpc.Option
	if cfg.tracerProvider != nil {
		opts = append(opts, otelgrpc.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.propagatorsSet && cfg.propagators != nil {
		opts = append(opts, otelgrpc.WithPropagators(cfg.propagators))
	}
	return opts
}
