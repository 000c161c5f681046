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
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/quillback/slogscope"
	"github.com/quillback/slogscope/panichook"
)

// UnaryServerInterceptor returns a [grpc.UnaryServerInterceptor] that logs
// incoming calls through the provided logger.
//
// Each logged entry carries an origin pinned to the dotted service and
// method of the call, so origin filters on scoped sinks match RPC traffic.
// The interceptor logs a start entry at INFO, then a finish entry whose
// level is derived from the final status code via the configured
// [CodeToLevel] mapping, with duration, code, peer address, and error.
//
// Trace context is extracted from incoming metadata with the global
// OpenTelemetry propagator before the handler runs. Handler panics are
// recovered, routed through [panichook.Dispatch], and converted to a
// codes.Internal reply; [WithPanicRecovery](false) leaves recovery to an
// outer interceptor.
//
// With [WithContextLogger] enabled (the default), the per-call logger is
// attached to the handler context and retrievable with
// [slogscope.FromContext].
func UnaryServerInterceptor(logger *slogscope.Logger, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := processOptions(opts...)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp any, err error) {
		if !cfg.shouldLogFunc(ctx, info.FullMethod) {
			return handler(ctx, req)
		}

		var incomingMD metadata.MD
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			incomingMD = md
			ctx = extractIncomingTrace(ctx, md)
		}

		peerAddr := "unknown"
		if p, ok := peer.FromContext(ctx); ok {
			peerAddr = p.Addr.String()
		}

		start := time.Now()
		service, method := splitMethodName(info.FullMethod)
		callLogger := logger.WithOrigin(originForCall(info.FullMethod))
		if cfg.attachLogger {
			ctx = slogscope.ContextWithLogger(ctx, callLogger)
		}

		var metadataAttrs []slog.Attr
		if cfg.logMetadata {
			if filtered := filterMetadata(incomingMD, cfg.metadataFilterFunc); filtered != nil {
				metadataAttrs = append(metadataAttrs,
					slog.Group(grpcRequestMetadataKey, slog.Any(metadataValuesKey, filtered)))
			}
		}

		callLogger.LogAttrs(ctx, slogscope.LevelInfo, "Starting gRPC call",
			slog.String(grpcServiceKey, service),
			slog.String(grpcMethodKey, method),
			slog.String(peerAddressKey, peerAddr),
		)

		if cfg.logPayloads {
			logPayload(ctx, callLogger, cfg, "received", req)
		}

		defer func() {
			var panicked bool
			if cfg.panicRecovery {
				if v := recover(); v != nil {
					panicked = true
					panichook.Dispatch(v)
					resp = nil
					err = status.Error(codes.Internal, "internal server error")
				}
			}

			level := cfg.levelFunc(status.Code(err))
			if panicked {
				level = slogscope.LevelError
			}

			logAttrs := make([]slog.Attr, 0, 6+len(metadataAttrs))
			logAttrs = append(logAttrs,
				slog.String(grpcServiceKey, service),
				slog.String(grpcMethodKey, method),
			)
			logAttrs = append(logAttrs, assembleFinishAttrs(time.Since(start), err, peerAddr)...)
			logAttrs = append(logAttrs, metadataAttrs...)

			msg := "Finished gRPC call"
			if panicked {
				msg = "Finished gRPC call after panic recovery"
			}
			callLogger.LogAttrs(ctx, level, msg, logAttrs...)
		}()

		resp, err = handler(ctx, req)

		if err == nil && cfg.logPayloads {
			logPayload(ctx, callLogger, cfg, "sent", resp)
		}
		return resp, err
	}
}

// StreamServerInterceptor returns a [grpc.StreamServerInterceptor] with the
// same logging behavior as [UnaryServerInterceptor]. The finish entry
// additionally records the stream kind, and individual messages are logged
// only when payload logging is enabled.
func StreamServerInterceptor(logger *slogscope.Logger, opts ...Option) grpc.StreamServerInterceptor {
	cfg := processOptions(opts...)

	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) (err error) {
		ctx := ss.Context()
		if !cfg.shouldLogFunc(ctx, info.FullMethod) {
			return handler(srv, ss)
		}

		var incomingMD metadata.MD
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			incomingMD = md
			ctx = extractIncomingTrace(ctx, md)
		}

		peerAddr := "unknown"
		if p, ok := peer.FromContext(ctx); ok {
			peerAddr = p.Addr.String()
		}

		start := time.Now()
		service, method := splitMethodName(info.FullMethod)
		kind := streamKind(info)
		callLogger := logger.WithOrigin(originForCall(info.FullMethod))
		if cfg.attachLogger {
			ctx = slogscope.ContextWithLogger(ctx, callLogger)
		}

		var metadataAttrs []slog.Attr
		if cfg.logMetadata {
			if filtered := filterMetadata(incomingMD, cfg.metadataFilterFunc); filtered != nil {
				metadataAttrs = append(metadataAttrs,
					slog.Group(grpcRequestMetadataKey, slog.Any(metadataValuesKey, filtered)))
			}
		}

		callLogger.LogAttrs(ctx, slogscope.LevelInfo, "Starting gRPC stream",
			slog.String(grpcServiceKey, service),
			slog.String(grpcMethodKey, method),
			slog.String(grpcKindKey, kind),
			slog.String(peerAddressKey, peerAddr),
		)

		wrapped := &serverStream{
			ServerStream: ss,
			ctx:          ctx,
			logger:       callLogger,
			cfg:          cfg,
		}

		defer func() {
			var panicked bool
			if cfg.panicRecovery {
				if v := recover(); v != nil {
					panicked = true
					panichook.Dispatch(v)
					err = status.Error(codes.Internal, "internal server error")
				}
			}

			level := cfg.levelFunc(status.Code(err))
			if panicked {
				level = slogscope.LevelError
			}

			logAttrs := make([]slog.Attr, 0, 7+len(metadataAttrs))
			logAttrs = append(logAttrs,
				slog.String(grpcServiceKey, service),
				slog.String(grpcMethodKey, method),
				slog.String(grpcKindKey, kind),
			)
			logAttrs = append(logAttrs, assembleFinishAttrs(time.Since(start), err, peerAddr)...)
			logAttrs = append(logAttrs, metadataAttrs...)

			msg := "Finished gRPC stream"
			if panicked {
				msg = "Finished gRPC stream after panic recovery"
			}
			callLogger.LogAttrs(ctx, level, msg, logAttrs...)
		}()

		return handler(srv, wrapped)
	}
}

// streamKind reports the canonical kind string for a server stream.
func streamKind(info *grpc.StreamServerInfo) string {
	switch {
	case info.IsClientStream && info.IsServerStream:
		return "bidi_stream"
	case info.IsClientStream:
		return "client_stream"
	case info.IsServerStream:
		return "server_stream"
	default:
		return "unary"
	}
}

// serverStream carries the trace-extracted context to the handler and logs
// stream messages when payload logging is enabled.
type serverStream struct {
	grpc.ServerStream
	ctx    context.Context
	logger *slogscope.Logger
	cfg    *options
}

// Context returns the request context for the wrapped server stream.
func (s *serverStream) Context() context.Context {
	return s.ctx
}

// RecvMsg logs inbound messages after delegating to the underlying stream.
func (s *serverStream) RecvMsg(m any) error {
	err := s.ServerStream.RecvMsg(m)
	if err == nil && s.cfg.logPayloads {
		logPayload(s.ctx, s.logger, s.cfg, "received", m)
	}
	return err
}

// SendMsg logs outbound messages before delegating to the underlying stream.
func (s *serverStream) SendMsg(m any) error {
	if s.cfg.logPayloads {
		logPayload(s.ctx, s.logger, s.cfg, "sent", m)
	}
	return s.ServerStream.SendMsg(m)
}
