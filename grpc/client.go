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
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/quillback/slogscope"
)

// UnaryClientInterceptor returns a [grpc.UnaryClientInterceptor] that logs
// outgoing calls through the provided logger.
//
// Entries carry an origin pinned to the dotted service and method of the
// call. A start entry is logged at INFO before the invocation and a finish
// entry afterwards at the level mapped from the final status code, with
// duration, code, and error. The current trace context is injected into
// outgoing metadata with the global OpenTelemetry propagator.
func UnaryClientInterceptor(logger *slogscope.Logger, opts ...Option) grpc.UnaryClientInterceptor {
	cfg := processOptions(opts...)

	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		callOpts ...grpc.CallOption,
	) (err error) {
		if !cfg.shouldLogFunc(ctx, method) {
			return invoker(ctx, method, req, reply, cc, callOpts...)
		}

		start := time.Now()
		service, methodName := splitMethodName(method)
		callLogger := logger.WithOrigin(originForCall(method))

		outgoingMD, _ := metadata.FromOutgoingContext(ctx)
		ctx = injectOutgoingTrace(ctx)

		var metadataAttrs []slog.Attr
		if cfg.logMetadata {
			if filtered := filterMetadata(outgoingMD, cfg.metadataFilterFunc); filtered != nil {
				metadataAttrs = append(metadataAttrs,
					slog.Group(grpcRequestMetadataKey, slog.Any(metadataValuesKey, filtered)))
			}
		}

		callLogger.LogAttrs(ctx, slogscope.LevelInfo, "Starting gRPC client call",
			slog.String(grpcServiceKey, service),
			slog.String(grpcMethodKey, methodName),
		)

		if cfg.logPayloads {
			logPayload(ctx, callLogger, cfg, "sent", req)
		}

		var headerMD, trailerMD metadata.MD
		finalCallOpts := append([]grpc.CallOption{grpc.Header(&headerMD), grpc.Trailer(&trailerMD)}, callOpts...)

		defer func() {
			if cfg.logMetadata {
				if filtered := filterMetadata(headerMD, cfg.metadataFilterFunc); filtered != nil {
					metadataAttrs = append(metadataAttrs,
						slog.Group(grpcResponseHeaderKey, slog.Any(metadataValuesKey, filtered)))
				}
				if filtered := filterMetadata(trailerMD, cfg.metadataFilterFunc); filtered != nil {
					metadataAttrs = append(metadataAttrs,
						slog.Group(grpcResponseTrailerKey, slog.Any(metadataValuesKey, filtered)))
				}
			}

			logAttrs := make([]slog.Attr, 0, 5+len(metadataAttrs))
			logAttrs = append(logAttrs,
				slog.String(grpcServiceKey, service),
				slog.String(grpcMethodKey, methodName),
			)
			logAttrs = append(logAttrs, assembleFinishAttrs(time.Since(start), err, "")...)
			logAttrs = append(logAttrs, metadataAttrs...)

			callLogger.LogAttrs(ctx, cfg.levelFunc(status.Code(err)), "Finished gRPC client call", logAttrs...)
		}()

		err = invoker(ctx, method, req, reply, cc, finalCallOpts...)

		if err == nil && cfg.logPayloads {
			logPayload(ctx, callLogger, cfg, "received", reply)
		}
		return err
	}
}

// StreamClientInterceptor returns a [grpc.StreamClientInterceptor] with the
// same logging behavior as [UnaryClientInterceptor]. The finish entry is
// emitted once, when the stream ends: on a failed send or close, on a
// receive error, or on io.EOF which finishes the call as OK.
func StreamClientInterceptor(logger *slogscope.Logger, opts ...Option) grpc.StreamClientInterceptor {
	cfg := processOptions(opts...)

	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		callOpts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		if !cfg.shouldLogFunc(ctx, method) {
			return streamer(ctx, desc, cc, method, callOpts...)
		}

		start := time.Now()
		service, methodName := splitMethodName(method)
		kind := clientStreamKind(desc)
		callLogger := logger.WithOrigin(originForCall(method))

		ctx = injectOutgoingTrace(ctx)

		callLogger.LogAttrs(ctx, slogscope.LevelInfo, "Starting gRPC client stream",
			slog.String(grpcServiceKey, service),
			slog.String(grpcMethodKey, methodName),
			slog.String(grpcKindKey, kind),
		)

		cs, err := streamer(ctx, desc, cc, method, callOpts...)
		if err != nil {
			callLogger.LogAttrs(ctx, cfg.levelFunc(status.Code(err)), "Finished gRPC client stream",
				slog.String(grpcServiceKey, service),
				slog.String(grpcMethodKey, methodName),
				slog.String(grpcKindKey, kind),
				slog.Duration(grpcDurationKey, time.Since(start)),
				slog.String(grpcCodeKey, status.Code(err).String()),
				slog.Any("error", err),
			)
			return nil, err
		}

		return &clientStream{
			ClientStream: cs,
			ctx:          ctx,
			logger:       callLogger,
			cfg:          cfg,
			service:      service,
			method:       methodName,
			kind:         kind,
			start:        start,
		}, nil
	}
}

// clientStreamKind reports the canonical kind string for a client stream.
func clientStreamKind(desc *grpc.StreamDesc) string {
	switch {
	case desc.ClientStreams && desc.ServerStreams:
		return "bidi_stream"
	case desc.ClientStreams:
		return "client_stream"
	case desc.ServerStreams:
		return "server_stream"
	default:
		return "unary"
	}
}

// clientStream finalizes the call log exactly once when the stream ends and
// logs individual messages when payload logging is enabled.
type clientStream struct {
	grpc.ClientStream
	ctx     context.Context
	logger  *slogscope.Logger
	cfg     *options
	service string
	method  string
	kind    string
	start   time.Time
	once    sync.Once
}

// SendMsg logs outbound messages and finalizes the call on send failure.
func (c *clientStream) SendMsg(m any) error {
	if c.cfg.logPayloads {
		logPayload(c.ctx, c.logger, c.cfg, "sent", m)
	}
	err := c.ClientStream.SendMsg(m)
	if err != nil {
		c.finish(err)
	}
	return err
}

// RecvMsg logs inbound messages and finalizes the call when the stream
// ends. io.EOF marks a normally completed stream and finishes as OK.
func (c *clientStream) RecvMsg(m any) error {
	err := c.ClientStream.RecvMsg(m)
	if err == nil {
		if c.cfg.logPayloads {
			logPayload(c.ctx, c.logger, c.cfg, "received", m)
		}
		return nil
	}
	if errors.Is(err, io.EOF) {
		c.finish(nil)
	} else {
		c.finish(err)
	}
	return err
}

// CloseSend closes the send side and finalizes the call on failure.
func (c *clientStream) CloseSend() error {
	err := c.ClientStream.CloseSend()
	if err != nil {
		c.finish(err)
	}
	return err
}

// finish emits the finish entry exactly once.
func (c *clientStream) finish(err error) {
	c.once.Do(func() {
		logAttrs := make([]slog.Attr, 0, 7)
		logAttrs = append(logAttrs,
			slog.String(grpcServiceKey, c.service),
			slog.String(grpcMethodKey, c.method),
			slog.String(grpcKindKey, c.kind),
		)
		logAttrs = append(logAttrs, assembleFinishAttrs(time.Since(c.start), err, "")...)
		c.logger.LogAttrs(c.ctx, c.cfg.levelFunc(status.Code(err)), "Finished gRPC client stream", logAttrs...)
	})
}
