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
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/quillback/slogscope"
)

// logPayload renders a message as compact JSON and logs it at DEBUG,
// truncating to the configured size cap. Non-proto messages are logged by
// type only.
func logPayload(ctx context.Context, logger *slogscope.Logger, cfg *options, direction string, m any) {
	p, ok := m.(proto.Message)
	if !ok {
		logger.LogAttrs(ctx, slogscope.LevelDebug,
			fmt.Sprintf("gRPC payload %s (non-proto)", direction),
			slog.String(payloadDirectionKey, direction),
			slog.String(payloadTypeKey, fmt.Sprintf("%T", m)),
		)
		return
	}

	marshalOpts := protojson.MarshalOptions{
		AllowPartial:  true,
		UseProtoNames: true,
	}
	jsonBytes, err := marshalOpts.Marshal(p)
	if err != nil {
		logger.LogAttrs(ctx, slogscope.LevelWarning,
			"Failed to marshal gRPC payload for logging",
			slog.String(payloadDirectionKey, direction),
			slog.String(payloadTypeKey, fmt.Sprintf("%T", p)),
			slog.Any("error", err),
		)
		return
	}

	payload := string(jsonBytes)
	originalSize := len(payload)
	truncated := false
	if cfg.maxPayloadSize > 0 && originalSize > cfg.maxPayloadSize {
		payload = payload[:cfg.maxPayloadSize]
		truncated = true
	}

	attrs := []slog.Attr{
		slog.String(payloadDirectionKey, direction),
		slog.String(payloadTypeKey, fmt.Sprintf("%T", p)),
		slog.Bool(payloadTruncatedKey, truncated),
	}
	if truncated {
		attrs = append(attrs,
			slog.Int(payloadOriginalSizeKey, originalSize),
			slog.String(payloadPreviewKey, payload),
		)
	} else {
		attrs = append(attrs, slog.String(payloadKey, payload))
	}

	logger.LogAttrs(ctx, slogscope.LevelDebug,
		fmt.Sprintf("gRPC payload %s", direction), attrs...)
}
