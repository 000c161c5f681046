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
	"log/slog"
	"path"
	"strings"
	"time"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Attribute keys shared by the client and server interceptors. The fixed
// schema keeps gRPC traffic queryable across services.
const (
	grpcServiceKey  = "grpc.service"
	grpcMethodKey   = "grpc.method"
	grpcKindKey     = "grpc.kind"
	grpcCodeKey     = "grpc.code"
	grpcDurationKey = "grpc.duration"
	peerAddressKey  = "peer.address"

	grpcRequestMetadataKey = "grpc.request.metadata"
	grpcResponseHeaderKey  = "grpc.response.header"
	grpcResponseTrailerKey = "grpc.response.trailer"
	metadataValuesKey      = "values"

	payloadDirectionKey    = "grpc.payload.direction"
	payloadTypeKey         = "grpc.payload.type"
	payloadKey             = "grpc.payload.content"
	payloadPreviewKey      = "grpc.payload.preview"
	payloadTruncatedKey    = "grpc.payload.truncated"
	payloadOriginalSizeKey = "grpc.payload.original_size"
)

// splitMethodName parses a gRPC full method name of the form
// "/package.Service/Method" into its service and method components. A
// missing leading slash is tolerated, and a method with no service part
// reports the service as "unknown".
func splitMethodName(fullMethod string) (service, method string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	service = path.Dir(fullMethod)
	method = path.Base(fullMethod)
	if service == "." || service == "" {
		service = "unknown"
	}
	return service, method
}

// originForCall builds the dotted origin recorded on every entry for a
// call: the proto package, service, and method joined with dots, matching
// the shape package loggers report. "/users.UserService/GetUser" becomes
// "users.UserService.GetUser".
func originForCall(fullMethod string) string {
	service, method := splitMethodName(fullMethod)
	if method == "" || method == "." {
		return service
	}
	return service + "." + method
}

// filterMetadata returns a copy of md containing only the keys accepted by
// filter. Value slices are copied so the result never aliases the call's
// metadata. Returns nil when nothing survives the filter.
func filterMetadata(md metadata.MD, filter MetadataFilterFunc) metadata.MD {
	if filter == nil {
		filter = defaultMetadataFilter
	}
	if len(md) == 0 {
		return nil
	}
	filtered := metadata.MD{}
	for k, v := range md {
		if filter(k) {
			vals := make([]string, len(v))
			copy(vals, v)
			filtered[k] = vals
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// assembleFinishAttrs builds the shared tail attributes of a finish entry:
// duration, final status code, the peer address when known, and the error
// when the call failed.
func assembleFinishAttrs(duration time.Duration, err error, peerAddr string) []slog.Attr {
	attrs := []slog.Attr{
		slog.Duration(grpcDurationKey, duration),
		slog.String(grpcCodeKey, status.Code(err).String()),
	}
	if peerAddr != "" {
		attrs = append(attrs, slog.String(peerAddressKey, peerAddr))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	return attrs
}
