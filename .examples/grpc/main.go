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

// Command grpc serves the standard health service with slogscope
// interceptors on both ends of the connection, so every call is logged
// once by the client and once by the server.
package main

import (
	"context"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/quillback/slogscope"
	slogscopegrpc "github.com/quillback/slogscope/grpc"
)

func main() {
	logger := slogscope.New()
	defer logger.Close()

	if err := run(context.Background(), logger); err != nil {
		log.Fatalf("grpc example failed: %v", err)
	}
}

func run(ctx context.Context, logger *slogscope.Logger) error {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}

	srv := grpc.NewServer(slogscopegrpc.ServerOptions(logger)...)
	healthpb.RegisterHealthServer(srv, health.NewServer())
	go func() {
		if serr := srv.Serve(lis); serr != nil {
			logger.Error("server stopped", "error", serr)
		}
	}()
	defer srv.GracefulStop()

	dialOpts := append(
		slogscopegrpc.DialOptions(logger),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	conn, err := grpc.NewClient(lis.Addr().String(), dialOpts...)
	if err != nil {
		return err
	}
	defer conn.Close()

	callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return err
	}
	logger.Info("health check complete", "status", resp.GetStatus().String())
	return nil
}
