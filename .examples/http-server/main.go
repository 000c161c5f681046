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

// Command http-server wraps a mux with slogscope request logging. Each
// request produces a start and a finish record, the finish level derived
// from the response status; the health endpoint is skipped entirely.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/quillback/slogscope"
	slogscopehttp "github.com/quillback/slogscope/http"
)

func newHandler(logger *slogscope.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/flux", func(w http.ResponseWriter, r *http.Request) {
		// The middleware parks a request-scoped logger on the context.
		slogscope.FromContext(r.Context()).Info("computing flux estimate")
		fmt.Fprintln(w, "1.07")
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	wrap := slogscopehttp.Middleware(logger,
		slogscopehttp.WithOrigin("acme.fluxsim.http"),
		slogscopehttp.WithSkipPaths("/healthz"),
	)
	return wrap(mux)
}

func main() {
	logger := slogscope.New()
	defer logger.Close()

	addr := ":8080"
	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, newHandler(logger)); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
