// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package server provides a reusable HTTP server with the middleware,
// probes, and observability the vercmp services share. Application
// packages supply their route handlers; this package supplies
// everything around them.
//
// # Architecture
//
// The server wraps registered handlers with a common middleware chain:
//
//   - Prometheus metrics (request rate, latency, in-flight gauge)
//   - API version negotiation via Accept header
//   - Request ID extraction or generation (X-Request-Id, UUID format)
//   - Panic recovery
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Request logging
//
// System endpoints bypass the chain: /health and /ready serve
// Kubernetes probes, /metrics serves Prometheus scrapes. When no
// handler is registered for "/", a default root handler answers with
// the server identity and its route list.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("vercmpd"),
//	    server.WithVersion("1.0.0"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/compare": handleCompare,
//	    }),
//	)
//
//	if err := s.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until the context is canceled or a SIGINT/SIGTERM
// arrives, then drains in-flight requests within the configured
// shutdown timeout. When started under systemd, readiness and
// stopping states are reported through the notify socket.
//
// # Configuration
//
// Defaults come from NewConfig and may be overridden per field or via
// environment variables:
//
//   - PORT: HTTP server port (default: 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown window, useful to
//     match the Kubernetes eviction grace period
//   - RATE_LIMIT: requests per second admitted per instance, with
//     burst kept at twice the limit (default: 100)
//
// # Error Handling
//
// All errors share one JSON shape, written by WriteError and
// WriteErrorFromErr:
//
//	{
//	  "code": "INVALID_VERSION",
//	  "message": "version failed validation",
//	  "details": {"version": "1..0"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-06-22T12:00:00Z",
//	  "retryable": false
//	}
//
// Structured errors from pkg/errors map to HTTP statuses by code;
// anything else becomes a retryable 500 INTERNAL.
package server
