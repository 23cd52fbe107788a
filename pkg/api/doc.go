// Package api provides the HTTP API layer for the vercmp service.
//
// This package acts as a thin wrapper around the reusable pkg/server
// package, configuring it with the version comparison routes. The
// handlers translate HTTP requests into pkg/version and pkg/constraint
// calls and render the results as JSON.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/vercmp/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - GET  /v1/compare  - Compare two versions given as query parameters
//   - POST /v1/sort     - Sort a list of versions from the request body
//   - GET  /v1/validate - Validate a single version given as query parameter
//   - POST /v1/check    - Evaluate a version against constraint expressions
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Query Parameters
//
// GET /v1/compare accepts:
//   - a: left-hand version (e.g. 1.2.0)
//   - b: right-hand version (e.g. 1.10.0-rc.1)
//
// GET /v1/validate accepts:
//   - version: the version string to validate
//
// # Request Bodies
//
// POST endpoints accept JSON (application/json, the default) and YAML
// (application/yaml, application/x-yaml, text/yaml) bodies.
//
// Example sort request:
//
//	{"versions": ["2.0.0", "1.0.0-rc.1", "1.10", "1.2"], "reverse": false}
//
// Example check request:
//
//	{"version": "1.32.4", "constraints": [">= 1.30", "< 2.0"]}
//
// Example curl command:
//
//	curl -X POST http://localhost:8080/v1/sort \
//	  -H "Content-Type: application/json" \
//	  -d '{"versions": ["1.10", "1.2", "1.0.0"]}'
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/vercmp/pkg/api.version=1.0.0'"
package api
