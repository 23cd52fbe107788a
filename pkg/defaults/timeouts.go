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

package defaults

import "time"

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// HandlerTimeout is the timeout for individual API requests.
	// Comparison and validation are CPU-only and fast; the bound exists
	// so bulk sort requests cannot hold a connection open indefinitely.
	HandlerTimeout = 10 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Registry timeouts for OCI registry operations.
const (
	// RegistryTimeout is the total timeout for a tag listing operation.
	// Large repositories page through many tag batches.
	RegistryTimeout = 60 * time.Second

	// RegistryResolveTimeout is the timeout for resolving a single tag
	// to its manifest descriptor.
	RegistryResolveTimeout = 15 * time.Second
)

// Cluster timeouts for Kubernetes API operations.
const (
	// ClusterListTimeout is the timeout for listing pods in a namespace.
	ClusterListTimeout = 30 * time.Second

	// ClusterSurveyTimeout is the total timeout for a full image survey
	// across namespaces.
	ClusterSurveyTimeout = 2 * time.Minute
)

// CLI timeouts for command-line operations.
const (
	// CLITimeout is the default timeout for network-backed CLI commands
	// (tags, images, remote sort sources).
	CLITimeout = 2 * time.Minute
)
