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

// Package defaults provides centralized configuration constants for vercmp.
//
// This package defines timeout values and limits used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Server timeouts: For HTTP server configuration
//   - Handler timeouts: For HTTP request processing
//   - HTTP client timeouts: For outbound HTTP requests
//   - Registry timeouts: For OCI registry operations
//   - Cluster timeouts: For Kubernetes API operations
//   - CLI timeouts: For command-line operations
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/vercmp/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// Inner operations should time out before the operations that wrap them,
// so callers get a useful error instead of a blown request deadline.
package defaults
