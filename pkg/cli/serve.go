/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vercmp/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the version comparison HTTP API server",
		Description: `Run the HTTP API server exposing the version operations:

  GET  /v1/compare?a=<version>&b=<version>
  POST /v1/sort
  GET  /v1/validate?version=<version>
  POST /v1/check

plus /health, /ready, and /metrics. The server listens on PORT
(default 8080) and shuts down gracefully on SIGINT/SIGTERM.

This is the same server the vercmpd binary runs; the subcommand is a
convenience for local development.

# Examples

Run on the default port:
  vercmp serve

Run on a custom port with debug logging:
  PORT=9090 LOG_LEVEL=debug vercmp serve`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Serve()
		},
	}
}
