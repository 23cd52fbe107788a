package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/vercmp/pkg/logging"
	"github.com/NVIDIA/vercmp/pkg/server"
)

const (
	name           = "vercmpd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/vercmp/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	h := NewHandler()

	r := map[string]http.HandlerFunc{
		"/v1/compare":  h.HandleCompare,
		"/v1/sort":     h.HandleSort,
		"/v1/validate": h.HandleValidate,
		"/v1/check":    h.HandleCheck,
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
