// Package cli implements the vercmp command-line interface.
//
// # Overview
//
// The vercmp CLI compares, validates, sorts, and constraint-checks
// version strings, and inspects container registries and Kubernetes
// clusters for the versions actually deployed. It is designed for
// release tooling, CI gates, and cluster operators tracking component
// versions.
//
// # Commands
//
// compare - Compare two version strings:
//
//	vercmp compare 1.2.3 1.10.0
//
// Reports the three-way ordering (lesser, equal, greater) together
// with the normalized token views of both inputs.
//
// validate - Validate version strings:
//
//	vercmp validate 1.2.3 2.0-rc.1 [--quiet]
//
// Reports a per-input verdict and exits non-zero when any input is
// invalid.
//
// sort - Sort version strings:
//
//	vercmp sort 2.0.0 1.10 1.2 [--reverse] [--latest]
//	vercmp sort --file versions.yaml
//	vercmp sort --url https://example.com/releases.json
//
// Sorts versions from arguments, a file, or a URL in ascending
// precedence order.
//
// check - Check a version against constraints:
//
//	vercmp check 1.32.4 -c ">= 1.30" -c "< 1.34"
//
// Evaluates a constraint conjunction and exits non-zero when the
// version does not satisfy it.
//
// tags - List registry version tags:
//
//	vercmp tags ghcr.io/nvidia/gpu-operator [--latest [--digest]] [--all]
//
// Lists repository tags that parse as versions, sorted ascending.
//
// images - Survey cluster image versions:
//
//	vercmp images [--namespace NS] [--kubeconfig PATH]
//
// Lists the unique container images running in a cluster with their
// tags parsed as versions.
//
// serve - Run the HTTP API server:
//
//	vercmp serve
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--log-level    Logging verbosity (default: warn)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// YAML (default):
//   - Human-readable, pipe-friendly for scalar results
//
// JSON:
//   - Machine-parseable, includes normalized token views
//
// Table:
//   - Flattened key/value text representation for terminal viewing
//
// # Environment Variables
//
//	LOG_LEVEL   Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG  Kubeconfig path for the images command
//	PORT        Listen port for the serve command
//
// # Exit Codes
//
//	0  Success
//	1  Error: invalid arguments, invalid versions (validate), or an
//	   unsatisfied constraint set (check)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to
// specialized packages:
//   - pkg/version - Version parsing and comparison
//   - pkg/constraint - Constraint expressions
//   - pkg/registry - Registry tag listing
//   - pkg/cluster - Cluster image surveys
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/vercmp/pkg/cli.version=1.0.0'"
package cli
