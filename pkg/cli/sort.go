/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/vercmp/pkg/defaults"
	"github.com/NVIDIA/vercmp/pkg/serializer"
	ver "github.com/NVIDIA/vercmp/pkg/version"
)

func sortCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sort",
		EnableShellCompletion: true,
		Usage:                 "Sort version strings by precedence",
		ArgsUsage:             "[VERSION...]",
		Description: `Sort version strings in ascending precedence order.

Versions come from the command arguments, from a file (--file), or
from an HTTP(S) URL (--url); exactly one source must be used. File and
URL content can be a JSON or YAML list, an object with a top-level
"versions" key, or plain whitespace-delimited text.

Sorting is strict: any input that does not parse as a version fails
the command.

# Examples

Sort versions given as arguments:
  vercmp sort 2.0.0 1.0.0-rc.1 1.10 1.2

Newest first:
  vercmp sort --reverse 1.2 1.10 2.0.0

Print only the newest version from a file:
  vercmp sort --file versions.yaml --latest

Sort a list fetched over HTTP:
  vercmp sort --url https://example.com/releases.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to a file containing versions (JSON/YAML list or plain text)",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "HTTP(S) URL returning versions (JSON/YAML list or plain text)",
			},
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "Sort in descending order (newest first)",
			},
			&cli.BoolFlag{
				Name:  "latest",
				Usage: "Print only the newest version",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			raws, err := loadVersions(ctx, cmd)
			if err != nil {
				return err
			}
			if len(raws) == 0 {
				return fmt.Errorf("no versions to sort")
			}

			sorted, err := ver.SortStrings(raws)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(w)

			if cmd.Bool("latest") {
				return w.Serialize(ctx, sorted[len(sorted)-1])
			}

			if cmd.Bool("reverse") {
				slices.Reverse(sorted)
			}
			return w.Serialize(ctx, sorted)
		},
	}
}

// loadVersions resolves the version inputs from exactly one of the
// supported sources.
func loadVersions(ctx context.Context, cmd *cli.Command) ([]string, error) {
	filePath := cmd.String("file")
	url := cmd.String("url")

	sources := 0
	if cmd.Args().Len() > 0 {
		sources++
	}
	if filePath != "" {
		sources++
	}
	if url != "" {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("provide versions as arguments, via --file, or via --url")
	}
	if sources > 1 {
		return nil, fmt.Errorf("versions can come from only one source: arguments, --file, or --url")
	}

	switch {
	case filePath != "":
		return loadVersionsFromFile(filePath)
	case url != "":
		ctx, cancel := context.WithTimeout(ctx, defaults.CLITimeout)
		defer cancel()

		data, err := serializer.NewHTTPReader().ReadWithContext(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %q: %w", url, err)
		}
		return parseVersionList(data), nil
	default:
		return cmd.Args().Slice(), nil
	}
}

// versionDocument is the wrapped file form: an object with a
// top-level "versions" key.
type versionDocument struct {
	Versions []string `json:"versions" yaml:"versions"`
}

// loadVersionsFromFile reads a version list from a local file. Files
// with structured extensions decode through the serializer as a bare
// list or a wrapped document; anything else is whitespace-delimited
// text.
func loadVersionsFromFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		if list, err := serializer.FromFile[[]string](path); err == nil {
			return *list, nil
		}
		wrapped, err := serializer.FromFile[versionDocument](path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse version list from %q: %w", path, err)
		}
		return wrapped.Versions, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		return strings.Fields(string(data)), nil
	}
}

// parseVersionList decodes a version list from raw bytes. JSON and
// YAML lists are supported directly or under a top-level "versions"
// key; anything else is treated as whitespace-delimited text.
func parseVersionList(data []byte) []string {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list
	}

	var wrapped struct {
		Versions []string `yaml:"versions"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Versions) > 0 {
		return wrapped.Versions
	}

	return strings.Fields(string(data))
}
