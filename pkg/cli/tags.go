/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vercmp/pkg/constraint"
	"github.com/NVIDIA/vercmp/pkg/registry"
	"github.com/NVIDIA/vercmp/pkg/serializer"
)

// resolvedTag pairs a tag with its manifest digest.
type resolvedTag struct {
	Tag    string `json:"tag" yaml:"tag"`
	Digest string `json:"digest" yaml:"digest"`
}

func tagsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "tags",
		EnableShellCompletion: true,
		Usage:                 "List version tags for a container repository",
		ArgsUsage:             "REPOSITORY",
		Description: `List the tags of a container image repository that parse as
versions, sorted in ascending precedence order.

Tags that do not parse as versions (latest, branch names, digests) are
skipped unless --all is given, in which case every tag is listed in
registry order.

The repository reference may carry an explicit registry host; without
one, docker.io is assumed.

# Examples

List version tags, oldest to newest:
  vercmp tags ghcr.io/nvidia/gpu-operator

Print only the newest tag:
  vercmp tags --latest nvcr.io/nvidia/cuda

Newest tag within a supported range:
  vercmp tags --latest -c ">= 12.0, < 13.0" nvcr.io/nvidia/cuda

Pin the newest tag to its manifest digest:
  vercmp tags --latest --digest nvcr.io/nvidia/cuda

List every tag from a local registry over HTTP:
  vercmp tags --all --plain-http localhost:5000/my-app`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "latest",
				Usage: "Print only the newest version tag",
			},
			&cli.StringSliceFlag{
				Name:    "constraint",
				Aliases: []string{"c"},
				Usage:   "Only consider tags satisfying the constraint (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "digest",
				Usage: "With --latest, also resolve the tag's manifest digest",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "List every tag in registry order, including non-version tags",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the registry",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() != 1 {
				return fmt.Errorf("tags requires exactly one repository argument, got %d", cmd.Args().Len())
			}
			target := cmd.Args().First()

			if cmd.Bool("all") && (cmd.Bool("latest") || len(cmd.StringSlice("constraint")) > 0) {
				return fmt.Errorf("--all cannot be combined with --latest or --constraint")
			}
			if cmd.Bool("digest") && !cmd.Bool("latest") {
				return fmt.Errorf("--digest requires --latest")
			}

			client := registry.New(
				registry.WithPlainHTTP(cmd.Bool("plain-http")),
				registry.WithInsecureTLS(cmd.Bool("insecure-tls")),
			)

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(w)

			if cmd.Bool("all") {
				tags, err := client.ListTags(ctx, target)
				if err != nil {
					return err
				}
				return w.Serialize(ctx, tags)
			}

			var set constraint.Set
			if exprs := cmd.StringSlice("constraint"); len(exprs) > 0 {
				set, err = constraint.ParseSet(strings.Join(exprs, ","))
				if err != nil {
					return err
				}
			}

			if cmd.Bool("latest") {
				tv, err := client.Latest(ctx, target, set)
				if err != nil {
					return err
				}
				if cmd.Bool("digest") {
					desc, err := client.Resolve(ctx, target, tv.Tag)
					if err != nil {
						return err
					}
					return w.Serialize(ctx, resolvedTag{Tag: tv.Tag, Digest: desc.Digest.String()})
				}
				return w.Serialize(ctx, tv.Tag)
			}

			versions, err := client.Versions(ctx, target)
			if err != nil {
				return err
			}

			if len(set) > 0 {
				filtered := versions[:0]
				for _, tv := range versions {
					if set.Check(tv.Version) {
						filtered = append(filtered, tv)
					}
				}
				versions = filtered
			}

			return w.Serialize(ctx, versions)
		},
	}
}
