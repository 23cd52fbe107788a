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
	"github.com/NVIDIA/vercmp/pkg/serializer"
	ver "github.com/NVIDIA/vercmp/pkg/version"
)

// checkResult is the serialized output of the check command.
type checkResult struct {
	Version   string             `json:"version" yaml:"version"`
	Satisfied bool               `json:"satisfied" yaml:"satisfied"`
	Details   []constraintResult `json:"details" yaml:"details"`
}

// constraintResult is the verdict for one constraint in the set.
type constraintResult struct {
	Constraint string `json:"constraint" yaml:"constraint"`
	Satisfied  bool   `json:"satisfied" yaml:"satisfied"`
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check a version against constraints",
		ArgsUsage:             "VERSION",
		Description: `Check whether a version satisfies a set of constraints.

Constraints combine with AND semantics: the version satisfies the set
only when every constraint holds. The command exits with a non-zero
status when the version does not satisfy the set, so it can gate CI
pipelines.

# Constraint Format

Constraint values use comparison operators:
  ">= 1.32.4"  - Greater than or equal
  "<= 1.33"    - Less than or equal
  "> 1.30"     - Greater than
  "< 2.0"      - Less than
  "== 1.2.3"   - Exact version match
  "!= 1.2.3"   - Not equal
  "1.2.3"      - Exact version match (no operator)

A single --constraint value may hold several comma-separated
constraints.

# Examples

Check a Kubernetes version against a supported range:
  vercmp check 1.32.4 -c ">= 1.30" -c "< 1.34"

Same range in one flag:
  vercmp check 1.32.4 -c ">= 1.30, < 1.34"

Gate a CI step:
  vercmp check "$K8S_VERSION" -c ">= 1.30" || exit 1`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "constraint",
				Aliases:  []string{"c"},
				Required: true,
				Usage:    "Constraint expression (can be repeated)",
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
				return fmt.Errorf("check requires exactly one version argument, got %d", cmd.Args().Len())
			}

			raw := cmd.Args().First()
			v, err := ver.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", raw, err)
			}

			set, err := constraint.ParseSet(strings.Join(cmd.StringSlice("constraint"), ","))
			if err != nil {
				return err
			}

			out := checkResult{Version: raw, Satisfied: true}
			for _, c := range set {
				ok := c.Check(v)
				if !ok {
					out.Satisfied = false
				}
				out.Details = append(out.Details, constraintResult{
					Constraint: c.String(),
					Satisfied:  ok,
				})
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(w)

			if err := w.Serialize(ctx, out); err != nil {
				return err
			}

			if !out.Satisfied {
				return fmt.Errorf("version %s does not satisfy %q", raw, set.String())
			}
			return nil
		},
	}
}
