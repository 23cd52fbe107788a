/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vercmp/pkg/serializer"
	ver "github.com/NVIDIA/vercmp/pkg/version"
)

// validationResult is the per-input verdict of the validate command.
type validationResult struct {
	Version string `json:"version" yaml:"version"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate version strings",
		ArgsUsage:             "VERSION [VERSION...]",
		Description: `Validate one or more version strings against the version grammar.

Each input gets a verdict with a reason when it fails. The command
exits with a non-zero status when any input is invalid, so it can gate
CI pipelines:

  vercmp validate "$RELEASE_TAG" || exit 1

Note that all-zero versions (0, 0.0, 0.0.0) are rejected: they are
reserved as "no version" placeholders.

# Examples

Validate a single version:
  vercmp validate 1.2.3-rc.1

Validate several at once, reporting each verdict as JSON:
  vercmp validate --format json 1.2.3 2.0 not-a-version

Use in scripts without output:
  vercmp validate --quiet "$TAG" && echo "tag ok"`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress the per-input report; signal validity via exit status only",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() == 0 {
				return fmt.Errorf("validate requires at least one version argument")
			}

			args := cmd.Args().Slice()
			results := make([]validationResult, 0, len(args))
			invalid := 0
			for _, raw := range args {
				res := validationResult{Version: raw, Valid: true}
				if err := ver.Validate(raw); err != nil {
					res.Valid = false
					res.Reason = err.Error()
					invalid++
				}
				results = append(results, res)
			}

			if !cmd.Bool("quiet") {
				w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
				defer closeWriter(w)

				if err := w.Serialize(ctx, results); err != nil {
					return err
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d version(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
}
