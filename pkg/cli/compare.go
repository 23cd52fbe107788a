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

// compareResult is the serialized output of the compare command.
type compareResult struct {
	A        string      `json:"a" yaml:"a"`
	B        string      `json:"b" yaml:"b"`
	Result   int         `json:"result" yaml:"result"`
	Relation string      `json:"relation" yaml:"relation"`
	ATokens  []ver.Token `json:"a_tokens" yaml:"a_tokens"`
	BTokens  []ver.Token `json:"b_tokens" yaml:"b_tokens"`
}

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:                  "compare",
		EnableShellCompletion: true,
		Usage:                 "Compare two version strings",
		ArgsUsage:             "A B",
		Description: `Compare two version strings and report their ordering.

Both versions are normalized into token sequences before comparison:
numeric components compare as integers (so 1.10 is newer than 1.2),
pre-release identifiers (alpha, beta, rc, a, b, sr) order a version
before its release, and build metadata after "+" is ignored.

The result is -1 when A is older than B, 0 when they are equal, and
1 when A is newer than B. The relation field spells it out as lesser,
equal, or greater.

# Examples

Compare two versions:
  vercmp compare 1.2.3 1.10.0

Get the result as JSON, including the normalized token views:
  vercmp compare --format json 2.0.0-rc.1 2.0.0`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() != 2 {
				return fmt.Errorf("compare requires exactly two version arguments, got %d", cmd.Args().Len())
			}

			a := cmd.Args().Get(0)
			b := cmd.Args().Get(1)

			va, err := ver.Parse(a)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", a, err)
			}
			vb, err := ver.Parse(b)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", b, err)
			}

			res := va.Compare(vb)
			out := compareResult{
				A:        a,
				B:        b,
				Result:   res,
				Relation: ver.Relation(res),
				ATokens:  va.Tokens(),
				BTokens:  vb.Tokens(),
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(w)

			return w.Serialize(ctx, out)
		},
	}
}
