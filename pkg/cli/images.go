/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vercmp/pkg/cluster"
	"github.com/NVIDIA/vercmp/pkg/serializer"
)

func imagesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "images",
		EnableShellCompletion: true,
		Usage:                 "Survey container image versions running in a cluster",
		Description: `Survey the container images running in a Kubernetes cluster and
report each unique image with its tag parsed as a version.

The survey lists pods in the given namespaces (all namespaces when
none are given) and deduplicates the images their containers run.
Images whose tags do not parse as versions (latest, branch builds)
are still listed, without the parsed version field.

Cluster access uses the standard kubeconfig discovery: the
--kubeconfig flag, the KUBECONFIG environment variable,
$HOME/.kube/config, or the in-cluster service account.

# Examples

Survey the whole cluster:
  vercmp images

Survey specific namespaces as JSON:
  vercmp images -n gpu-operator -n kube-system --format json`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Namespace to survey (can be repeated; default: all namespaces)",
			},
			kubeconfigFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			clientset, _, err := cluster.BuildKubeClient(cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to connect to cluster: %w", err)
			}

			survey, err := cluster.SurveyImages(ctx, clientset, cmd.StringSlice("namespace")...)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeWriter(w)

			return w.Serialize(ctx, survey)
		},
	}
}
