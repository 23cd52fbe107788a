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

package cluster

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/vercmp/pkg/defaults"
	apperrors "github.com/NVIDIA/vercmp/pkg/errors"
	"github.com/NVIDIA/vercmp/pkg/registry"
	"github.com/NVIDIA/vercmp/pkg/version"
)

// surveyConcurrency caps concurrent namespace listings.
const surveyConcurrency = 4

// Image is one unique container image observed in a survey.
type Image struct {
	// Repository is the registry-qualified repository the image came from.
	Repository string `json:"repository" yaml:"repository"`
	// Tag is the image tag; "latest" when the reference carried none.
	Tag string `json:"tag" yaml:"tag"`
	// Version is the tag parsed as a version, nil when the tag is not
	// a version (e.g. "latest", branch builds).
	Version *version.Version `json:"version,omitempty" yaml:"version,omitempty"`
	// Containers is the number of containers running the image.
	Containers int `json:"containers" yaml:"containers"`
}

// Survey summarizes the container images running in a cluster.
type Survey struct {
	// Namespaces lists the surveyed namespaces; empty means all.
	Namespaces []string `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	// Pods is the number of pods observed.
	Pods int `json:"pods" yaml:"pods"`
	// Images are the unique images, sorted by repository then tag.
	Images []Image `json:"images" yaml:"images"`
	// SurveyedAt is when the survey was taken.
	SurveyedAt time.Time `json:"surveyed_at" yaml:"surveyed_at"`
}

// SurveyImages lists pods in the given namespaces (all namespaces when
// none are given) and returns the unique container images with their
// tags parsed as versions. Namespace listings run concurrently.
func SurveyImages(ctx context.Context, clientset Interface, namespaces ...string) (*Survey, error) {
	if clientset == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "kubernetes client is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ClusterSurveyTimeout)
	defer cancel()

	targets := namespaces
	if len(targets) == 0 {
		targets = []string{metav1.NamespaceAll}
	}

	var (
		mu       sync.Mutex
		podCount int
		counts   = make(map[string]int)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(surveyConcurrency)
	for _, namespace := range targets {
		g.Go(func() error {
			pods, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
				TimeoutSeconds: ptr.To(int64(defaults.ClusterListTimeout / time.Second)),
			})
			if err != nil {
				return apperrors.WrapWithContext(apperrors.ErrCodeInternal,
					"failed to list pods", err, map[string]any{"namespace": namespace})
			}

			mu.Lock()
			defer mu.Unlock()
			podCount += len(pods.Items)
			for _, pod := range pods.Items {
				for _, container := range pod.Spec.Containers {
					counts[container.Image]++
				}
				for _, container := range pod.Spec.InitContainers {
					counts[container.Image]++
				}
				for _, container := range pod.Spec.EphemeralContainers {
					counts[container.Image]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(counts))
	for ref, n := range counts {
		images = append(images, describeImage(ref, n))
	}
	sort.Slice(images, func(i, j int) bool {
		if images[i].Repository != images[j].Repository {
			return images[i].Repository < images[j].Repository
		}
		return images[i].Tag < images[j].Tag
	})

	slog.Debug("surveyed cluster images",
		slog.Int("pods", podCount),
		slog.Int("images", len(images)))

	return &Survey{
		Namespaces: namespaces,
		Pods:       podCount,
		Images:     images,
		SurveyedAt: time.Now().UTC(),
	}, nil
}

// describeImage resolves a raw container image reference into its
// repository, tag, and parsed version.
func describeImage(ref string, containers int) Image {
	img := Image{Repository: ref, Containers: containers}

	parsed, err := registry.ParseReference(ref)
	if err != nil {
		slog.Debug("unparseable image reference", slog.String("image", ref))
		return img
	}

	img.Repository = parsed.RepositoryReference()
	img.Tag = parsed.Tag
	if img.Tag == "" {
		// Untagged references pull "latest".
		img.Tag = "latest"
	}

	if v, err := registry.TagToVersion(img.Tag); err == nil {
		img.Version = &v
	}
	return img
}
