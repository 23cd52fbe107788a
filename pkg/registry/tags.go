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

package registry

import (
	"context"
	"log/slog"
	"sort"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/NVIDIA/vercmp/pkg/constraint"
	"github.com/NVIDIA/vercmp/pkg/defaults"
	apperrors "github.com/NVIDIA/vercmp/pkg/errors"
	"github.com/NVIDIA/vercmp/pkg/version"
)

// TagVersion pairs a registry tag with its parsed version.
type TagVersion struct {
	Tag     string          `json:"tag" yaml:"tag"`
	Version version.Version `json:"version" yaml:"version"`
}

// ListTags returns all tags for the target repository in registry
// order.
func (c *Client) ListTags(ctx context.Context, target string) ([]string, error) {
	ref, err := ParseReference(target)
	if err != nil {
		return nil, err
	}
	repo, err := c.repoFor(ref)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryTimeout)
	defer cancel()

	var tags []string
	if err := repo.Tags(ctx, "", func(page []string) error {
		tags = append(tags, page...)
		return nil
	}); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
			"failed to list repository tags", err,
			map[string]any{"repository": ref.RepositoryReference()})
	}

	slog.Debug("listed repository tags",
		slog.String("repository", ref.RepositoryReference()),
		slog.Int("count", len(tags)))
	return tags, nil
}

// Versions returns the target repository tags that parse as versions,
// ordered ascending. Tags that do not parse (e.g. "latest", branch
// names, digests) are skipped.
func (c *Client) Versions(ctx context.Context, target string) ([]TagVersion, error) {
	tags, err := c.ListTags(ctx, target)
	if err != nil {
		return nil, err
	}

	versions := make([]TagVersion, 0, len(tags))
	for _, tag := range tags {
		v, err := TagToVersion(tag)
		if err != nil {
			slog.Debug("skipping non-version tag", slog.String("tag", tag))
			continue
		}
		versions = append(versions, TagVersion{Tag: tag, Version: v})
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version.Compare(versions[j].Version) < 0
	})
	return versions, nil
}

// Latest returns the newest version tag in the target repository,
// optionally restricted to tags satisfying the constraint set. It
// fails with a NOT_FOUND error when no tag qualifies.
func (c *Client) Latest(ctx context.Context, target string, set constraint.Set) (*TagVersion, error) {
	versions, err := c.Versions(ctx, target)
	if err != nil {
		return nil, err
	}

	var newest *TagVersion
	for i := range versions {
		if len(set) > 0 && !set.Check(versions[i].Version) {
			continue
		}
		if newest == nil || versions[i].Version.IsNewer(newest.Version) {
			newest = &versions[i]
		}
	}
	if newest == nil {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"no version tag satisfies the constraints",
			map[string]any{"target": target, "constraints": set.String()})
	}
	return newest, nil
}

// Resolve returns the OCI descriptor for a tag in the target
// repository.
func (c *Client) Resolve(ctx context.Context, target, tag string) (ociv1.Descriptor, error) {
	ref, err := ParseReference(target)
	if err != nil {
		return ociv1.Descriptor{}, err
	}
	repo, err := c.repoFor(ref)
	if err != nil {
		return ociv1.Descriptor{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryResolveTimeout)
	defer cancel()

	desc, err := repo.Resolve(ctx, tag)
	if err != nil {
		return ociv1.Descriptor{}, apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
			"failed to resolve tag", err,
			map[string]any{"repository": ref.RepositoryReference(), "tag": tag})
	}
	return desc, nil
}
