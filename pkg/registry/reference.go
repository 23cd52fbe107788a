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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/vercmp/pkg/errors"
	"github.com/NVIDIA/vercmp/pkg/version"
)

// URIScheme is the optional URI scheme for registry targets
// (e.g., "oci://ghcr.io/org/repo").
const URIScheme = "oci://"

// Reference represents a parsed registry target.
type Reference struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "nvidia/gpu-operator").
	Repository string
	// Tag is the image tag. Empty when the target names a whole repository.
	Tag string
}

// ParseReference parses a registry target string. The oci:// scheme is
// optional; bare references are normalized the way Docker normalizes
// them (e.g., "nginx" becomes "docker.io/library/nginx").
func ParseReference(target string) (*Reference, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(target, URIScheme))
	if trimmed == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "registry target cannot be empty")
	}

	ref, err := reference.ParseNormalizedNamed(trimmed)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid registry reference", err, map[string]any{"target": target})
	}

	parsed := &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		parsed.Tag = tagged.Tag()
	}
	return parsed, nil
}

// String returns the full reference string with the oci:// scheme.
func (r *Reference) String() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s%s/%s", URIScheme, r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s%s/%s:%s", URIScheme, r.Registry, r.Repository, r.Tag)
}

// ImageReference returns the Docker-style image reference without the
// oci:// scheme.
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return r.RepositoryReference()
	}
	return fmt.Sprintf("%s:%s", r.RepositoryReference(), r.Tag)
}

// RepositoryReference returns the registry/repository pair without tag.
func (r *Reference) RepositoryReference() string {
	return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
}

// WithTag returns a copy of the reference with the specified tag.
func (r *Reference) WithTag(tag string) *Reference {
	return &Reference{
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}

// TagToVersion parses a registry tag as a version. A single leading
// "v" before a digit is stripped first, so "v25.3.0" and "25.3.0"
// parse to the same version.
func TagToVersion(tag string) (version.Version, error) {
	trimmed := strings.TrimSpace(tag)
	if len(trimmed) > 1 && trimmed[0] == 'v' && trimmed[1] >= '0' && trimmed[1] <= '9' {
		trimmed = trimmed[1:]
	}
	return version.Parse(trimmed)
}

// ExtractVersion parses the tag of a full image reference as a
// version, e.g. "nvcr.io/nvidia/gpu-operator:v25.3.0" yields 25.3.0.
// It fails when the reference carries no tag or the tag is not a
// version.
func ExtractVersion(imageRef string) (version.Version, error) {
	ref, err := ParseReference(imageRef)
	if err != nil {
		return version.Version{}, err
	}
	if ref.Tag == "" {
		return version.Version{}, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"image reference carries no tag", map[string]any{"image": imageRef})
	}
	return TagToVersion(ref.Tag)
}
