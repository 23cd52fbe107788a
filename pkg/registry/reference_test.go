package registry

import (
	"errors"
	"testing"

	apperrors "github.com/NVIDIA/vercmp/pkg/errors"
	"github.com/NVIDIA/vercmp/pkg/version"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantReg     string
		wantRepo    string
		wantTag     string
		expectError bool
	}{
		{
			name:     "scheme with repository",
			target:   "oci://ghcr.io/org/repo",
			wantReg:  "ghcr.io",
			wantRepo: "org/repo",
		},
		{
			name:     "bare with tag",
			target:   "ghcr.io/org/repo:v1.2.3",
			wantReg:  "ghcr.io",
			wantRepo: "org/repo",
			wantTag:  "v1.2.3",
		},
		{
			name:     "docker hub shorthand",
			target:   "nginx",
			wantReg:  "docker.io",
			wantRepo: "library/nginx",
		},
		{
			name:     "registry with port",
			target:   "localhost:5000/team/app:1.0.0",
			wantReg:  "localhost:5000",
			wantRepo: "team/app",
			wantTag:  "1.0.0",
		},
		{name: "empty", target: "", expectError: true},
		{name: "scheme only", target: "oci://", expectError: true},
		{name: "uppercase repository", target: "ghcr.io/Org/Repo", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.target)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var se *apperrors.StructuredError
				if !errors.As(err, &se) || se.Code != apperrors.ErrCodeInvalidRequest {
					t.Errorf("expected INVALID_REQUEST, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Registry != tt.wantReg {
				t.Errorf("registry = %q, want %q", ref.Registry, tt.wantReg)
			}
			if ref.Repository != tt.wantRepo {
				t.Errorf("repository = %q, want %q", ref.Repository, tt.wantRepo)
			}
			if ref.Tag != tt.wantTag {
				t.Errorf("tag = %q, want %q", ref.Tag, tt.wantTag)
			}
		})
	}
}

func TestReferenceStrings(t *testing.T) {
	ref, err := ParseReference("ghcr.io/org/repo:v1.2.3")
	if err != nil {
		t.Fatalf("ParseReference: %v", err)
	}

	if got := ref.String(); got != "oci://ghcr.io/org/repo:v1.2.3" {
		t.Errorf("String() = %q", got)
	}
	if got := ref.ImageReference(); got != "ghcr.io/org/repo:v1.2.3" {
		t.Errorf("ImageReference() = %q", got)
	}
	if got := ref.RepositoryReference(); got != "ghcr.io/org/repo" {
		t.Errorf("RepositoryReference() = %q", got)
	}

	retagged := ref.WithTag("v2.0.0")
	if got := retagged.ImageReference(); got != "ghcr.io/org/repo:v2.0.0" {
		t.Errorf("WithTag ImageReference() = %q", got)
	}
	if ref.Tag != "v1.2.3" {
		t.Error("WithTag mutated the original reference")
	}

	untagged := ref.WithTag("")
	if got := untagged.String(); got != "oci://ghcr.io/org/repo" {
		t.Errorf("untagged String() = %q", got)
	}
}

func TestTagToVersion(t *testing.T) {
	tests := []struct {
		tag         string
		want        string
		expectError bool
	}{
		{tag: "v25.3.0", want: "25.3.0"},
		{tag: "25.3.0", want: "25.3.0"},
		{tag: "v2", want: "2"},
		{tag: "1.0.0-rc.1", want: "1.0.0-rc.1"},
		{tag: " v1.2.3 ", want: "1.2.3"},
		{tag: "latest", expectError: true},
		{tag: "main", expectError: true},
		{tag: "v", expectError: true},
		{tag: "version1", expectError: true},
		{tag: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			v, err := TagToVersion(tt.tag)
			if tt.expectError {
				if err == nil {
					t.Errorf("TagToVersion(%q): expected error", tt.tag)
				}
				return
			}
			if err != nil {
				t.Fatalf("TagToVersion(%q): %v", tt.tag, err)
			}
			if !v.Equals(version.MustParse(tt.want)) {
				t.Errorf("TagToVersion(%q) = %v, want %v", tt.tag, v, tt.want)
			}
		})
	}
}

func TestExtractVersion(t *testing.T) {
	v, err := ExtractVersion("nvcr.io/nvidia/gpu-operator:v25.3.0")
	if err != nil {
		t.Fatalf("ExtractVersion: %v", err)
	}
	if !v.Equals(version.MustParse("25.3.0")) {
		t.Errorf("ExtractVersion = %v", v)
	}

	if _, err := ExtractVersion("nvcr.io/nvidia/gpu-operator"); err == nil {
		t.Error("expected error for untagged reference")
	}
	if _, err := ExtractVersion("ghcr.io/org/repo:latest"); err == nil {
		t.Error("expected error for non-version tag")
	}
}
