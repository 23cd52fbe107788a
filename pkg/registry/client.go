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
	"crypto/tls"
	"net/http"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/NVIDIA/vercmp/pkg/errors"
)

// repository abstracts the remote repository surface the client uses.
// oras remote.Repository satisfies it; tests substitute fakes.
type repository interface {
	Tags(ctx context.Context, last string, fn func(tags []string) error) error
	Resolve(ctx context.Context, reference string) (ociv1.Descriptor, error)
}

// Client queries OCI registries for version tags.
type Client struct {
	plainHTTP   bool
	insecureTLS bool
	repoFor     func(ref *Reference) (repository, error)
}

// Option configures a Client.
type Option func(*Client)

// WithPlainHTTP uses HTTP instead of HTTPS for registry connections.
func WithPlainHTTP(plain bool) Option {
	return func(c *Client) { c.plainHTTP = plain }
}

// WithInsecureTLS skips TLS certificate verification.
func WithInsecureTLS(insecure bool) Option {
	return func(c *Client) { c.insecureTLS = insecure }
}

// New creates a registry client with the specified options.
func New(options ...Option) *Client {
	c := &Client{}
	for _, opt := range options {
		opt(c)
	}
	c.repoFor = c.remoteRepository
	return c
}

// remoteRepository prepares an authenticated oras repository handle.
func (c *Client) remoteRepository(ref *Reference) (repository, error) {
	repo, err := remote.NewRepository(ref.RepositoryReference())
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to initialize remote repository", err,
			map[string]any{"repository": ref.RepositoryReference()})
	}
	repo.PlainHTTP = c.plainHTTP
	repo.Client = c.authClient()
	return repo, nil
}

// authClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func (c *Client) authClient() *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !c.plainHTTP && c.insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client:     &http.Client{Transport: transport},
		Cache:      auth.NewCache(),
		Credential: credentials.Credential(credStore),
	}
}
