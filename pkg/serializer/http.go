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

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/NVIDIA/vercmp/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial
// responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// HTTPReaderUserAgent identifies reader requests to remote servers.
const HTTPReaderUserAgent = "vercmp-serializer/1.0"

// httpReaderConfig collects the knobs an HTTPReader is built from.
// Options mutate the config; the reader and its transport are built
// once from the final state.
type httpReaderConfig struct {
	userAgent             string
	totalTimeout          time.Duration
	connectTimeout        time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	maxConnsPerHost       int
	insecureSkipVerify    bool
	client                *http.Client
}

func defaultHTTPReaderConfig() httpReaderConfig {
	return httpReaderConfig{
		userAgent:             HTTPReaderUserAgent,
		totalTimeout:          defaults.HTTPClientTimeout,
		connectTimeout:        defaults.HTTPConnectTimeout,
		keepAlive:             defaults.HTTPKeepAlive,
		tlsHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		responseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		idleConnTimeout:       defaults.HTTPIdleConnTimeout,
		maxIdleConns:          100,
		maxIdleConnsPerHost:   10,
		maxConnsPerHost:       0,
	}
}

// HTTPReaderOption configures an HTTPReader.
type HTTPReaderOption func(*httpReaderConfig)

// WithUserAgent overrides the User-Agent header sent with requests.
func WithUserAgent(userAgent string) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.userAgent = userAgent }
}

// WithTotalTimeout bounds the entire request including body read.
func WithTotalTimeout(timeout time.Duration) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.totalTimeout = timeout }
}

// WithConnectTimeout bounds connection establishment.
func WithConnectTimeout(timeout time.Duration) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.connectTimeout = timeout }
}

// WithTLSHandshakeTimeout bounds the TLS handshake.
func WithTLSHandshakeTimeout(timeout time.Duration) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.tlsHandshakeTimeout = timeout }
}

// WithResponseHeaderTimeout bounds the wait for response headers.
func WithResponseHeaderTimeout(timeout time.Duration) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.responseHeaderTimeout = timeout }
}

// WithIdleConnTimeout bounds how long idle connections are kept.
func WithIdleConnTimeout(timeout time.Duration) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.idleConnTimeout = timeout }
}

// WithMaxIdleConns caps the idle connection pool across all hosts.
func WithMaxIdleConns(n int) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.maxIdleConns = n }
}

// WithMaxIdleConnsPerHost caps the idle connection pool per host.
func WithMaxIdleConnsPerHost(n int) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.maxIdleConnsPerHost = n }
}

// WithMaxConnsPerHost caps total connections per host; zero means no limit.
func WithMaxConnsPerHost(n int) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.maxConnsPerHost = n }
}

// WithInsecureSkipVerify disables TLS certificate verification.
// Intended for tests against self-signed endpoints.
func WithInsecureSkipVerify(skip bool) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.insecureSkipVerify = skip }
}

// WithClient supplies a caller-owned *http.Client. When set, all
// transport-related options are ignored.
func WithClient(client *http.Client) HTTPReaderOption {
	return func(c *httpReaderConfig) { c.client = client }
}

// HTTPReader fetches data over HTTP with configurable timeouts and
// connection pooling.
type HTTPReader struct {
	userAgent string
	client    *http.Client
}

// NewHTTPReader creates a new HTTPReader with the specified options.
func NewHTTPReader(options ...HTTPReaderOption) *HTTPReader {
	cfg := defaultHTTPReaderConfig()
	for _, opt := range options {
		opt(&cfg)
	}

	if cfg.userAgent == "" {
		cfg.userAgent = HTTPReaderUserAgent
	}
	if cfg.client != nil {
		return &HTTPReader{userAgent: cfg.userAgent, client: cfg.client}
	}

	transport := &http.Transport{
		// Connection pooling
		MaxIdleConns:        cfg.maxIdleConns,
		MaxIdleConnsPerHost: cfg.maxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.maxConnsPerHost,

		// Timeouts
		DialContext: (&net.Dialer{
			Timeout:   cfg.connectTimeout,
			KeepAlive: cfg.keepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,

		// Connection reuse
		IdleConnTimeout:   cfg.idleConnTimeout,
		ForceAttemptHTTP2: true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.insecureSkipVerify,
		},
	}

	return &HTTPReader{
		userAgent: cfg.userAgent,
		client: &http.Client{
			Timeout:   cfg.totalTimeout,
			Transport: transport,
		},
	}
}

// Read fetches data from the specified URL and returns it as a byte slice.
func (r *HTTPReader) Read(url string) ([]byte, error) {
	return r.ReadWithContext(context.Background(), url)
}

// ReadWithContext fetches data from the specified URL and returns it as
// a byte slice. The request is bound to the provided context for
// cancellation and deadlines.
func (r *HTTPReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data: status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Download reads data from the specified URL and writes it to the given
// file path.
func (r *HTTPReader) Download(url, filePath string) error {
	return r.DownloadWithContext(context.Background(), url, filePath)
}

// DownloadWithContext reads data from the specified URL and writes it to
// the given file path. The request is bound to the provided context for
// cancellation and deadlines.
func (r *HTTPReader) DownloadWithContext(ctx context.Context, url, filePath string) error {
	data, err := r.ReadWithContext(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to read from url %s: %w", url, err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}
