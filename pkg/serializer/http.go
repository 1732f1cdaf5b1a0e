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
	"time"

	"github.com/futureguide/api-docs/pkg/defaults"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// HttpReaderUserAgent is sent when no other user agent is configured.
const HttpReaderUserAgent = "api-docs-cli/1.0"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 16 << 20

// HttpReaderOption defines a configuration option for HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches documents from a running docs server.
type HttpReader struct {
	UserAgent          string
	TotalTimeout       time.Duration
	InsecureSkipVerify bool
	Client             *http.Client

	customClient bool
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = userAgent
	}
}

// WithTotalTimeout bounds a whole request including the body read.
func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		r.TotalTimeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS verification for self-signed servers.
func WithInsecureSkipVerify(skip bool) HttpReaderOption {
	return func(r *HttpReader) {
		r.InsecureSkipVerify = skip
	}
}

// WithClient uses a caller-supplied client. Transport options are ignored.
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		r.Client = client
		r.customClient = client != nil
	}
}

// NewHttpReader creates a new HttpReader with the specified options.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent:    HttpReaderUserAgent,
		TotalTimeout: defaults.HTTPClientTimeout,
	}

	for _, opt := range options {
		opt(r)
	}

	if !r.customClient {
		r.Client = &http.Client{
			Timeout:   r.TotalTimeout,
			Transport: newDefaultHTTPTransport(r.InsecureSkipVerify),
		}
	}
	return r
}

func newDefaultHTTPTransport(insecure bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		MaxIdleConns:          10,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // opt-in via --insecure
		},
	}
}

// Read fetches url and returns the body. Non-200 responses become errors.
func (r *HttpReader) Read(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, docserrors.New(docserrors.ErrCodeInvalidRequest, "url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to create request for url %s", url), err)
	}
	req.Header.Set("Accept", "application/json")
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeUnavailable,
			fmt.Sprintf("http request failed for url %s", url), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeUnavailable, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, data)
	}

	return data, nil
}

// ReadJSON fetches url and decodes the JSON body into v.
func (r *HttpReader) ReadJSON(ctx context.Context, url string, v any) error {
	data, err := r.Read(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return docserrors.Wrap(docserrors.ErrCodeInvalidData,
			fmt.Sprintf("failed to decode response from %s", url), err)
	}
	return nil
}

// responseError converts an API error body into a StructuredError carrying
// the server's code, falling back to the HTTP status.
func responseError(resp *http.Response, body []byte) error {
	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		return docserrors.NewWithContext(docserrors.ErrorCode(apiErr.Code), apiErr.Message,
			map[string]any{"status": resp.StatusCode})
	}

	code := docserrors.ErrCodeInternal
	switch resp.StatusCode {
	case http.StatusNotFound:
		code = docserrors.ErrCodeNotFound
	case http.StatusBadRequest:
		code = docserrors.ErrCodeInvalidRequest
	case http.StatusTooManyRequests:
		code = docserrors.ErrCodeRateLimitExceeded
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		code = docserrors.ErrCodeUnavailable
	}
	return docserrors.NewWithContext(code, fmt.Sprintf("failed to fetch data: status %s", resp.Status),
		map[string]any{"status": resp.StatusCode})
}
