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

package defaults

import "time"

// HTTP server timeouts.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second
	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second
	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second
	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second
	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Rate limiting applied to page and API routes. System routes are exempt.
const (
	RateLimit      = 100
	RateLimitBurst = 200
)

// PageCacheMaxAge is the Cache-Control max-age of the rendered page and the
// read-only JSON API. The catalog only changes on restart or in watch mode.
const PageCacheMaxAge = 5 * time.Minute

// PageHandlerTimeout bounds rendering of a single request.
const PageHandlerTimeout = 15 * time.Second

// ConfigMapWriteTimeout bounds the server-side apply of a rendered site.
const ConfigMapWriteTimeout = 30 * time.Second

// PublishTimeout bounds pushing a rendered site to an OCI registry.
const PublishTimeout = 5 * time.Minute

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second
	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second
	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second
	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second
	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Live reload tuning for watch mode.
const (
	// ReloadDebounce coalesces bursts of file events from editors.
	ReloadDebounce = 200 * time.Millisecond
	// LiveReloadWriteTimeout is the deadline for one websocket write.
	LiveReloadWriteTimeout = 10 * time.Second
	// LiveReloadPongWait is how long a client may stay silent.
	LiveReloadPongWait = 60 * time.Second
	// LiveReloadPingPeriod must be shorter than LiveReloadPongWait.
	LiveReloadPingPeriod = (LiveReloadPongWait * 9) / 10
)

// CopyFeedbackDuration is how long a copy button shows its result state.
const CopyFeedbackDuration = 2 * time.Second
