// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"time"

	"organizer/cli/internal/logging"
)

// SessionExpiredFunc is invoked once for every 401 response, before the
// failing call returns.
type SessionExpiredFunc func(ctx context.Context)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. A cookie jar is attached to
// a copy of it when it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithSessionExpired sets the callback run on 401 responses.
func WithSessionExpired(fn SessionExpiredFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.onSessionExpired = fn
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a backend client for the platform at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	return newClient(baseURL, opts...)
}
