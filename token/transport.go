// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"fmt"
	"net/http"
	"time"

	httpval "github.com/stacklok/eve-sso/validation/http"
)

// HTTPTimeout is the timeout for outgoing requests to SSO and ESI.
const HTTPTimeout = 30 * time.Second

// UserAgentTransport sets the User-Agent header on every request.
type UserAgentTransport struct {
	Base      http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction with the configured User-Agent.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", t.UserAgent)
	return t.base().RoundTrip(cloned)
}

// base returns the base RoundTripper, defaulting to http.DefaultTransport.
func (t *UserAgentTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// NewHTTPClient returns a client that identifies itself as userAgent.
// base may be nil.
func NewHTTPClient(userAgent string, base http.RoundTripper) (*http.Client, error) {
	if err := httpval.ValidateHeaderValue(userAgent); err != nil {
		return nil, fmt.Errorf("invalid user agent: %w", err)
	}
	return &http.Client{
		Transport: &UserAgentTransport{Base: base, UserAgent: userAgent},
		Timeout:   HTTPTimeout,
	}, nil
}
