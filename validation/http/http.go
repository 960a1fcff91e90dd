// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for outbound HTTP headers and provider endpoints.
package http

import (
	"fmt"
	"net"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// MaxHeaderValueLength is the longest header value accepted.
const MaxHeaderValueLength = 8192

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	if len(value) > MaxHeaderValueLength {
		return fmt.Errorf("header value exceeds maximum length of %d bytes", MaxHeaderValueLength)
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateEndpointURI validates a provider endpoint such as the authorization
// or token URL. The endpoint must:
//   - use https, or http on a loopback host (local test providers)
//   - include a host
//   - not contain a fragment
func ValidateEndpointURI(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint URI cannot be empty")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URI: %w", err)
	}

	if parsed.Host == "" {
		return fmt.Errorf("endpoint URI must include a host: %s", endpoint)
	}

	if parsed.Fragment != "" {
		return fmt.Errorf("endpoint URI must not contain fragments (#): %s", endpoint)
	}

	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopbackHost(parsed.Hostname()) {
			return fmt.Errorf("endpoint URI must use https unless it is a loopback address: %s", endpoint)
		}
	default:
		return fmt.Errorf("endpoint URI must use https: %s", endpoint)
	}

	return nil
}

func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
