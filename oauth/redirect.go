// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/ory/fosite"
)

// MaxRedirectURILength is the maximum allowed length for a redirect URI.
const MaxRedirectURILength = 2048

// Loopback is the local address a redirect URI points at.
type Loopback struct {
	Host string
	Port int
	Path string
}

// Address returns host:port suitable for net.Listen.
func (l Loopback) Address() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// ValidateRedirectURI checks that uri can receive the provider redirect on this
// machine: an absolute http URI on a loopback host (RFC 8252 Section 7.3),
// without a fragment (RFC 6749 Section 3.1.2).
func ValidateRedirectURI(uri string) error {
	_, err := ParseLoopback(uri)
	return err
}

// ParseLoopback validates uri like ValidateRedirectURI and returns the address
// and path a callback listener must bind. A missing port means 80 and a
// missing path means "/".
func ParseLoopback(uri string) (Loopback, error) {
	if len(uri) > MaxRedirectURILength {
		return Loopback{}, fmt.Errorf("%w: too long (maximum %d characters)", ErrInvalidRedirectURI, MaxRedirectURILength)
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return Loopback{}, fmt.Errorf("%w: %w", ErrInvalidRedirectURI, err)
	}

	if !fosite.IsValidRedirectURI(parsed) {
		return Loopback{}, fmt.Errorf("%w: must be an absolute URI without a fragment", ErrInvalidRedirectURI)
	}

	if !fosite.IsRedirectURISecureStrict(context.Background(), parsed) {
		return Loopback{}, fmt.Errorf("%w: must use http (for loopback) or https scheme", ErrInvalidRedirectURI)
	}

	if parsed.Scheme != "http" || !fosite.IsLocalhost(parsed) {
		return Loopback{}, fmt.Errorf("%w: %q is not an http loopback address", ErrInvalidRedirectURI, uri)
	}

	port := 80
	if p := parsed.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return Loopback{}, fmt.Errorf("%w: invalid port %q", ErrInvalidRedirectURI, p)
		}
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}

	return Loopback{
		Host: parsed.Hostname(),
		Port: port,
		Path: path,
	}, nil
}
