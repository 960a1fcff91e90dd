// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import "slices"

// AuthorizationServerMetadata describes the provider per RFC 8414.
// Only the fields a PKCE login client consumes are kept.
type AuthorizationServerMetadata struct {
	// Issuer is the authorization server's issuer identifier.
	Issuer string `json:"issuer" yaml:"issuer"`

	// AuthorizationEndpoint is the URL browsers are sent to.
	AuthorizationEndpoint string `json:"authorization_endpoint" yaml:"authorization_endpoint"`

	// TokenEndpoint is the URL authorization codes are exchanged at.
	TokenEndpoint string `json:"token_endpoint" yaml:"token_endpoint"`

	// JWKSURI is the URL of the key set that signs access tokens.
	JWKSURI string `json:"jwks_uri,omitempty" yaml:"jwks_uri,omitempty"`

	// CodeChallengeMethodsSupported lists the PKCE code challenge methods supported.
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported,omitempty" yaml:"code_challenge_methods_supported,omitempty"`

	// ScopesSupported lists the scope values the provider accepts.
	ScopesSupported []string `json:"scopes_supported,omitempty" yaml:"scopes_supported,omitempty"`
}

// DefaultMetadata returns the EVE SSO v2 metadata.
func DefaultMetadata() AuthorizationServerMetadata {
	return AuthorizationServerMetadata{
		Issuer:                        Issuer,
		AuthorizationEndpoint:         AuthorizeEndpoint,
		TokenEndpoint:                 TokenEndpoint,
		JWKSURI:                       JWKSURI,
		CodeChallengeMethodsSupported: []string{PKCEMethodS256},
	}
}

// Validate checks the fields a login needs. It also requires S256 support
// when the metadata lists challenge methods at all.
func (m *AuthorizationServerMetadata) Validate() error {
	if m.Issuer == "" {
		return ErrMissingIssuer
	}
	if m.AuthorizationEndpoint == "" {
		return ErrMissingAuthorizationEndpoint
	}
	if m.TokenEndpoint == "" {
		return ErrMissingTokenEndpoint
	}
	if len(m.CodeChallengeMethodsSupported) > 0 && !m.SupportsPKCE() {
		return ErrPKCEUnsupported
	}
	return nil
}

// SupportsPKCE returns true if the provider advertises PKCE with S256.
func (m *AuthorizationServerMetadata) SupportsPKCE() bool {
	return slices.Contains(m.CodeChallengeMethodsSupported, PKCEMethodS256)
}
