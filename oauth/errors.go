// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import "errors"

// Validation errors for provider metadata.
var (
	// ErrMissingIssuer indicates the issuer field is missing from the metadata.
	ErrMissingIssuer = errors.New("missing issuer")

	// ErrMissingAuthorizationEndpoint indicates the authorization_endpoint field is missing.
	ErrMissingAuthorizationEndpoint = errors.New("missing authorization_endpoint")

	// ErrMissingTokenEndpoint indicates the token_endpoint field is missing.
	ErrMissingTokenEndpoint = errors.New("missing token_endpoint")

	// ErrPKCEUnsupported indicates the metadata does not advertise the S256 challenge method.
	ErrPKCEUnsupported = errors.New("provider does not support PKCE S256")
)

// ErrInvalidRedirectURI indicates a redirect URI that a local listener cannot serve.
var ErrInvalidRedirectURI = errors.New("invalid redirect_uri")
