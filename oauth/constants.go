// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

// EVE SSO v2 endpoints.
const (
	// Issuer is the EVE SSO issuer identifier.
	Issuer = "https://login.eveonline.com"

	// AuthorizeEndpoint is the authorization endpoint browsers are sent to.
	AuthorizeEndpoint = "https://login.eveonline.com/v2/oauth/authorize/"

	// TokenEndpoint is the endpoint the authorization code is exchanged at.
	TokenEndpoint = "https://login.eveonline.com/v2/oauth/token"

	// JWKSURI publishes the keys that sign access tokens.
	JWKSURI = "https://login.eveonline.com/oauth/jwks"

	// WellKnownOAuthServerPath is the RFC 8414 metadata path served by the issuer.
	WellKnownOAuthServerPath = "/.well-known/oauth-authorization-server"
)

// Grant types as defined by RFC 6749.
const (
	// GrantTypeAuthorizationCode is the authorization code grant type (RFC 6749 Section 4.1).
	GrantTypeAuthorizationCode = "authorization_code"
)

// Response types as defined by RFC 6749.
const (
	// ResponseTypeCode is the authorization code response type (RFC 6749 Section 4.1.1).
	ResponseTypeCode = "code"
)

// PKCE (Proof Key for Code Exchange) methods as defined by RFC 7636.
const (
	// PKCEMethodS256 is the challenge method declared on every authorization request.
	PKCEMethodS256 = "S256"
)

// Query parameter names used on the authorization request and the redirect.
const (
	ParamResponseType        = "response_type"
	ParamRedirectURI         = "redirect_uri"
	ParamClientID            = "client_id"
	ParamScope               = "scope"
	ParamCodeChallenge       = "code_challenge"
	ParamCodeChallengeMethod = "code_challenge_method"
	ParamState               = "state"
	ParamCode                = "code"
	ParamError               = "error"
	ParamErrorDescription    = "error_description"
)
