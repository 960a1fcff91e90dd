// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"net/url"
	"strings"
)

// AuthorizationRequest holds the per-attempt values of an authorization URL.
// Scope and CodeChallenge are already rendered; they are percent-encoded
// exactly once by the builder.
type AuthorizationRequest struct {
	ClientID      string
	RedirectURI   string
	Scope         string
	CodeChallenge string
	State         string
}

// URLBuilder builds authorization URLs against a fixed endpoint.
type URLBuilder struct {
	// Endpoint is the provider's authorization endpoint. Empty means AuthorizeEndpoint.
	Endpoint string
}

// Build returns the authorization URL for req. The result depends only on
// the builder endpoint and req, and parameters always appear in the same order.
func (b URLBuilder) Build(req AuthorizationRequest) string {
	endpoint := b.Endpoint
	if endpoint == "" {
		endpoint = AuthorizeEndpoint
	}

	var sb strings.Builder
	sb.WriteString(endpoint)
	if strings.Contains(endpoint, "?") {
		sb.WriteByte('&')
	} else {
		sb.WriteByte('?')
	}

	writeParam(&sb, ParamResponseType, ResponseTypeCode, false)
	writeParam(&sb, ParamRedirectURI, req.RedirectURI, true)
	writeParam(&sb, ParamClientID, req.ClientID, true)
	writeParam(&sb, ParamScope, req.Scope, true)
	writeParam(&sb, ParamCodeChallenge, req.CodeChallenge, true)
	writeParam(&sb, ParamCodeChallengeMethod, PKCEMethodS256, true)
	writeParam(&sb, ParamState, req.State, true)

	return sb.String()
}

// BuildAuthorizationURL builds the EVE SSO authorization URL.
func BuildAuthorizationURL(clientID, redirectURI, scope, codeChallenge, state string) string {
	return URLBuilder{}.Build(AuthorizationRequest{
		ClientID:      clientID,
		RedirectURI:   redirectURI,
		Scope:         scope,
		CodeChallenge: codeChallenge,
		State:         state,
	})
}

func writeParam(sb *strings.Builder, name, value string, sep bool) {
	if sep {
		sb.WriteByte('&')
	}
	sb.WriteString(name)
	sb.WriteByte('=')
	sb.WriteString(escape(value))
}

// escape percent-encodes everything except ALPHA / DIGIT / "-" / "." / "_" / "~".
// url.QueryEscape already escapes a literal '+', so any '+' left in its output
// stands for a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
