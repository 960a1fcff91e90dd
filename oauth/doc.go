// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package oauth provides the EVE SSO endpoints, RFC-defined constants, and the
// request-side helpers of an authorization code login with PKCE.
//
// # Authorization URL
//
// [BuildAuthorizationURL] renders the URL a browser is sent to. Every variable
// component is percent-encoded exactly once and parameters always appear in
// the same order, so identical inputs produce identical URLs:
//
//	u := oauth.BuildAuthorizationURL("myclient", "http://localhost:8080/callback",
//		set.Render(), material.Challenge(pkce.ChallengeRaw), material.State().String())
//
// # Redirect URI Validation
//
// The redirect must be served by a local listener, so [ParseLoopback] only
// accepts http URIs on a loopback host and returns the address to bind:
//
//	lb, err := oauth.ParseLoopback("http://localhost:8080/callback")
//	// lb.Address() == "localhost:8080", lb.Path == "/callback"
//
// # Provider Metadata
//
// [AuthorizationServerMetadata] carries the RFC 8414 fields a client needs;
// [DefaultMetadata] returns the EVE SSO values.
//
// # Stability
//
// This package is Beta stability. The API may have minor changes before
// reaching stable status in v1.0.0.
package oauth
