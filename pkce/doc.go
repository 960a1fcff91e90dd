// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package pkce produces the per-attempt CSRF state and PKCE code verifier
// (RFC 7636) for an authorization code login.
//
// Material is resolved in one step by [New]. Values supplied with
// [WithState] or [WithVerifier] are used as-is; anything not supplied is
// generated at that moment from crypto/rand. There is no intermediate
// "generate later" value, so callers always hold concrete bytes.
//
//	m, err := pkce.New()
//	if err != nil {
//		// the random source failed; abort the attempt
//	}
//	challenge := m.Challenge(pkce.ChallengeRaw)
//	verifier := m.CodeVerifier(pkce.ChallengeRaw) // sent at the token exchange
package pkce
