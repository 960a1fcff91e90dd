// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package token exchanges an authorization code for EVE SSO tokens and reads
// the character identity out of the access token.
//
// Tokens are neither stored nor refreshed, and a failed exchange is not retried.
package token
