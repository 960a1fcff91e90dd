// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package esi is the entry point for applications: a Client carries the
// client id, the requested scopes and an HTTP client that identifies itself
// to ESI and, after Authenticate, sends the character's access token.
package esi
