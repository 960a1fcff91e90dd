// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pkce

import "errors"

var (
	// ErrRandomSource indicates the random source could not supply enough bytes.
	// Callers must abort the attempt; there is no usable fallback material.
	ErrRandomSource = errors.New("random source failed")

	// ErrInvalidVerifier indicates caller-supplied verifier bytes of the wrong length.
	ErrInvalidVerifier = errors.New("invalid code verifier")

	// ErrEmptyState indicates a caller-supplied state string that is empty.
	ErrEmptyState = errors.New("state must not be empty")
)
