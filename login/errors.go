// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package login

import "errors"

// Each failure of Login wraps exactly one of these.
var (
	// ErrInvalidRequest is returned when the request cannot produce a valid
	// authorization URL or callback listener configuration.
	ErrInvalidRequest = errors.New("invalid login request")

	// ErrLaunchFailed is returned when the browser could not be opened. The
	// callback listener is never started.
	ErrLaunchFailed = errors.New("failed to launch browser")

	// ErrListenerBindFailed is returned when the redirect URI's port is unavailable.
	ErrListenerBindFailed = errors.New("failed to bind callback listener")

	// ErrStateMismatch is returned when the redirect carried a different state.
	ErrStateMismatch = errors.New("callback state mismatch")

	// ErrListenerError is returned for a malformed callback or a provider error.
	ErrListenerError = errors.New("callback listener error")

	// ErrTimeout is returned when no callback arrived within the timeout.
	ErrTimeout = errors.New("timed out waiting for callback")

	// ErrCanceled is returned when the caller's context ended first.
	ErrCanceled = errors.New("login canceled")
)
