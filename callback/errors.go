// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

import "errors"

var (
	// ErrInvalidConfig is returned by New for an unusable Config.
	ErrInvalidConfig = errors.New("invalid callback listener config")

	// ErrBindFailed is returned by Start when the loopback address cannot be bound.
	ErrBindFailed = errors.New("failed to bind callback listener")

	// ErrAlreadyStarted is returned by Start on a listener that has left Idle.
	ErrAlreadyStarted = errors.New("callback listener already started")

	// ErrNotListening is returned by Wait on a listener that was never started.
	ErrNotListening = errors.New("callback listener is not listening")

	// ErrStateMismatch is the error carried by a StateMismatch outcome.
	ErrStateMismatch = errors.New("state parameter does not match")

	// ErrMissingCode is carried by a ListenerError outcome when the redirect has no code.
	ErrMissingCode = errors.New("missing authorization code")

	// ErrProviderError is carried by a ListenerError outcome when the provider
	// redirected with an error parameter.
	ErrProviderError = errors.New("provider returned an error")

	// ErrServeFailed is carried by a ListenerError outcome when the server stops
	// accepting connections before a callback arrives.
	ErrServeFailed = errors.New("callback server stopped")
)
