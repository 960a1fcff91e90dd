// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package callback implements the loopback HTTP listener that captures the
provider redirect at the end of an authorization-code login.

A Listener moves through Idle, Listening, Resolved and Closed. Start binds
the socket; the first GET on the configured path resolves the listener;
Wait hands the outcome to the caller and releases the socket. Requests on
any other path or method, and every request after resolution, receive 404.

# Usage

	cfg, err := callback.ConfigFromRedirectURI("http://localhost:8080/callback", material.State())
	if err != nil {
		return err
	}
	l, err := callback.New(cfg)
	if err != nil {
		return err
	}
	if err := l.Start(); err != nil {
		return err // wraps callback.ErrBindFailed
	}
	out, err := l.Wait(ctx)

# Outcomes

  - [OutcomeCode]: state matched and a code was present.
  - [OutcomeStateMismatch]: state differs from the expected value. Treat as a
    possible CSRF attempt and do not exchange anything.
  - [OutcomeListenerError]: state matched but the code is missing, the
    provider sent an error parameter, or the server stopped.
*/
package callback
