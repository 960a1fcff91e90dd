// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package login composes scopes, PKCE material, the authorization URL and the
callback listener into one login attempt.

	orch, err := login.New(login.BrowserLauncher{}, login.WithTimeout(2*time.Minute))
	if err != nil {
		return err
	}
	res, err := orch.Login(ctx, login.Request{
		ClientID:    "my-client-id",
		RedirectURI: "http://localhost:8080/callback",
		Scopes:      []scopes.Scope{scopes.PublicData},
	})
	switch {
	case errors.Is(err, login.ErrLaunchFailed):
	case errors.Is(err, login.ErrStateMismatch):
	case errors.Is(err, login.ErrTimeout):
	}

The Result carries the state, verifier, challenge method and code needed
for the token exchange; Result.CodeVerifier is the value to send. Each failure wraps one sentinel error and the underlying cause.
*/
package login
