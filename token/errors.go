// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package token

import "errors"

var (
	// ErrExchangeFailed wraps every failure of Exchanger.Exchange.
	ErrExchangeFailed = errors.New("token exchange failed")

	// ErrMalformedToken is returned when an access token is not a JWT.
	ErrMalformedToken = errors.New("malformed access token")

	// ErrInvalidSubject is returned when the sub claim is not CHARACTER:EVE:<id>.
	ErrInvalidSubject = errors.New("invalid character subject")
)
