// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package scopes

import "errors"

var (
	// ErrAlreadyPresent indicates the scope is already a member of the set.
	ErrAlreadyPresent = errors.New("scope already present")

	// ErrNotPresent indicates the scope is not a member of the set.
	ErrNotPresent = errors.New("scope not present")

	// ErrUnknownScope indicates a string that does not name a provider scope.
	ErrUnknownScope = errors.New("unknown scope")
)
