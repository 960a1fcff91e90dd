// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package scopes defines the closed catalog of EVE SSO permission scopes and a
canonical, deduplicated scope set.

# Canonical Ordering

A [Set] keeps its members sorted by their canonical string form. The rendered
scope string is therefore a pure function of membership: adding the same
scopes in any order yields the same value, and so does the authorization URL
built from it.

	set := scopes.NewSet()
	set.Add(scopes.StructureMarkets)
	set.Add(scopes.ReadStructures)
	set.Render() // "esi-markets.structure_markets.v1 esi-universe.read_structures.v1"

Membership errors are reported per scope with [ErrAlreadyPresent] and
[ErrNotPresent]; bulk operations partition their input instead of failing.

# Concurrency

A Set is not safe for concurrent mutation. Use [Set.Clone] to hand a snapshot
to another goroutine.

# Stability

This package is Beta stability. The catalog grows as the provider adds scopes.
*/
package scopes
