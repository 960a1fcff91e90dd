// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package scopes

import (
	"fmt"
	"slices"
	"strings"
)

// Set is an ordered collection of unique scopes.
// The zero value is an empty set ready for use.
type Set struct {
	scopes   []Scope
	rendered string
}

// NewSet returns a set holding the given scopes. Duplicates and scopes
// outside the catalog are ignored.
func NewSet(scopes ...Scope) *Set {
	s := &Set{}
	s.AddMany(scopes...)
	return s
}

// Add inserts scope at its sorted position and returns that position.
// Scopes outside the catalog are refused with ErrUnknownScope.
func (s *Set) Add(scope Scope) (int, error) {
	if !scope.IsValid() {
		return -1, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
	pos, ok := s.insert(scope)
	if !ok {
		return pos, fmt.Errorf("%w: %s", ErrAlreadyPresent, scope)
	}
	s.render()
	return pos, nil
}

// AddMany inserts every catalog scope not yet present. The returned slices
// partition the input into scopes that were inserted and scopes that were
// already members or outside the catalog.
func (s *Set) AddMany(scopes ...Scope) (accepted, rejected []Scope) {
	for _, scope := range scopes {
		if !scope.IsValid() {
			rejected = append(rejected, scope)
			continue
		}
		if _, ok := s.insert(scope); ok {
			accepted = append(accepted, scope)
		} else {
			rejected = append(rejected, scope)
		}
	}
	if len(accepted) > 0 {
		s.render()
	}
	return accepted, rejected
}

// Remove deletes scope from the set and returns it.
func (s *Set) Remove(scope Scope) (Scope, error) {
	if !s.delete(scope) {
		return "", fmt.Errorf("%w: %s", ErrNotPresent, scope)
	}
	s.render()
	return scope, nil
}

// RemoveMany deletes every listed member. The returned slices partition the
// input into scopes that were removed and scopes that were not found.
func (s *Set) RemoveMany(scopes ...Scope) (removed, notFound []Scope) {
	for _, scope := range scopes {
		if s.delete(scope) {
			removed = append(removed, scope)
		} else {
			notFound = append(notFound, scope)
		}
	}
	if len(removed) > 0 {
		s.render()
	}
	return removed, notFound
}

// Render returns the members joined by a single space, in canonical order.
func (s *Set) Render() string {
	return s.rendered
}

// String implements fmt.Stringer.
func (s *Set) String() string {
	return s.Render()
}

// Contains reports whether scope is a member.
func (s *Set) Contains(scope Scope) bool {
	_, found := s.search(scope)
	return found
}

// ContainsAll reports whether every scope of other is a member.
func (s *Set) ContainsAll(other *Set) bool {
	if other == nil {
		return true
	}
	for _, scope := range other.scopes {
		if !s.Contains(scope) {
			return false
		}
	}
	return true
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.scopes)
}

// Scopes returns a copy of the members in canonical order.
func (s *Set) Scopes() []Scope {
	return slices.Clone(s.scopes)
}

// Strings returns the members as strings in canonical order.
func (s *Set) Strings() []string {
	out := make([]string, len(s.scopes))
	for i, scope := range s.scopes {
		out[i] = scope.String()
	}
	return out
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	return &Set{scopes: slices.Clone(s.scopes), rendered: s.rendered}
}

func (s *Set) search(scope Scope) (int, bool) {
	return slices.BinarySearchFunc(s.scopes, scope, compare)
}

func (s *Set) insert(scope Scope) (int, bool) {
	pos, found := s.search(scope)
	if found {
		return pos, false
	}
	s.scopes = slices.Insert(s.scopes, pos, scope)
	return pos, true
}

func (s *Set) delete(scope Scope) bool {
	pos, found := s.search(scope)
	if !found {
		return false
	}
	s.scopes = slices.Delete(s.scopes, pos, pos+1)
	return true
}

func (s *Set) render() {
	s.rendered = strings.Join(s.Strings(), " ")
}
