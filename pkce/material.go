// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pkce

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// ChallengeMethod selects how the code challenge is derived from the verifier.
type ChallengeMethod int

const (
	// ChallengeRaw encodes the raw verifier bytes with standard, padded base64.
	// It matches the challenge accepted by existing deployed client registrations.
	ChallengeRaw ChallengeMethod = iota

	// ChallengeS256 is the RFC 7636 S256 transform: base64url(SHA-256(code_verifier)).
	ChallengeS256
)

// String returns the configuration name of the method.
func (m ChallengeMethod) String() string {
	switch m {
	case ChallengeS256:
		return "s256"
	default:
		return "raw"
	}
}

// ParseChallengeMethod parses "raw" or "s256" (case-insensitive). Empty means ChallengeRaw.
func ParseChallengeMethod(value string) (ChallengeMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "raw":
		return ChallengeRaw, nil
	case "s256":
		return ChallengeS256, nil
	default:
		return ChallengeRaw, fmt.Errorf("unknown challenge method %q (expected raw or s256)", value)
	}
}

// Material is the resolved state and verifier for one login attempt.
type Material struct {
	state    State
	verifier Verifier
}

// State returns the CSRF state.
func (m *Material) State() State {
	return m.state
}

// Verifier returns the PKCE code verifier.
func (m *Material) Verifier() Verifier {
	return m.verifier
}

// Challenge returns the code challenge derived with method.
func (m *Material) Challenge(method ChallengeMethod) string {
	return m.verifier.Challenge(method)
}

// CodeVerifier returns the code_verifier matching Challenge(method).
func (m *Material) CodeVerifier(method ChallengeMethod) string {
	return m.verifier.Param(method)
}

type options struct {
	state    *State
	verifier *Verifier
	random   io.Reader
}

// Option supplies caller-provided material to New.
type Option func(*options)

// WithState uses s instead of generating a state.
func WithState(s State) Option {
	return func(o *options) {
		o.state = &s
	}
}

// WithVerifier uses v instead of generating a verifier.
func WithVerifier(v Verifier) Option {
	return func(o *options) {
		o.verifier = &v
	}
}

// WithRandom replaces crypto/rand as the source for generated material.
// Intended for tests that need to simulate a failing source.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		o.random = r
	}
}

// New resolves the material for one attempt. Any value not supplied through
// an option is generated now from a cryptographically secure source.
func New(opts ...Option) (*Material, error) {
	o := &options{random: rand.Reader}
	for _, opt := range opts {
		opt(o)
	}

	m := &Material{}

	if o.state != nil {
		if *o.state == "" {
			return nil, ErrEmptyState
		}
		m.state = *o.state
	} else {
		s, err := generateState(o.random)
		if err != nil {
			return nil, fmt.Errorf("failed to generate state: %w", err)
		}
		m.state = s
	}

	if o.verifier != nil {
		m.verifier = *o.verifier
	} else {
		v, err := generateVerifier(o.random)
		if err != nil {
			return nil, fmt.Errorf("failed to generate code verifier: %w", err)
		}
		m.verifier = v
	}

	return m, nil
}
