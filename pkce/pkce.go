// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	// StateLength is the number of characters in a generated state string.
	StateLength = 16

	// VerifierLength is the number of random bytes in a code verifier.
	VerifierLength = 32
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiased is the largest multiple of len(alphanumeric) that fits in a byte.
// Bytes at or above it are discarded so every character is equally likely.
const maxUnbiased = 256 - 256%len(alphanumeric)

// State is the opaque CSRF token round-tripped through the provider.
type State string

// String returns the state as a string.
func (s State) String() string {
	return string(s)
}

// Verifier is the PKCE secret. It is sent to the token endpoint in its
// encoded form and never appears in the authorization URL.
type Verifier [VerifierLength]byte

// NewVerifier copies b into a Verifier. b must be exactly VerifierLength bytes.
func NewVerifier(b []byte) (Verifier, error) {
	var v Verifier
	if len(b) != VerifierLength {
		return v, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidVerifier, len(b), VerifierLength)
	}
	copy(v[:], b)
	return v, nil
}

// Bytes returns a copy of the raw verifier bytes.
func (v Verifier) Bytes() []byte {
	b := make([]byte, VerifierLength)
	copy(b, v[:])
	return b
}

// String returns the base64url (unpadded) form sent as code_verifier.
func (v Verifier) String() string {
	return base64.RawURLEncoding.EncodeToString(v[:])
}

// Param returns the code_verifier sent at the token exchange for a challenge
// derived with method. ChallengeRaw pairs with the challenge text itself;
// ChallengeS256 pairs with String, the value the challenge hashes.
func (v Verifier) Param(method ChallengeMethod) string {
	if method == ChallengeS256 {
		return v.String()
	}
	return base64.StdEncoding.EncodeToString(v[:])
}

// Challenge derives the code_challenge value for the given method.
func (v Verifier) Challenge(method ChallengeMethod) string {
	switch method {
	case ChallengeS256:
		sum := sha256.Sum256([]byte(v.String()))
		return base64.RawURLEncoding.EncodeToString(sum[:])
	default:
		return base64.StdEncoding.EncodeToString(v[:])
	}
}

// GenerateState returns a fresh StateLength-character alphanumeric state.
func GenerateState() (State, error) {
	return generateState(rand.Reader)
}

// GenerateVerifier returns a fresh verifier filled from crypto/rand.
func GenerateVerifier() (Verifier, error) {
	return generateVerifier(rand.Reader)
}

func generateState(r io.Reader) (State, error) {
	out := make([]byte, 0, StateLength)
	buf := make([]byte, StateLength*2)
	for len(out) < StateLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphanumeric[int(b)%len(alphanumeric)])
			if len(out) == StateLength {
				break
			}
		}
	}
	return State(out), nil
}

func generateVerifier(r io.Reader) (Verifier, error) {
	var v Verifier
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return v, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return v, nil
}
