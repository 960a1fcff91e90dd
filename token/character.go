// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stacklok/eve-sso/scopes"
)

const subjectPrefix = "CHARACTER:EVE:"

// Character is the identity carried by an EVE SSO access token.
type Character struct {
	ID    int64
	Name  string
	Owner string
	// Scopes holds the granted scopes this client knows about.
	Scopes *scopes.Set
	// Unknown holds granted scopes outside the catalog.
	Unknown []string
	Expiry  time.Time
}

// scopeClaim accepts scp as a single string or a list of strings.
type scopeClaim []string

func (s *scopeClaim) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = strings.Fields(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("scp must be a string or a list of strings: %w", err)
	}
	*s = list
	return nil
}

type characterClaims struct {
	jwt.RegisteredClaims
	Name  string     `json:"name"`
	Owner string     `json:"owner"`
	Scp   scopeClaim `json:"scp"`
}

// ParseCharacter extracts the character from an access token without
// verifying its signature. Only use it on a token just received from the
// token endpoint over TLS.
func ParseCharacter(accessToken string) (*Character, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &characterClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	idText, ok := strings.CutPrefix(claims.Subject, subjectPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubject, claims.Subject)
	}
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubject, claims.Subject)
	}

	c := &Character{
		ID:     id,
		Name:   claims.Name,
		Owner:  claims.Owner,
		Scopes: scopes.NewSet(),
	}
	if claims.ExpiresAt != nil {
		c.Expiry = claims.ExpiresAt.Time
	}
	for _, raw := range claims.Scp {
		s, err := scopes.Parse(raw)
		if err != nil {
			c.Unknown = append(c.Unknown, raw)
			continue
		}
		_, _ = c.Scopes.Add(s)
	}
	return c, nil
}
