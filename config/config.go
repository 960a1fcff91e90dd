// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/stacklok/eve-sso/authz"
	"github.com/stacklok/eve-sso/logging"
	"github.com/stacklok/eve-sso/oauth"
	"github.com/stacklok/eve-sso/pkce"
	"github.com/stacklok/eve-sso/scopes"
	httpval "github.com/stacklok/eve-sso/validation/http"
)

// Defaults applied before the file and the environment.
const (
	DefaultRedirectURI = "http://localhost:8080/callback"
	DefaultTimeout     = 5 * time.Minute
	DefaultUserAgent   = "eve-sso/dev"
)

// ErrInvalid wraps every error returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Log selects the log output.
type Log struct {
	Format string `yaml:"format,omitempty" env:"FORMAT"`
	Level  string `yaml:"level,omitempty" env:"LEVEL"`
}

// Config is the eve-sso client configuration.
type Config struct {
	ClientID          string        `yaml:"client_id,omitempty" env:"CLIENT_ID"`
	RedirectURI       string        `yaml:"redirect_uri" env:"REDIRECT_URI"`
	Scopes            []string      `yaml:"scopes,omitempty" env:"SCOPES" envSeparator:" "`
	AuthorizeEndpoint string        `yaml:"authorize_endpoint,omitempty" env:"AUTHORIZE_ENDPOINT"`
	TokenEndpoint     string        `yaml:"token_endpoint,omitempty" env:"TOKEN_ENDPOINT"`
	Timeout           time.Duration `yaml:"timeout,omitempty" env:"TIMEOUT"`
	ChallengeMethod   string        `yaml:"challenge_method,omitempty" env:"CHALLENGE_METHOD"`
	UserAgent         string        `yaml:"user_agent,omitempty" env:"USER_AGENT"`
	// Require is an optional CEL expression over the scopes variable.
	Require string `yaml:"require,omitempty" env:"REQUIRE"`
	Log     Log    `yaml:"log,omitempty" envPrefix:"LOG_"`
}

// Default returns a Config with every optional field filled in.
func Default() Config {
	return Config{
		RedirectURI:       DefaultRedirectURI,
		AuthorizeEndpoint: oauth.AuthorizeEndpoint,
		TokenEndpoint:     oauth.TokenEndpoint,
		Timeout:           DefaultTimeout,
		ChallengeMethod:   pkce.ChallengeRaw.String(),
		UserAgent:         DefaultUserAgent,
	}
}

// Validate reports every problem at once, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	var msgs []string
	add := func(err error) {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	if c.ClientID == "" {
		msgs = append(msgs, "client_id is required")
	}
	add(oauth.ValidateRedirectURI(c.RedirectURI))
	add(httpval.ValidateEndpointURI(c.AuthorizeEndpoint))
	add(httpval.ValidateEndpointURI(c.TokenEndpoint))
	add(c.Provider().Validate())

	_, err := c.ParsedScopes()
	add(err)
	_, err = c.Method()
	add(err)

	if c.Timeout <= 0 {
		msgs = append(msgs, fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}
	if err := httpval.ValidateHeaderValue(c.UserAgent); err != nil {
		msgs = append(msgs, fmt.Sprintf("user_agent: %s", err))
	}

	_, err = c.Requirement()
	add(err)
	_, err = logging.ParseFormat(c.Log.Format)
	add(err)
	_, err = logging.ParseLevel(c.Log.Level)
	add(err)

	if err := formatNumberedErrors("config validation failed", msgs); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Provider returns the EVE SSO metadata with the configured endpoints.
func (c *Config) Provider() oauth.AuthorizationServerMetadata {
	m := oauth.DefaultMetadata()
	if c.AuthorizeEndpoint != "" {
		m.AuthorizationEndpoint = c.AuthorizeEndpoint
	}
	if c.TokenEndpoint != "" {
		m.TokenEndpoint = c.TokenEndpoint
	}
	return m
}

// ParsedScopes parses Scopes against the catalog.
func (c *Config) ParsedScopes() ([]scopes.Scope, error) {
	return scopes.ParseList(c.Scopes...)
}

// Method parses ChallengeMethod.
func (c *Config) Method() (pkce.ChallengeMethod, error) {
	return pkce.ParseChallengeMethod(c.ChallengeMethod)
}

// Requirement compiles Require. It returns nil, nil when Require is empty.
func (c *Config) Requirement() (*authz.Requirement, error) {
	if c.Require == "" {
		return nil, nil
	}
	return authz.Compile(c.Require)
}
