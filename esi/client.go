// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package esi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/stacklok/eve-sso/login"
	"github.com/stacklok/eve-sso/scopes"
	"github.com/stacklok/eve-sso/token"
)

// DefaultUserAgent identifies requests when no user agent is configured.
const DefaultUserAgent = "eve-sso/dev"

// ErrNotAuthenticated is returned by Character and Token before a successful Authenticate.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client ties an application's client id to the scopes it requests and the
// HTTP client it talks to ESI with.
type Client struct {
	clientID string
	scopes   *scopes.Set
	http     *http.Client

	mu        sync.RWMutex
	token     *oauth2.Token
	character *token.Character
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient replaces the base HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithUserAgent builds the base HTTP client around userAgent.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		hc, err := token.NewHTTPClient(userAgent, nil)
		if err != nil {
			return err
		}
		c.http = hc
		return nil
	}
}

// WithScopes seeds the requested scope set. Scopes outside the catalog are an error.
func WithScopes(requested ...scopes.Scope) Option {
	return func(c *Client) error {
		for _, s := range requested {
			if !s.IsValid() {
				return fmt.Errorf("%w: %q", scopes.ErrUnknownScope, s)
			}
		}
		c.scopes.AddMany(requested...)
		return nil
	}
}

// New returns a Client for clientID with an empty scope set.
func New(clientID string, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, errors.New("client ID is required")
	}

	c := &Client{clientID: clientID, scopes: scopes.NewSet()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		hc, err := token.NewHTTPClient(DefaultUserAgent, nil)
		if err != nil {
			return nil, err
		}
		c.http = hc
	}
	return c, nil
}

// ClientID returns the application's client id.
func (c *Client) ClientID() string {
	return c.clientID
}

// Scopes returns the requested scope set. Changes to it affect the next login.
func (c *Client) Scopes() *scopes.Set {
	return c.scopes
}

// HTTPClient returns a client that sends the access token once the client
// is authenticated, and the plain base client before that.
func (c *Client) HTTPClient(ctx context.Context) *http.Client {
	c.mu.RLock()
	tok := c.token
	c.mu.RUnlock()

	if tok == nil {
		return c.http
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
}

// Character returns the identity from the last successful Authenticate.
func (c *Client) Character() (*token.Character, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.character == nil {
		return nil, ErrNotAuthenticated
	}
	return c.character, nil
}

// Token returns the access token from the last successful Authenticate.
func (c *Client) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return nil, ErrNotAuthenticated
	}
	return c.token, nil
}

// Login runs one browser login for the current scope set.
func (c *Client) Login(ctx context.Context, orch *login.Orchestrator, redirectURI string) (*login.Result, error) {
	return orch.Login(ctx, login.Request{
		ClientID:    c.clientID,
		RedirectURI: redirectURI,
		Scopes:      c.scopes.Scopes(),
	})
}

// Authenticate logs in, exchanges the code and keeps the resulting access
// token in memory for HTTPClient.
func (c *Client) Authenticate(
	ctx context.Context, orch *login.Orchestrator, ex *token.Exchanger, redirectURI string,
) (*token.Character, error) {
	res, err := c.Login(ctx, orch, redirectURI)
	if err != nil {
		return nil, err
	}

	tok, err := ex.Exchange(ctx, res.Code, res.Verifier, res.Method)
	if err != nil {
		return nil, err
	}

	character, err := token.ParseCharacter(tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read character from access token: %w", err)
	}

	c.mu.Lock()
	c.token = tok
	c.character = character
	c.mu.Unlock()

	return character, nil
}
