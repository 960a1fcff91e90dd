// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/stacklok/eve-sso/oauth"
	"github.com/stacklok/eve-sso/pkce"
)

// Exchanger trades an authorization code and its verifier for tokens.
type Exchanger struct {
	config oauth2.Config
	client *http.Client
}

// NewExchanger returns an Exchanger for a public client. An empty tokenURL
// means the EVE SSO token endpoint. A nil client means http.DefaultClient.
func NewExchanger(clientID, redirectURI, tokenURL string, client *http.Client) (*Exchanger, error) {
	if clientID == "" {
		return nil, errors.New("client ID is required")
	}
	if tokenURL == "" {
		tokenURL = oauth.TokenEndpoint
	}

	return &Exchanger{
		config: oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   oauth.AuthorizeEndpoint,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: client,
	}, nil
}

// Exchange posts the code and the code_verifier matching a challenge derived
// with method to the token endpoint.
func (e *Exchanger) Exchange(
	ctx context.Context, code string, verifier pkce.Verifier, method pkce.ChallengeMethod,
) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", ErrExchangeFailed)
	}
	if e.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)
	}

	tok, err := e.config.Exchange(ctx, code, oauth2.VerifierOption(verifier.Param(method)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	return tok, nil
}
