// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacklok/eve-sso/esi"
	"github.com/stacklok/eve-sso/token"
)

type loginOutput struct {
	CharacterID int64     `json:"character_id"`
	Name        string    `json:"name"`
	Scopes      []string  `json:"scopes"`
	ExpiresAt   time.Time `json:"expires_at"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
}

func newLoginCmd(c *cli) *cobra.Command {
	var (
		f          attemptFlags
		jsonOutput bool
		noExchange bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with EVE Online SSO",
		Long: `Open the EVE Online SSO login page, wait for the redirect on the loopback
callback URL and exchange the authorization code for an access token.

With --no-exchange the authorization code, state and code verifier are printed
instead, for an application that performs the token exchange itself.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runLogin(cmd, &f, jsonOutput, noExchange)
		},
	}

	addAttemptFlags(cmd, &f)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON, including the access token")
	cmd.Flags().BoolVar(&noExchange, "no-exchange", false, "Print the authorization code instead of exchanging it")

	return cmd
}

func (c *cli) runLogin(cmd *cobra.Command, f *attemptFlags, jsonOutput, noExchange bool) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig(cmd, f)
	if err != nil {
		return err
	}

	requested, err := cfg.ParsedScopes()
	if err != nil {
		return err
	}
	requirement, err := cfg.Requirement()
	if err != nil {
		return err
	}

	client, err := esi.New(cfg.ClientID, esi.WithUserAgent(cfg.UserAgent), esi.WithScopes(requested...))
	if err != nil {
		return err
	}
	if requirement != nil {
		if err := requirement.Require(client.Scopes()); err != nil {
			return fmt.Errorf("requested scopes: %w", err)
		}
	}

	orch, err := c.newOrchestrator(cfg, c.launcherFor(f))
	if err != nil {
		return err
	}

	if noExchange {
		res, err := client.Login(ctx, orch, cfg.RedirectURI)
		if err != nil {
			return err
		}
		return c.print(jsonOutput, map[string]string{
			"code":          res.Code,
			"state":         res.State.String(),
			"code_verifier": res.CodeVerifier(),
		}, fmt.Sprintf("code: %s\nstate: %s\ncode_verifier: %s\n", res.Code, res.State, res.CodeVerifier()))
	}

	hc, err := token.NewHTTPClient(cfg.UserAgent, nil)
	if err != nil {
		return err
	}
	ex, err := token.NewExchanger(cfg.ClientID, cfg.RedirectURI, cfg.TokenEndpoint, hc)
	if err != nil {
		return err
	}

	character, err := client.Authenticate(ctx, orch, ex, cfg.RedirectURI)
	if err != nil {
		return err
	}
	if requirement != nil {
		if err := requirement.Require(character.Scopes); err != nil {
			return fmt.Errorf("granted scopes: %w", err)
		}
	}
	if !character.Scopes.ContainsAll(client.Scopes()) {
		c.logger.Warn("provider granted fewer scopes than requested",
			"requested", client.Scopes().Render(), "granted", character.Scopes.Render())
	}
	if len(character.Unknown) > 0 {
		c.logger.Warn("provider granted scopes outside the catalog", "scopes", character.Unknown)
	}

	tok, err := client.Token()
	if err != nil {
		return err
	}

	return c.print(jsonOutput, loginOutput{
		CharacterID: character.ID,
		Name:        character.Name,
		Scopes:      character.Scopes.Strings(),
		ExpiresAt:   tok.Expiry,
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}, fmt.Sprintf("Logged in as %s (%d)\nScopes: %s\nExpires: %s\n",
		character.Name, character.ID, character.Scopes.Render(), tok.Expiry.Format(time.RFC3339)))
}

// print writes v as indented JSON or text as-is.
func (c *cli) print(jsonOutput bool, v any, text string) error {
	if !jsonOutput {
		_, err := fmt.Fprint(c.out, text)
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
