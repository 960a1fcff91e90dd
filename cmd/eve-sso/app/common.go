// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacklok/eve-sso/config"
	"github.com/stacklok/eve-sso/login"
)

// attemptFlags override the configuration for one login attempt.
type attemptFlags struct {
	clientID    string
	redirectURI string
	scopes      []string
	timeout     time.Duration
	method      string
	noBrowser   bool
}

func addAttemptFlags(cmd *cobra.Command, f *attemptFlags) {
	cmd.Flags().StringVar(&f.clientID, "client-id", "", "Application client ID from the EVE developers portal")
	cmd.Flags().StringVar(&f.redirectURI, "redirect-uri", "", "Loopback callback URL registered for the application")
	cmd.Flags().StringSliceVar(&f.scopes, "scope", nil, "Scope to request (repeatable)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "How long to wait for the login callback")
	cmd.Flags().StringVar(&f.method, "challenge-method", "", "Code challenge derivation: raw or s256")
	cmd.Flags().BoolVar(&f.noBrowser, "no-browser", false, "Print the login URL instead of opening a browser")
}

// loadConfig layers the changed flags over the file and environment and
// validates the result.
func (c *cli) loadConfig(cmd *cobra.Command, f *attemptFlags) (*config.Config, error) {
	cfg, err := config.Load(c.v.GetString("config"), c.env)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("client-id") {
		cfg.ClientID = f.clientID
	}
	if flags.Changed("redirect-uri") {
		cfg.RedirectURI = f.redirectURI
	}
	if flags.Changed("scope") {
		cfg.Scopes = f.scopes
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if flags.Changed("challenge-method") {
		cfg.ChallengeMethod = f.method
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) launcherFor(f *attemptFlags) login.Launcher {
	switch {
	case c.launcher != nil:
		return c.launcher
	case f.noBrowser:
		return login.PrintLauncher{Out: c.errOut}
	default:
		return login.BrowserLauncher{}
	}
}

func (c *cli) newOrchestrator(cfg *config.Config, launcher login.Launcher) (*login.Orchestrator, error) {
	method, err := cfg.Method()
	if err != nil {
		return nil, err
	}
	orch, err := login.New(launcher,
		login.WithTimeout(cfg.Timeout),
		login.WithLogger(c.logger),
		login.WithEndpoint(cfg.AuthorizeEndpoint),
		login.WithChallengeMethod(method),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create login orchestrator: %w", err)
	}
	return orch, nil
}
