// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/eve-sso/login"
	"github.com/stacklok/eve-sso/pkce"
)

func newAuthorizeURLCmd(c *cli) *cobra.Command {
	var (
		f          attemptFlags
		state      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "authorize-url",
		Short: "Print the authorization URL without starting a login",
		Long: `Build the EVE Online SSO authorization URL for the configured client and
scopes and print it together with the state and code verifier it was built
from. Nothing is launched and no listener is started.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			requested, err := cfg.ParsedScopes()
			if err != nil {
				return err
			}

			orch, err := c.newOrchestrator(cfg, login.PrintLauncher{Out: c.errOut})
			if err != nil {
				return err
			}
			attempt, err := orch.Prepare(login.Request{
				ClientID:    cfg.ClientID,
				RedirectURI: cfg.RedirectURI,
				Scopes:      requested,
				State:       pkce.State(state),
			})
			if err != nil {
				return err
			}

			return c.print(jsonOutput, map[string]string{
				"url":           attempt.URL,
				"state":         attempt.Material.State().String(),
				"code_verifier": attempt.CodeVerifier(),
			}, fmt.Sprintf("%s\nstate: %s\ncode_verifier: %s\n",
				attempt.URL, attempt.Material.State(), attempt.CodeVerifier()))
		},
	}

	addAttemptFlags(cmd, &f)
	cmd.Flags().StringVar(&state, "state", "", "Use this state instead of a generated one")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}
