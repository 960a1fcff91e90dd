// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacklok/eve-sso/scopes"
)

func newScopesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopes",
		Short: "Inspect the ESI scope catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every known scope",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(c.out, strings.Join(scopes.NewSet(scopes.All()...).Strings(), "\n"))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "render SCOPE...",
		Short: "Print the canonical scope string for a set of scopes",
		Long: `Deduplicate and sort the given scopes and print the space separated string
that is sent as the scope parameter of the authorization URL.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			parsed, err := scopes.ParseList(args...)
			if err != nil {
				return err
			}
			set := scopes.NewSet()
			_, rejected := set.AddMany(parsed...)
			for _, s := range rejected {
				c.logger.Debug("ignoring duplicate scope", "scope", s.String())
			}
			_, err = fmt.Fprintln(c.out, set.Render())
			return err
		},
	})

	return cmd
}
