// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the eve-sso command-line application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/eve-sso/env"
	"github.com/stacklok/eve-sso/logging"
	"github.com/stacklok/eve-sso/login"
)

// cli holds what every command shares. Tests replace the environment,
// the output and the launcher.
type cli struct {
	v        *viper.Viper
	env      env.Reader
	out      io.Writer
	errOut   io.Writer
	launcher login.Launcher
	logger   *slog.Logger
}

// NewRootCmd creates a new root command for the eve-sso CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cli{
		v:      viper.New(),
		env:    &env.OSReader{},
		out:    os.Stdout,
		errOut: os.Stderr,
	})
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "eve-sso",
		DisableAutoGenTag: true,
		Short:             "Log in to EVE Online SSO from the command line",
		Long: `eve-sso runs the EVE Online SSO authorization-code flow with PKCE from a terminal.

It opens the login page in your browser, captures the redirect on a local
loopback listener, verifies the returned state and exchanges the code for
an access token.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				c.logger.Error("Error displaying help", "error", err)
			}
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.logger = logging.FromEnv(c.env, c.v.GetBool("debug"), logging.WithOutput(c.errOut))
		},
	}
	c.logger = logging.Discard()

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	if err := c.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		c.logger.Error("Error binding debug flag", "error", err)
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the eve-sso configuration file")
	if err := c.v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		c.logger.Error("Error binding config flag", "error", err)
	}

	rootCmd.SetOut(c.out)
	rootCmd.SetErr(c.errOut)

	rootCmd.AddCommand(newLoginCmd(c))
	rootCmd.AddCommand(newAuthorizeURLCmd(c))
	rootCmd.AddCommand(newScopesCmd(c))

	// Silence printing the usage on error
	rootCmd.SilenceUsage = true

	return rootCmd
}
