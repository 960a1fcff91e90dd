// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides the [log/slog.Logger] factory used by eve-sso.

Components never log through a global; they accept a *slog.Logger and fall
back to [Discard] when none is injected.

# Defaults

  - Format: text ([FormatText]) via [log/slog.TextHandler]
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Basic Usage

	logger := logging.New()
	logger.Info("callback listener started", "addr", "127.0.0.1:8080")

# Environment

[FromEnv] honours EVE_SSO_LOG_FORMAT (text, json) and EVE_SSO_LOG_LEVEL
(debug, info, warn, error). The environment is read through [env.Reader]:

	logger := logging.FromEnv(&env.OSReader{}, viper.GetBool("debug"))

# Testing

Inject a buffer to capture log output in tests:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf), logging.WithFormat(logging.FormatJSON))
*/
package logging
