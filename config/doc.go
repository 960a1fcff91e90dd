// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads the eve-sso client configuration.

Values are layered: [Default], then the YAML file, then EVE_SSO_* environment
variables. Command-line flags are applied on top by the CLI.

# File

The file lives at $XDG_CONFIG_HOME/eve-sso/config.yaml unless a path is given:

	client_id: 0123456789abcdef0123456789abcdef
	redirect_uri: http://localhost:8080/callback
	scopes:
	  - esi-universe.read_structures.v1
	  - esi-markets.structure_markets.v1
	timeout: 2m
	challenge_method: raw
	user_agent: my-app/1.0 (pilot@example.com)
	require: '"esi-markets.structure_markets.v1" in scopes'
	log:
	  format: json
	  level: debug

It is checked against an embedded JSON schema before decoding, so unknown
keys and wrongly typed values are rejected with every problem listed.

# Environment

	EVE_SSO_CLIENT_ID, EVE_SSO_REDIRECT_URI, EVE_SSO_SCOPES (space separated),
	EVE_SSO_AUTHORIZE_ENDPOINT, EVE_SSO_TOKEN_ENDPOINT, EVE_SSO_TIMEOUT,
	EVE_SSO_CHALLENGE_METHOD, EVE_SSO_USER_AGENT, EVE_SSO_REQUIRE,
	EVE_SSO_LOG_FORMAT, EVE_SSO_LOG_LEVEL

# Validation

[Config.Validate] checks the loaded result as a whole and reports every
problem in one error wrapping [ErrInvalid].
*/
package config
