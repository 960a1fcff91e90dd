// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides validation functions for the HTTP surface eve-sso talks to.

# Header Validation

ESI asks every client to identify itself with a descriptive User-Agent. The
configured value is validated per RFC 7230 before it is attached to requests:

	if err := http.ValidateHeaderValue("my-app/1.0 (admin@example.com)"); err != nil {
		// reject the configuration
	}

The validator checks for CRLF injection, control characters, and a length
limit of 8192 bytes.

# Endpoint Validation

Authorization and token endpoints come from configuration:

	if err := http.ValidateEndpointURI("https://login.eveonline.com/v2/oauth/token"); err != nil {
		// reject the configuration
	}

Endpoints must use https (http is allowed only on loopback hosts), include a
host, and carry no fragment.
*/
package http
