// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("EVE_SSO_CLIENT_ID")

Environ returns the whole environment as a map, which is the shape the
configuration loader hands to its struct-tag parser:

	vars := reader.Environ()

# Testing

The Reader interface allows injecting a mock in tests to avoid relying on
real environment variables. A generated mock is available in the mocks
sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("EVE_SSO_LOG_FORMAT").Return("json")

	logger := logging.FromEnv(mock, false)

For table-driven tests a fixed map is often simpler:

	reader := env.MapReader{"EVE_SSO_CLIENT_ID": "abc"}

# Design

Production code accepts an env.Reader, while tests substitute the generated
mock or a MapReader.
*/
package env
