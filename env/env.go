// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"os"
	"strings"
)

// Reader defines an interface for environment variable access
type Reader interface {
	// Getenv returns the value of the variable named by key, or "" when unset.
	Getenv(key string) string
	// Environ returns the environment as a key to value map.
	Environ() map[string]string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ returns the process environment.
func (*OSReader) Environ() map[string]string {
	return toMap(os.Environ())
}

// MapReader is a fixed environment, for tests and for callers that build
// configuration from somewhere other than the process environment.
type MapReader map[string]string

// Getenv returns m[key].
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// Environ returns a copy of m.
func (m MapReader) Environ() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}
