// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/stacklok/eve-sso/env"
)

// Environment variables read by FromEnv.
const (
	EnvLogFormat = "EVE_SSO_LOG_FORMAT"
	EnvLogLevel  = "EVE_SSO_LOG_LEVEL"
)

// Format represents the log output format.
type Format int

const (
	// FormatText produces human-readable key=value output using [log/slog.TextHandler].
	// This is the default: the login runs in a user's terminal.
	FormatText Format = iota

	// FormatJSON produces JSON-formatted output using [log/slog.JSONHandler].
	FormatJSON
)

// ParseFormat parses "text" or "json" (case-insensitive). Empty means FormatText.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (expected text or json)", value)
	}
}

// ParseLevel parses a slog level name such as "debug" or "WARN". Empty means INFO.
func ParseLevel(value string) (slog.Level, error) {
	if strings.TrimSpace(value) == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", value, err)
	}
	return lvl, nil
}

type config struct {
	format Format
	level  slog.Leveler
	output io.Writer
}

// Option configures the logger created by [New].
type Option func(*config)

// WithFormat sets the output format (Text or JSON).
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithLevel sets the minimum log level. Accepts a [*log/slog.LevelVar] for
// runtime changes.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets the destination writer. The default is [os.Stderr], which
// keeps stdout free for command output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// NewHandler returns the handler [New] would wrap, for callers that add
// their own middleware.
func NewHandler(opts ...Option) slog.Handler {
	cfg := &config{
		format: FormatText,
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       cfg.level,
		ReplaceAttr: replaceAttr,
	}

	if cfg.format == FormatJSON {
		return slog.NewJSONHandler(cfg.output, handlerOpts)
	}
	return slog.NewTextHandler(cfg.output, handlerOpts)
}

// New creates a [*log/slog.Logger] with RFC3339 timestamps.
//
// Defaults:
//   - Format: text ([FormatText])
//   - Level: INFO ([log/slog.LevelInfo])
//   - Output: [os.Stderr]
func New(opts ...Option) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// FromEnv builds a logger from EVE_SSO_LOG_FORMAT and EVE_SSO_LOG_LEVEL.
// debug forces DEBUG regardless of the environment. Unparseable values
// fall back to the defaults and are reported on the returned logger.
func FromEnv(reader env.Reader, debug bool, opts ...Option) *slog.Logger {
	var problems []string

	format, err := ParseFormat(reader.Getenv(EnvLogFormat))
	if err != nil {
		problems = append(problems, err.Error())
	}

	level, err := ParseLevel(reader.Getenv(EnvLogLevel))
	if err != nil {
		problems = append(problems, err.Error())
	}
	if debug {
		level = slog.LevelDebug
	}

	all := append([]Option{WithFormat(format), WithLevel(level)}, opts...)
	logger := New(all...)
	for _, p := range problems {
		logger.Warn("ignoring logging setting", "error", p)
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// replaceAttr formats the time attribute to RFC3339.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339))
		}
	}
	return a
}
