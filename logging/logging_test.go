// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/eve-sso/env/mocks"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("default format is text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := New(WithOutput(&buf))

		logger.Info("hello", "key", "value")

		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "msg=hello")
		assert.Contains(t, out, "key=value")
	})

	t.Run("JSON format with RFC3339 timestamps", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := New(WithFormat(FormatJSON), WithOutput(&buf))

		logger.Info("test message", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "test message", entry["msg"])

		ts, ok := entry["time"].(string)
		require.True(t, ok, "time field should be a string")
		_, err := time.Parse(time.RFC3339, ts)
		assert.NoError(t, err)
	})

	t.Run("default level is INFO", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := New(WithOutput(&buf))

		logger.Debug("should not appear")
		assert.Empty(t, buf.String())
	})
}

func TestNew_DynamicLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)

	logger := New(WithLevel(&lvl), WithOutput(&buf))

	logger.Info("should not appear")
	assert.Empty(t, buf.String())

	lvl.Set(slog.LevelInfo)
	logger.Info("should appear")
	assert.NotEmpty(t, buf.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		level  string
		debug  bool
		check  func(t *testing.T, logger *slog.Logger, out *bytes.Buffer)
	}{
		{
			name:   "json at warn",
			format: "json",
			level:  "warn",
			check: func(t *testing.T, logger *slog.Logger, out *bytes.Buffer) {
				t.Helper()
				logger.Info("filtered")
				assert.Empty(t, out.String())
				logger.Warn("kept")
				var entry map[string]any
				require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
				assert.Equal(t, "kept", entry["msg"])
			},
		},
		{
			name:  "debug flag overrides level",
			level: "error",
			debug: true,
			check: func(t *testing.T, logger *slog.Logger, out *bytes.Buffer) {
				t.Helper()
				assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
				logger.Debug("visible")
				assert.Contains(t, out.String(), "level=DEBUG")
			},
		},
		{
			name:   "bad values fall back and warn",
			format: "xml",
			level:  "chatty",
			check: func(t *testing.T, _ *slog.Logger, out *bytes.Buffer) {
				t.Helper()
				lines := strings.Split(strings.TrimSpace(out.String()), "\n")
				require.Len(t, lines, 2)
				assert.Contains(t, lines[0], "unknown log format")
				assert.Contains(t, lines[1], "unknown log level")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			reader := mocks.NewMockReader(ctrl)
			reader.EXPECT().Getenv(EnvLogFormat).Return(tt.format)
			reader.EXPECT().Getenv(EnvLogLevel).Return(tt.level)

			var buf bytes.Buffer
			logger := FromEnv(reader, tt.debug, WithOutput(&buf))
			tt.check(t, logger, &buf)
		})
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.Error("nothing happens")
}
