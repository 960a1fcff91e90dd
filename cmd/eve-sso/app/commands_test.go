// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/eve-sso/config"
	"github.com/stacklok/eve-sso/env"
	"github.com/stacklok/eve-sso/login"
	"github.com/stacklok/eve-sso/scopes"
)

type testCLI struct {
	*cli
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestCLI(environ map[string]string, launcher login.Launcher) *testCLI {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testCLI{
		cli: &cli{
			v:        viper.New(),
			env:      env.MapReader(environ),
			out:      stdout,
			errOut:   stderr,
			launcher: launcher,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (tc *testCLI) run(args ...string) error {
	root := newRootCmd(tc.cli)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScopesList(t *testing.T) {
	t.Parallel()
	tc := newTestCLI(nil, nil)

	require.NoError(t, tc.run("scopes", "list"))

	lines := strings.Split(strings.TrimSpace(tc.stdout.String()), "\n")
	assert.Len(t, lines, len(scopes.All()))
	assert.Contains(t, lines, "esi-markets.structure_markets.v1")
	assert.Equal(t, "publicData", lines[len(lines)-1])
}

func TestScopesRender(t *testing.T) {
	t.Parallel()

	t.Run("canonical order", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, nil)
		require.NoError(t, tc.run("scopes", "render",
			"esi-universe.read_structures.v1",
			"esi-markets.structure_markets.v1 esi-universe.read_structures.v1"))
		assert.Equal(t, "esi-markets.structure_markets.v1 esi-universe.read_structures.v1\n", tc.stdout.String())
	})

	t.Run("unknown scope", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, nil)
		err := tc.run("scopes", "render", "esi-bogus.v1")
		require.ErrorIs(t, err, scopes.ErrUnknownScope)
	})

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, nil)
		require.Error(t, tc.run("scopes", "render"))
	})
}

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "client_id: myclient\n")

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, nil)
		require.NoError(t, tc.run("--config", cfgPath, "authorize-url",
			"--state", "statestring", "--scope", "publicData"))

		lines := strings.Split(tc.stdout.String(), "\n")
		require.GreaterOrEqual(t, len(lines), 3)
		assert.True(t, strings.HasPrefix(lines[0],
			"https://login.eveonline.com/v2/oauth/authorize/?response_type=code"+
				"&redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fcallback"+
				"&client_id=myclient&scope=publicData&code_challenge="), lines[0])
		assert.True(t, strings.HasSuffix(lines[0], "&code_challenge_method=S256&state=statestring"), lines[0])
		assert.Equal(t, "state: statestring", lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "code_verifier: "))
	})

	t.Run("json with environment override", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(map[string]string{"EVE_SSO_CLIENT_ID": "from-env"}, nil)
		require.NoError(t, tc.run("--config", cfgPath, "authorize-url", "--json"))

		var out map[string]string
		require.NoError(t, json.Unmarshal(tc.stdout.Bytes(), &out))
		assert.Contains(t, out["url"], "client_id=from-env")
		assert.Len(t, out["state"], 16)

		u, err := url.Parse(out["url"])
		require.NoError(t, err)
		assert.Equal(t, u.Query().Get("code_challenge"), out["code_verifier"],
			"raw challenge is verified by direct comparison")
	})

	t.Run("s256 verifier hashes to the challenge", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, nil)
		require.NoError(t, tc.run("--config", cfgPath, "authorize-url", "--json", "--challenge-method", "s256"))

		var out map[string]string
		require.NoError(t, json.Unmarshal(tc.stdout.Bytes(), &out))
		u, err := url.Parse(out["url"])
		require.NoError(t, err)
		sum := sha256.Sum256([]byte(out["code_verifier"]))
		assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), u.Query().Get("code_challenge"))
	})

	t.Run("invalid configuration", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, nil)
		err := tc.run("--config", writeConfig(t, "timeout: 1m\n"), "authorize-url")
		require.ErrorIs(t, err, config.ErrInvalid)
		assert.Contains(t, err.Error(), "client_id is required")
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "client_id: myclient\nredirect_uri: http://127.0.0.1:1/callback\n")

	t.Run("launch failure", func(t *testing.T) {
		t.Parallel()
		launches := 0
		tc := newTestCLI(nil, login.LauncherFunc(func(string) error {
			launches++
			return errors.New("no display")
		}))
		err := tc.run("--config", cfgPath, "login", "--scope", "publicData")
		require.ErrorIs(t, err, login.ErrLaunchFailed)
		assert.Equal(t, 1, launches)
	})

	t.Run("requested scopes fail requirement", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(map[string]string{
			"EVE_SSO_REQUIRE": `"esi-markets.structure_markets.v1" in scopes`,
		}, login.LauncherFunc(func(string) error {
			t.Error("launcher must not be called")
			return nil
		}))
		err := tc.run("--config", cfgPath, "login", "--scope", "publicData")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requested scopes")
	})

	t.Run("exchange with a narrower grant", func(t *testing.T) {
		t.Parallel()

		challenge := make(chan string, 1)
		tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, <-challenge, r.PostForm.Get("code_verifier"))
			access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":  "CHARACTER:EVE:90000001",
				"name": "Test Pilot",
				"scp":  "publicData",
				"exp":  time.Now().Add(20 * time.Minute).Unix(),
			}).SignedString([]byte("test-key"))
			assert.NoError(t, err)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": access,
				"token_type":   "Bearer",
				"expires_in":   1199,
			})
		}))
		defer tokenSrv.Close()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())
		redirect := fmt.Sprintf("http://127.0.0.1:%d/callback", port)

		tc := newTestCLI(nil, login.LauncherFunc(func(u string) error {
			parsed, err := url.Parse(u)
			if err != nil {
				return err
			}
			challenge <- parsed.Query().Get("code_challenge")
			state := parsed.Query().Get("state")
			go func() {
				for range 500 {
					resp, err := http.Get(redirect + "?code=abc123&state=" + url.QueryEscape(state)) //nolint:gosec // loopback
					if err == nil {
						_ = resp.Body.Close()
						return
					}
					time.Sleep(10 * time.Millisecond)
				}
			}()
			return nil
		}))

		cfg := writeConfig(t, fmt.Sprintf("client_id: myclient\nredirect_uri: %s\ntoken_endpoint: %s\n", redirect, tokenSrv.URL))
		require.NoError(t, tc.run("--config", cfg, "login",
			"--scope", "publicData", "--scope", "esi-mail.read_mail.v1", "--timeout", "10s"))

		assert.Contains(t, tc.stdout.String(), "Logged in as Test Pilot (90000001)")
		assert.Contains(t, tc.stderr.String(), "provider granted fewer scopes than requested")
	})

	t.Run("debug logging goes to stderr", func(t *testing.T) {
		t.Parallel()
		tc := newTestCLI(nil, login.LauncherFunc(func(string) error { return errors.New("no display") }))
		_ = tc.run("--config", cfgPath, "--debug", "login")
		assert.Contains(t, tc.stderr.String(), "launching authorization URL")
		assert.Empty(t, tc.stdout.String())
	})
}
