// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/eve-sso/oauth"
	"github.com/stacklok/eve-sso/pkce"
)

const expectedState pkce.State = "S1"

// startListener binds a listener on a free loopback port and returns it with
// the base URL of its callback path.
func startListener(t *testing.T) (*Listener, string) {
	t.Helper()

	l, err := New(Config{Host: "127.0.0.1", Port: 0, Path: "/callback", ExpectedState: expectedState})
	require.NoError(t, err)
	require.NoError(t, l.Start())
	t.Cleanup(func() { _ = l.Close() })

	return l, "http://" + l.Addr().String()
}

func get(t *testing.T, rawURL string) (int, string) {
	t.Helper()

	resp, err := http.Get(rawURL) //nolint:gosec // test server on loopback
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func waitOutcome(t *testing.T, l *Listener) Outcome {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := l.Wait(ctx)
	require.NoError(t, err)
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing host", Config{Port: 8080, ExpectedState: "s"}},
		{"negative port", Config{Host: "127.0.0.1", Port: -1, ExpectedState: "s"}},
		{"port too large", Config{Host: "127.0.0.1", Port: 65536, ExpectedState: "s"}},
		{"missing state", Config{Host: "127.0.0.1", Port: 8080}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		l, err := New(Config{Host: "127.0.0.1", ExpectedState: "s"})
		require.NoError(t, err)
		assert.Equal(t, "/", l.cfg.Path)
		assert.Equal(t, StateIdle, l.State())
		assert.Nil(t, l.Addr())
	})
}

func TestConfigFromRedirectURI(t *testing.T) {
	t.Parallel()

	cfg, err := ConfigFromRedirectURI("http://localhost:8080/callback", "abc")
	require.NoError(t, err)
	assert.Equal(t, Config{Host: "localhost", Port: 8080, Path: "/callback", ExpectedState: "abc"}, cfg)

	_, err = ConfigFromRedirectURI("https://example.com/callback", "abc")
	require.ErrorIs(t, err, oauth.ErrInvalidRedirectURI)
}

func TestListener_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      url.Values
		wantStatus int
		wantKind   OutcomeKind
		wantCode   string
		wantErr    error
	}{
		{
			name:       "code with matching state",
			query:      url.Values{"code": {"abc123"}, "state": {"S1"}},
			wantStatus: http.StatusOK,
			wantKind:   OutcomeCode,
			wantCode:   "abc123",
		},
		{
			name:       "state mismatch",
			query:      url.Values{"code": {"abc123"}, "state": {"S2"}},
			wantStatus: http.StatusBadRequest,
			wantKind:   OutcomeStateMismatch,
			wantErr:    ErrStateMismatch,
		},
		{
			name:       "missing state",
			query:      url.Values{"code": {"abc123"}},
			wantStatus: http.StatusBadRequest,
			wantKind:   OutcomeStateMismatch,
			wantErr:    ErrStateMismatch,
		},
		{
			name:       "missing code",
			query:      url.Values{"state": {"S1"}},
			wantStatus: http.StatusBadRequest,
			wantKind:   OutcomeListenerError,
			wantErr:    ErrMissingCode,
		},
		{
			name:       "provider error",
			query:      url.Values{"state": {"S1"}, "error": {"access_denied"}, "error_description": {"user cancelled"}},
			wantStatus: http.StatusBadRequest,
			wantKind:   OutcomeListenerError,
			wantErr:    ErrProviderError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, base := startListener(t)

			status, _ := get(t, base+"/callback?"+tt.query.Encode())
			assert.Equal(t, tt.wantStatus, status)

			out := waitOutcome(t, l)
			assert.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, tt.wantCode, out.Code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, out.Err, tt.wantErr)
			} else {
				assert.NoError(t, out.Err)
			}
			assert.Equal(t, StateClosed, l.State())
		})
	}
}

func TestListener_UnmatchedRequestsKeepListening(t *testing.T) {
	t.Parallel()
	l, base := startListener(t)

	status, _ := get(t, base+"/favicon.ico")
	assert.Equal(t, http.StatusNotFound, status)

	resp, err := http.Post(base+"/callback?code=x&state=S1", "text/plain", nil) //nolint:gosec // loopback
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, StateListening, l.State())

	status, _ = get(t, base+"/callback?code=abc123&state=S1")
	assert.Equal(t, http.StatusOK, status)

	out := waitOutcome(t, l)
	assert.Equal(t, OutcomeCode, out.Kind)
	assert.Equal(t, "abc123", out.Code)
}

func TestListener_OnlyFirstCallbackResolves(t *testing.T) {
	t.Parallel()
	l, base := startListener(t)

	status, _ := get(t, base+"/callback?code=first&state=S1")
	require.Equal(t, http.StatusOK, status)

	require.Eventually(t, func() bool { return l.State() == StateResolved }, 5*time.Second, 10*time.Millisecond)

	status, _ = get(t, base+"/callback?code=second&state=S1")
	assert.Equal(t, http.StatusNotFound, status)

	out := waitOutcome(t, l)
	assert.Equal(t, "first", out.Code)
}

func TestListener_ErrorPageEscapesMessage(t *testing.T) {
	t.Parallel()
	l, base := startListener(t)

	query := url.Values{"state": {"S1"}, "error": {"<script>alert(1)</script>"}}
	status, body := get(t, base+"/callback?"+query.Encode())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")

	_ = waitOutcome(t, l)
}

func TestListener_BindFailed(t *testing.T) {
	t.Parallel()

	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()
	port := occupied.Addr().(*net.TCPAddr).Port

	l, err := New(Config{Host: "127.0.0.1", Port: port, ExpectedState: "s"})
	require.NoError(t, err)

	err = l.Start()
	require.ErrorIs(t, err, ErrBindFailed)
	assert.Equal(t, StateIdle, l.State())
}

func TestListener_StartTwice(t *testing.T) {
	t.Parallel()
	l, _ := startListener(t)

	assert.ErrorIs(t, l.Start(), ErrAlreadyStarted)
}

func TestListener_WaitReleasesSocketOnCancel(t *testing.T) {
	t.Parallel()
	l, _ := startListener(t)
	addr := l.Addr().String()

	errTimedOut := errors.New("timed out")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(errTimedOut)

	_, err := l.Wait(ctx)
	require.ErrorIs(t, err, errTimedOut)
	assert.Equal(t, StateClosed, l.State())

	rebound, err := net.Listen("tcp", addr)
	require.NoError(t, err, "socket should be released")
	rebound.Close()
}

func TestListener_WaitWithoutStart(t *testing.T) {
	t.Parallel()

	l, err := New(Config{Host: "127.0.0.1", ExpectedState: "s"})
	require.NoError(t, err)

	_, err = l.Wait(context.Background())
	require.ErrorIs(t, err, ErrNotListening)

	require.NoError(t, l.Close())
	_, err = l.Wait(context.Background())
	require.ErrorIs(t, err, ErrNotListening)
}

func TestListener_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	l, _ := startListener(t)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.Equal(t, StateClosed, l.State())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "listening", StateListening.String())
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.Equal(t, "state_mismatch", OutcomeStateMismatch.String())
}
