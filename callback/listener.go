// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stacklok/eve-sso/httperr"
	"github.com/stacklok/eve-sso/oauth"
	"github.com/stacklok/eve-sso/pkce"
	"github.com/stacklok/eve-sso/recovery"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config is the explicit address and expectation of one listener.
type Config struct {
	// Host is the loopback host to bind, e.g. "127.0.0.1" or "localhost".
	Host string
	// Port to bind. 0 picks a free port; see Listener.Addr.
	Port int
	// Path is the only path that resolves the listener. Defaults to "/".
	Path string
	// ExpectedState is the state the redirect must carry.
	ExpectedState pkce.State
	// Logger defaults to a discard logger.
	Logger *slog.Logger
}

// ConfigFromRedirectURI derives Host, Port and Path from a loopback redirect URI.
func ConfigFromRedirectURI(redirectURI string, expected pkce.State) (Config, error) {
	lb, err := oauth.ParseLoopback(redirectURI)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Host:          lb.Host,
		Port:          lb.Port,
		Path:          lb.Path,
		ExpectedState: expected,
	}, nil
}

// Listener captures exactly one provider redirect on a loopback socket.
type Listener struct {
	cfg    Config
	logger *slog.Logger

	state    atomic.Int32
	resolved atomic.Bool
	outcome  chan Outcome

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New returns an Idle listener. No socket is bound until Start.
func New(cfg Config) (*Listener, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, cfg.Port)
	}
	if cfg.ExpectedState == "" {
		return nil, fmt.Errorf("%w: expected state is required", ErrInvalidConfig)
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Listener{
		cfg:     cfg,
		logger:  logger,
		outcome: make(chan Outcome, 1),
	}, nil
}

// State returns the current lifecycle state.
func (l *Listener) State() State {
	return State(l.state.Load())
}

// Addr returns the bound address, or nil before Start.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Start binds the configured address and begins serving. The error wraps
// ErrBindFailed and the OS error when the port is unavailable.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.State() != StateIdle {
		return ErrAlreadyStarted
	}

	addr := oauth.Loopback{Host: l.cfg.Host, Port: l.cfg.Port, Path: l.cfg.Path}.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBindFailed, err)
	}

	l.listener = ln
	l.server = &http.Server{
		Handler:           recovery.Middleware(l.logger)(http.HandlerFunc(l.handle)),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	l.state.Store(int32(StateListening))

	l.logger.Debug("callback listener started", "addr", ln.Addr().String(), "path", l.cfg.Path)

	go func(srv *http.Server, ln net.Listener) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.resolve(errorOutcome(fmt.Errorf("%w: %w", ErrServeFailed, err)))
		}
	}(l.server, ln)

	return nil
}

// Wait blocks until the listener resolves or ctx is done, then closes it.
// When ctx ends first the returned error is context.Cause(ctx).
func (l *Listener) Wait(ctx context.Context) (Outcome, error) {
	switch l.State() {
	case StateIdle:
		return Outcome{}, ErrNotListening
	case StateClosed:
		select {
		case out := <-l.outcome:
			return out, nil
		default:
			return Outcome{}, ErrNotListening
		}
	}
	defer func() { _ = l.Close() }()

	select {
	case out := <-l.outcome:
		return out, nil
	case <-ctx.Done():
		return Outcome{}, context.Cause(ctx)
	}
}

// Close releases the socket. It is safe to call more than once and on a
// listener that was never started.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := State(l.state.Swap(int32(StateClosed)))
	if prev == StateClosed || l.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := l.server.Shutdown(ctx); err != nil {
		l.logger.Warn("failed to shut down callback listener", "error", err)
		return l.server.Close()
	}
	l.logger.Debug("callback listener closed")
	return nil
}

// resolve publishes out if no outcome has been produced yet. It reports
// whether this call won.
func (l *Listener) resolve(out Outcome) bool {
	if !l.resolved.CompareAndSwap(false, true) {
		return false
	}
	l.publish(out)
	return true
}

// publish hands out to Wait. Only the caller that won l.resolved may call it.
func (l *Listener) publish(out Outcome) {
	l.state.CompareAndSwap(int32(StateListening), int32(StateResolved))
	l.outcome <- out
}

func (l *Listener) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.EscapedPath() != l.cfg.Path {
		httperr.Write(w, httperr.NotFound)
		return
	}
	if !l.resolved.CompareAndSwap(false, true) {
		httperr.Write(w, httperr.NotFound)
		return
	}

	out := l.evaluate(r)
	switch out.Kind {
	case OutcomeCode:
		l.logger.Info("received authorization code")
		writeSuccessPage(w, l.logger)
	default:
		l.logger.Warn("rejected callback", "outcome", out.Kind.String(), "error", out.Err)
		writeErrorPage(w, l.logger, out.Err)
	}
	l.publish(out)
}

func (l *Listener) evaluate(r *http.Request) Outcome {
	query := r.URL.Query()

	got := query.Get(oauth.ParamState)
	if subtle.ConstantTimeCompare([]byte(got), []byte(l.cfg.ExpectedState)) != 1 {
		return mismatchOutcome()
	}

	if errParam := query.Get(oauth.ParamError); errParam != "" {
		desc := query.Get(oauth.ParamErrorDescription)
		if desc == "" {
			return errorOutcome(fmt.Errorf("%w: %s", ErrProviderError, errParam))
		}
		return errorOutcome(fmt.Errorf("%w: %s: %s", ErrProviderError, errParam, desc))
	}

	code := query.Get(oauth.ParamCode)
	if code == "" {
		return errorOutcome(ErrMissingCode)
	}
	return codeOutcome(code)
}
