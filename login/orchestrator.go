// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"k8s.io/utils/clock"

	"github.com/stacklok/eve-sso/callback"
	"github.com/stacklok/eve-sso/oauth"
	"github.com/stacklok/eve-sso/pkce"
	"github.com/stacklok/eve-sso/scopes"
)

// Request describes one login attempt.
type Request struct {
	ClientID    string
	RedirectURI string
	Scopes      []scopes.Scope
	// State is used as-is when set; otherwise a fresh one is generated.
	State pkce.State
	// Verifier is used as-is when set; otherwise a fresh one is generated.
	Verifier *pkce.Verifier
}

// Result is what a successful attempt hands back for the token exchange.
type Result struct {
	State     pkce.State
	Verifier  pkce.Verifier
	Method    pkce.ChallengeMethod
	Challenge string
	Code      string
	Scopes    *scopes.Set
	URL       string
}

// CodeVerifier returns the code_verifier to present with Code.
func (r *Result) CodeVerifier() string {
	return r.Verifier.Param(r.Method)
}

// Orchestrator runs the browser half of the authorization-code flow.
type Orchestrator struct {
	launcher Launcher
	opts     options
}

// New returns an Orchestrator that opens URLs through launcher.
func New(launcher Launcher, opts ...Option) (*Orchestrator, error) {
	if launcher == nil {
		return nil, errors.New("launcher is required")
	}

	o := options{
		timeout:     DefaultTimeout,
		clock:       clock.RealClock{},
		method:      pkce.ChallengeRaw,
		newListener: newCallbackListener,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", o.timeout)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.clock == nil {
		o.clock = clock.RealClock{}
	}
	if o.newListener == nil {
		o.newListener = newCallbackListener
	}

	return &Orchestrator{launcher: launcher, opts: o}, nil
}

// Attempt is the resolved, not yet launched, form of a Request.
type Attempt struct {
	URL      string
	Material *pkce.Material
	Method   pkce.ChallengeMethod
	Scopes   *scopes.Set
}

// CodeVerifier returns the code_verifier matching the challenge in URL.
func (a *Attempt) CodeVerifier() string {
	return a.Material.CodeVerifier(a.Method)
}

// Prepare validates req, resolves its PKCE material and renders the
// authorization URL without launching anything.
func (o *Orchestrator) Prepare(req Request) (*Attempt, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	material, err := resolveMaterial(req)
	if err != nil {
		return nil, err
	}

	set := scopes.NewSet(req.Scopes...)
	url := oauth.URLBuilder{Endpoint: o.opts.endpoint}.Build(oauth.AuthorizationRequest{
		ClientID:      req.ClientID,
		RedirectURI:   req.RedirectURI,
		Scope:         set.Render(),
		CodeChallenge: material.Challenge(o.opts.method),
		State:         material.State().String(),
	})
	return &Attempt{URL: url, Material: material, Method: o.opts.method, Scopes: set}, nil
}

// Login opens the authorization URL, waits for the redirect and returns the
// captured code. The browser is launched before the listener binds; a
// launch failure returns ErrLaunchFailed without touching the socket.
func (o *Orchestrator) Login(ctx context.Context, req Request) (*Result, error) {
	attempt, err := o.Prepare(req)
	if err != nil {
		return nil, err
	}
	material, url := attempt.Material, attempt.URL

	cfg, err := callback.ConfigFromRedirectURI(req.RedirectURI, material.State())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	cfg.Logger = o.opts.logger

	o.opts.logger.Debug("launching authorization URL", "url", url)
	if err := o.launcher.Open(url); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}

	listener, err := o.opts.newListener(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := listener.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListenerBindFailed, err)
	}

	o.opts.logger.Info("waiting for login callback", "redirect_uri", req.RedirectURI, "timeout", o.opts.timeout)

	out, err := o.wait(ctx, listener)
	if err != nil {
		return nil, err
	}

	switch out.Kind {
	case callback.OutcomeCode:
		o.opts.logger.Info("login callback accepted")
		return &Result{
			State:     material.State(),
			Verifier:  material.Verifier(),
			Method:    o.opts.method,
			Challenge: material.Challenge(o.opts.method),
			Code:      out.Code,
			Scopes:    attempt.Scopes,
			URL:       url,
		}, nil
	case callback.OutcomeStateMismatch:
		return nil, fmt.Errorf("%w: %w", ErrStateMismatch, out.Err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrListenerError, out.Err)
	}
}

// wait blocks on the listener until it resolves, the timeout fires on the
// configured clock, or ctx ends. The listener is closed in every case.
func (o *Orchestrator) wait(ctx context.Context, listener Listener) (callback.Outcome, error) {
	waitCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	timer := o.opts.clock.NewTimer(o.opts.timeout)
	defer timer.Stop()

	go func() {
		select {
		case <-timer.C():
			cancel(ErrTimeout)
		case <-waitCtx.Done():
		}
	}()

	out, err := listener.Wait(waitCtx)
	if err == nil {
		return out, nil
	}
	_ = listener.Close()

	if errors.Is(err, ErrTimeout) {
		return callback.Outcome{}, fmt.Errorf("%w: no callback within %s", ErrTimeout, o.opts.timeout)
	}
	return callback.Outcome{}, fmt.Errorf("%w: %w", ErrCanceled, err)
}

func validate(req Request) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: client id is required", ErrInvalidRequest)
	}
	if err := oauth.ValidateRedirectURI(req.RedirectURI); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	for _, s := range req.Scopes {
		if !s.IsValid() {
			return fmt.Errorf("%w: unknown scope %q", ErrInvalidRequest, s)
		}
	}
	return nil
}

func resolveMaterial(req Request) (*pkce.Material, error) {
	var opts []pkce.Option
	if req.State != "" {
		opts = append(opts, pkce.WithState(req.State))
	}
	if req.Verifier != nil {
		opts = append(opts, pkce.WithVerifier(*req.Verifier))
	}
	material, err := pkce.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolve PKCE material: %w", err)
	}
	return material, nil
}
