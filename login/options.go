// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package login

import (
	"context"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/stacklok/eve-sso/callback"
	"github.com/stacklok/eve-sso/pkce"
)

// DefaultTimeout bounds how long Login waits for the callback.
const DefaultTimeout = 5 * time.Minute

// Listener is the part of *callback.Listener the orchestrator drives.
type Listener interface {
	Start() error
	Wait(ctx context.Context) (callback.Outcome, error)
	Close() error
}

// ListenerFactory builds the listener for one attempt.
type ListenerFactory func(cfg callback.Config) (Listener, error)

func newCallbackListener(cfg callback.Config) (Listener, error) {
	l, err := callback.New(cfg)
	if err != nil {
		return nil, err
	}
	return l, nil
}

type options struct {
	timeout     time.Duration
	clock       clock.Clock
	logger      *slog.Logger
	endpoint    string
	method      pkce.ChallengeMethod
	newListener ListenerFactory
}

// Option configures an Orchestrator.
type Option func(*options)

// WithTimeout sets how long Login waits for the callback. Non-positive
// values are rejected by New.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithClock sets the clock used for the timeout.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger for the orchestrator and its listener.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEndpoint overrides the authorization endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithChallengeMethod selects how the code challenge is derived.
func WithChallengeMethod(m pkce.ChallengeMethod) Option {
	return func(o *options) {
		o.method = m
	}
}

// WithListenerFactory replaces the callback listener constructor.
func WithListenerFactory(f ListenerFactory) Option {
	return func(o *options) {
		o.newListener = f
	}
}
