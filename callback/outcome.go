// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

// State is the lifecycle position of a Listener.
type State int32

const (
	// StateIdle is a constructed listener that holds no socket.
	StateIdle State = iota
	// StateListening is a bound listener waiting for the redirect.
	StateListening
	// StateResolved is a listener that has produced its outcome.
	StateResolved
	// StateClosed is a listener whose socket has been released.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateResolved:
		return "resolved"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// OutcomeKind tells the variants of Outcome apart.
type OutcomeKind int

const (
	// OutcomeCode means the redirect carried a code and the expected state.
	OutcomeCode OutcomeKind = iota + 1
	// OutcomeStateMismatch means the state did not match. The attempt must be rejected.
	OutcomeStateMismatch
	// OutcomeListenerError means the redirect was malformed or the server failed.
	OutcomeListenerError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCode:
		return "code"
	case OutcomeStateMismatch:
		return "state_mismatch"
	case OutcomeListenerError:
		return "listener_error"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of one listener run.
type Outcome struct {
	Kind OutcomeKind
	// Code is set for OutcomeCode only.
	Code string
	// Err is set for every kind except OutcomeCode.
	Err error
}

func codeOutcome(code string) Outcome {
	return Outcome{Kind: OutcomeCode, Code: code}
}

func mismatchOutcome() Outcome {
	return Outcome{Kind: OutcomeStateMismatch, Err: ErrStateMismatch}
}

func errorOutcome(err error) Outcome {
	return Outcome{Kind: OutcomeListenerError, Err: err}
}
