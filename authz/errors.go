// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authz

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for scope requirements.
var (
	// ErrExpressionCheck is returned when a requirement fails syntax or type checking.
	ErrExpressionCheck = errors.New("scope requirement check failed")

	// ErrEvaluation is returned when evaluating a requirement fails.
	ErrEvaluation = errors.New("scope requirement evaluation failed")

	// ErrNotSatisfied is returned by Requirement.Require when the scopes do not satisfy it.
	ErrNotSatisfied = errors.New("scope requirement not satisfied")
)

// ErrKind is a string identifying the type of expression error.
type ErrKind string

const (
	// ErrKindParse indicates a syntax error in the expression.
	ErrKindParse ErrKind = "parse"
	// ErrKindCheck indicates a type checking error in the expression.
	ErrKindCheck ErrKind = "check"
)

// ErrInstance represents one occurrence of an error in an expression.
type ErrInstance struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ErrDetails contains structured error information for an expression.
type ErrDetails struct {
	Errors []ErrInstance `json:"errors,omitempty"`
	Source string        `json:"source,omitempty"`
}

// AsJSON returns the ErrDetails as a JSON string.
func (ed *ErrDetails) AsJSON() string {
	edBytes, err := json.Marshal(ed)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(edBytes)
}

func errDetailsFromIssues(source string, issues *cel.Issues) ErrDetails {
	ed := ErrDetails{
		Source: source,
		Errors: make([]ErrInstance, 0, len(issues.Errors())),
	}
	for _, err := range issues.Errors() {
		ed.Errors = append(ed.Errors, ErrInstance{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return ed
}

// ExpressionError is a parse or check failure with location information.
type ExpressionError struct {
	ErrDetails
	Kind     ErrKind
	original error
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("%s error in scope requirement %q: %s", e.Kind, e.Source, e.original)
}

// Unwrap returns the underlying error.
func (e *ExpressionError) Unwrap() error {
	return e.original
}

func newExpressionError(kind ErrKind, source string, issues *cel.Issues) error {
	return &ExpressionError{
		ErrDetails: errDetailsFromIssues(source, issues),
		Kind:       kind,
		original:   fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}
