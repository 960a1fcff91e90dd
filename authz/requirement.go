// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authz

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/eve-sso/scopes"
)

const (
	// VarScopes is the list(string) variable holding the scope strings.
	VarScopes = "scopes"

	// MaxExpressionLength is the maximum allowed length for a requirement.
	MaxExpressionLength = 4096

	// CostLimit bounds the runtime cost of evaluating one requirement.
	CostLimit = 100000
)

var (
	envOnce sync.Once
	env     *cel.Env
	envErr  error
)

// getEnv returns the shared CEL environment, creating it on first use.
func getEnv() (*cel.Env, error) {
	envOnce.Do(func() {
		env, envErr = cel.NewEnv(
			cel.Variable(VarScopes, cel.ListType(cel.StringType)),
		)
	})
	return env, envErr
}

// Requirement is a compiled boolean expression over a scope set, such as
//
//	"esi-markets.structure_markets.v1" in scopes
//
// It is safe for concurrent use.
type Requirement struct {
	source  string
	program cel.Program
}

// Source returns the expression text.
func (r *Requirement) Source() string {
	return r.source
}

// Compile parses and type checks expr. The expression must evaluate to a bool.
func Compile(expr string) (*Requirement, error) {
	if len(expr) > MaxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), MaxExpressionLength)
	}

	e, err := getEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	parsed, issues := e.Parse(expr)
	if issues.Err() != nil {
		return nil, newExpressionError(ErrKindParse, expr, issues)
	}

	checked, issues := e.Check(parsed)
	if issues.Err() != nil {
		return nil, newExpressionError(ErrKindCheck, expr, issues)
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q must evaluate to bool, not %s",
			ErrExpressionCheck, expr, checked.OutputType())
	}

	program, err := e.Program(checked, cel.CostLimit(CostLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create program for %q: %w", expr, err)
	}

	return &Requirement{source: expr, program: program}, nil
}

// RequireAll returns a requirement satisfied when every one of required is present.
// With no scopes the requirement is always satisfied.
func RequireAll(required ...scopes.Scope) (*Requirement, error) {
	if len(required) == 0 {
		return Compile("true")
	}
	for _, s := range required {
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: %q", scopes.ErrUnknownScope, s)
		}
	}
	set := scopes.NewSet(required...)
	terms := make([]string, 0, set.Len())
	for _, s := range set.Strings() {
		terms = append(terms, strconv.Quote(s)+" in "+VarScopes)
	}
	return Compile(strings.Join(terms, " && "))
}

// Allows reports whether set satisfies the requirement. A nil set is empty.
func (r *Requirement) Allows(set *scopes.Set) (bool, error) {
	var granted []string
	if set != nil {
		granted = set.Strings()
	}
	if granted == nil {
		granted = []string{}
	}

	out, _, err := r.program.Eval(map[string]any{VarScopes: granted})
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrEvaluation, out.Value())
	}
	return allowed, nil
}

// Require is Allows with ErrNotSatisfied in place of false.
func (r *Requirement) Require(set *scopes.Set) error {
	ok, err := r.Allows(set)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotSatisfied, r.source)
	}
	return nil
}
