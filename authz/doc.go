// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package authz evaluates scope requirements written in the Common Expression
Language (CEL) against a [scopes.Set].

A requirement sees one variable, scopes, the list of scope strings:

	req, err := authz.Compile(`"esi-markets.structure_markets.v1" in scopes &&
		scopes.exists(s, s.startsWith("esi-universe."))`)
	if err != nil {
		var exprErr *authz.ExpressionError
		if errors.As(err, &exprErr) {
			fmt.Println(exprErr.AsJSON())
		}
		return err
	}

	ok, err := req.Allows(granted)

# Error Handling

Compilation errors wrap [ErrExpressionCheck]; parse and type errors are
returned as [*ExpressionError] with line and column details. Evaluation
failures wrap [ErrEvaluation] and [Requirement.Require] returns
[ErrNotSatisfied] when the set does not satisfy the expression.

# Limits

Expressions longer than [MaxExpressionLength] are rejected and evaluation is
bounded by [CostLimit].
*/
package authz
