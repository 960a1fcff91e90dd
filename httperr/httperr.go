// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package httperr provides errors that carry the HTTP status a local endpoint answers with.
package httperr

import (
	"errors"
	"net/http"
)

// CodedError pairs an error with the HTTP status code it maps to.
type CodedError struct {
	err  error
	code int
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As() compatibility.
func (e *CodedError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *CodedError) HTTPCode() int {
	return e.code
}

// WithCode wraps err with an HTTP status code. If err is nil, WithCode returns nil.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

// New creates an error with the given message and HTTP status code.
func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}

// NotFound is the error every unmatched request to a callback listener maps to.
var NotFound = New("not found", http.StatusNotFound)

// Code extracts the HTTP status code from an error chain.
// nil maps to 200 and an error without a CodedError maps to 500.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}

	return http.StatusInternalServerError
}

// Write sends err as a plain-text response with its status code. Server-side
// failures are reported with the generic status text so internal details stay
// out of the browser.
func Write(w http.ResponseWriter, err error) {
	code := Code(err)
	msg := http.StatusText(code)
	if err != nil && code < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, code)
}
