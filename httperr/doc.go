// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package httperr provides errors that carry an HTTP status code.

The callback listener decides the status of every browser-facing response
from the error it produced while handling the request. CodedError keeps that
status attached while the error travels through the handler, and supports
errors.Is() and errors.As() through Unwrap.

# Basic Usage

	// Unknown paths and methods on the loopback listener
	httperr.Write(w, httperr.NotFound)

	// Wrap a validation failure as a client error
	err := httperr.WithCode(errStateMismatch, http.StatusBadRequest)
	code := httperr.Code(err) // 400

# Extracting Status Codes

	code := httperr.Code(err)
	// the code of the first CodedError in the chain
	// http.StatusInternalServerError (500) if none is found
	// http.StatusOK (200) if err is nil
*/
package httperr
