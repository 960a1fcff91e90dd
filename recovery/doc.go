// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for HTTP handlers.
//
// A panic in the callback handler must not take down the login process, which
// is still waiting for its outcome. The middleware logs the panic and answers
// 500 Internal Server Error instead.
//
// # Basic Usage
//
//	handler := recovery.Middleware(logger)(mux)
//	srv := &http.Server{Handler: handler}
package recovery
