// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
)

const pageStyle = `
        body { font-family: Arial, sans-serif; margin: 40px; text-align: center; }
        .container { max-width: 600px; margin: 0 auto; }
        .message { padding: 20px; border-radius: 5px; margin: 20px 0; }
        .success { background-color: #e7f6e7; border: 1px solid #b3e6b3; color: #006600; }
        .error { background-color: #ffe7e7; border: 1px solid #ffb3b3; color: #cc0000; }`

const pageTemplate = `
<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>%s
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <div class="message %s">
            <p>%s</p>
        </div>
    </div>
</body>
</html>`

// setSecurityHeaders sets common security headers for all page responses.
func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline';")
}

func writePage(w http.ResponseWriter, logger *slog.Logger, status int, title, class, message string) {
	setSecurityHeaders(w)
	w.WriteHeader(status)
	body := fmt.Sprintf(pageTemplate, title, pageStyle, title, class, message)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Warn("failed to write callback page", "error", err)
	}
}

func writeSuccessPage(w http.ResponseWriter, logger *slog.Logger) {
	writePage(w, logger, http.StatusOK, "Login Successful", "success",
		"EVE SSO login complete. You can close this window and return to the terminal.")
}

// writeErrorPage HTML-escapes err before rendering it.
func writeErrorPage(w http.ResponseWriter, logger *slog.Logger, err error) {
	writePage(w, logger, http.StatusBadRequest, "Login Failed", "error",
		html.EscapeString(err.Error()))
}
