// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package login

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks Launcher

// Launcher hands the authorization URL to the user. Open must return
// without waiting for the user.
type Launcher interface {
	Open(url string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(url string) error

// Open calls f(url).
func (f LauncherFunc) Open(url string) error {
	return f(url)
}

// BrowserLauncher opens the URL in the system's default browser.
type BrowserLauncher struct{}

// Open starts the browser process and returns.
func (BrowserLauncher) Open(url string) error {
	return browser.OpenURL(url)
}

// PrintLauncher writes the URL for the user to open by hand.
type PrintLauncher struct {
	Out io.Writer
}

// Open prints url to Out.
func (p PrintLauncher) Open(url string) error {
	_, err := fmt.Fprintf(p.Out, "Open this URL in your browser to log in:\n\n  %s\n\n", url)
	return err
}
