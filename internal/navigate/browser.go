// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package navigate

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// launcher starts the platform command; replaced in tests.
var launcher = func(cmd *exec.Cmd) error { return cmd.Start() }

// Browser opens platform pages in the user's default browser.
// The link is always printed as well, so a failed launch still leaves the user
// with something to click.
type Browser struct {
	base *url.URL
	out  io.Writer
	open bool
}

// NewBrowser returns a Browser for the platform at baseURL. When open is false
// links are only printed.
func NewBrowser(baseURL string, out io.Writer, open bool) (*Browser, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if out == nil {
		out = io.Discard
	}
	return &Browser{base: u, out: out, open: open}, nil
}

// URL resolves target against the platform base URL.
func (b *Browser) URL(target string) string {
	u := *b.base
	p, q, _ := strings.Cut(target, "?")
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(p, "/")
	u.RawQuery = q
	return u.String()
}

// Navigate prints the resolved link and, if enabled, opens it.
func (b *Browser) Navigate(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	link := b.URL(target)
	fmt.Fprintf(b.out, "→ %s\n", link)
	if !b.open {
		return nil
	}
	return OpenBrowser(link)
}

// OpenBrowser attempts to open link in the user's default browser.
// It starts the browser process but does not wait for it to complete.
func OpenBrowser(link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	case "darwin":
		cmd = exec.Command("open", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	if err := launcher(cmd); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
