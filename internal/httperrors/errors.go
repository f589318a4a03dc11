// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns failed backend calls into troubleshooting hints.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"organizer/cli/internal/backend"

	"github.com/pterm/pterm"
)

// Category is the coarse cause of a failed request.
type Category string

const (
	Timeout        Category = "timeout"
	DNS            Category = "dns"
	Refused        Category = "refused"
	TLS            Category = "tls"
	Server         Category = "server"
	SessionExpired Category = "session_expired"
	Unknown        Category = "unknown"
)

// Classify returns the category of err.
func Classify(err error) Category {
	switch {
	case err == nil:
		return ""
	case backend.IsUnauthorized(err):
		return SessionExpired
	case isTimeout(err):
		return Timeout
	case isDNS(err):
		return DNS
	case isRefused(err):
		return Refused
	case isTLS(err):
		return TLS
	case isServer(err):
		return Server
	default:
		return Unknown
	}
}

// FormatNetworkError prints a hint for err and returns it wrapped.
// host names the platform in the hint; context says what was being done.
func FormatNetworkError(err error, host, context string) error {
	if err == nil {
		return nil
	}
	show(Classify(err), host, context, err)
	return fmt.Errorf("network error: %w", err)
}

func show(cat Category, host, context string, err error) {
	switch cat {
	case SessionExpired:
		pterm.Warning.Printf("Session expired while %s\n", context)
		pterm.Println("Run 'organizer login' to sign in again.")
	case Timeout:
		pterm.Error.Printf("Connection timeout while %s\n", context)
		pterm.Println("The platform took too long to respond. Check your connection or raise timeout_seconds.")
	case DNS:
		pterm.Error.Printf("Cannot resolve %s while %s\n", host, context)
		pterm.Println("Check base_url and your DNS settings.")
	case Refused:
		pterm.Error.Printf("Connection refused by %s while %s\n", host, context)
		pterm.Println("Is the platform running? Local development listens on port 8080 by default.")
	case TLS:
		pterm.Error.Printf("Secure connection to %s failed while %s\n", host, context)
		pterm.Println("Check the certificate, any HTTPS proxy, and your system clock.")
	case Server:
		pterm.Error.Printf("The platform failed while %s\n", context)
		pterm.Println("This is a server-side problem. Try again in a few minutes.")
	default:
		pterm.Error.Printf("Cannot reach %s while %s\n", host, context)
		if msg := err.Error(); msg != "" {
			if len(msg) > 100 {
				msg = msg[:100] + "..."
			}
			pterm.Debug.Printf("Technical details: %s\n", msg)
		}
	}
	pterm.Println()
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNS(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLS(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "x509") ||
		strings.Contains(s, "certificate")
}

func isServer(err error) bool {
	var se *backend.StatusError
	return errors.As(err, &se) && se.StatusCode >= 500
}

// Host extracts the host of a URL for messages.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "the platform"
	}
	return u.Host
}
