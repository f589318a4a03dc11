// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the CLI logger and helpers for keeping secrets out
// of log lines and user-facing error messages.
//
// Session cookies are the only credential the CLI holds, so every value that
// looks like a session cookie, bearer token or password is masked before it
// reaches the terminal.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reSession  = regexp.MustCompile(`(?i)(jsessionid=|session=)([^\s;,]+)`)
	reURLCreds = regexp.MustCompile(`(?i)(://)([^:/@\s]+):([^@\s]+)(@)`)
	reAPIKey   = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
	reEnvPair  = regexp.MustCompile(`(?i)\b(ORGANIZER_SESSION=|ACCESS_TOKEN=)([^\s;]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// Credentials embedded in URLs are masked as "*:*".
func Mask(s string) string {
	out := reEnvPair.ReplaceAllString(s, "$1***")
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reSession.ReplaceAllString(out, "$1***")
	out = reURLCreds.ReplaceAllString(out, "$1*:*$4")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	return out
}

// MaskCookie shortens a raw cookie value to a recognisable prefix.
func MaskCookie(v string) string {
	if len(v) <= 4 {
		return "***"
	}
	return v[:4] + "***"
}
