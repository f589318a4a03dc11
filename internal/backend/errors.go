// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned for any 401 response, after the session-expired
// callback has run.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError describes a non-2xx response other than 401.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
