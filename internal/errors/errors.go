// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Each error carries a machine-readable Kind and a human-friendly message, and
// wraps the underlying cause so errors.Is / errors.As keep working.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// SessionExpired indicates the backend answered 401 for the current session.
	SessionExpired Kind = "session_expired"
	// StatusFetchFailed indicates the auth status could not be retrieved.
	StatusFetchFailed Kind = "status_fetch_failed"
	// LogoutFailed indicates the backend logout call did not succeed.
	LogoutFailed Kind = "logout_failed"
	// NotFound indicates a navigation target that matches no route.
	NotFound Kind = "not_found"
	// ConfigInvalid indicates unusable CLI configuration.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "".
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err's chain holds an *E of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *E
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
