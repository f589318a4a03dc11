// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides the authentication layer of the organizer CLI.
//
// Service presents a never-failing view of the backend auth status and the
// login / logout actions. Store caches the last known status for display.
// Secrets (the session cookie) and the last known state are persisted through
// Storage in the OS keychain.
package auth

import (
	"context"

	"organizer/cli/internal/backend"
	apperrors "organizer/cli/internal/errors"
	"organizer/cli/internal/logging"
	"organizer/cli/internal/navigate"
)

// StatusChecker reports the current auth status. Implementations never fail:
// any problem is reported as backend.NotAuthenticated().
type StatusChecker interface {
	CheckAuthStatus(ctx context.Context) backend.AuthStatus
}

// Service centralizes authentication-related operations against the backend.
type Service struct {
	be     backend.API
	nav    navigate.Navigator
	logger *logging.Logger
}

var _ StatusChecker = (*Service)(nil)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *logging.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService constructs an auth Service over the backend API and navigator.
func NewService(be backend.API, nav navigate.Navigator, opts ...ServiceOption) *Service {
	s := &Service{be: be, nav: nav, logger: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAuthStatus fetches the auth status. It never returns an error: a
// network failure, an error status or a malformed body all yield
// backend.NotAuthenticated(), so callers cannot tell "logged out" from
// "backend unreachable".
func (s *Service) CheckAuthStatus(ctx context.Context) backend.AuthStatus {
	st, err := s.be.AuthStatus(ctx)
	if err != nil {
		s.logger.Debug("auth status unavailable", s.logger.Args(
			"error", logging.Mask(err.Error()),
			"kind", string(statusErrorKind(err)),
		))
		return backend.NotAuthenticated()
	}
	return st
}

func statusErrorKind(err error) apperrors.Kind {
	if backend.IsUnauthorized(err) {
		return apperrors.SessionExpired
	}
	return apperrors.StatusFetchFailed
}

// LoginWithGoogle sends the user to the Google OAuth2 entry point of the platform.
func (s *Service) LoginWithGoogle(ctx context.Context) error {
	return s.nav.Navigate(ctx, navigate.GoogleLoginPath)
}

// Logout ends the backend session and then sends the user to the home page.
// The redirect happens even when the backend call fails; the failure is still
// returned, as a logout_failed error, so the caller can report it.
func (s *Service) Logout(ctx context.Context) error {
	logoutErr := s.be.Logout(ctx)
	if logoutErr != nil {
		s.logger.Warn("backend logout failed", s.logger.Args("error", logging.Mask(logoutErr.Error())))
	}

	// The redirect must not depend on the outcome of the call above.
	navErr := s.nav.Navigate(context.WithoutCancel(ctx), navigate.HomePath)

	if logoutErr != nil {
		return apperrors.Wrap(apperrors.LogoutFailed, "backend logout", logoutErr)
	}
	return navErr
}
