// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the single point of egress for calls to the Organizer
// platform API. Every request carries the session cookie, and every 401 response
// triggers the configured session-expired callback before the error is returned
// to the caller.
package backend

import "context"

// API defines the backend operations the auth layer depends on.
// Implementations may call the real HTTP endpoints or provide fakes for tests.
type API interface {
	// AuthStatus fetches the current session's auth status.
	AuthStatus(ctx context.Context) (AuthStatus, error)
	// Logout invalidates the backend session.
	Logout(ctx context.Context) error
}

var _ API = (*Client)(nil)
