// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
)

// Endpoint paths, relative to APIPrefix.
const (
	AuthStatusPath = "/auth-status"
	LogoutPath     = "/logout"
)

// AuthStatus calls GET /api/auth-status and returns the parsed status verbatim.
func (c *Client) AuthStatus(ctx context.Context) (AuthStatus, error) {
	var st AuthStatus
	if err := c.Get(ctx, AuthStatusPath, &st); err != nil {
		return AuthStatus{}, err
	}
	return st, nil
}

// Logout calls POST /api/logout. No response body is required.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, LogoutPath, nil, nil)
}
