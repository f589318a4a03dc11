// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"organizer/cli/internal/auth"
	"organizer/cli/internal/navigate"
)

// Guard returns middleware that protects routes marked RequiresAuth.
//
// Public routes pass through without a status check. Protected routes are
// entered only when the backend reports an authorized account; otherwise the
// transition is sent to the login page. The guard asks the checker directly
// and never consults a cached Store, so an expired session is caught even
// when the store still holds a user.
func Guard(checker auth.StatusChecker) Middleware {
	return MiddlewareFunc(func(t *Transition, next func() error) error {
		if !t.To.RequiresAuth {
			return next()
		}
		st := checker.CheckAuthStatus(t.Context())
		if !st.Authorized() {
			t.Redirect(navigate.LoginPath)
			return nil
		}
		return next()
	})
}
