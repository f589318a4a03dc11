// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"fmt"
)

// NotAuthenticatedStatus is the diagnostic carried by the fallback status.
const NotAuthenticatedStatus = "Not authenticated"

// Role is the platform permission level of an account.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleUser         Role = "USER"
	RoleUnauthorized Role = "UNAUTHORIZED"
)

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// UserID is the backend account identifier. The backend emits it as a JSON
// number; string form is accepted as well.
type UserID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *UserID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// AppUserDetails is the platform's view of the authenticated principal.
// Authorized is distinct from being known to the system: a linked account may
// still be waiting for admin approval.
type AppUserDetails struct {
	ID         UserID `json:"id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Authorized bool   `json:"authorized"`
}

// OAuth2Details holds the identity provider claims for the session.
// Email is always surfaced; every other claim is kept in Claims.
type OAuth2Details struct {
	Email  string
	Claims map[string]any
}

// UnmarshalJSON splits the email claim from the open claim set.
func (d *OAuth2Details) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Email = ""
	if v, ok := raw["email"].(string); ok {
		d.Email = v
		delete(raw, "email")
	}
	d.Claims = nil
	if len(raw) > 0 {
		d.Claims = raw
	}
	return nil
}

// MarshalJSON flattens the claims back into a single object.
func (d OAuth2Details) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Claims)+1)
	for k, v := range d.Claims {
		out[k] = v
	}
	out["email"] = d.Email
	return json.Marshal(out)
}

// AuthStatus is the body of GET /api/auth-status. Every field is optional:
// the backend returns a partial shape when there is no session, or a session
// without a linked account.
type AuthStatus struct {
	Status         string          `json:"status,omitempty"`
	UserExists     *bool           `json:"user_exists,omitempty"`
	AppUserDetails *AppUserDetails `json:"app_user_details,omitempty"`
	OAuth2Details  *OAuth2Details  `json:"oauth2_details,omitempty"`
}

// AccountExists reports whether user_exists was present and true.
func (s AuthStatus) AccountExists() bool {
	return s.UserExists != nil && *s.UserExists
}

// Authenticated reports whether the session maps to a known account with
// details attached.
func (s AuthStatus) Authenticated() bool {
	return s.AccountExists() && s.AppUserDetails != nil
}

// Authorized reports whether the account may use protected features.
func (s AuthStatus) Authorized() bool {
	return s.AppUserDetails != nil && s.AppUserDetails.Authorized
}

// NotAuthenticated returns the status used whenever the real one cannot be fetched.
func NotAuthenticated() AuthStatus {
	return AuthStatus{Status: NotAuthenticatedStatus, UserExists: Bool(false)}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
