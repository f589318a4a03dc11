// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "organizer/cli/internal/backend"

// State is the persisted summary of the last successful auth check. It backs
// the offline fallback of whoami and is never consulted for access decisions.
type State struct {
	LoggedIn   bool         `json:"logged_in"`
	Account    string       `json:"account"`
	Role       backend.Role `json:"role,omitempty"`
	Authorized bool         `json:"authorized"`
}

// StateFromSnapshot summarises a store snapshot for persistence.
func StateFromSnapshot(snap Snapshot) State {
	if !snap.IsAuthenticated || snap.User == nil {
		return State{}
	}
	return State{
		LoggedIn:   true,
		Account:    snap.Account(),
		Role:       snap.User.Role,
		Authorized: snap.User.Authorized,
	}
}
