// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"
	"errors"

	"organizer/cli/internal/keychain"
	"organizer/cli/internal/logging"
)

// Storage persists the session cookie and the last known auth state in the
// OS keychain.
type Storage struct {
	km     *keychain.Manager
	logger *logging.Logger
}

// NewStorage returns a Storage backed by km.
func NewStorage(km *keychain.Manager, logger *logging.Logger) *Storage {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Storage{km: km, logger: logger}
}

// Load reads the auth state. Missing state yields the zero value.
func (s *Storage) Load() (State, error) {
	var st State
	data, err := s.km.LoadAuthState()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			s.logger.Debug("no auth state stored")
			return st, nil
		}
		return st, err
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Debug("auth state unreadable", s.logger.Args("error", err.Error()))
		return State{}, err
	}
	return st, nil
}

// Save writes the auth state.
func (s *Storage) Save(st State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	s.logger.Debug("saving auth state", s.logger.Args("logged_in", st.LoggedIn, "account", st.Account))
	return s.km.SaveAuthState(b)
}

// Clear removes the auth state but keeps the session cookie.
func (s *Storage) Clear() error {
	return s.km.ClearAuthState()
}

// SessionCookie returns the stored session cookie, or "" when none is stored.
func (s *Storage) SessionCookie() (string, error) {
	v, err := s.km.LoadSessionCookie()
	if errors.Is(err, keychain.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// SaveSessionCookie stores the session cookie.
func (s *Storage) SaveSessionCookie(v string) error {
	s.logger.Debug("saving session cookie", s.logger.Args("cookie", logging.MaskCookie(v)))
	return s.km.SaveSessionCookie(v)
}

// ClearSession removes the session cookie and the auth state.
func (s *Storage) ClearSession() error {
	return s.km.ClearSession()
}
