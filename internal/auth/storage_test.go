// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"testing"

	"organizer/cli/internal/backend"
	"organizer/cli/internal/keychain"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage() *Storage {
	return NewStorage(keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil)), nil)
}

func TestStorage_StateRoundTrip(t *testing.T) {
	s := newTestStorage()

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)

	want := State{LoggedIn: true, Account: "dana@example.com", Role: backend.RoleAdmin, Authorized: true}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, got)
}

func TestStorage_SessionCookie(t *testing.T) {
	s := newTestStorage()

	v, err := s.SessionCookie()
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SaveSessionCookie("cookie-1"))
	require.NoError(t, s.Save(State{LoggedIn: true}))

	v, err = s.SessionCookie()
	require.NoError(t, err)
	assert.Equal(t, "cookie-1", v)

	require.NoError(t, s.ClearSession())
	v, err = s.SessionCookie()
	require.NoError(t, err)
	assert.Empty(t, v)
	st, err := s.Load()
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)
}
