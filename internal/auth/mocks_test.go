// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"

	"organizer/cli/internal/backend"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) AuthStatus(ctx context.Context) (backend.AuthStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(backend.AuthStatus), args.Error(1)
}

func (m *mockAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// checkerFunc adapts a function to StatusChecker.
type checkerFunc func(ctx context.Context) backend.AuthStatus

func (f checkerFunc) CheckAuthStatus(ctx context.Context) backend.AuthStatus { return f(ctx) }

func fixedChecker(st backend.AuthStatus) checkerFunc {
	return func(context.Context) backend.AuthStatus { return st }
}

func approvedUser() *backend.AppUserDetails {
	return &backend.AppUserDetails{ID: "7", Email: "dana@example.com", Role: backend.RoleUser, Authorized: true}
}
