// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"organizer/cli/internal/backend"
	"organizer/cli/internal/navigate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkerFunc func(ctx context.Context) backend.AuthStatus

func (f checkerFunc) CheckAuthStatus(ctx context.Context) backend.AuthStatus { return f(ctx) }

// countingChecker returns st and counts calls.
func countingChecker(st backend.AuthStatus, calls *atomic.Int32) checkerFunc {
	return func(context.Context) backend.AuthStatus {
		calls.Add(1)
		return st
	}
}

func statusWith(d *backend.AppUserDetails) backend.AuthStatus {
	return backend.AuthStatus{UserExists: backend.Bool(d != nil), AppUserDetails: d}
}

func TestGuard(t *testing.T) {
	approved := &backend.AppUserDetails{ID: "1", Email: "a@example.com", Role: backend.RoleUser, Authorized: true}
	pending := &backend.AppUserDetails{ID: "2", Email: "p@example.com", Role: backend.RoleUnauthorized}

	tests := []struct {
		name           string
		path           string
		status         backend.AuthStatus
		wantFinal      string
		wantRedirected bool
		wantChecks     int32
		wantNavigated  []string
	}{
		{"public home", "/", backend.NotAuthenticated(), "/", false, 0, []string{"/"}},
		{"public about", "/about", backend.NotAuthenticated(), "/about", false, 0, []string{"/about"}},
		{"login page", "/login", backend.NotAuthenticated(), "/login", false, 0, []string{"/login"}},
		{"dashboard authorized", "/dashboard", statusWith(approved), "/dashboard", false, 1, []string{"/dashboard"}},
		{"dashboard pending approval", "/dashboard", statusWith(pending), "/login", true, 1, []string{"/login"}},
		{"dashboard no session", "/dashboard", backend.NotAuthenticated(), "/login", true, 1, []string{"/login"}},
		{"messages authorized", "/messages", statusWith(approved), "/messages", false, 1, []string{"/messages"}},
		{"messages empty status", "/messages", backend.AuthStatus{}, "/login", true, 1, []string{"/login"}},
		{
			"authorized flag without exists flag",
			"/dashboard",
			backend.AuthStatus{AppUserDetails: approved},
			"/dashboard", false, 1, []string{"/dashboard"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			nav := &navigate.Recorder{}
			r := New(nav, Guard(countingChecker(tt.status, &calls)))

			res, err := r.Navigate(context.Background(), tt.path)
			require.NoError(t, err)

			assert.Equal(t, tt.path, res.Requested)
			assert.Equal(t, tt.wantFinal, res.Final.Path)
			assert.Equal(t, tt.wantRedirected, res.Redirected)
			assert.Equal(t, tt.wantChecks, calls.Load())
			assert.Equal(t, tt.wantNavigated, nav.Targets())
		})
	}
}

func TestGuard_IndependentChecksPerNavigation(t *testing.T) {
	var calls atomic.Int32
	approved := &backend.AppUserDetails{ID: "1", Authorized: true}
	nav := &navigate.Recorder{}
	r := New(nav, Guard(countingChecker(statusWith(approved), &calls)))

	_, err := r.Navigate(context.Background(), "/dashboard")
	require.NoError(t, err)
	_, err = r.Navigate(context.Background(), "/dashboard")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []string{"/dashboard", "/dashboard"}, nav.Targets())
}

func TestGuard_UsesNavigationContext(t *testing.T) {
	type key struct{}
	var seen any
	checker := checkerFunc(func(ctx context.Context) backend.AuthStatus {
		seen = ctx.Value(key{})
		return backend.NotAuthenticated()
	})
	r := New(&navigate.Recorder{}, Guard(checker))

	ctx := context.WithValue(context.Background(), key{}, "marker")
	_, err := r.Navigate(ctx, "/messages")
	require.NoError(t, err)
	assert.Equal(t, "marker", seen)
}

func TestNavigate_NotFound(t *testing.T) {
	nav := &navigate.Recorder{}
	r := New(nav)

	_, err := r.Navigate(context.Background(), "/nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, nav.Targets())
}

func TestNavigate_RedirectLoopIsBounded(t *testing.T) {
	routes := []Route{
		{Name: "login", Path: "/login", RequiresAuth: true},
		{Name: "dashboard", Path: "/dashboard", RequiresAuth: true},
	}
	var calls atomic.Int32
	nav := &navigate.Recorder{}
	r := NewWithRoutes(routes, nav, Guard(countingChecker(backend.NotAuthenticated(), &calls)))

	_, err := r.Navigate(context.Background(), "/dashboard")
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	assert.Empty(t, nav.Targets())
	assert.Equal(t, int32(MaxRedirects+1), calls.Load())
}

func TestNavigate_NavigatorError(t *testing.T) {
	boom := errors.New("no display")
	r := New(navigate.Func(func(context.Context, string) error { return boom }))

	res, err := r.Navigate(context.Background(), "/about")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Route{}, res.Final)
}

func TestNavigate_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(tr *Transition, next func() error) error {
			order = append(order, name)
			return next()
		})
	}
	nav := navigate.Func(func(context.Context, string) error {
		order = append(order, "resolve")
		return nil
	})

	_, err := New(nav, mw("a"), mw("b"), mw("c")).Navigate(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "resolve"}, order)
}

func TestNavigate_MiddlewareHaltWithoutRedirect(t *testing.T) {
	nav := &navigate.Recorder{}
	halt := MiddlewareFunc(func(*Transition, func() error) error { return nil })

	res, err := New(nav, halt).Navigate(context.Background(), "/about")
	require.NoError(t, err)
	assert.Equal(t, Route{}, res.Final)
	assert.False(t, res.Redirected)
	assert.Empty(t, nav.Targets())
}

func TestMatch(t *testing.T) {
	r := New(&navigate.Recorder{})

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/", "home", true},
		{"", "home", true},
		{"/dashboard/", "dashboard", true},
		{"dashboard", "dashboard", true},
		{"/messages?page=2", "messages", true},
		{"/about#team", "about", true},
		{"//", "home", true},
		{"/admin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rt, ok := r.Match(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rt.Name)
		})
	}
}

func TestRoutesTable(t *testing.T) {
	guarded := map[string]bool{}
	for _, rt := range Routes() {
		guarded[rt.Path] = rt.RequiresAuth
	}
	assert.Equal(t, map[string]bool{
		"/":          false,
		"/about":     false,
		"/login":     false,
		"/dashboard": true,
		"/messages":  true,
	}, guarded)
}
