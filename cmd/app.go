// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"organizer/cli/internal/auth"
	"organizer/cli/internal/backend"
	"organizer/cli/internal/config"
	"organizer/cli/internal/keychain"
	"organizer/cli/internal/logging"
	"organizer/cli/internal/navigate"
	"organizer/cli/internal/router"
)

// app is everything a command needs, wired once per invocation.
type app struct {
	cfg     config.Config
	logger  *logging.Logger
	storage *auth.Storage
	client  *backend.Client
	nav     navigate.Navigator
	service *auth.Service
	store   *auth.Store
	router  *router.Router

	storedCookie string

	// redirectOnExpiry is cleared by commands that lead to sign-in anyway.
	redirectOnExpiry bool

	navMu   sync.Mutex
	atLogin bool
}

// newApp wires the client stack. A 401 from the backend clears the stored
// session and sends the user to the login page. A request for the login page
// while the user is already there is dropped, so the expiry handler and the
// guard together open it once.
func newApp(cfg config.Config, logger *logging.Logger, km *keychain.Manager, nav navigate.Navigator) (*app, error) {
	a := &app{
		cfg:              cfg,
		logger:           logger,
		storage:          auth.NewStorage(km, logger),
		redirectOnExpiry: true,
	}
	a.nav = navigate.Func(func(ctx context.Context, target string) error {
		if !a.enterPage(target) {
			a.logger.Debug("already on page", a.logger.Args("target", target))
			return nil
		}
		return nav.Navigate(ctx, target)
	})

	client, err := backend.New(cfg.BaseURL,
		backend.WithTimeout(cfg.Timeout()),
		backend.WithLogger(logger),
		backend.WithUserAgent(backend.DefaultUserAgent+"/"+Version),
		backend.WithSessionExpired(a.sessionExpired),
	)
	if err != nil {
		return nil, err
	}
	a.client = client

	cookie, err := a.storage.SessionCookie()
	if err != nil {
		logger.Warn("cannot read stored session", logger.Args("error", logging.Mask(err.Error())))
	}
	if cookie != "" {
		client.SetSessionCookie(cookie)
		a.storedCookie = cookie
	}

	a.service = auth.NewService(client, a.nav, auth.WithLogger(logger))
	a.store = auth.NewStore(a.service, auth.WithStoreLogger(logger))
	a.router = router.New(a.nav, router.Guard(a.service))
	return a, nil
}

// enterPage records target as the current page and reports whether it has
// to be opened.
func (a *app) enterPage(target string) bool {
	a.navMu.Lock()
	defer a.navMu.Unlock()
	if target == navigate.LoginPath {
		if a.atLogin {
			return false
		}
		a.atLogin = true
		return true
	}
	a.atLogin = false
	return true
}

func (a *app) sessionExpired(ctx context.Context) {
	a.logger.Debug("session expired; clearing stored session")
	a.discardSession()
	if !a.redirectOnExpiry {
		return
	}
	if err := a.nav.Navigate(ctx, navigate.LoginPath); err != nil {
		a.logger.Warn("cannot open login page", a.logger.Args("error", err.Error()))
	}
}

// forgetSession drops the session cookie from the client.
func (a *app) forgetSession() {
	a.client.ClearSessionCookie()
	a.storedCookie = ""
}

// discardSession removes the session from the client and the keychain.
func (a *app) discardSession() {
	a.forgetSession()
	if err := a.storage.ClearSession(); err != nil {
		a.logger.Warn("cannot clear stored session", a.logger.Args("error", err.Error()))
	}
}

// hasSession reports whether a session cookie is loaded.
func (a *app) hasSession() bool {
	return a.client.SessionCookie() != ""
}

// useSession stores value and loads it into the client.
func (a *app) useSession(value string) error {
	if err := a.storage.SaveSessionCookie(value); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	a.client.SetSessionCookie(value)
	a.storedCookie = value
	return nil
}

// errSessionRejected is returned when a pasted cookie does not map to an account.
var errSessionRejected = errors.New("the platform did not accept this session; sign in again and copy a fresh cookie")

// verifySession installs cookie and keeps it only if the platform knows the
// account behind it. The previous account summary is dropped first.
func (a *app) verifySession(ctx context.Context, out io.Writer, cookie string) (auth.Snapshot, error) {
	if err := a.storage.Clear(); err != nil {
		a.logger.Warn("cannot clear auth state", a.logger.Args("error", err.Error()))
	}
	if err := a.useSession(cookie); err != nil {
		return auth.Snapshot{}, err
	}
	snap := a.refresh(ctx, out)
	if !snap.IsAuthenticated {
		a.discardSession()
		return snap, errSessionRejected
	}
	return snap, nil
}

// keepRotatedCookie stores the session cookie if the backend replaced it.
func (a *app) keepRotatedCookie() {
	cur := a.client.SessionCookie()
	if cur == "" || cur == a.storedCookie {
		return
	}
	if err := a.useSession(cur); err != nil {
		a.logger.Warn("cannot store rotated session", a.logger.Args("error", err.Error()))
	}
}

// persist saves a rotated session cookie and the summary of the latest check.
func (a *app) persist(snap auth.Snapshot) {
	a.keepRotatedCookie()
	if !snap.IsAuthenticated {
		return
	}
	if err := a.storage.Save(auth.StateFromSnapshot(snap)); err != nil {
		a.logger.Warn("cannot store auth state", a.logger.Args("error", err.Error()))
	}
}

// refresh runs a store refresh behind a spinner and persists the result.
func (a *app) refresh(ctx context.Context, out io.Writer) auth.Snapshot {
	stop := startSpinner(out, "Checking session")
	snap := a.store.CheckAuth(ctx)
	stop()
	a.persist(snap)
	return snap
}
