// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"
	"sync"

	"organizer/cli/internal/backend"
	"organizer/cli/internal/logging"

	"golang.org/x/sync/singleflight"
)

// Snapshot is an immutable view of the store.
type Snapshot struct {
	User            *backend.AppUserDetails
	IsAuthenticated bool
}

// Account returns a display name for the snapshot's user.
func (s Snapshot) Account() string {
	if s.User == nil {
		return ""
	}
	if s.User.Email != "" {
		return s.User.Email
	}
	return string(s.User.ID)
}

func (s Snapshot) clone() Snapshot {
	if s.User == nil {
		return Snapshot{IsAuthenticated: s.IsAuthenticated}
	}
	u := *s.User
	return Snapshot{User: &u, IsAuthenticated: s.IsAuthenticated}
}

// Store caches the latest known auth status for display. It is built once
// per process and passed to whoever needs it; it never refreshes on its own.
//
// Overlapping CheckAuth calls share one backend fetch, so refreshes are
// applied in the order they started and a slow older response can never
// overwrite a newer one.
type Store struct {
	checker StatusChecker
	logger  *logging.Logger

	mu   sync.RWMutex
	snap Snapshot

	group singleflight.Group

	subMu     sync.Mutex
	subs      map[int]func(Snapshot)
	nextSubID int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the store logger.
func WithStoreLogger(l *logging.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns an empty store: no user, not authenticated.
func NewStore(checker StatusChecker, opts ...StoreOption) *Store {
	s := &Store{
		checker: checker,
		logger:  logging.Nop(),
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// User returns the cached user, if authenticated.
func (s *Store) User() (backend.AppUserDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.User == nil {
		return backend.AppUserDetails{}, false
	}
	return *s.snap.User, true
}

// IsAuthenticated reports the cached authentication flag.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.IsAuthenticated
}

// CheckAuth refreshes the store from the status checker and returns the new
// state. The state is replaced wholesale: authenticated only when the account
// exists and its details are present, otherwise empty.
//
// The shared fetch ignores cancellation of the caller that started it, since
// later callers wait on the same result. Subscribers are notified once per
// fetch, after it completes, and may call CheckAuth themselves.
func (s *Store) CheckAuth(ctx context.Context) Snapshot {
	leader := false
	v, _, _ := s.group.Do("check-auth", func() (any, error) {
		leader = true
		snap := s.fetch(context.WithoutCancel(ctx))
		s.mu.Lock()
		s.snap = snap
		s.mu.Unlock()
		return snap, nil
	})
	snap := v.(Snapshot)
	if leader {
		s.notify(snap)
	}
	return snap.clone()
}

func (s *Store) fetch(ctx context.Context) (snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("auth check failed", s.logger.Args("panic", fmt.Sprint(r)))
			snap = Snapshot{}
		}
	}()

	st := s.checker.CheckAuthStatus(ctx)
	if !st.Authenticated() {
		return Snapshot{}
	}
	u := *st.AppUserDetails
	return Snapshot{User: &u, IsAuthenticated: true}
}

// Subscribe registers fn to be called with the new state after every
// refresh. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}
