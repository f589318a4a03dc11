// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package navigate is the boundary through which the CLI "moves" the user to a
// page of the platform: the OAuth2 login entry point, the login page after a
// session expires, or the landing page after logout.
package navigate

import (
	"context"
	"sync"
)

// Well-known targets.
const (
	LoginPath       = "/login"
	HomePath        = "/"
	GoogleLoginPath = "/oauth2/authorization/google"
)

// Navigator moves the user to target, a path on the platform.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// Func adapts a function to Navigator.
type Func func(ctx context.Context, target string) error

// Navigate calls f.
func (f Func) Navigate(ctx context.Context, target string) error { return f(ctx, target) }

// Recorder remembers every target it was asked to navigate to.
type Recorder struct {
	mu      sync.Mutex
	targets []string
}

// Navigate records target.
func (r *Recorder) Navigate(_ context.Context, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
	return nil
}

// Targets returns a copy of the recorded targets in order.
func (r *Recorder) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.targets))
	copy(out, r.targets)
	return out
}

// Last returns the most recent target, or "" when none was recorded.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return ""
	}
	return r.targets[len(r.targets)-1]
}
