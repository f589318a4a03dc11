// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router resolves platform paths to routes and runs navigation
// middleware, such as the authentication guard, before a route is shown.
package router

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned for paths that match no route.
	ErrNotFound = errors.New("route not found")
	// ErrTooManyRedirects is returned when middleware keeps redirecting.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// MaxRedirects bounds how many redirects a single navigation may follow.
const MaxRedirects = 3

// Route is a named page of the platform.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
}

// Result describes where a navigation ended up.
type Result struct {
	Requested  string
	Final      Route
	Redirected bool
}

// Transition is one attempt to move to a route. Middleware either calls
// next to let it proceed or calls Redirect and returns without calling next.
type Transition struct {
	ctx      context.Context
	To       Route
	From     Route
	redirect string
}

// Context returns the context of the navigation.
func (t *Transition) Context() context.Context { return t.ctx }

// Redirect abandons the transition in favour of path.
func (t *Transition) Redirect(path string) { t.redirect = path }

// Redirected returns the redirect target, if any.
func (t *Transition) Redirected() (string, bool) { return t.redirect, t.redirect != "" }

// Middleware runs before a route is resolved.
type Middleware interface {
	Handle(t *Transition, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(t *Transition, next func() error) error

// Handle calls f.
func (f MiddlewareFunc) Handle(t *Transition, next func() error) error { return f(t, next) }
