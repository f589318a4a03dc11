// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"organizer/cli/internal/navigate"
)

// Routes returns the platform's page table.
func Routes() []Route {
	return []Route{
		{Name: "home", Path: "/"},
		{Name: "about", Path: "/about"},
		{Name: "login", Path: "/login"},
		{Name: "dashboard", Path: "/dashboard", RequiresAuth: true},
		{Name: "messages", Path: "/messages", RequiresAuth: true},
	}
}

// Router matches paths to routes and resolves them through a navigator.
type Router struct {
	routes []Route
	nav    navigate.Navigator
	mw     []Middleware
}

// New returns a router over Routes().
func New(nav navigate.Navigator, mw ...Middleware) *Router {
	return NewWithRoutes(Routes(), nav, mw...)
}

// NewWithRoutes returns a router over a custom route table.
func NewWithRoutes(routes []Route, nav navigate.Navigator, mw ...Middleware) *Router {
	r := &Router{nav: nav, mw: mw}
	r.routes = append(r.routes, routes...)
	return r
}

// Routes returns the router's table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Match returns the route for path. Query strings and fragments are ignored
// and a trailing slash is tolerated.
func (r *Router) Match(path string) (Route, bool) {
	p := normalize(path)
	for _, rt := range r.routes {
		if rt.Path == p {
			return rt, true
		}
	}
	return Route{}, false
}

// Navigate moves to path. Middleware may redirect; each redirect target runs
// through the whole chain again. Only the final route is handed to the
// navigator.
func (r *Router) Navigate(ctx context.Context, path string) (Result, error) {
	res := Result{Requested: path}
	target := path
	var from Route

	for hop := 0; ; hop++ {
		to, ok := r.Match(target)
		if !ok {
			return res, fmt.Errorf("%s: %w", target, ErrNotFound)
		}

		t := &Transition{ctx: ctx, To: to, From: from}
		resolved := false
		err := ComposeMiddleware(t, r.mw, func() error {
			resolved = true
			return r.nav.Navigate(ctx, target)
		})
		if err != nil {
			return res, err
		}
		if resolved {
			res.Final = to
			return res, nil
		}

		next, redirected := t.Redirected()
		if !redirected {
			// middleware stopped without a redirect; stay where we are
			res.Final = from
			return res, nil
		}
		if hop+1 > MaxRedirects {
			return res, fmt.Errorf("%s: %w", path, ErrTooManyRedirects)
		}
		res.Redirected = true
		from = to
		target = next
	}
}

func normalize(path string) string {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if p := strings.TrimRight(path, "/"); p != "" {
		return p
	}
	return "/"
}
