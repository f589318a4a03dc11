// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

// ComposeMiddleware runs mw in order with handler at the end of the chain.
func ComposeMiddleware(t *Transition, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(t, next)
		}
	}
	return chain()
}
