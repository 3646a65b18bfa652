// Package middleware provides HTTP middleware composition and the standard
// service middleware stack.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System composes middleware around a terminal handler.
type System interface {
	Use(m Middleware)
	Apply(handler http.Handler) http.Handler
}

type middleware struct {
	stack []Middleware
}

// New creates an empty middleware system.
func New() System {
	return &middleware{}
}

// Use appends middleware to the stack.
func (m *middleware) Use(mw Middleware) {
	m.stack = append(m.stack, mw)
}

// Apply wraps the handler with the registered middleware. The first
// middleware registered becomes the outermost wrapper.
func (m *middleware) Apply(handler http.Handler) http.Handler {
	for i := len(m.stack) - 1; i >= 0; i-- {
		handler = m.stack[i](handler)
	}
	return handler
}
