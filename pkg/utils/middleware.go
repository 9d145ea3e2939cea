package utils

import "net/http"

// Middleware is a function that wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps handler in order: the last middleware listed ends up
// outermost and sees the request first.
func ApplyMiddleware(handler http.Handler, middlewares ...Middleware) http.Handler {
	for _, middleware := range middlewares {
		handler = middleware(handler)
	}
	return handler
}
