package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash returns middleware that redirects requests with trailing slashes
// to their canonical form without the slash. The root path "/" is preserved.
// The redirect is permanent and method-preserving so a PUT or DELETE against
// "/documents/" replays against "/documents" unchanged.
func TrimSlash() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
				target := *r.URL
				target.Path = strings.TrimSuffix(target.Path, "/")
				http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
