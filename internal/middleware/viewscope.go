package middleware

import (
	"net/http"
	"strings"
)

// ViewScope releases the portfolio snapshot when a full page outside prefix
// is requested. htmx requests and assets never release it, so a fragment swap
// or an image fetch keeps the view mounted.
func ViewScope(prefix string) func(http.Handler) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && !IsHTMX(r.Context()) && !inScope(r.URL.Path, prefix) {
				GetSession(r).ReleasePortfolio()
			}
			next.ServeHTTP(w, r)
		})
	}
}

func inScope(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
