package middleware

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// userIDKey is the context key for the caller-supplied identifier.
const userIDKey contextKey = "userID"

// IdentityHeader carries the opaque caller identifier. It namespaces uploads;
// it is not authentication and is never verified.
const IdentityHeader = "X-User-ID"

// Identity copies the caller identifier header into the request context.
// Requests without the header pass through untouched.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(IdentityHeader)); id != "" {
			ctx := context.WithValue(r.Context(), userIDKey, id)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the caller identifier stored by Identity, or "" when the
// header was absent.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
