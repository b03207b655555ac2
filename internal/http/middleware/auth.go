package middleware

import (
	"context"
	"net/http"

	"aiadoption/internal/auth"
)

type contextKey string

const userKey contextKey = "user"

func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(userKey).(*auth.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// AuthRequired redirects anonymous requests to the login page and stores the
// resolved user in the request context.
func AuthRequired(identity auth.IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := identity.CurrentUser(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
