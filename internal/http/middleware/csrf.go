package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/gorilla/sessions"
)

type csrfKey string

const csrfContextKey csrfKey = "csrf_token"
const csrfSessionKey = "csrf_token"

// SessionSource hands out the per-request session the token is kept in.
type SessionSource interface {
	Get(r *http.Request) *sessions.Session
}

func CSRFTokenFromContext(r *http.Request) string {
	if token, ok := r.Context().Value(csrfContextKey).(string); ok {
		return token
	}
	return ""
}

// CSRF issues a per-session token and rejects unsafe requests whose
// X-CSRF-Token header or csrf_token form field does not match it.
func CSRF(source SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := source.Get(r)
			token, ok := session.Values[csrfSessionKey].(string)
			if !ok || token == "" {
				token = generateCSRFToken()
				session.Values[csrfSessionKey] = token
				_ = session.Save(r, w)
			}

			if isUnsafeMethod(r.Method) {
				reqToken := r.Header.Get("X-CSRF-Token")
				if reqToken == "" {
					reqToken = r.FormValue("csrf_token")
				}
				if reqToken == "" || subtle.ConstantTimeCompare([]byte(reqToken), []byte(token)) != 1 {
					http.Error(w, "CSRF token mismatch.", http.StatusForbidden)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(contextWithCSRFToken(r.Context(), token)))
		})
	}
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func generateCSRFToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawStdEncoding.EncodeToString(buf)
}

func contextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfContextKey, token)
}
