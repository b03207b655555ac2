package middleware

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
)

// FormPolicy bounds what a posted form may contain. Fields named in Verbatim
// are checked but never trimmed, so secrets reach the handler exactly as typed.
type FormPolicy struct {
	MaxBytes int64
	Verbatim []string
}

// SanitizeForm parses POST bodies under policy, trims values and rejects
// control characters. Other methods pass through untouched.
func SanitizeForm(policy FormPolicy) func(http.Handler) http.Handler {
	verbatim := make(map[string]bool, len(policy.Verbatim))
	for _, field := range policy.Verbatim {
		verbatim[field] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, policy.MaxBytes)
			if err := r.ParseForm(); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "Form is too large.", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "Malformed form.", http.StatusBadRequest)
				return
			}

			for key, values := range r.PostForm {
				for i, value := range values {
					if strings.IndexFunc(value, unicode.IsControl) >= 0 {
						http.Error(w, "Invalid characters in input.", http.StatusBadRequest)
						return
					}
					if !verbatim[key] {
						r.PostForm[key][i] = strings.TrimSpace(value)
					}
				}
			}
			r.Form = r.PostForm

			next.ServeHTTP(w, r)
		})
	}
}
