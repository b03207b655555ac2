package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName     = "adoption-session"
	sessionUserID   = "user_id"
	sessionUserMail = "user_email"
)

// Sessions keeps the signed-in user in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
}

type SessionOptions struct {
	Secret string
	MaxAge int
	Secure bool
}

func NewSessions(opts SessionOptions) *Sessions {
	store := sessions.NewCookieStore([]byte(opts.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// Get returns the request's session. A cookie that fails to decode yields a
// fresh session.
func (s *Sessions) Get(r *http.Request) *sessions.Session {
	session, _ := s.store.Get(r, sessionName)
	return session
}

func (s *Sessions) CurrentUser(r *http.Request) (*User, bool) {
	session := s.Get(r)
	raw, ok := session.Values[sessionUserID].(string)
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	email, _ := session.Values[sessionUserMail].(string)
	return &User{ID: id, Email: email}, true
}

func (s *Sessions) SetUser(w http.ResponseWriter, r *http.Request, user *User) error {
	session := s.Get(r)
	session.Values[sessionUserID] = user.ID.String()
	session.Values[sessionUserMail] = user.Email
	return session.Save(r, w)
}

func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session := s.Get(r)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
