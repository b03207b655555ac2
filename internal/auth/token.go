package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenCookie is read when no Authorization header is present.
const AccessTokenCookie = "access_token"

var ErrTokenInvalid = errors.New("token invalid")

type Claims struct {
	Email string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// Tokens accepts HS256 access tokens whose subject is the user id.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

func (t *Tokens) CurrentUser(r *http.Request) (*User, bool) {
	raw, ok := tokenFromRequest(r)
	if !ok {
		return nil, false
	}
	user, err := t.Validate(raw)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (t *Tokens) Validate(tokenString string) (*User, error) {
	if len(t.secret) == 0 {
		return nil, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(t.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &User{ID: id, Email: c.Email}, nil
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		token := strings.TrimSpace(parts[1])
		return token, token != ""
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(cookie.Value)
	return token, token != ""
}
