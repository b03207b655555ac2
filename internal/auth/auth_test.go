package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"aiadoption/internal/repo"
)

type fakeAccounts struct {
	account   *repo.Account
	err       error
	lastLogin map[uuid.UUID]time.Time
}

func (f *fakeAccounts) AccountByEmail(context.Context, string) (*repo.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil {
		return nil, repo.ErrNotFound
	}
	return f.account, nil
}

func (f *fakeAccounts) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if f.lastLogin == nil {
		f.lastLogin = map[uuid.UUID]time.Time{}
	}
	f.lastLogin[id] = at
	return nil
}

func newAccount(t *testing.T, status string) *repo.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &repo.Account{ID: uuid.New(), Email: "ada@example.com", PasswordHash: string(hash), Status: status}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success records login", func(t *testing.T) {
		accounts := &fakeAccounts{account: newAccount(t, repo.AccountActive)}
		user, err := NewAuthenticator(accounts).Authenticate(ctx, "ada@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, accounts.account.ID, user.ID)
		assert.Contains(t, accounts.lastLogin, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		accounts := &fakeAccounts{account: newAccount(t, repo.AccountActive)}
		_, err := NewAuthenticator(accounts).Authenticate(ctx, "ada@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, accounts.lastLogin)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := NewAuthenticator(&fakeAccounts{}).Authenticate(ctx, "who@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("suspended", func(t *testing.T) {
		accounts := &fakeAccounts{account: newAccount(t, repo.AccountSuspended)}
		_, err := NewAuthenticator(accounts).Authenticate(ctx, "ada@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		boom := errors.New("timeout")
		_, err := NewAuthenticator(&fakeAccounts{err: boom}).Authenticate(ctx, "ada@example.com", "s3cret")
		assert.ErrorIs(t, err, boom)
	})
}

func TestSessions_RoundTrip(t *testing.T) {
	s := NewSessions(SessionOptions{Secret: "test-secret-test-secret-test-sec", MaxAge: 3600})
	user := &User{ID: uuid.New(), Email: "ada@example.com"}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, s.SetUser(rec, req, user))

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}

	got, ok := s.CurrentUser(next)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)

	_, ok = s.CurrentUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.False(t, ok)
}

func signToken(t *testing.T, secret string, method jwtlib.SigningMethod, subject string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: "ada@example.com",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}
	token, err := jwtlib.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokens_CurrentUser(t *testing.T) {
	const secret = "jwt-secret"
	tokens := NewTokens(secret)
	id := uuid.New()
	future := time.Now().Add(time.Hour)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, jwtlib.SigningMethodHS256, id.String(), future))
		user, ok := tokens.CurrentUser(req)
		require.True(t, ok)
		assert.Equal(t, id, user.ID)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signToken(t, secret, jwtlib.SigningMethodHS256, id.String(), future)})
		_, ok := tokens.CurrentUser(req)
		assert.True(t, ok)
	})

	rejected := map[string]string{
		"expired":       signToken(t, secret, jwtlib.SigningMethodHS256, id.String(), time.Now().Add(-time.Minute)),
		"wrong secret":  signToken(t, "other", jwtlib.SigningMethodHS256, id.String(), future),
		"wrong method":  signToken(t, secret, jwtlib.SigningMethodHS512, id.String(), future),
		"subject":       signToken(t, secret, jwtlib.SigningMethodHS256, "not-a-uuid", future),
		"garbage token": "abc.def.ghi",
	}
	for name, token := range rejected {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			_, ok := tokens.CurrentUser(req)
			assert.False(t, ok)
		})
	}

	t.Run("non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Basic abc")
		_, ok := tokens.CurrentUser(req)
		assert.False(t, ok)
	})
}

type staticIdentity struct{ user *User }

func (s staticIdentity) CurrentUser(*http.Request) (*User, bool) { return s.user, s.user != nil }

func TestChain(t *testing.T) {
	first := &User{ID: uuid.New()}
	second := &User{ID: uuid.New()}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	user, ok := Chain{staticIdentity{}, nil, staticIdentity{first}, staticIdentity{second}}.CurrentUser(req)
	require.True(t, ok)
	assert.Equal(t, first.ID, user.ID)

	_, ok = Chain{staticIdentity{}}.CurrentUser(req)
	assert.False(t, ok)
}
