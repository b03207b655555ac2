package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"aiadoption/internal/repo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("inactive account")
)

// User is the authenticated identity attached to a request.
type User struct {
	ID    uuid.UUID
	Email string
}

// IdentityProvider resolves the user behind a request. ok is false when the
// request carries no valid identity.
type IdentityProvider interface {
	CurrentUser(r *http.Request) (user *User, ok bool)
}

// Chain asks each provider in order and returns the first user found.
type Chain []IdentityProvider

func (c Chain) CurrentUser(r *http.Request) (*User, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if user, ok := p.CurrentUser(r); ok {
			return user, true
		}
	}
	return nil, false
}

type AccountStore interface {
	AccountByEmail(ctx context.Context, email string) (*repo.Account, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, loggedAt time.Time) error
}

type Authenticator struct {
	accounts AccountStore
	now      func() time.Time
}

func NewAuthenticator(accounts AccountStore) *Authenticator {
	return &Authenticator{accounts: accounts, now: time.Now}
}

// Authenticate checks the password and records the login time.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*User, error) {
	account, err := a.accounts.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if account.Status != repo.AccountActive {
		return nil, ErrAccountInactive
	}

	if err := a.accounts.UpdateLastLogin(ctx, account.ID, a.now().UTC()); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	return &User{ID: account.ID, Email: account.Email}, nil
}
