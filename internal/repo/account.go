package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
)

// Account holds login credentials. Its ID is the user id shared with
// profiles, survey_responses and user_points.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Status       string
	LastLoginAt  *time.Time
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	var item Account
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, status, last_login_at
		   FROM accounts
		  WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email)).
		Scan(&item.ID, &item.Email, &item.PasswordHash, &item.Status, &item.LastLoginAt)
	if err != nil {
		return nil, fmt.Errorf("account by email: %w", notFound(err))
	}
	return &item, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, id uuid.UUID, loggedAt time.Time) error {
	_, err := s.db.Exec(ctx,
		"UPDATE accounts SET last_login_at = $1, updated_at = $1 WHERE id = $2",
		loggedAt, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
