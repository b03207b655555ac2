package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Profile struct {
	ID                  uuid.UUID
	FullName            *string
	OnboardingCompleted bool
}

func (s *Store) ProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var item Profile
	var fullName pgtype.Text
	err := s.db.QueryRow(ctx,
		`SELECT id, full_name, onboarding_completed
		   FROM profiles
		  WHERE id = $1`, id).
		Scan(&item.ID, &fullName, &item.OnboardingCompleted)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", id, notFound(err))
	}
	if fullName.Valid {
		value := fullName.String
		item.FullName = &value
	}
	return &item, nil
}
