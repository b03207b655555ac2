package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type UserPoints struct {
	UserID uuid.UUID
	Points int
	Level  int
}

func (s *Store) PointsByUserID(ctx context.Context, userID uuid.UUID) (*UserPoints, error) {
	var item UserPoints
	err := s.db.QueryRow(ctx,
		`SELECT user_id, points, level
		   FROM user_points
		  WHERE user_id = $1`, userID).
		Scan(&item.UserID, &item.Points, &item.Level)
	if err != nil {
		return nil, fmt.Errorf("points for %s: %w", userID, notFound(err))
	}
	return &item, nil
}
