package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables when they are missing. It is safe to run on
// every deploy.
func Migrate(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// DemoUser describes the account SeedDemo creates.
type DemoUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
}

// SeedDemo inserts an onboarded user with two survey responses and a points
// row. Existing rows are left untouched.
func SeedDemo(ctx context.Context, db Querier, user DemoUser) error {
	first, err := json.Marshal([]RoadmapStep{
		{Step: 1, Title: "Assess", Description: "Map current workflows and data sources", Duration: "2w"},
	})
	if err != nil {
		return err
	}
	latest, err := json.Marshal([]RoadmapStep{
		{Step: 1, Title: "Adopt", Description: "Roll out an AI assistant to one team", Duration: "4w"},
		{Step: 2, Title: "Measure", Description: "Track time saved and adoption rate", Duration: "2w"},
		{Step: 3, Title: "Scale", Description: "Extend to the rest of the organisation", Duration: "8w"},
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	batch.Queue(
		`INSERT INTO accounts (id, email, password_hash, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		user.ID, user.Email, user.PasswordHash, AccountActive)
	batch.Queue(
		`INSERT INTO profiles (id, full_name, onboarding_completed)
		 VALUES ($1, $2, true)
		 ON CONFLICT (id) DO NOTHING`,
		user.ID, user.FullName)
	batch.Queue(
		`INSERT INTO survey_responses (id, user_id, completed_at, ai_readiness_score, roadmap)
		 VALUES ($1, $2, $3, 40, $4), ($5, $2, $6, 75, $7)
		 ON CONFLICT (id) DO NOTHING`,
		uuid.NewSHA1(user.ID, []byte("survey-1")), user.ID, now.AddDate(0, -2, 0), string(first),
		uuid.NewSHA1(user.ID, []byte("survey-2")), now, string(latest))
	batch.Queue(
		`INSERT INTO user_points (user_id, points, level)
		 VALUES ($1, 120, 2)
		 ON CONFLICT (user_id) DO NOTHING`,
		user.ID)

	return sendBatch(ctx, db, batch)
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func sendBatch(ctx context.Context, db Querier, batch *pgx.Batch) error {
	sender, ok := db.(batchSender)
	if !ok {
		for _, q := range batch.QueuedQueries {
			if _, err := db.Exec(ctx, q.SQL, q.Arguments...); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		return nil
	}

	results := sender.SendBatch(ctx, batch)
	for range batch.QueuedQueries {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("seed: %w", err)
		}
	}
	return results.Close()
}
