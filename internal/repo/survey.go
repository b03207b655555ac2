package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aiadoption/internal/pagination"
)

type RoadmapStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

type SurveyResponse struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CompletedAt      time.Time
	AIReadinessScore int
	Roadmap          []RoadmapStep
}

// LatestSurveyResponse returns the response with the greatest completed_at.
func (s *Store) LatestSurveyResponse(ctx context.Context, userID uuid.UUID) (*SurveyResponse, error) {
	var item SurveyResponse
	var roadmap []byte
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, completed_at, ai_readiness_score, roadmap
		   FROM survey_responses
		  WHERE user_id = $1
		  ORDER BY completed_at DESC
		  LIMIT 1`, userID).
		Scan(&item.ID, &item.UserID, &item.CompletedAt, &item.AIReadinessScore, &roadmap)
	if err != nil {
		return nil, fmt.Errorf("latest survey response for %s: %w", userID, notFound(err))
	}
	if item.Roadmap, err = decodeRoadmap(roadmap); err != nil {
		return nil, fmt.Errorf("survey response %s roadmap: %w", item.ID, err)
	}
	return &item, nil
}

// CountSurveyResponses returns how many responses the user has submitted.
func (s *Store) CountSurveyResponses(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := s.db.QueryRow(ctx, "SELECT count(*) FROM survey_responses WHERE user_id = $1", userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count survey responses: %w", err)
	}
	return total, nil
}

// ListSurveyResponses returns one page of a user's responses, newest first.
// The pager must already be clamped against CountSurveyResponses. The roadmap
// is not loaded.
func (s *Store) ListSurveyResponses(ctx context.Context, userID uuid.UUID, p pagination.Pager) ([]SurveyResponse, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, completed_at, ai_readiness_score
		   FROM survey_responses
		  WHERE user_id = $1
		  ORDER BY completed_at DESC
		  LIMIT $2 OFFSET $3`,
		userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	defer rows.Close()

	var list []SurveyResponse
	for rows.Next() {
		var item SurveyResponse
		if err := rows.Scan(&item.ID, &item.UserID, &item.CompletedAt, &item.AIReadinessScore); err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}

	return list, nil
}

func decodeRoadmap(raw []byte) ([]RoadmapStep, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []RoadmapStep{}, nil
	}
	steps := []RoadmapStep{}
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, err
	}
	if steps == nil {
		steps = []RoadmapStep{}
	}
	return steps, nil
}
