package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type stubQuerier struct {
	rowErr    error
	rowValues []any
	execs     []string

	querySQL  string
	queryArgs []any
}

func (q *stubQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not stubbed")
}

func (q *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.querySQL = sql
	q.queryArgs = args
	return stubRow{values: q.rowValues, err: q.rowErr}
}

// normalizeSQL collapses whitespace so assertions ignore query formatting.
func normalizeSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func TestStore_NoRowsIsNotFound(t *testing.T) {
	store := NewStore(&stubQuerier{rowErr: pgx.ErrNoRows})
	ctx := context.Background()
	id := uuid.New()

	_, err := store.ProfileByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.LatestSurveyResponse(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.PointsByUserID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.AccountByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FailureIsNotNotFound(t *testing.T) {
	boom := errors.New("connection reset")
	store := NewStore(&stubQuerier{rowErr: boom})

	_, err := store.ProfileByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLatestSurveyResponse_NewestFirst(t *testing.T) {
	userID := uuid.New()
	surveyID := uuid.New()
	completed := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	q := &stubQuerier{rowValues: []any{
		surveyID, userID, completed, 75,
		[]byte(`[{"step":1,"title":"Adopt","description":"Pilot","duration":"4w"}]`),
	}}

	got, err := NewStore(q).LatestSurveyResponse(context.Background(), userID)
	require.NoError(t, err)

	sql := normalizeSQL(q.querySQL)
	assert.Contains(t, sql, "FROM survey_responses WHERE user_id = $1")
	assert.Contains(t, sql, "ORDER BY completed_at DESC LIMIT 1")
	assert.Equal(t, []any{userID}, q.queryArgs)

	assert.Equal(t, surveyID, got.ID)
	assert.Equal(t, completed, got.CompletedAt)
	assert.Equal(t, 75, got.AIReadinessScore)
	assert.Equal(t, []RoadmapStep{{Step: 1, Title: "Adopt", Description: "Pilot", Duration: "4w"}}, got.Roadmap)
}

func TestCountSurveyResponses(t *testing.T) {
	userID := uuid.New()
	q := &stubQuerier{rowValues: []any{12}}

	total, err := NewStore(q).CountSurveyResponses(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Equal(t, "SELECT count(*) FROM survey_responses WHERE user_id = $1", normalizeSQL(q.querySQL))
	assert.Equal(t, []any{userID}, q.queryArgs)
}

func TestDecodeRoadmap(t *testing.T) {
	steps, err := decodeRoadmap(nil)
	require.NoError(t, err)
	assert.NotNil(t, steps)
	assert.Empty(t, steps)

	steps, err = decodeRoadmap([]byte(" null "))
	require.NoError(t, err)
	assert.Empty(t, steps)

	steps, err = decodeRoadmap([]byte(`[{"step":1,"title":"Adopt","description":"Pilot","duration":"4w"}]`))
	require.NoError(t, err)
	assert.Equal(t, []RoadmapStep{{Step: 1, Title: "Adopt", Description: "Pilot", Duration: "4w"}}, steps)

	_, err = decodeRoadmap([]byte(`{"step":1}`))
	assert.Error(t, err)
}

func TestSeedDemo_FallsBackToExec(t *testing.T) {
	q := &stubQuerier{}
	err := SeedDemo(context.Background(), q, DemoUser{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: "hash",
		FullName:     "Ada",
	})
	require.NoError(t, err)
	assert.Len(t, q.execs, 4)
}
