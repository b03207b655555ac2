package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"aiadoption/internal/config"
)

// ErrNotFound is returned when a lookup matches zero rows. Any other error
// from this package is a store failure.
var ErrNotFound = errors.New("not found")

// Querier is the subset of pgxpool.Pool the repositories use.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Open connects a pool and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdle
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["search_path"] = "public"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	var currentDB, currentUser, currentSchema string
	err = pool.QueryRow(ctx, "SELECT current_database(), current_user, current_schema()").
		Scan(&currentDB, &currentUser, &currentSchema)
	if err != nil {
		log.WithError(err).Warn("database connection established, context query failed")
	} else {
		log.WithFields(logrus.Fields{
			"db":     currentDB,
			"user":   currentUser,
			"schema": currentSchema,
		}).Info("database connection established")
	}

	return pool, nil
}

// Store serves every read the HTTP layer needs from one Querier.
type Store struct {
	db Querier
}

func NewStore(db Querier) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
