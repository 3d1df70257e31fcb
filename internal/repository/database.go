package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"babystory-server/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS stories (
    id          UUID PRIMARY KEY,
    user_id     UUID NOT NULL,
    prompt      TEXT NOT NULL,
    title       TEXT NOT NULL DEFAULT '',
    summary     TEXT NOT NULL DEFAULT '',
    story_text  TEXT NOT NULL,
    audio_url   TEXT,
    approved    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_stories_user_id ON stories (user_id);

CREATE TABLE IF NOT EXISTS policies (
    user_id        UUID PRIMARY KEY,
    story_length   TEXT NOT NULL DEFAULT 'short',
    allowed_themes TEXT[] NOT NULL DEFAULT '{adventure,animals,fantasy}',
    child_age      INT NOT NULL DEFAULT 6,
    narration      BOOLEAN NOT NULL DEFAULT TRUE,
    illustrations  BOOLEAN NOT NULL DEFAULT TRUE,
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// NewPool creates the pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleMinutes) * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema applies the idempotent DDL. Schema migration tooling is
// deliberately out of scope; the two tables here never change shape in
// place.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
