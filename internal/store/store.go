package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS analyses (
		id                  uuid PRIMARY KEY,
		video_id            text NOT NULL,
		video_title         text NOT NULL DEFAULT '',
		video_duration      integer NOT NULL DEFAULT 0,
		thumbnail_url       text NOT NULL DEFAULT '',
		chunk_duration      double precision NOT NULL,
		scorer              text NOT NULL DEFAULT '',
		overall_score       integer NOT NULL,
		overall_comparative double precision NOT NULL,
		overall_label       text NOT NULL,
		segment_count       integer NOT NULL,
		created_at          timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS analyses_video_id_created_at_idx ON analyses (video_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS analysis_segments (
		analysis_id  uuid NOT NULL REFERENCES analyses (id) ON DELETE CASCADE,
		seq          integer NOT NULL,
		start_s      double precision NOT NULL,
		end_s        double precision NOT NULL,
		text         text NOT NULL,
		score        integer NOT NULL,
		comparative  double precision NOT NULL,
		positive     text[] NOT NULL DEFAULT '{}',
		negative     text[] NOT NULL DEFAULT '{}',
		neutral      text[] NOT NULL DEFAULT '{}',
		PRIMARY KEY (analysis_id, seq)
	)`,
}

// Migrate creates the tables moodline writes to if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
