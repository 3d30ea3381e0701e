// Package postgres keeps the durable log of announcement attempts.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"placecast/internal/announce"
)

const schema = `
CREATE TABLE IF NOT EXISTS announcements (
	id UUID PRIMARY KEY,
	place_id TEXT NOT NULL,
	place_name TEXT NOT NULL,
	experience_id TEXT NOT NULL,
	outcome TEXT NOT NULL,
	post_id TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`

// AnnouncementLog records every announcement attempt, whatever its outcome.
// It implements announce.Recorder.
type AnnouncementLog struct {
	pool *pgxpool.Pool
}

func NewAnnouncementLog(pool *pgxpool.Pool) *AnnouncementLog {
	return &AnnouncementLog{pool: pool}
}

// EnsureSchema creates the announcements table if it does not exist.
func (l *AnnouncementLog) EnsureSchema(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure announcements schema: %w", err)
	}
	return nil
}

// Record inserts one attempt row.
func (l *AnnouncementLog) Record(ctx context.Context, a announce.Attempt) error {
	const stmt = `
INSERT INTO announcements (id, place_id, place_name, experience_id, outcome, post_id, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := l.pool.Exec(ctx, stmt,
		uuid.New().String(), a.PlaceID, a.PlaceName, a.ExperienceID,
		a.Outcome.String(), a.PostID, a.Error, a.At,
	)
	if err != nil {
		return fmt.Errorf("record announcement: %w", err)
	}
	return nil
}

// Entry is one row of the announcement log as read back for inspection.
type Entry struct {
	ID           string
	PlaceID      string
	PlaceName    string
	ExperienceID string
	Outcome      string
	PostID       string
	Error        string
}

// Recent returns the most recent attempts, newest first.
func (l *AnnouncementLog) Recent(ctx context.Context, limit int) ([]Entry, error) {
	const query = `
SELECT id, place_id, place_name, experience_id, outcome, post_id, error
FROM announcements
ORDER BY created_at DESC
LIMIT $1`

	rows, err := l.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.PlaceID, &e.PlaceName, &e.ExperienceID, &e.Outcome, &e.PostID, &e.Error); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
