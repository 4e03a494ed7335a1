package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ActivityRepo persists the append-only completion log.
type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Insert(ctx context.Context, occurredAt time.Time, category, source string, xpAwarded int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (occurred_at, category, source, xp_awarded)
		VALUES (?, ?, ?, ?)
	`, occurredAt.UTC(), category, source, xpAwarded)
	if err != nil {
		return 0, fmt.Errorf("activity insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("activity last insert id: %w", err)
	}
	return id, nil
}

func (r *ActivityRepo) ListAll(ctx context.Context) ([]ActivityRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, occurred_at, category, source, xp_awarded
		FROM activity_log ORDER BY occurred_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("activity list: %w", err)
	}
	defer rows.Close()

	var out []ActivityRecord
	for rows.Next() {
		var a ActivityRecord
		if err := rows.Scan(&a.ID, &a.OccurredAt, &a.Category, &a.Source, &a.XPAwarded); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}

func (r *ActivityRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activity_log`); err != nil {
		return fmt.Errorf("activity clear: %w", err)
	}
	return nil
}
