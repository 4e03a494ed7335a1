package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UnlockRepo persists granted reward ids. Rows are never updated or revoked;
// position records first-unlock order for display.
type UnlockRepo struct {
	db *sql.DB
}

func NewUnlockRepo(db *sql.DB) *UnlockRepo {
	return &UnlockRepo{db: db}
}

func (r *UnlockRepo) Insert(ctx context.Context, rewardID, kind string, unlockedAt time.Time) error {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM unlocks`)
	var pos int
	if err := row.Scan(&pos); err != nil {
		return fmt.Errorf("unlock next position: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO unlocks (reward_id, kind, unlocked_at, position) VALUES (?, ?, ?, ?)
		ON CONFLICT(reward_id) DO NOTHING
	`, rewardID, kind, unlockedAt.UTC(), pos); err != nil {
		return fmt.Errorf("unlock insert: %w", err)
	}
	return nil
}

// ListAll returns unlocks in first-unlock order.
func (r *UnlockRepo) ListAll(ctx context.Context) ([]Unlock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT reward_id, kind, unlocked_at, position FROM unlocks ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("unlock list: %w", err)
	}
	defer rows.Close()

	var out []Unlock
	for rows.Next() {
		var u Unlock
		if err := rows.Scan(&u.RewardID, &u.Kind, &u.UnlockedAt, &u.Position); err != nil {
			return nil, fmt.Errorf("unlock scan: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlock rows: %w", err)
	}
	return out, nil
}

func (r *UnlockRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM unlocks`); err != nil {
		return fmt.Errorf("unlock clear: %w", err)
	}
	return nil
}
