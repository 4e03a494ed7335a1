package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	ID          string
	Title       string
	Description *string
	Category    string
	Difficulty  string
	XPReward    int
	StartDate   time.Time
	EndDate     *time.Time
	Steps       []QuestStepInsert
}

type QuestStepInsert struct {
	ID          string
	Title       string
	Description *string
	XPValue     int
}

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quests (id, title, description, category, difficulty, xp_reward, start_date, end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, in.ID, in.Title, in.Description, in.Category, in.Difficulty, in.XPReward, in.StartDate.UTC(), in.EndDate); err != nil {
			return fmt.Errorf("quest insert: %w", err)
		}
		for i, st := range in.Steps {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO quest_steps (id, quest_id, title, description, xp_value, position)
				VALUES (?, ?, ?, ?, ?, ?)
			`, st.ID, in.ID, st.Title, st.Description, st.XPValue, i); err != nil {
				return fmt.Errorf("quest step insert: %w", err)
			}
		}
		return nil
	})
}

const questColumns = `id, title, description, category, difficulty, status, progress, xp_reward, start_date, end_date, completed`

func scanQuest(s interface{ Scan(...any) error }) (*Quest, error) {
	var q Quest
	var completed int
	err := s.Scan(&q.ID, &q.Title, &q.Description, &q.Category, &q.Difficulty, &q.Status,
		&q.Progress, &q.XPReward, &q.StartDate, &q.EndDate, &completed)
	if err != nil {
		return nil, err
	}
	q.Completed = completed != 0
	return &q, nil
}

func (r *QuestRepo) Get(ctx context.Context, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	q, err := scanQuest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	return q, nil
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questColumns+` FROM quests ORDER BY start_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) ListSteps(ctx context.Context, questID string) ([]QuestStep, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quest_id, title, description, completed, xp_value, position
		FROM quest_steps WHERE quest_id = ? ORDER BY position ASC
	`, questID)
	if err != nil {
		return nil, fmt.Errorf("quest step list: %w", err)
	}
	defer rows.Close()

	var out []QuestStep
	for rows.Next() {
		var st QuestStep
		var completed int
		if err := rows.Scan(&st.ID, &st.QuestID, &st.Title, &st.Description, &completed, &st.XPValue, &st.Position); err != nil {
			return nil, fmt.Errorf("quest step scan: %w", err)
		}
		st.Completed = completed != 0
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest step rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) MarkStepDone(ctx context.Context, stepID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE quest_steps SET completed = 1 WHERE id = ?`, stepID); err != nil {
		return fmt.Errorf("quest step mark done: %w", err)
	}
	return nil
}

func (r *QuestRepo) UpdateProgress(ctx context.Context, questID string, progress int) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE quests SET progress = ? WHERE id = ?`, progress, questID); err != nil {
		return fmt.Errorf("quest update progress: %w", err)
	}
	return nil
}

func (r *QuestRepo) MarkCompleted(ctx context.Context, questID string, endDate time.Time) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE quests SET completed = 1, status = 'completed', progress = 100, end_date = ? WHERE id = ?
	`, endDate.UTC(), questID); err != nil {
		return fmt.Errorf("quest mark completed: %w", err)
	}
	return nil
}
