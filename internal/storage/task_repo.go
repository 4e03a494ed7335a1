package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	ID          string
	Title       string
	Description *string
	Type        string
	Category    string
	Difficulty  string
	XPValue     int
	DueDate     *time.Time
	RepeatDays  []int
	Subtasks    []SubtaskInsert
}

type SubtaskInsert struct {
	ID    string
	Title string
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) error {
	var repeatJSON *string
	if len(in.RepeatDays) > 0 {
		data, err := json.Marshal(in.RepeatDays)
		if err != nil {
			return fmt.Errorf("marshal repeat days: %w", err)
		}
		s := string(data)
		repeatJSON = &s
	}

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, description, type, category, difficulty, xp_value, due_date, repeat_days)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, in.ID, in.Title, in.Description, in.Type, in.Category, in.Difficulty, in.XPValue, in.DueDate, repeatJSON); err != nil {
			return fmt.Errorf("task insert: %w", err)
		}
		for i, st := range in.Subtasks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO subtasks (id, task_id, title, position) VALUES (?, ?, ?, ?)
			`, st.ID, in.ID, st.Title, i); err != nil {
				return fmt.Errorf("subtask insert: %w", err)
			}
		}
		return nil
	})
}

const taskColumns = `id, title, description, type, category, difficulty, xp_value,
	completed, completed_at, due_date, repeat_days, streak_count, created_at`

func scanTask(s interface{ Scan(...any) error }) (*Task, error) {
	var t Task
	var completed int
	var repeatJSON *string
	err := s.Scan(
		&t.ID, &t.Title, &t.Description, &t.Type, &t.Category, &t.Difficulty, &t.XPValue,
		&completed, &t.CompletedAt, &t.DueDate, &repeatJSON, &t.StreakCount, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Completed = completed != 0
	if repeatJSON != nil && *repeatJSON != "" {
		if err := json.Unmarshal([]byte(*repeatJSON), &t.RepeatDays); err != nil {
			return nil, fmt.Errorf("unmarshal repeat days: %w", err)
		}
	}
	return &t, nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task get: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) MarkDone(ctx context.Context, id string, completedAt time.Time, bumpStreak bool) error {
	query := `UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ?`
	if bumpStreak {
		query = `UPDATE tasks SET completed = 1, completed_at = ?, streak_count = streak_count + 1 WHERE id = ?`
	}
	if _, err := r.db.ExecContext(ctx, query, completedAt.UTC(), id); err != nil {
		return fmt.Errorf("task mark done: %w", err)
	}
	return nil
}

// ResetCompletion clears the completed flag on a recurring task so it can be
// done again the next day.
func (r *TaskRepo) ResetCompletion(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = 0, completed_at = NULL WHERE id = ?`, id); err != nil {
		return fmt.Errorf("task reset completion: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, id); err != nil {
			return fmt.Errorf("subtask delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("task delete: %w", err)
		}
		return nil
	})
}

func (r *TaskRepo) ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, completed, position
		FROM subtasks WHERE task_id = ? ORDER BY position ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("subtask list: %w", err)
	}
	defer rows.Close()

	var out []Subtask
	for rows.Next() {
		var st Subtask
		var completed int
		if err := rows.Scan(&st.ID, &st.TaskID, &st.Title, &completed, &st.Position); err != nil {
			return nil, fmt.Errorf("subtask scan: %w", err)
		}
		st.Completed = completed != 0
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subtask rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) MarkSubtaskDone(ctx context.Context, subtaskID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE subtasks SET completed = 1 WHERE id = ?`, subtaskID); err != nil {
		return fmt.Errorf("subtask mark done: %w", err)
	}
	return nil
}
