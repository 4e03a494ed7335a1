package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			name TEXT DEFAULT 'Adventurer',
			class TEXT,
			title TEXT,
			level INTEGER DEFAULT 1,
			current_xp INTEGER DEFAULT 0,
			xp_to_next INTEGER DEFAULT 100,
			total_xp INTEGER DEFAULT 0,
			streak_days INTEGER DEFAULT 0,
			last_active DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			tasks_completed INTEGER DEFAULT 0,
			quests_completed INTEGER DEFAULT 0,

			xp_health INTEGER DEFAULT 0,
			xp_work INTEGER DEFAULT 0,
			xp_creativity INTEGER DEFAULT 0,
			xp_social INTEGER DEFAULT 0,
			xp_learning INTEGER DEFAULT 0,

			attr_strength INTEGER DEFAULT 0,
			attr_intelligence INTEGER DEFAULT 0,
			attr_charisma INTEGER DEFAULT 0,
			attr_dexterity INTEGER DEFAULT 0,
			attr_wisdom INTEGER DEFAULT 0,
			attr_vitality INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			xp_value INTEGER NOT NULL,
			completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			due_date DATETIME,
			repeat_days TEXT,
			streak_count INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS subtasks (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			title TEXT NOT NULL,
			completed INTEGER DEFAULT 0,
			position INTEGER NOT NULL,
			FOREIGN KEY(task_id) REFERENCES tasks(id)
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			status TEXT DEFAULT 'active',
			progress INTEGER DEFAULT 0,
			xp_reward INTEGER NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME,
			completed INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS quest_steps (
			id TEXT PRIMARY KEY,
			quest_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			completed INTEGER DEFAULT 0,
			xp_value INTEGER NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY(quest_id) REFERENCES quests(id)
		);`,
		// Append-only log backing the history-driven reward predicates.
		`CREATE TABLE IF NOT EXISTS activity_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			occurred_at DATETIME NOT NULL,
			category TEXT NOT NULL,
			source TEXT NOT NULL,
			xp_awarded INTEGER NOT NULL
		);`,
		// position preserves first-unlock order for display.
		`CREATE TABLE IF NOT EXISTS unlocks (
			reward_id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			unlocked_at DATETIME NOT NULL,
			position INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);`,
		`CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quest_steps_quest_id ON quest_steps(quest_id);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_log_occurred_at ON activity_log(occurred_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
