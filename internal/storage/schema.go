package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			power TEXT NOT NULL DEFAULT '',
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			map_progress INTEGER NOT NULL DEFAULT 0,
			achievements TEXT,
			mission_date TEXT NOT NULL DEFAULT '',
			mission_count INTEGER NOT NULL DEFAULT 0,
			onboarding_done INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			user_key TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',

			start_hour INTEGER NOT NULL,
			start_minute INTEGER NOT NULL,
			frequency_hours INTEGER NOT NULL,

			criticality TEXT NOT NULL,
			reminder TEXT NOT NULL,
			kind TEXT NOT NULL,

			dosage TEXT,
			instructions TEXT,
			category TEXT,
			subcategory TEXT,

			is_mission INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(user_key) REFERENCES users(key)
		);`,
		// One row per (task_id, scheduled_unix); later writes replace.
		`CREATE TABLE IF NOT EXISTS adherence_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT NOT NULL,
			scheduled_unix INTEGER NOT NULL,
			status TEXT NOT NULL,
			action_unix INTEGER NOT NULL,
			UNIQUE(task_id, scheduled_unix),
			FOREIGN KEY(task_id) REFERENCES tasks(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_key ON tasks(user_key);`,
		`CREATE INDEX IF NOT EXISTS idx_adherence_log_task_id ON adherence_log(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_adherence_log_scheduled ON adherence_log(scheduled_unix);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
