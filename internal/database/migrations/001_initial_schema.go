package migrations

import (
	"database/sql"
)

func init() {
	Register(Migration{
		Version: 1,
		Name:    "initial_schema",
		Up:      initialSchema,
	})
}

func initialSchema(db *sql.DB) error {
	statements := []string{
		// Committed appointments (the shop's appointment book)
		`CREATE TABLE IF NOT EXISTS appointments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			call_id TEXT,
			title TEXT NOT NULL,
			description TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_start ON appointments(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_window ON appointments(start_time, end_time)`,

		// Call records, one per session
		`CREATE TABLE IF NOT EXISTS calls (
			id TEXT PRIMARY KEY,
			caller_ref TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			escalated BOOLEAN DEFAULT 0,
			slots_json TEXT
		)`,

		// Append-only audit trail of dialogue steps
		`CREATE TABLE IF NOT EXISTS call_steps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			call_id TEXT NOT NULL,
			step TEXT NOT NULL,
			input TEXT,
			output TEXT,
			outcome TEXT NOT NULL DEFAULT 'ok',
			extra_json TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_call_steps_call ON call_steps(call_id)`,

		// Classifier token usage ledger
		`CREATE TABLE IF NOT EXISTS usage_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			call_id TEXT,
			tokens INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
