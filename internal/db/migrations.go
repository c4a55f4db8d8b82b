package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS plans (
			date          DATE PRIMARY KEY,
			start_time    TEXT NOT NULL,
			end_time      TEXT NOT NULL,
			interval      INTEGER NOT NULL CHECK(interval > 0),
			working_days  TEXT NOT NULL DEFAULT '',
			updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS slots (
			plan_date      DATE NOT NULL REFERENCES plans(date) ON DELETE CASCADE,
			position       INTEGER NOT NULL,
			id             TEXT NOT NULL,
			time           TEXT NOT NULL,
			title          TEXT NOT NULL DEFAULT '',
			description    TEXT NOT NULL DEFAULT '',
			is_occupied    INTEGER NOT NULL DEFAULT 0,
			is_blocked     INTEGER NOT NULL DEFAULT 0,
			parent_task_id TEXT,
			duration       INTEGER,
			end_time       TEXT,
			category       TEXT CHECK(category IN ('work', 'personal', 'health', 'other')),
			priority       TEXT CHECK(priority IN ('low', 'medium', 'high')),
			PRIMARY KEY (plan_date, position)
		);

		CREATE INDEX IF NOT EXISTS idx_slots_plan ON slots(plan_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating plan tables: %w", err)
	}

	return nil
}
