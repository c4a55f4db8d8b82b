// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/ultraday/internal/slot"
)

const dateLayout = "2006-01-02"

// SQLite implements slot.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ slot.Repository = (*SQLite)(nil)

// connPragmas are applied by the driver to every pooled connection.
const connPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + connPragmas
	}
	return path + "?" + connPragmas
}

// SavePlan stores the plan, replacing the slots of any plan saved for the
// same date. Settings and slots are written in one transaction.
func (s *SQLite) SavePlan(ctx context.Context, p *slot.Plan) error {
	if p == nil {
		return fmt.Errorf("saving plan: nil plan")
	}
	date := p.Date.Format(dateLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
		INSERT INTO plans (date, start_time, end_time, interval, working_days, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			interval = excluded.interval,
			working_days = excluded.working_days,
			updated_at = excluded.updated_at
	`
	_, err = tx.ExecContext(ctx, upsert,
		date,
		p.Settings.StartTime,
		p.Settings.EndTime,
		p.Settings.Interval,
		strings.Join(p.Settings.WorkingDays, ","),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE plan_date = ?`, date); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}

	insert := `
		INSERT INTO slots (
			plan_date, position, id, time, title, description, is_occupied, is_blocked,
			parent_task_id, duration, end_time, category, priority
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, sl := range p.Slots {
		_, err := stmt.ExecContext(ctx,
			date,
			i,
			sl.ID,
			sl.Time,
			sl.Title,
			sl.Description,
			sl.IsOccupied,
			sl.IsBlocked,
			nullString(sl.ParentTaskID),
			nullInt(sl.Duration),
			nullString(sl.EndTime),
			nullString(string(sl.Category)),
			nullString(string(sl.Priority)),
		)
		if err != nil {
			return fmt.Errorf("inserting slot %s: %w", sl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetPlan retrieves the plan for a date. Returns nil, nil if none exists.
func (s *SQLite) GetPlan(ctx context.Context, date time.Time) (*slot.Plan, error) {
	key := date.Format(dateLayout)

	var (
		p           slot.Plan
		planDate    string
		workingDays string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT date, start_time, end_time, interval, working_days
		FROM plans
		WHERE date = ?
	`, key).Scan(
		&planDate,
		&p.Settings.StartTime,
		&p.Settings.EndTime,
		&p.Settings.Interval,
		&workingDays,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	p.Date, err = parseDate(planDate)
	if err != nil {
		return nil, fmt.Errorf("parsing plan date: %w", err)
	}
	if workingDays != "" {
		p.Settings.WorkingDays = strings.Split(workingDays, ",")
	}

	p.Slots, err = s.listSlots(ctx, key)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *SQLite) listSlots(ctx context.Context, date string) ([]slot.Slot, error) {
	query := `
		SELECT id, time, title, description, is_occupied, is_blocked,
		       parent_task_id, duration, end_time, category, priority
		FROM slots
		WHERE plan_date = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	slots := []slot.Slot{}
	for rows.Next() {
		var (
			sl       slot.Slot
			parent   sql.NullString
			duration sql.NullInt64
			endTime  sql.NullString
			category sql.NullString
			priority sql.NullString
		)

		err := rows.Scan(
			&sl.ID,
			&sl.Time,
			&sl.Title,
			&sl.Description,
			&sl.IsOccupied,
			&sl.IsBlocked,
			&parent,
			&duration,
			&endTime,
			&category,
			&priority,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}

		sl.ParentTaskID = parent.String
		sl.Duration = int(duration.Int64)
		sl.EndTime = endTime.String
		sl.Category = slot.Category(category.String)
		sl.Priority = slot.Priority(priority.String)

		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return slots, nil
}

// ListPlanDates returns the dates that have a stored plan, oldest first.
func (s *SQLite) ListPlanDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM plans ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("querying plan dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning plan date: %w", err)
		}
		d, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing plan date: %w", err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan dates: %w", err)
	}

	return dates, nil
}

// DeletePlan removes the plan for a date. Deleting a missing plan is not an error.
func (s *SQLite) DeletePlan(ctx context.Context, date time.Time) error {
	key := date.Format(dateLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE plan_date = ?`, key); err != nil {
		return fmt.Errorf("deleting slots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE date = ?`, key); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; keep the date, use local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation(dateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
