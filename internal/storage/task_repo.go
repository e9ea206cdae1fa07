package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// InsertTx writes a new task row. Tasks are immutable: there is no
// corresponding update or delete.
func InsertTx(ctx context.Context, ex Execer, t *TaskRow) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO tasks (
			id, user_key, name, description,
			start_hour, start_minute, frequency_hours,
			criticality, reminder, kind,
			dosage, instructions, category, subcategory,
			is_mission, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserKey, t.Name, t.Description,
		t.StartHour, t.StartMinute, t.FrequencyHours,
		t.Criticality, t.Reminder, t.Kind,
		t.Dosage, t.Instructions, t.Category, t.Subcategory,
		boolToInt(t.IsMission), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) Insert(ctx context.Context, t *TaskRow) error {
	return InsertTx(ctx, r.db, t)
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*TaskRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_key, name, description,
			start_hour, start_minute, frequency_hours,
			criticality, reminder, kind,
			dosage, instructions, category, subcategory,
			is_mission, created_at
		FROM tasks
		WHERE id = ?
	`, id)
	t, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *TaskRepo) ListByUser(ctx context.Context, userKey string) ([]TaskRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_key, name, description,
			start_hour, start_minute, frequency_hours,
			criticality, reminder, kind,
			dosage, instructions, category, subcategory,
			is_mission, created_at
		FROM tasks
		WHERE user_key = ?
		ORDER BY created_at ASC, id ASC
	`, userKey)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []TaskRow
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*TaskRow, error) {
	var (
		t         TaskRow
		dosage    sql.NullString
		instr     sql.NullString
		category  sql.NullString
		subcat    sql.NullString
		isMission int
	)
	if err := row.Scan(&t.ID, &t.UserKey, &t.Name, &t.Description,
		&t.StartHour, &t.StartMinute, &t.FrequencyHours,
		&t.Criticality, &t.Reminder, &t.Kind,
		&dosage, &instr, &category, &subcat,
		&isMission, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.IsMission = isMission != 0
	t.Dosage = nullableString(dosage)
	t.Instructions = nullableString(instr)
	t.Category = nullableString(category)
	t.Subcategory = nullableString(subcat)
	return &t, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
