package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const MainUserKey = "main_user"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Get(ctx context.Context, key string) (*UserRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, name, power, xp, level, map_progress, achievements,
			mission_date, mission_count, onboarding_done, created_at
		FROM users
		WHERE key = ?
	`, key)

	var (
		u        UserRow
		achieved sql.NullString
		done     int
	)
	if err := row.Scan(&u.Key, &u.Name, &u.Power, &u.XP, &u.Level, &u.MapProgress,
		&achieved, &u.MissionDate, &u.MissionCount, &done, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	u.OnboardingDone = done != 0
	if achieved.Valid && achieved.String != "" {
		if err := json.Unmarshal([]byte(achieved.String), &u.Achievements); err != nil {
			return nil, fmt.Errorf("user achievements decode: %w", err)
		}
	}
	return &u, nil
}

// GetOrCreateMain returns the single local user, seeding it on first run.
// New users start with the registration bonus XP and the welcome badge.
func (r *UserRepo) GetOrCreateMain(ctx context.Context, name string, bonusXP int, welcomeID string) (*UserRow, error) {
	u, err := r.Get(ctx, MainUserKey)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	achieved := "[]"
	if welcomeID != "" {
		data, err := json.Marshal([]string{welcomeID})
		if err != nil {
			return nil, fmt.Errorf("user achievements encode: %w", err)
		}
		achieved = string(data)
	}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (key, name, xp, achievements, onboarding_done)
		VALUES (?, ?, ?, ?, 1)
	`, MainUserKey, name, bonusXP, achieved); err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}
	return r.Get(ctx, MainUserKey)
}

// UpdateTx replaces the whole progression snapshot row in one statement; the
// engine never issues partial field writes.
func UpdateTx(ctx context.Context, ex Execer, u *UserRow) error {
	achieved, err := json.Marshal(u.Achievements)
	if err != nil {
		return fmt.Errorf("user achievements encode: %w", err)
	}
	_, err = ex.ExecContext(ctx, `
		UPDATE users
		SET name = ?, power = ?, xp = ?, level = ?, map_progress = ?,
			achievements = ?, mission_date = ?, mission_count = ?, onboarding_done = ?
		WHERE key = ?
	`, u.Name, u.Power, u.XP, u.Level, u.MapProgress,
		string(achieved), u.MissionDate, u.MissionCount, boolToInt(u.OnboardingDone), u.Key)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *UserRow) error {
	return UpdateTx(ctx, r.db, u)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
