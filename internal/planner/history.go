package planner

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StoredPlan is one generated plan kept for history.
type StoredPlan struct {
	ID        int64
	UserID    string
	WeekStart time.Time
	PlanData  []byte // Raw JSON of the weekly plan
	CreatedAt time.Time
}

// PlanRepository is a database-backed history of generated meal plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a generated plan into the history.
func (r *PlanRepository) Save(ctx context.Context, userID string, weekStart time.Time, planData []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plan_history (user_id, week_start, plan_data, created_at) VALUES (?, ?, ?, ?)`,
		userID, weekStart, planData, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan history: %w", err)
	}
	return nil
}

// ListRecent retrieves the N most recent plans for a given user.
func (r *PlanRepository) ListRecent(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, week_start, plan_data, created_at
		 FROM plan_history WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var p StoredPlan
		if err := rows.Scan(&p.ID, &p.UserID, &p.WeekStart, &p.PlanData, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan history row: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// WeekStart returns the Monday at midnight UTC for the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
