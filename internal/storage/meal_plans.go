package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

// SaveMealPlan appends a generated plan to meal_plan_history. The plan's
// ID and CreatedAt are assigned here; status defaults to active.
func (s *Store) SaveMealPlan(ctx context.Context, p *models.MealPlan) error {
	if p.UserID == "" {
		return fmt.Errorf("save meal plan: user_id is required")
	}

	p.ID = s.newID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.PlanActive
	}

	meals, err := json.Marshal(p.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}
	prefs, _ := json.Marshal(orEmpty(p.DietaryPreferences))

	var completedAt *string
	if p.CompletedAt != nil {
		v := p.CompletedAt.UTC().Format(time.RFC3339)
		completedAt = &v
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO meal_plan_history (id, user_id, meals, total_calories, total_protein_g,
		                               total_carbs_g, total_fat_g, plan_type, dietary_preferences,
		                               notes, status, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, string(meals), p.TotalCalories, p.TotalProteinG,
		p.TotalCarbsG, p.TotalFatG, p.PlanType, string(prefs),
		p.Notes, string(p.Status), p.CreatedAt.Format(time.RFC3339), completedAt)
	if err != nil {
		return fmt.Errorf("save meal plan: %w", err)
	}
	return nil
}

// ActiveMealPlan returns the newest active plan for a user.
func (s *Store) ActiveMealPlan(ctx context.Context, userID string) (*models.MealPlan, error) {
	row := s.db.QueryRowContext(ctx, planSelect+`
		WHERE user_id = ? AND status = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1`, userID, string(models.PlanActive))

	p, err := scanMealPlan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("active meal plan for %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("active meal plan: %w", err)
	}
	return p, nil
}

// MealPlanHistory returns a user's plans, newest first.
func (s *Store) MealPlanHistory(ctx context.Context, userID string, limit int) ([]*models.MealPlan, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx, planSelect+`
		WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("meal plan history: %w", err)
	}
	defer rows.Close()

	var plans []*models.MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdatePlanStatus transitions a plan's status. Completing a plan stamps
// completed_at if not already set.
func (s *Store) UpdatePlanStatus(ctx context.Context, planID string, status models.PlanStatus) error {
	var completedAt *string
	if status == models.PlanCompleted {
		v := time.Now().UTC().Format(time.RFC3339)
		completedAt = &v
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE meal_plan_history
		SET status = ?, completed_at = COALESCE(completed_at, ?)
		WHERE id = ?`, string(status), completedAt, planID)
	if err != nil {
		return fmt.Errorf("update plan status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("meal plan %s: %w", planID, ErrNotFound)
	}
	return nil
}

// RetireActivePlans marks all of a user's active plans completed,
// returning how many were retired. Called before a new plan becomes the
// active one.
func (s *Store) RetireActivePlans(ctx context.Context, userID string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		UPDATE meal_plan_history
		SET status = ?, completed_at = COALESCE(completed_at, ?)
		WHERE user_id = ? AND status = ?`,
		string(models.PlanCompleted), now, userID, string(models.PlanActive))
	if err != nil {
		return 0, fmt.Errorf("retire active plans: %w", err)
	}
	return res.RowsAffected()
}

const planSelect = `
	SELECT id, user_id, meals, total_calories, total_protein_g, total_carbs_g,
	       total_fat_g, plan_type, dietary_preferences, notes, status,
	       created_at, completed_at
	FROM meal_plan_history`

func scanMealPlan(row scanner) (*models.MealPlan, error) {
	var (
		p                    models.MealPlan
		mealsJSON, prefsJSON string
		planType, notes      sql.NullString
		status, createdAt    string
		completedAt          sql.NullString
	)
	err := row.Scan(&p.ID, &p.UserID, &mealsJSON, &p.TotalCalories, &p.TotalProteinG,
		&p.TotalCarbsG, &p.TotalFatG, &planType, &prefsJSON, &notes, &status,
		&createdAt, &completedAt)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(mealsJSON), &p.Meals)
	json.Unmarshal([]byte(prefsJSON), &p.DietaryPreferences)
	p.PlanType = planType.String
	p.Notes = notes.String
	p.Status = models.PlanStatus(status)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		p.CompletedAt = &t
	}

	return &p, nil
}
