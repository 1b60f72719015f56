package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

// SaveProfile inserts or updates a user profile. CreatedAt is preserved
// on update, UpdatedAt is always refreshed.
func (s *Store) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	if p.UserID == "" {
		return fmt.Errorf("save profile: user_id is required")
	}

	now := time.Now().UTC()
	prefs, _ := json.Marshal(orEmpty(p.DietaryPreferences))
	equip, _ := json.Marshal(orEmpty(p.EquipmentAvailable))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, name, age, sex, weight_kg, height_cm, activity_level,
		                   fitness_goal, dietary_preferences, equipment_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			sex = excluded.sex,
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			activity_level = excluded.activity_level,
			fitness_goal = excluded.fitness_goal,
			dietary_preferences = excluded.dietary_preferences,
			equipment_available = excluded.equipment_available,
			updated_at = excluded.updated_at`,
		p.UserID, p.Name, p.Age, strPtr(p.Sex), p.WeightKG, p.HeightCM,
		strPtr(p.ActivityLevel), strPtr(p.FitnessGoal),
		string(prefs), string(equip),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return nil
}

// GetProfile loads a user profile by user ID.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, name, age, sex, weight_kg, height_cm, activity_level,
		       fitness_goal, dietary_preferences, equipment_available, created_at, updated_at
		FROM users WHERE user_id = ?`, userID)

	var (
		p                                      models.UserProfile
		name, sex, level, goal                 sql.NullString
		age                                    sql.NullInt64
		weight, height                         sql.NullFloat64
		prefsJSON, equipJSON, created, updated string
	)
	err := row.Scan(&p.UserID, &name, &age, &sex, &weight, &height, &level,
		&goal, &prefsJSON, &equipJSON, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if name.Valid {
		p.Name = &name.String
	}
	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}
	if sex.Valid {
		v := health.Sex(sex.String)
		p.Sex = &v
	}
	if weight.Valid {
		p.WeightKG = &weight.Float64
	}
	if height.Valid {
		p.HeightCM = &height.Float64
	}
	if level.Valid {
		v := health.ActivityLevel(level.String)
		p.ActivityLevel = &v
	}
	if goal.Valid {
		v := health.Goal(goal.String)
		p.FitnessGoal = &v
	}
	json.Unmarshal([]byte(prefsJSON), &p.DietaryPreferences)
	json.Unmarshal([]byte(equipJSON), &p.EquipmentAvailable)
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)

	return &p, nil
}

// DeleteUser removes the user and every row belonging to them. The
// fan-out is explicit per table rather than a schema-level cascade so
// the deletion policy stays visible in code.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	for _, table := range []string{"health_history", "meal_plan_history", "conversation_history"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("delete %s rows: %w", table, err)
		}
	}

	return tx.Commit()
}

// ListUsers returns user IDs ordered by creation time, newest first.
func (s *Store) ListUsers(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM users ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// strPtr converts a typed string pointer to a plain nullable value for
// binding.
func strPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
