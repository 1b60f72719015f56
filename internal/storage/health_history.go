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

// AppendHealthRecord writes one engine run to the health_history log.
// The record's ID and RecordedAt are assigned here.
func (s *Store) AppendHealthRecord(ctx context.Context, r *models.HealthRecord) error {
	if r.UserID == "" {
		return fmt.Errorf("append health record: user_id is required")
	}

	r.ID = s.newID()
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	recs, _ := json.Marshal(orEmpty(r.Metrics.Recommendations))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO health_history (id, user_id, weight_kg, height_cm, bmi, bmi_category,
		                            tdee, target_calories, protein_g, carbs_g, fat_g,
		                            risk_level, recommendations, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.WeightKG, r.HeightCM, r.Metrics.BMI, string(r.Metrics.BMICategory),
		r.Metrics.TDEE, r.Metrics.TargetCalories, r.Metrics.ProteinG, r.Metrics.CarbsG,
		r.Metrics.FatG, string(r.Metrics.RiskLevel), string(recs),
		r.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append health record: %w", err)
	}
	return nil
}

// LatestHealthRecord returns the most recent health record for a user.
func (s *Store) LatestHealthRecord(ctx context.Context, userID string) (*models.HealthRecord, error) {
	row := s.db.QueryRowContext(ctx, healthSelect+`
		WHERE user_id = ? ORDER BY recorded_at DESC, rowid DESC LIMIT 1`, userID)

	r, err := scanHealthRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("health record for %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest health record: %w", err)
	}
	return r, nil
}

// HealthHistory returns records for a user within the last `days` days,
// newest first.
func (s *Store) HealthHistory(ctx context.Context, userID string, days, limit int) ([]*models.HealthRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	rows, err := s.db.QueryContext(ctx, healthSelect+`
		WHERE user_id = ? AND recorded_at >= ?
		ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("health history: %w", err)
	}
	defer rows.Close()

	var records []*models.HealthRecord
	for rows.Next() {
		r, err := scanHealthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// PruneHealthHistory deletes records older than the retention window.
// This batch operation is the only age-based deletion path.
func (s *Store) PruneHealthHistory(ctx context.Context, userID string, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM health_history WHERE user_id = ? AND recorded_at < ?`, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune health history: %w", err)
	}
	return res.RowsAffected()
}

const healthSelect = `
	SELECT id, user_id, weight_kg, height_cm, bmi, bmi_category, tdee,
	       target_calories, protein_g, carbs_g, fat_g, risk_level,
	       recommendations, recorded_at
	FROM health_history`

func scanHealthRecord(row scanner) (*models.HealthRecord, error) {
	var (
		r              models.HealthRecord
		category, risk string
		recsJSON       string
		recordedAt     string
	)
	err := row.Scan(&r.ID, &r.UserID, &r.WeightKG, &r.HeightCM, &r.Metrics.BMI,
		&category, &r.Metrics.TDEE, &r.Metrics.TargetCalories, &r.Metrics.ProteinG,
		&r.Metrics.CarbsG, &r.Metrics.FatG, &risk, &recsJSON, &recordedAt)
	if err != nil {
		return nil, err
	}

	r.Metrics.BMICategory = health.BMICategory(category)
	r.Metrics.RiskLevel = health.RiskLevel(risk)
	json.Unmarshal([]byte(recsJSON), &r.Metrics.Recommendations)
	r.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	r.Metrics.CalculatedAt = r.RecordedAt

	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}
