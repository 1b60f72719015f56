package models

import (
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
)

// HealthMetrics is one full engine run over a complete profile: BMI,
// TDEE, caloric targets, and the risk assessment, stamped with when it
// was computed.
type HealthMetrics struct {
	BMI             float64            `json:"bmi"`
	BMICategory     health.BMICategory `json:"bmi_category"`
	TDEE            float64            `json:"tdee"`
	TargetCalories  int                `json:"target_calories"`
	ProteinG        int                `json:"protein_g"`
	CarbsG          int                `json:"carbs_g"`
	FatG            int                `json:"fat_g"`
	RiskLevel       health.RiskLevel   `json:"risk_level"`
	Recommendations []string           `json:"recommendations"`
	CalculatedAt    time.Time          `json:"calculated_at"`
}

// HealthRecord is a HealthMetrics row persisted to health_history,
// together with the measurements it was computed from.
type HealthRecord struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	WeightKG   float64       `json:"weight_kg"`
	HeightCM   float64       `json:"height_cm"`
	Metrics    HealthMetrics `json:"metrics"`
	RecordedAt time.Time     `json:"recorded_at"`
}
