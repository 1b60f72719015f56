// Package models defines the value types passed between the
// conversational layer, the calculation engine, and storage.
package models

import (
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
)

// UserProfile is the biometric and preference record gathered through
// conversation. Fields are pointers because the profile fills in
// incrementally as the user volunteers information.
type UserProfile struct {
	UserID             string                `json:"user_id"`
	Name               *string               `json:"name,omitempty"`
	Age                *int                  `json:"age,omitempty"`
	Sex                *health.Sex           `json:"sex,omitempty"`
	WeightKG           *float64              `json:"weight_kg,omitempty"`
	HeightCM           *float64              `json:"height_cm,omitempty"`
	ActivityLevel      *health.ActivityLevel `json:"activity_level,omitempty"`
	FitnessGoal        *health.Goal          `json:"fitness_goal,omitempty"`
	DietaryPreferences []string              `json:"dietary_preferences"`
	EquipmentAvailable []string              `json:"equipment_available"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// MissingFields reports which fields required for a health assessment
// are still unset, in the order the agent asks for them.
func (p *UserProfile) MissingFields() []string {
	var missing []string
	if p.WeightKG == nil {
		missing = append(missing, "weight")
	}
	if p.HeightCM == nil {
		missing = append(missing, "height")
	}
	if p.Age == nil {
		missing = append(missing, "age")
	}
	if p.Sex == nil {
		missing = append(missing, "sex")
	}
	if p.ActivityLevel == nil {
		missing = append(missing, "activity level")
	}
	if p.FitnessGoal == nil {
		missing = append(missing, "fitness goal")
	}
	return missing
}

// Complete reports whether every field required for a health assessment
// is present.
func (p *UserProfile) Complete() bool {
	return len(p.MissingFields()) == 0
}

// ProfileUpdate is a partial profile extracted from a single user
// message. Nil fields were not mentioned.
type ProfileUpdate struct {
	Name               *string               `json:"name,omitempty"`
	Age                *int                  `json:"age,omitempty"`
	Sex                *health.Sex           `json:"sex,omitempty"`
	WeightKG           *float64              `json:"weight_kg,omitempty"`
	HeightCM           *float64              `json:"height_cm,omitempty"`
	ActivityLevel      *health.ActivityLevel `json:"activity_level,omitempty"`
	FitnessGoal        *health.Goal          `json:"fitness_goal,omitempty"`
	DietaryPreferences []string              `json:"dietary_preferences,omitempty"`
	EquipmentAvailable []string              `json:"equipment_available,omitempty"`
}

// Apply merges the non-nil fields of the update into the profile.
func (p *UserProfile) Apply(u *ProfileUpdate) {
	if u == nil {
		return
	}
	if u.Name != nil {
		p.Name = u.Name
	}
	if u.Age != nil {
		p.Age = u.Age
	}
	if u.Sex != nil {
		p.Sex = u.Sex
	}
	if u.WeightKG != nil {
		p.WeightKG = u.WeightKG
	}
	if u.HeightCM != nil {
		p.HeightCM = u.HeightCM
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = u.ActivityLevel
	}
	if u.FitnessGoal != nil {
		p.FitnessGoal = u.FitnessGoal
	}
	if len(u.DietaryPreferences) > 0 {
		p.DietaryPreferences = u.DietaryPreferences
	}
	if len(u.EquipmentAvailable) > 0 {
		p.EquipmentAvailable = u.EquipmentAvailable
	}
}
