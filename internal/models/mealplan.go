package models

import "time"

// PlanStatus tracks the lifecycle of a stored meal plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanSkipped   PlanStatus = "skipped"
)

// MealItem is a single meal within a daily plan.
type MealItem struct {
	MealType    string   `json:"meal_type"` // breakfast, lunch, dinner, snack
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Calories    int      `json:"calories"`
	ProteinG    int      `json:"protein_g"`
	CarbsG      int      `json:"carbs_g"`
	FatG        int      `json:"fat_g"`
	Foods       []string `json:"foods,omitempty"`
}

// MealPlan is a generated daily plan with its macro totals.
type MealPlan struct {
	ID                 string     `json:"id,omitempty"`
	UserID             string     `json:"user_id,omitempty"`
	Meals              []MealItem `json:"meals"`
	TotalCalories      int        `json:"total_calories"`
	TotalProteinG      int        `json:"total_protein_g"`
	TotalCarbsG        int        `json:"total_carbs_g"`
	TotalFatG          int        `json:"total_fat_g"`
	PlanType           string     `json:"plan_type,omitempty"` // daily, weekly
	DietaryPreferences []string   `json:"dietary_preferences,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Status             PlanStatus `json:"status,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// Totalize recomputes the plan totals from its meals.
func (p *MealPlan) Totalize() {
	p.TotalCalories, p.TotalProteinG, p.TotalCarbsG, p.TotalFatG = 0, 0, 0, 0
	for _, m := range p.Meals {
		p.TotalCalories += m.Calories
		p.TotalProteinG += m.ProteinG
		p.TotalCarbsG += m.CarbsG
		p.TotalFatG += m.FatG
	}
}
