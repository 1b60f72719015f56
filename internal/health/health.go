// Package health is the deterministic calculation kernel: BMI, TDEE,
// goal-adjusted caloric targets, and BMI-based risk assessment. Every
// function is pure and validates its inputs before computing; there is
// no I/O and no state.
package health

import "errors"

// ErrInvalidInput is wrapped by every validation failure in this package.
// Callers use errors.Is to distinguish bad input from programming errors.
var ErrInvalidInput = errors.New("invalid input")

// Sex is the biological sex used for the metabolic constant in the
// Mifflin-St Jeor equation.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ActivityLevel keys the TDEE multiplier table.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtremelyActive  ActivityLevel = "extremely_active"
)

// activityMultipliers is the single source of truth for valid activity
// levels and their TDEE multipliers.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,   // little or no exercise
	LightlyActive:    1.375, // light exercise 1-3 days/week
	ModeratelyActive: 1.55,  // moderate exercise 3-5 days/week
	VeryActive:       1.725, // hard exercise 6-7 days/week
	ExtremelyActive:  1.9,   // very hard exercise & physical job
}

// ActivityLevels lists the valid levels in increasing-intensity order.
var ActivityLevels = []ActivityLevel{
	Sedentary,
	LightlyActive,
	ModeratelyActive,
	VeryActive,
	ExtremelyActive,
}

// Goal is the user's fitness goal, which drives the caloric target policy
// and the macro split.
type Goal string

const (
	LoseWeight Goal = "lose_weight"
	Maintain   Goal = "maintain"
	GainMuscle Goal = "gain_muscle"
)

// SafetyLimits bound the caloric target computation. They are never
// violated regardless of input magnitude.
type SafetyLimits struct {
	MinCalorieFloor int // minimum safe daily calories
	MaxDeficit      int // maximum safe daily calorie deficit
	MaxSurplus      int // maximum safe daily calorie surplus
}

// DefaultSafetyLimits returns the standard limits: 1200 calorie floor,
// 1000 calorie max deficit, 500 calorie max surplus.
func DefaultSafetyLimits() SafetyLimits {
	return SafetyLimits{
		MinCalorieFloor: 1200,
		MaxDeficit:      1000,
		MaxSurplus:      500,
	}
}
