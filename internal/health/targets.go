package health

import (
	"fmt"
	"math"
)

// CaloricTargets is the daily calorie and macro prescription derived
// from TDEE and goal. TDEE and Goal are echoed for downstream consumers
// (meal planning, history rows).
type CaloricTargets struct {
	TargetCalories int     `json:"target_calories"`
	ProteinG       int     `json:"protein_g"`
	CarbsG         int     `json:"carbs_g"`
	FatG           int     `json:"fat_g"`
	TDEE           float64 `json:"tdee"`
	Goal           Goal    `json:"goal"`
}

// macroSplit is the fixed macro percentage table by goal.
// Protein and carbs are 4 kcal/g, fat is 9 kcal/g.
var macroSplit = map[Goal]struct{ protein, carb, fat float64 }{
	LoseWeight: {0.35, 0.35, 0.30},
	Maintain:   {0.30, 0.40, 0.30},
	GainMuscle: {0.30, 0.45, 0.25},
}

// CalculateCaloricTargets derives the daily caloric target from TDEE
// and goal, bounded by the safety limits:
//
//   - lose_weight: 20% deficit, capped at MaxDeficit, then floored at
//     MinCalorieFloor. The floor wins: the realized deficit may be
//     smaller than 20% but the target never dips below the floor.
//   - maintain: target equals TDEE.
//   - gain_muscle: 15% surplus, capped at MaxSurplus.
//
// Macro grams are each rounded independently, so their calorie sum can
// deviate from the target by a small residual.
func CalculateCaloricTargets(tdee float64, goal Goal, limits SafetyLimits) (CaloricTargets, error) {
	if tdee <= 0 {
		return CaloricTargets{}, fmt.Errorf("%w: TDEE must be positive", ErrInvalidInput)
	}

	split, ok := macroSplit[goal]
	if !ok {
		return CaloricTargets{}, fmt.Errorf("%w: unrecognized goal %q", ErrInvalidInput, goal)
	}

	var target float64
	switch goal {
	case LoseWeight:
		deficit := math.Min(tdee*0.2, float64(limits.MaxDeficit))
		target = math.Max(tdee-deficit, float64(limits.MinCalorieFloor))
	case Maintain:
		target = tdee
	case GainMuscle:
		surplus := math.Min(tdee*0.15, float64(limits.MaxSurplus))
		target = tdee + surplus
	}

	calories := int(math.Round(target))

	return CaloricTargets{
		TargetCalories: calories,
		ProteinG:       int(math.Round(float64(calories) * split.protein / 4)),
		CarbsG:         int(math.Round(float64(calories) * split.carb / 4)),
		FatG:           int(math.Round(float64(calories) * split.fat / 9)),
		TDEE:           tdee,
		Goal:           goal,
	}, nil
}
