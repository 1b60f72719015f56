// Package agent implements the conversational loops: health assessment
// (gather biometrics, run the engine, persist the result) and nutrition
// planning (turn targets into a stored meal plan). The language model
// sits behind small capability interfaces so the engine stays decoupled
// from it.
package agent

import (
	"context"

	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

// ProfileExtractor turns a free-text chat message into a partial
// profile update.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, message string) (*models.ProfileUpdate, error)
}

// MealPlanner generates a daily meal plan hitting the given targets.
type MealPlanner interface {
	PlanMeals(ctx context.Context, metrics models.HealthMetrics, preferences []string) (*models.MealPlan, error)
}
