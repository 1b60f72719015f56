package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
	"github.com/parisaaghdam/fitness-pal-agent/internal/storage"
)

// ErrNoAssessment means a meal plan was requested before any health
// assessment exists for the user.
var ErrNoAssessment = errors.New("no health assessment on record")

// NutritionAgent turns a user's latest caloric targets into a stored
// daily meal plan.
type NutritionAgent struct {
	store   *storage.Store
	planner MealPlanner
}

func NewNutritionAgent(store *storage.Store, planner MealPlanner) *NutritionAgent {
	return &NutritionAgent{store: store, planner: planner}
}

// PlanForUser generates a plan from the user's most recent health
// record and dietary preferences, retires any previously active plan,
// and persists the new one as active.
func (a *NutritionAgent) PlanForUser(ctx context.Context, userID string) (*models.MealPlan, error) {
	record, err := a.store.LatestHealthRecord(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNoAssessment)
	}
	if err != nil {
		return nil, err
	}
	if record.Metrics.TargetCalories <= 0 {
		return nil, fmt.Errorf("user %s: health record has no caloric targets", userID)
	}

	var preferences []string
	if profile, err := a.store.GetProfile(ctx, userID); err == nil {
		preferences = profile.DietaryPreferences
	}

	plan, err := a.planner.PlanMeals(ctx, record.Metrics, preferences)
	if err != nil {
		return nil, fmt.Errorf("generate meal plan: %w", err)
	}
	plan.UserID = userID

	if _, err := a.store.RetireActivePlans(ctx, userID); err != nil {
		return nil, err
	}
	if err := a.store.SaveMealPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}
