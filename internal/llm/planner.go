package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

const planningSystemPrompt = `You are a nutrition expert creating practical daily meal plans.

Always respond with valid JSON in this exact format:
{
  "meals": [
    {
      "meal_type": "breakfast|lunch|dinner|snack",
      "name": "meal name",
      "description": "1-2 sentence description",
      "calories": [number],
      "protein_g": [number],
      "carbs_g": [number],
      "fat_g": [number],
      "foods": ["main ingredient", ...]
    }
  ]
}

Include exactly four meals: breakfast, lunch, dinner, and one snack.
Distribute calories roughly 25-30% breakfast, 30-35% lunch, 30-35% dinner, 10-15% snack.
Use common whole-food ingredients and respect every dietary restriction given.`

// PlanMeals asks the model for a daily plan hitting the given targets.
// If the reply can't be parsed a conservative placeholder plan is
// returned so the caller always has something to present.
func (c *Client) PlanMeals(ctx context.Context, metrics models.HealthMetrics, preferences []string) (*models.MealPlan, error) {
	dietary := "None"
	if len(preferences) > 0 {
		dietary = strings.Join(preferences, ", ")
	}

	userPrompt := fmt.Sprintf(`Create a complete daily meal plan with these targets:
- Total calories: %d (within 30)
- Protein: %dg (within 5g)
- Carbohydrates: %dg (within 10g)
- Fat: %dg (within 5g)

Dietary preferences/restrictions: %s`,
		metrics.TargetCalories, metrics.ProteinG, metrics.CarbsG, metrics.FatG, dietary)

	content, err := c.Complete(ctx, planningSystemPrompt, userPrompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("plan meals: %w", err)
	}

	plan := c.parsePlan(content, metrics)
	plan.DietaryPreferences = preferences
	plan.PlanType = "daily"
	plan.CreatedAt = time.Now().UTC()
	plan.Totalize()
	return plan, nil
}

func (c *Client) parsePlan(content string, metrics models.HealthMetrics) *models.MealPlan {
	jsonStr, ok := extractJSON(content)
	if !ok {
		return c.fallbackPlan(metrics)
	}

	var parsed struct {
		Meals []models.MealItem `json:"meals"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil || len(parsed.Meals) == 0 {
		return c.fallbackPlan(metrics)
	}

	return &models.MealPlan{Meals: parsed.Meals}
}

// fallbackPlan splits the caloric target over four generic meals when
// generation fails, flagged in the notes so the caller can retry.
func (c *Client) fallbackPlan(metrics models.HealthMetrics) *models.MealPlan {
	quarter := func(pct float64, total int) int { return int(float64(total) * pct) }
	mk := func(mealType, name string, pct float64) models.MealItem {
		return models.MealItem{
			MealType: mealType,
			Name:     name,
			Calories: quarter(pct, metrics.TargetCalories),
			ProteinG: quarter(pct, metrics.ProteinG),
			CarbsG:   quarter(pct, metrics.CarbsG),
			FatG:     quarter(pct, metrics.FatG),
		}
	}

	return &models.MealPlan{
		Meals: []models.MealItem{
			mk("breakfast", "Balanced breakfast", 0.25),
			mk("lunch", "Balanced lunch", 0.35),
			mk("dinner", "Balanced dinner", 0.30),
			mk("snack", "Light snack", 0.10),
		},
		Notes: "Plan generation was unavailable; this is an even caloric split. Ask again for a personalized plan.",
	}
}
