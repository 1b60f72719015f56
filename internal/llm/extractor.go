package llm

import (
	"context"
	"encoding/json"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

const extractionSystemPrompt = `You extract structured health information from chat messages.
Respond with only a JSON object, nothing else. Include only fields the message explicitly mentions:
{
  "name": "string",
  "age": number,
  "sex": "male" | "female",
  "weight_kg": number,
  "height_cm": number,
  "activity_level": "sedentary" | "lightly_active" | "moderately_active" | "very_active" | "extremely_active",
  "fitness_goal": "lose_weight" | "maintain" | "gain_muscle",
  "dietary_preferences": ["string"],
  "equipment_available": ["string"]
}
If weight is given in pounds, convert to kilograms (divide by 2.205).
If height is in feet/inches, convert to centimeters (1 foot = 30.48 cm, 1 inch = 2.54 cm).`

// rawExtraction mirrors the JSON shape the model is asked for; enum
// fields arrive as plain strings and are validated before use.
type rawExtraction struct {
	Name               *string  `json:"name"`
	Age                *int     `json:"age"`
	Sex                *string  `json:"sex"`
	WeightKG           *float64 `json:"weight_kg"`
	HeightCM           *float64 `json:"height_cm"`
	ActivityLevel      *string  `json:"activity_level"`
	FitnessGoal        *string  `json:"fitness_goal"`
	DietaryPreferences []string `json:"dietary_preferences"`
	EquipmentAvailable []string `json:"equipment_available"`
}

// ExtractProfile parses a free-text chat message into a partial profile.
// Extraction is best-effort: if the model's reply isn't parseable the
// update is empty rather than an error, since the user may just be
// chatting.
func (c *Client) ExtractProfile(ctx context.Context, message string) (*models.ProfileUpdate, error) {
	content, err := c.Complete(ctx, extractionSystemPrompt,
		"Message: "+message, 0.1)
	if err != nil {
		return nil, err
	}

	update := &models.ProfileUpdate{}

	jsonStr, ok := extractJSON(content)
	if !ok {
		return update, nil
	}
	var raw rawExtraction
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return update, nil
	}

	update.Name = raw.Name
	update.Age = raw.Age
	update.WeightKG = raw.WeightKG
	update.HeightCM = raw.HeightCM
	update.DietaryPreferences = raw.DietaryPreferences
	update.EquipmentAvailable = raw.EquipmentAvailable

	// Drop enum values the engine wouldn't accept instead of carrying
	// garbage into the profile.
	if raw.Sex != nil {
		if v := health.Sex(*raw.Sex); v == health.Male || v == health.Female {
			update.Sex = &v
		}
	}
	if raw.ActivityLevel != nil {
		for _, level := range health.ActivityLevels {
			if health.ActivityLevel(*raw.ActivityLevel) == level {
				update.ActivityLevel = &level
				break
			}
		}
	}
	if raw.FitnessGoal != nil {
		switch v := health.Goal(*raw.FitnessGoal); v {
		case health.LoseWeight, health.Maintain, health.GainMuscle:
			update.FitnessGoal = &v
		}
	}

	return update, nil
}
