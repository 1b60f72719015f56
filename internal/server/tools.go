package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
	"github.com/parisaaghdam/fitness-pal-agent/internal/storage"
)

// errBadParams marks argument decoding and validation failures so the
// HTTP layer can answer 400 instead of 500.
var errBadParams = errors.New("invalid parameters")

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

func (s *Server) tools() map[string]toolHandler {
	return map[string]toolHandler{
		"chat":               s.handleChat,
		"assess_health":      s.handleAssessHealth,
		"update_profile":     s.handleUpdateProfile,
		"get_profile":        s.handleGetProfile,
		"plan_meals":         s.handlePlanMeals,
		"get_health_history": s.handleGetHealthHistory,
		"get_meal_plans":     s.handleGetMealPlans,
	}
}

type ChatParams struct {
	UserID    string `json:"user_id" description:"Stable identifier for the user"`
	SessionID string `json:"session_id,omitempty" description:"Conversation session; a new one is issued when omitted"`
	Message   string `json:"message" description:"The user's chat message"`
}

type UserParams struct {
	UserID string `json:"user_id" description:"Stable identifier for the user"`
}

type UpdateProfileParams struct {
	UserID string `json:"user_id" description:"Stable identifier for the user"`

	Name               *string  `json:"name,omitempty"`
	Age                *int     `json:"age,omitempty"`
	Sex                *string  `json:"sex,omitempty" description:"male or female"`
	WeightKG           *float64 `json:"weight_kg,omitempty"`
	HeightCM           *float64 `json:"height_cm,omitempty"`
	ActivityLevel      *string  `json:"activity_level,omitempty" description:"sedentary, lightly_active, moderately_active, very_active or extremely_active"`
	FitnessGoal        *string  `json:"fitness_goal,omitempty" description:"lose_weight, maintain or gain_muscle"`
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	EquipmentAvailable []string `json:"equipment_available,omitempty"`
}

type HealthHistoryParams struct {
	UserID string `json:"user_id" description:"Stable identifier for the user"`
	Days   int    `json:"days,omitempty" description:"Look-back window in days (default 365)"`
	Limit  int    `json:"limit,omitempty" description:"Maximum number of records (default 20)"`
}

type MealPlansParams struct {
	UserID string `json:"user_id" description:"Stable identifier for the user"`
	Limit  int    `json:"limit,omitempty" description:"Maximum number of plans (default 10)"`
}

// extractParams re-marshals the request arguments into a typed params
// struct.
func extractParams(req *protocol.CallToolRequest, target any) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadParams, err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errBadParams, err)
	}
	return nil
}

// handleChat runs one turn of the assessment conversation. A session id
// is issued when the client doesn't supply one, so follow-up turns can
// share a transcript.
func (s *Server) handleChat(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ChatParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" || params.Message == "" {
		return nil, fmt.Errorf("%w: user_id and message are required", errBadParams)
	}
	if params.SessionID == "" {
		params.SessionID = uuid.NewString()
	}

	reply, err := s.health.Run(ctx, params.UserID, params.SessionID, params.Message)
	if err != nil {
		return nil, fmt.Errorf("chat turn: %w", err)
	}

	return s.jsonResult(map[string]any{
		"session_id": params.SessionID,
		"message":    reply.Message,
		"complete":   reply.Complete,
		"metrics":    reply.Metrics,
	})
}

// handleAssessHealth runs the calculation engine over the stored
// profile without any conversation. The profile must already be
// complete.
func (s *Server) handleAssessHealth(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UserParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", errBadParams)
	}

	profile, err := s.store.GetProfile(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if missing := profile.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: profile incomplete, missing %v", errBadParams, missing)
	}

	metrics, err := s.health.Assess(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("assess health: %w", err)
	}
	return s.jsonResult(metrics)
}

// handleUpdateProfile merges explicitly supplied fields into the stored
// profile, creating it on first contact. Enum fields are rejected
// rather than silently dropped, since the caller stated them directly.
func (s *Server) handleUpdateProfile(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UpdateProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", errBadParams)
	}

	update, err := params.toUpdate()
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, params.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		profile = &models.UserProfile{UserID: params.UserID}
	} else if err != nil {
		return nil, err
	}

	profile.Apply(update)
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	return s.jsonResult(map[string]any{
		"profile":        profile,
		"missing_fields": profile.MissingFields(),
	})
}

func (p *UpdateProfileParams) toUpdate() (*models.ProfileUpdate, error) {
	update := &models.ProfileUpdate{
		Name:               p.Name,
		Age:                p.Age,
		WeightKG:           p.WeightKG,
		HeightCM:           p.HeightCM,
		DietaryPreferences: p.DietaryPreferences,
		EquipmentAvailable: p.EquipmentAvailable,
	}
	if p.Sex != nil {
		v := health.Sex(*p.Sex)
		if v != health.Male && v != health.Female {
			return nil, fmt.Errorf("%w: unrecognized sex %q", errBadParams, *p.Sex)
		}
		update.Sex = &v
	}
	if p.ActivityLevel != nil {
		var found bool
		for _, level := range health.ActivityLevels {
			if health.ActivityLevel(*p.ActivityLevel) == level {
				update.ActivityLevel = &level
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unrecognized activity level %q", errBadParams, *p.ActivityLevel)
		}
	}
	if p.FitnessGoal != nil {
		v := health.Goal(*p.FitnessGoal)
		switch v {
		case health.LoseWeight, health.Maintain, health.GainMuscle:
			update.FitnessGoal = &v
		default:
			return nil, fmt.Errorf("%w: unrecognized fitness goal %q", errBadParams, *p.FitnessGoal)
		}
	}
	return update, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UserParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", errBadParams)
	}

	profile, err := s.store.GetProfile(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	return s.jsonResult(map[string]any{
		"profile":        profile,
		"missing_fields": profile.MissingFields(),
	})
}

// handlePlanMeals generates and stores a meal plan from the latest
// health assessment.
func (s *Server) handlePlanMeals(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UserParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", errBadParams)
	}

	plan, err := s.nutrition.PlanForUser(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	return s.jsonResult(plan)
}

func (s *Server) handleGetHealthHistory(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params HealthHistoryParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", errBadParams)
	}
	if params.Days <= 0 {
		params.Days = 365
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}

	records, err := s.store.HealthHistory(ctx, params.UserID, params.Days, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("load health history: %w", err)
	}
	return s.jsonResult(records)
}

func (s *Server) handleGetMealPlans(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MealPlansParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", errBadParams)
	}
	if params.Limit <= 0 {
		params.Limit = 10
	}

	plans, err := s.store.MealPlanHistory(ctx, params.UserID, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("load meal plans: %w", err)
	}
	return s.jsonResult(plans)
}
