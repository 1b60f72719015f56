package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
	"github.com/parisaaghdam/fitness-pal-agent/internal/storage"
)

// HealthAgent drives the assessment conversation: it extracts biometric
// fields from each message, asks for what's still missing, and once the
// profile is complete runs the calculation engine and records the
// result.
type HealthAgent struct {
	store     *storage.Store
	extractor ProfileExtractor
	limits    health.SafetyLimits
}

// NewHealthAgent wires the agent to its storage and extraction
// collaborators.
func NewHealthAgent(store *storage.Store, extractor ProfileExtractor, limits health.SafetyLimits) *HealthAgent {
	return &HealthAgent{store: store, extractor: extractor, limits: limits}
}

// Reply is one assistant turn. Metrics is set only when the profile
// became complete and the assessment ran.
type Reply struct {
	Message  string                `json:"message"`
	Complete bool                  `json:"complete"`
	Metrics  *models.HealthMetrics `json:"metrics,omitempty"`
}

// Run processes one user message in a session: extract, merge, persist,
// and either ask for the next missing field or deliver the assessment.
// The user turn and the assistant turn are appended to the conversation
// log together, only once the reply exists, so a failed turn never
// leaves a dangling user message without its answer.
func (a *HealthAgent) Run(ctx context.Context, userID, sessionID, message string) (*Reply, error) {
	profile, err := a.store.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		profile = &models.UserProfile{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	update, err := a.extractor.ExtractProfile(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("extract profile: %w", err)
	}
	profile.Apply(update)
	if err := a.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	var reply *Reply
	if missing := profile.MissingFields(); len(missing) > 0 {
		reply = &Reply{Message: askFor(missing)}
	} else {
		metrics, err := a.Assess(ctx, profile)
		if err != nil {
			return nil, err
		}
		reply = &Reply{
			Message:  summarize(profile, metrics),
			Complete: true,
			Metrics:  &metrics,
		}
	}

	if err := a.logTurn(ctx, userID, sessionID, models.RoleUser, message); err != nil {
		return nil, err
	}
	if err := a.logTurn(ctx, userID, sessionID, models.RoleAssistant, reply.Message); err != nil {
		return nil, err
	}
	return reply, nil
}

// Assess runs the full engine over a complete profile and appends the
// result to health_history.
func (a *HealthAgent) Assess(ctx context.Context, profile *models.UserProfile) (models.HealthMetrics, error) {
	metrics, err := ComputeMetrics(profile, a.limits)
	if err != nil {
		return models.HealthMetrics{}, err
	}

	record := &models.HealthRecord{
		UserID:   profile.UserID,
		WeightKG: *profile.WeightKG,
		HeightCM: *profile.HeightCM,
		Metrics:  metrics,
	}
	if err := a.store.AppendHealthRecord(ctx, record); err != nil {
		return models.HealthMetrics{}, err
	}
	return metrics, nil
}

// ComputeMetrics runs all four engine calculations over a complete
// profile. It is the single seam between the conversational layer and
// the engine.
func ComputeMetrics(profile *models.UserProfile, limits health.SafetyLimits) (models.HealthMetrics, error) {
	if missing := profile.MissingFields(); len(missing) > 0 {
		return models.HealthMetrics{}, fmt.Errorf("profile incomplete, missing: %s", strings.Join(missing, ", "))
	}

	bmi, category, err := health.CalculateBMI(*profile.WeightKG, *profile.HeightCM)
	if err != nil {
		return models.HealthMetrics{}, err
	}

	tdee, err := health.CalculateTDEE(*profile.WeightKG, *profile.HeightCM,
		*profile.Age, *profile.Sex, *profile.ActivityLevel)
	if err != nil {
		return models.HealthMetrics{}, err
	}

	targets, err := health.CalculateCaloricTargets(tdee, *profile.FitnessGoal, limits)
	if err != nil {
		return models.HealthMetrics{}, err
	}

	assessment, err := health.AssessHealthStatus(bmi, category)
	if err != nil {
		return models.HealthMetrics{}, err
	}

	return models.HealthMetrics{
		BMI:             bmi,
		BMICategory:     category,
		TDEE:            tdee,
		TargetCalories:  targets.TargetCalories,
		ProteinG:        targets.ProteinG,
		CarbsG:          targets.CarbsG,
		FatG:            targets.FatG,
		RiskLevel:       assessment.RiskLevel,
		Recommendations: assessment.Recommendations,
		CalculatedAt:    time.Now().UTC(),
	}, nil
}

func (a *HealthAgent) logTurn(ctx context.Context, userID, sessionID, role, content string) error {
	return a.store.AppendMessage(ctx, &models.ConversationMessage{
		UserID:    userID,
		SessionID: sessionID,
		AgentType: models.AgentHealth,
		Role:      role,
		Content:   content,
	})
}

// askFor phrases the request for the next missing field. Fields are
// requested one at a time, in a fixed order.
func askFor(missing []string) string {
	questions := map[string]string{
		"weight":         "What's your current weight in kilograms?",
		"height":         "How tall are you, in centimeters?",
		"age":            "How old are you?",
		"sex":            "What's your biological sex (male or female)? I need it for the metabolic calculation.",
		"activity level": "How active are you day to day: sedentary, lightly active, moderately active, very active, or extremely active?",
		"fitness goal":   "What's your goal: lose weight, maintain, or gain muscle?",
	}
	if q, ok := questions[missing[0]]; ok {
		return q
	}
	return fmt.Sprintf("Could you tell me your %s?", missing[0])
}

// summarize renders the assessment as a chat message.
func summarize(profile *models.UserProfile, m models.HealthMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks! Here's your assessment.\n\n")
	fmt.Fprintf(&b, "BMI: %.1f (%s)\n", m.BMI, m.BMICategory)
	fmt.Fprintf(&b, "Daily energy expenditure: %.0f calories\n", m.TDEE)
	fmt.Fprintf(&b, "Daily target for your %s goal: %d calories\n",
		strings.ReplaceAll(string(*profile.FitnessGoal), "_", " "), m.TargetCalories)
	fmt.Fprintf(&b, "Macros: %dg protein, %dg carbs, %dg fat\n\n", m.ProteinG, m.CarbsG, m.FatG)
	b.WriteString("Recommendations:\n")
	for _, rec := range m.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	b.WriteString("\nWhen you're ready, I can put together a meal plan for these targets.")
	return b.String()
}
