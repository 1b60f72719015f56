package agent

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
	"github.com/parisaaghdam/fitness-pal-agent/internal/storage"
)

// fakeExtractor returns canned updates in sequence, one per call.
type fakeExtractor struct {
	updates []*models.ProfileUpdate
	calls   int
}

func (f *fakeExtractor) ExtractProfile(ctx context.Context, message string) (*models.ProfileUpdate, error) {
	if f.calls >= len(f.updates) {
		return &models.ProfileUpdate{}, nil
	}
	u := f.updates[f.calls]
	f.calls++
	return u, nil
}

type fakePlanner struct {
	gotMetrics models.HealthMetrics
	gotPrefs   []string
	err        error
}

func (f *fakePlanner) PlanMeals(ctx context.Context, metrics models.HealthMetrics, preferences []string) (*models.MealPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotMetrics = metrics
	f.gotPrefs = preferences
	plan := &models.MealPlan{
		Meals: []models.MealItem{
			{MealType: "breakfast", Name: "Oatmeal", Calories: metrics.TargetCalories / 4},
			{MealType: "lunch", Name: "Salad", Calories: metrics.TargetCalories / 4},
			{MealType: "dinner", Name: "Curry", Calories: metrics.TargetCalories / 4},
			{MealType: "snack", Name: "Yogurt", Calories: metrics.TargetCalories / 4},
		},
	}
	plan.Totalize()
	return plan, nil
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

func fullUpdate() *models.ProfileUpdate {
	return &models.ProfileUpdate{
		Age:           ptr(30),
		Sex:           ptr(health.Male),
		WeightKG:      ptr(80.0),
		HeightCM:      ptr(180.0),
		ActivityLevel: ptr(health.Sedentary),
		FitnessGoal:   ptr(health.LoseWeight),
	}
}

func TestHealthAgentAsksForMissingFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ext := &fakeExtractor{updates: []*models.ProfileUpdate{
		{WeightKG: ptr(80.0)},
	}}
	a := NewHealthAgent(store, ext, health.DefaultSafetyLimits())

	reply, err := a.Run(ctx, "u1", "sess1", "I weigh 80 kilos")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply.Complete {
		t.Error("reply should not be complete with a partial profile")
	}
	// weight is set, so the next question is about height
	if !strings.Contains(reply.Message, "tall") {
		t.Errorf("expected a height question, got %q", reply.Message)
	}

	// The weight must have been persisted.
	profile, err := store.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if profile.WeightKG == nil || *profile.WeightKG != 80 {
		t.Errorf("weight not persisted: %v", profile.WeightKG)
	}
}

func TestHealthAgentCompletesAssessment(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ext := &fakeExtractor{updates: []*models.ProfileUpdate{fullUpdate()}}
	a := NewHealthAgent(store, ext, health.DefaultSafetyLimits())

	reply, err := a.Run(ctx, "u1", "sess1", "30yo male, 80kg, 180cm, sedentary, want to lose weight")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reply.Complete {
		t.Fatal("reply should be complete")
	}
	if reply.Metrics == nil {
		t.Fatal("metrics missing from complete reply")
	}
	// BMR 1780, TDEE 2136, 20% deficit -> 1709
	if reply.Metrics.TDEE != 2136 {
		t.Errorf("tdee = %v, want 2136", reply.Metrics.TDEE)
	}
	if reply.Metrics.TargetCalories != 1709 {
		t.Errorf("target calories = %d, want 1709", reply.Metrics.TargetCalories)
	}
	if reply.Metrics.BMICategory != health.NormalWeight {
		t.Errorf("category = %q, want Normal weight", reply.Metrics.BMICategory)
	}

	// Assessment must be on the history log.
	record, err := store.LatestHealthRecord(ctx, "u1")
	if err != nil {
		t.Fatalf("no health record persisted: %v", err)
	}
	if record.Metrics.TargetCalories != 1709 {
		t.Errorf("persisted target = %d, want 1709", record.Metrics.TargetCalories)
	}

	// Both turns must be on the conversation log.
	msgs, err := store.SessionMessages(ctx, "sess1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 {
		t.Fatalf("conversation turns = %d, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Error("turns not logged in order")
	}
}

func TestHealthAgentAccumulatesAcrossTurns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ext := &fakeExtractor{updates: []*models.ProfileUpdate{
		{WeightKG: ptr(60.0), HeightCM: ptr(165.0)},
		{Age: ptr(25), Sex: ptr(health.Female)},
		{ActivityLevel: ptr(health.Sedentary), FitnessGoal: ptr(health.Maintain)},
	}}
	a := NewHealthAgent(store, ext, health.DefaultSafetyLimits())

	r1, err := a.Run(ctx, "u1", "sess1", "60kg and 165cm")
	if err != nil {
		t.Fatal(err)
	}
	if r1.Complete {
		t.Fatal("turn 1 should not complete")
	}
	r2, err := a.Run(ctx, "u1", "sess1", "25, female")
	if err != nil {
		t.Fatal(err)
	}
	if r2.Complete {
		t.Fatal("turn 2 should not complete")
	}
	r3, err := a.Run(ctx, "u1", "sess1", "sedentary, just maintain")
	if err != nil {
		t.Fatal(err)
	}
	if !r3.Complete {
		t.Fatal("turn 3 should complete the profile")
	}
	// BMR 1345.25, TDEE 1614, maintain -> 1614
	if r3.Metrics.TargetCalories != 1614 {
		t.Errorf("target calories = %d, want 1614", r3.Metrics.TargetCalories)
	}
}

func TestComputeMetricsSafetyLimits(t *testing.T) {
	profile := &models.UserProfile{
		UserID:        "u1",
		Age:           ptr(30),
		Sex:           ptr(health.Male),
		WeightKG:      ptr(200.0),
		HeightCM:      ptr(200.0),
		ActivityLevel: ptr(health.ExtremelyActive),
		FitnessGoal:   ptr(health.LoseWeight),
	}
	m, err := ComputeMetrics(profile, health.DefaultSafetyLimits())
	if err != nil {
		t.Fatal(err)
	}
	// TDEE is huge here; the deficit must be capped at 1000.
	if float64(m.TargetCalories) != m.TDEE-1000 {
		t.Errorf("target = %d with tdee %v, want deficit capped at 1000", m.TargetCalories, m.TDEE)
	}
}

func TestComputeMetricsIncompleteProfile(t *testing.T) {
	profile := &models.UserProfile{UserID: "u1", WeightKG: ptr(80.0)}
	if _, err := ComputeMetrics(profile, health.DefaultSafetyLimits()); err == nil {
		t.Error("expected error for incomplete profile")
	}
}

func TestNutritionAgentPlansFromLatestRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	prefs := []string{"vegetarian"}
	store.SaveProfile(ctx, &models.UserProfile{UserID: "u1", DietaryPreferences: prefs})
	store.AppendHealthRecord(ctx, &models.HealthRecord{
		UserID: "u1", WeightKG: 80, HeightCM: 180,
		Metrics: models.HealthMetrics{
			BMI: 24.7, BMICategory: health.NormalWeight, TDEE: 2136,
			TargetCalories: 1709, ProteinG: 150, CarbsG: 150, FatG: 57,
			RiskLevel: health.LowRisk,
		},
	})

	planner := &fakePlanner{}
	a := NewNutritionAgent(store, planner)

	plan, err := a.PlanForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("PlanForUser: %v", err)
	}
	if planner.gotMetrics.TargetCalories != 1709 {
		t.Errorf("planner got target %d, want 1709", planner.gotMetrics.TargetCalories)
	}
	if len(planner.gotPrefs) != 1 || planner.gotPrefs[0] != "vegetarian" {
		t.Errorf("planner got prefs %v", planner.gotPrefs)
	}

	active, err := store.ActiveMealPlan(ctx, "u1")
	if err != nil {
		t.Fatalf("plan not persisted as active: %v", err)
	}
	if active.ID != plan.ID {
		t.Errorf("active plan = %s, want %s", active.ID, plan.ID)
	}
}

func TestNutritionAgentRetiresPriorPlan(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.AppendHealthRecord(ctx, &models.HealthRecord{
		UserID: "u1", WeightKG: 80, HeightCM: 180,
		Metrics: models.HealthMetrics{TargetCalories: 2000, TDEE: 2500, BMICategory: health.NormalWeight, RiskLevel: health.LowRisk},
	})

	a := NewNutritionAgent(store, &fakePlanner{})
	first, err := a.PlanForUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.PlanForUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}

	active, err := store.ActiveMealPlan(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if active.ID != second.ID {
		t.Errorf("active = %s, want the newer plan %s", active.ID, second.ID)
	}

	hist, _ := store.MealPlanHistory(ctx, "u1", 10)
	if len(hist) != 2 {
		t.Fatalf("history = %d, want 2", len(hist))
	}
	for _, p := range hist {
		if p.ID == first.ID && p.Status != models.PlanCompleted {
			t.Errorf("first plan status = %q, want completed", p.Status)
		}
	}
}

func TestNutritionAgentRequiresAssessment(t *testing.T) {
	store := newTestStore(t)
	a := NewNutritionAgent(store, &fakePlanner{})
	_, err := a.PlanForUser(context.Background(), "nobody")
	if !errors.Is(err, ErrNoAssessment) {
		t.Errorf("expected ErrNoAssessment, got %v", err)
	}
}

type failingExtractor struct{}

func (failingExtractor) ExtractProfile(ctx context.Context, message string) (*models.ProfileUpdate, error) {
	return nil, errors.New("gateway unreachable")
}

func TestHealthAgentFailedTurnLeavesNoTranscript(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	a := NewHealthAgent(store, failingExtractor{}, health.DefaultSafetyLimits())

	if _, err := a.Run(ctx, "u1", "sess1", "I weigh 80 kilos"); err == nil {
		t.Fatal("expected extractor failure to surface")
	}

	msgs, err := store.SessionMessages(ctx, "sess1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("conversation turns after failed run = %d, want 0", len(msgs))
	}
}
