package health

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestAssessHealthStatus(t *testing.T) {
	cases := []struct {
		category BMICategory
		bmi      float64
		wantRisk RiskLevel
	}{
		{Underweight, 16.3, ModerateRisk},
		{NormalWeight, 22.9, LowRisk},
		{Overweight, 27.8, ModerateRisk},
		{Obese, 32.7, HighRisk},
	}

	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			got, err := AssessHealthStatus(tc.bmi, tc.category)
			if err != nil {
				t.Fatalf("AssessHealthStatus: %v", err)
			}
			if got.RiskLevel != tc.wantRisk {
				t.Errorf("risk_level = %q, want %q", got.RiskLevel, tc.wantRisk)
			}
			if len(got.Recommendations) < 3 {
				t.Errorf("got %d recommendations, want at least 3", len(got.Recommendations))
			}
			for i, rec := range got.Recommendations {
				if rec == "" {
					t.Errorf("recommendation %d is empty", i)
				}
			}
			if got.BMI != tc.bmi {
				t.Errorf("bmi echo = %v, want %v", got.BMI, tc.bmi)
			}
			if got.Category != tc.category {
				t.Errorf("category echo = %q, want %q", got.Category, tc.category)
			}
		})
	}
}

func TestAssessHealthStatus_ObeseMentionsHealthcareProvider(t *testing.T) {
	got, err := AssessHealthStatus(32.7, Obese)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, rec := range got.Recommendations {
		if strings.Contains(strings.ToLower(rec), "healthcare provider") {
			found = true
			break
		}
	}
	if !found {
		t.Error("obese recommendations must mention consulting a healthcare provider")
	}
}

func TestAssessHealthStatus_DeterministicOrder(t *testing.T) {
	a, _ := AssessHealthStatus(27.8, Overweight)
	b, _ := AssessHealthStatus(27.8, Overweight)
	if !reflect.DeepEqual(a.Recommendations, b.Recommendations) {
		t.Error("recommendation order is not deterministic across calls")
	}
}

// Returned slices must be copies: mutating one result must not leak into
// subsequent calls.
func TestAssessHealthStatus_ResultIsolation(t *testing.T) {
	a, _ := AssessHealthStatus(22.9, NormalWeight)
	a.Recommendations[0] = "mutated"
	b, _ := AssessHealthStatus(22.9, NormalWeight)
	if b.Recommendations[0] == "mutated" {
		t.Error("mutation of a returned assessment leaked into the shared table")
	}
}

func TestAssessHealthStatus_UnknownCategory(t *testing.T) {
	_, err := AssessHealthStatus(22.9, BMICategory("Svelte"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
