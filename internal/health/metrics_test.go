package health

import (
	"errors"
	"testing"
)

func TestCalculateBMI(t *testing.T) {
	cases := []struct {
		name     string
		weightKG float64
		heightCM float64
		wantBMI  float64
		wantCat  BMICategory
	}{
		{"normal weight", 70, 175, 22.9, NormalWeight},
		{"underweight", 50, 175, 16.3, Underweight},
		{"overweight", 85, 175, 27.8, Overweight},
		{"obese", 100, 175, 32.7, Obese},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bmi, cat, err := CalculateBMI(tc.weightKG, tc.heightCM)
			if err != nil {
				t.Fatalf("CalculateBMI(%v, %v): %v", tc.weightKG, tc.heightCM, err)
			}
			if bmi != tc.wantBMI {
				t.Errorf("bmi = %v, want %v", bmi, tc.wantBMI)
			}
			if cat != tc.wantCat {
				t.Errorf("category = %q, want %q", cat, tc.wantCat)
			}
		})
	}
}

func TestCalculateBMI_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		weightKG float64
		heightCM float64
	}{
		{"zero weight", 0, 175},
		{"negative weight", -70, 175},
		{"zero height", 70, 0},
		{"negative height", 70, -175},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := CalculateBMI(tc.weightKG, tc.heightCM)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// Classification must use the raw quotient, not the rounded display
// value: 76.5kg at 175cm is BMI 24.98, which rounds to 25.0 for display
// but is still Normal weight.
func TestCalculateBMI_BoundaryClassifiesFromRawValue(t *testing.T) {
	bmi, cat, err := CalculateBMI(76.5, 175)
	if err != nil {
		t.Fatal(err)
	}
	if bmi != 25.0 {
		t.Errorf("bmi = %v, want 25.0", bmi)
	}
	if cat != NormalWeight {
		t.Errorf("category = %q, want %q", cat, NormalWeight)
	}
}

func TestCalculateTDEE(t *testing.T) {
	cases := []struct {
		name     string
		weightKG float64
		heightCM float64
		age      int
		sex      Sex
		level    ActivityLevel
		min, max float64
	}{
		// BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1780; TDEE = 1780*1.2 = 2136
		{"male sedentary", 80, 180, 30, Male, Sedentary, 2130, 2140},
		// BMR = 10*60 + 6.25*165 - 5*25 - 161 = 1345.25; TDEE = 1614.3
		{"female sedentary", 60, 165, 25, Female, Sedentary, 1610, 1620},
		// TDEE = 1780*1.725 = 3070.5
		{"male very active", 80, 180, 30, Male, VeryActive, 3065, 3075},
		// TDEE = 1345.25*1.55 = 2085.1
		{"female moderately active", 60, 165, 25, Female, ModeratelyActive, 2080, 2090},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tdee, err := CalculateTDEE(tc.weightKG, tc.heightCM, tc.age, tc.sex, tc.level)
			if err != nil {
				t.Fatalf("CalculateTDEE: %v", err)
			}
			if tdee < tc.min || tdee > tc.max {
				t.Errorf("tdee = %v, want in [%v, %v]", tdee, tc.min, tc.max)
			}
		})
	}
}

func TestCalculateTDEE_MonotonicInActivityLevel(t *testing.T) {
	var prev float64
	for i, level := range ActivityLevels {
		tdee, err := CalculateTDEE(75, 175, 30, Male, level)
		if err != nil {
			t.Fatalf("CalculateTDEE(%q): %v", level, err)
		}
		if i > 0 && tdee <= prev {
			t.Errorf("tdee for %q = %v, not greater than %v for previous level", level, tdee, prev)
		}
		prev = tdee
	}
}

func TestCalculateTDEE_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		weightKG float64
		heightCM float64
		age      int
		sex      Sex
		level    ActivityLevel
	}{
		{"zero weight", 0, 180, 30, Male, Sedentary},
		{"negative height", 80, -180, 30, Male, Sedentary},
		{"zero age", 80, 180, 0, Male, Sedentary},
		{"unknown sex", 80, 180, 30, Sex("other"), Sedentary},
		{"unknown activity level", 80, 180, 30, Male, ActivityLevel("couch")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateTDEE(tc.weightKG, tc.heightCM, tc.age, tc.sex, tc.level)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// The engine holds no state: identical inputs must yield identical
// results on repeated calls.
func TestCalculationsAreIdempotent(t *testing.T) {
	b1, c1, _ := CalculateBMI(70, 175)
	b2, c2, _ := CalculateBMI(70, 175)
	if b1 != b2 || c1 != c2 {
		t.Errorf("CalculateBMI not idempotent: (%v,%q) vs (%v,%q)", b1, c1, b2, c2)
	}

	t1, _ := CalculateTDEE(80, 180, 30, Male, ModeratelyActive)
	t2, _ := CalculateTDEE(80, 180, 30, Male, ModeratelyActive)
	if t1 != t2 {
		t.Errorf("CalculateTDEE not idempotent: %v vs %v", t1, t2)
	}

	ct1, _ := CalculateCaloricTargets(2500, LoseWeight, DefaultSafetyLimits())
	ct2, _ := CalculateCaloricTargets(2500, LoseWeight, DefaultSafetyLimits())
	if ct1 != ct2 {
		t.Errorf("CalculateCaloricTargets not idempotent: %+v vs %+v", ct1, ct2)
	}
}
