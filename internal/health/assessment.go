package health

import "fmt"

// RiskLevel is the qualitative risk classification derived from BMI category.
type RiskLevel string

const (
	LowRisk      RiskLevel = "low"
	ModerateRisk RiskLevel = "moderate"
	HighRisk     RiskLevel = "high"
)

// Assessment pairs a risk level with ordered, deterministic
// recommendation strings for the BMI category.
type Assessment struct {
	BMI             float64     `json:"bmi"`
	Category        BMICategory `json:"category"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	Recommendations []string    `json:"recommendations"`
}

var categoryAssessments = map[BMICategory]struct {
	risk            RiskLevel
	recommendations []string
}{
	Underweight: {ModerateRisk, []string{
		"Consider consulting with a healthcare provider about healthy weight gain",
		"Focus on nutrient-dense, calorie-rich foods",
		"Incorporate strength training to build muscle mass",
		"Ensure adequate protein intake (1.6-2.2g per kg body weight)",
	}},
	NormalWeight: {LowRisk, []string{
		"Maintain current healthy weight through balanced nutrition",
		"Continue regular physical activity (150+ minutes per week)",
		"Focus on overall health and fitness rather than just weight",
		"Regular health check-ups to monitor wellness",
	}},
	Overweight: {ModerateRisk, []string{
		"Aim for gradual weight loss (0.5-1 kg per week)",
		"Focus on whole foods and portion control",
		"Increase physical activity to at least 200 minutes per week",
		"Consider tracking food intake to create awareness",
		"Consult healthcare provider before starting intensive programs",
	}},
	Obese: {HighRisk, []string{
		"Strongly recommend consulting with healthcare provider",
		"Consider working with registered dietitian for personalized plan",
		"Start with low-impact activities (walking, swimming)",
		"Focus on sustainable lifestyle changes, not quick fixes",
		"Regular monitoring of health markers (blood pressure, cholesterol)",
		"Consider medical supervision for weight loss program",
	}},
}

// AssessHealthStatus maps a BMI category to its risk level and
// recommendation list. The numeric bmi is echoed in the result; only
// the category drives the lookup.
func AssessHealthStatus(bmi float64, category BMICategory) (Assessment, error) {
	entry, ok := categoryAssessments[category]
	if !ok {
		return Assessment{}, fmt.Errorf("%w: unrecognized BMI category %q", ErrInvalidInput, category)
	}

	// Copy so callers can't mutate the shared table.
	recs := make([]string, len(entry.recommendations))
	copy(recs, entry.recommendations)

	return Assessment{
		BMI:             bmi,
		Category:        category,
		RiskLevel:       entry.risk,
		Recommendations: recs,
	}, nil
}
