package health

import (
	"fmt"
	"math"
)

// BMICategory is the standard WHO weight classification.
type BMICategory string

const (
	Underweight  BMICategory = "Underweight"
	NormalWeight BMICategory = "Normal weight"
	Overweight   BMICategory = "Overweight"
	Obese        BMICategory = "Obese"
)

// CalculateBMI computes body mass index from weight in kilograms and
// height in centimeters, returning the value rounded to one decimal and
// its category. The category is classified from the raw quotient, not
// the rounded value, so a BMI of 24.96 displays as 25.0 but still
// classifies as Normal weight.
func CalculateBMI(weightKG, heightCM float64) (float64, BMICategory, error) {
	if weightKG <= 0 {
		return 0, "", fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if heightCM <= 0 {
		return 0, "", fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}

	heightM := heightCM / 100
	bmi := weightKG / (heightM * heightM)

	var category BMICategory
	switch {
	case bmi < 18.5:
		category = Underweight
	case bmi < 25:
		category = NormalWeight
	case bmi < 30:
		category = Overweight
	default:
		category = Obese
	}

	return math.Round(bmi*10) / 10, category, nil
}

// CalculateTDEE computes Total Daily Energy Expenditure: BMR via the
// Mifflin-St Jeor equation multiplied by the activity level multiplier,
// rounded to the nearest integer.
func CalculateTDEE(weightKG, heightCM float64, age int, sex Sex, level ActivityLevel) (float64, error) {
	if weightKG <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if heightCM <= 0 {
		return 0, fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	if age <= 0 {
		return 0, fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}

	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch sex {
	case Male:
		bmr += 5
	case Female:
		bmr -= 161
	default:
		return 0, fmt.Errorf("%w: unrecognized sex %q", ErrInvalidInput, sex)
	}

	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized activity level %q", ErrInvalidInput, level)
	}

	return math.Round(bmr * mult), nil
}
