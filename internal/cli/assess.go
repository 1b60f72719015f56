package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parisaaghdam/fitness-pal-agent/internal/agent"
	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a one-shot health assessment from flags",
		Long:  "Computes BMI, daily energy expenditure, caloric targets and a risk assessment directly from the given values. Nothing is stored.",
		Run:   runAssess,
	}

	cmd.Flags().Float64P("weight", "w", 0, "Weight in kilograms")
	cmd.Flags().Float64("height", 0, "Height in centimeters")
	cmd.Flags().IntP("age", "a", 0, "Age in years")
	cmd.Flags().StringP("sex", "s", "", "male or female")
	cmd.Flags().String("activity", string(health.Sedentary), "Activity level: sedentary, lightly_active, moderately_active, very_active, extremely_active")
	cmd.Flags().StringP("goal", "g", string(health.Maintain), "Fitness goal: lose_weight, maintain, gain_muscle")

	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("height")
	cmd.MarkFlagRequired("age")
	cmd.MarkFlagRequired("sex")

	RootCmd.AddCommand(cmd)
}

func runAssess(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	weight, _ := cmd.Flags().GetFloat64("weight")
	height, _ := cmd.Flags().GetFloat64("height")
	age, _ := cmd.Flags().GetInt("age")
	sexStr, _ := cmd.Flags().GetString("sex")
	activityStr, _ := cmd.Flags().GetString("activity")
	goalStr, _ := cmd.Flags().GetString("goal")

	sex := health.Sex(sexStr)
	activity := health.ActivityLevel(activityStr)
	goal := health.Goal(goalStr)
	profile := &models.UserProfile{
		Age:           &age,
		Sex:           &sex,
		WeightKG:      &weight,
		HeightCM:      &height,
		ActivityLevel: &activity,
		FitnessGoal:   &goal,
	}

	metrics, err := agent.ComputeMetrics(profile, cfg.SafetyLimits())
	if err != nil {
		exitErr("assess", err)
	}

	out, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		exitErr("encode", err)
	}
	fmt.Println(string(out))
}
