package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parisaaghdam/fitness-pal-agent/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan <plan-id>",
		Short: "Mark a meal plan completed or skipped",
		Args:  cobra.ExactArgs(1),
		Run:   runPlan,
	}
	cmd.Flags().StringP("status", "s", string(models.PlanCompleted), "New status: completed or skipped")
	RootCmd.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	statusStr, _ := cmd.Flags().GetString("status")
	status := models.PlanStatus(statusStr)
	if status != models.PlanCompleted && status != models.PlanSkipped {
		exitErr("plan", fmt.Errorf("status must be completed or skipped, got %q", statusStr))
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.UpdatePlanStatus(cmd.Context(), args[0], status); err != nil {
		exitErr("update plan status", err)
	}
	fmt.Printf("plan %s marked %s\n", args[0], status)
}
