package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete a user's history older than the retention window",
		Run:   runPrune,
	}

	cmd.Flags().StringP("user", "u", "", "User id")
	cmd.Flags().Int("health-days", 365, "Retention for health assessments, in days")
	cmd.Flags().Int("conversation-days", 90, "Retention for conversation turns, in days")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runPrune(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	healthDays, _ := cmd.Flags().GetInt("health-days")
	convDays, _ := cmd.Flags().GetInt("conversation-days")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	healthPruned, err := s.PruneHealthHistory(cmd.Context(), user, healthDays)
	if err != nil {
		exitErr("prune health history", err)
	}
	convPruned, err := s.PruneConversations(cmd.Context(), user, convDays)
	if err != nil {
		exitErr("prune conversations", err)
	}

	fmt.Printf("pruned %d health records and %d conversation turns\n", healthPruned, convPruned)
}
