package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a user's stored health assessments",
		Run:   runHistory,
	}

	cmd.Flags().StringP("user", "u", "", "User id")
	cmd.Flags().Int("days", 365, "Look-back window in days")
	cmd.Flags().IntP("limit", "l", 20, "Max records")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.HealthHistory(cmd.Context(), user, days, limit)
	if err != nil {
		exitErr("history", err)
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		exitErr("encode", err)
	}
	fmt.Println(string(out))
}
