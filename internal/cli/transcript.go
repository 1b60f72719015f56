package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Show a user's recent conversation turns across sessions",
		Run:   runTranscript,
	}

	cmd.Flags().StringP("user", "u", "", "User id")
	cmd.Flags().IntP("limit", "l", 50, "Max turns")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runTranscript(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
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

	msgs, err := s.UserConversations(cmd.Context(), user, limit)
	if err != nil {
		exitErr("transcript", err)
	}

	out, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		exitErr("encode", err)
	}
	fmt.Println(string(out))
}
