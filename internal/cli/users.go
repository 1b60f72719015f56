package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List known user ids",
		Run:   runUsers,
	}
	cmd.Flags().IntP("limit", "l", 100, "Max users")
	RootCmd.AddCommand(cmd)
}

func runUsers(cmd *cobra.Command, args []string) {
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

	users, err := s.ListUsers(cmd.Context(), limit)
	if err != nil {
		exitErr("list users", err)
	}
	for _, u := range users {
		fmt.Println(u)
	}
}
