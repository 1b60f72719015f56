// Package cli implements the fitness-pal CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parisaaghdam/fitness-pal-agent/internal/config"
	"github.com/parisaaghdam/fitness-pal-agent/internal/storage"
)

var (
	envFile string
	dbFlag  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "fitness-pal",
	Short: "Conversational health and nutrition assistant",
	Long:  "A health assistant that computes BMI, daily energy expenditure and goal-adjusted caloric targets, and plans meals against them. SQLite-backed.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "Path to a .env file (optional)")
	RootCmd.PersistentFlags().StringVarP(&dbFlag, "db", "d", "", "Database path (default: $DB_PATH or fitness_pal.db)")
}

// loadConfig reads process configuration, letting the --db flag win
// over the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if dbFlag != "" {
		cfg.DBPath = dbFlag
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	return storage.Open(cfg.DBPath)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
