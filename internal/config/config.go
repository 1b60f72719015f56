// Package config loads process configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
)

// Config holds all process settings. Safety limits default to the
// standard 1200/1000/500 and may be overridden per deployment.
type Config struct {
	Host   string
	Port   int
	DBPath string

	// LLM gateway
	GatewayURL string
	APIKey     string
	Model      string

	MinCalorieFloor int
	MaxDeficit      int
	MaxSurplus      int
}

// Load reads configuration from the environment. If envFile is
// non-empty the file is loaded first; a missing default .env is not an
// error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		godotenv.Load()
	}

	cfg := &Config{
		Host:       getEnv("API_HOST", "0.0.0.0"),
		DBPath:     getEnv("DB_PATH", "fitness_pal.db"),
		GatewayURL: getEnv("LLM_GATEWAY_URL", "http://localhost:9876"),
		APIKey:     os.Getenv("LLM_API_KEY"),
		Model:      getEnv("LLM_MODEL", "anthropic/claude-3.5-sonnet"),
	}

	var err error
	if cfg.Port, err = getEnvInt("API_PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.MinCalorieFloor, err = getEnvInt("MIN_CALORIE_FLOOR", 1200); err != nil {
		return nil, err
	}
	if cfg.MaxDeficit, err = getEnvInt("MAX_CALORIE_DEFICIT", 1000); err != nil {
		return nil, err
	}
	if cfg.MaxSurplus, err = getEnvInt("MAX_CALORIE_SURPLUS", 500); err != nil {
		return nil, err
	}

	if cfg.MinCalorieFloor <= 0 {
		return nil, fmt.Errorf("MIN_CALORIE_FLOOR must be positive, got %d", cfg.MinCalorieFloor)
	}
	if cfg.MaxDeficit <= 0 || cfg.MaxSurplus <= 0 {
		return nil, fmt.Errorf("calorie deficit/surplus limits must be positive")
	}

	return cfg, nil
}

// SafetyLimits converts the configured bounds into the engine's type.
func (c *Config) SafetyLimits() health.SafetyLimits {
	return health.SafetyLimits{
		MinCalorieFloor: c.MinCalorieFloor,
		MaxDeficit:      c.MaxDeficit,
		MaxSurplus:      c.MaxSurplus,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: expected integer, got %q", key, v)
	}
	return n, nil
}
