package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.MinCalorieFloor != 1200 || cfg.MaxDeficit != 1000 || cfg.MaxSurplus != 500 {
		t.Errorf("safety limits = %d/%d/%d, want 1200/1000/500",
			cfg.MinCalorieFloor, cfg.MaxDeficit, cfg.MaxSurplus)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("MIN_CALORIE_FLOOR", "1400")
	t.Setenv("DB_PATH", "/tmp/test.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.MinCalorieFloor != 1400 {
		t.Errorf("MinCalorieFloor = %d, want 1400", cfg.MinCalorieFloor)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("API_PORT", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-integer API_PORT")
	}
}

func TestLoadRejectsNonPositiveFloor(t *testing.T) {
	t.Setenv("MIN_CALORIE_FLOOR", "0")
	if _, err := Load(""); err == nil {
		t.Error("expected error for zero MIN_CALORIE_FLOOR")
	}
}

func TestSafetyLimits(t *testing.T) {
	cfg := &Config{MinCalorieFloor: 1300, MaxDeficit: 900, MaxSurplus: 400}
	limits := cfg.SafetyLimits()
	if limits.MinCalorieFloor != 1300 || limits.MaxDeficit != 900 || limits.MaxSurplus != 400 {
		t.Errorf("SafetyLimits() = %+v, want 1300/900/400", limits)
	}
}
