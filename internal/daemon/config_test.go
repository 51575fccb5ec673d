package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7425 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7425)
	}
	if cfg.Engagement.DayBoundaryHour != 4 {
		t.Errorf("DayBoundaryHour = %d, want 4", cfg.Engagement.DayBoundaryHour)
	}
	if cfg.Engagement.PointsPerLevel != 100 {
		t.Errorf("PointsPerLevel = %d, want 100", cfg.Engagement.PointsPerLevel)
	}
	if cfg.Engagement.WaterGoalML != 2000 {
		t.Errorf("WaterGoalML = %d, want 2000", cfg.Engagement.WaterGoalML)
	}
	if cfg.Goals.Direction != "maintain" {
		t.Errorf("Goals.Direction = %q, want maintain", cfg.Goals.Direction)
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("FITQUEST_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engagement.CommandHistory != 100 {
		t.Errorf("CommandHistory = %d, want default 100", cfg.Engagement.CommandHistory)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FITQUEST_HOME", dir)

	content := `
[api]
port = 9000

[engagement]
day_boundary_hour = 6
water_goal_ml = 2500
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.Engagement.DayBoundaryHour != 6 {
		t.Errorf("DayBoundaryHour = %d, want 6", cfg.Engagement.DayBoundaryHour)
	}
	if cfg.Engagement.WaterGoalML != 2500 {
		t.Errorf("WaterGoalML = %d, want 2500", cfg.Engagement.WaterGoalML)
	}
	// Untouched sections keep defaults
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want default", cfg.API.Host)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("FITQUEST_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 8111
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 8111 {
		t.Errorf("Port = %d, want 8111", loaded.API.Port)
	}
}

func TestUserGoals_Conversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Goals.TargetWeightKG = 72.5
	cfg.Goals.Direction = "lose"

	goals := cfg.UserGoals()
	if goals.TargetWeightKG != 72.5 {
		t.Errorf("TargetWeightKG = %v, want 72.5", goals.TargetWeightKG)
	}
	if string(goals.Direction) != "lose" {
		t.Errorf("Direction = %q, want lose", goals.Direction)
	}
}
