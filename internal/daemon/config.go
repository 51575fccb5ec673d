// Package daemon manages the FitQuest daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Engagement EngagementConfig `toml:"engagement"`
	Goals      GoalsConfig      `toml:"goals"`
	Logging    LoggingConfig    `toml:"logging"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// EngagementConfig tunes the achievement engine.
type EngagementConfig struct {
	DayBoundaryHour int `toml:"day_boundary_hour"` // logical day start; 4 = activity before 4am credits yesterday
	PointsPerLevel  int `toml:"points_per_level"`
	WaterGoalML     int `toml:"water_goal_ml"`
	CommandHistory  int `toml:"command_history"` // audit-trail cap
}

// GoalsConfig is the user's goal settings, threaded into every strategy call.
type GoalsConfig struct {
	TargetWeightKG float64 `toml:"target_weight_kg"`
	Direction      string  `toml:"direction"` // lose | maintain | gain
	TimelineWeeks  int     `toml:"timeline_weeks"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// TelemetryConfig controls the Prometheus /metrics endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := fitquestHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7425,
			CORSOrigins: []string{"*"},
		},
		Engagement: EngagementConfig{
			DayBoundaryHour: 4,
			PointsPerLevel:  100,
			WaterGoalML:     2000,
			CommandHistory:  100,
		},
		Goals: GoalsConfig{
			Direction:     string(domain.GoalMaintain),
			TimelineWeeks: 12,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "fitquest.log"),
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// UserGoals converts the configured goals into the domain type.
func (c Config) UserGoals() domain.UserGoals {
	return domain.UserGoals{
		TargetWeightKG: c.Goals.TargetWeightKG,
		Direction:      domain.GoalDirection(c.Goals.Direction),
		TimelineWeeks:  c.Goals.TimelineWeeks,
	}
}

// LoadConfig reads config from ~/.fitquest/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(fitquestHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.fitquest/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(fitquestHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// fitquestHome returns the FitQuest data directory.
func fitquestHome() string {
	if env := os.Getenv("FITQUEST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fitquest")
}

// FitquestHome is exported for use by other packages.
func FitquestHome() string {
	return fitquestHome()
}
