// Package metrics provides Prometheus metrics for FitQuest: counters and
// gauges for achievement unlocks, points, level, streak, and the command
// layer. Exposed on /metrics when telemetry is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementsUnlocked tracks total achievements unlocked.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// Evaluations tracks evaluation passes over the catalog.
var Evaluations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "evaluations_total",
	Help:      "Total achievement evaluation passes.",
})

// TotalPoints tracks the user's cumulative achievement points.
var TotalPoints = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "points_total",
	Help:      "Cumulative achievement points.",
})

// Level tracks the user's current level.
var Level = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "level_current",
	Help:      "Current user level.",
})

// StreakDays tracks the current activity streak length.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fitquest",
	Name:      "streak_days",
	Help:      "Current activity streak in days.",
})

// ─── Commands ───────────────────────────────────────────────────────────────

// CommandsExecuted tracks executed commands by type.
var CommandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitquest",
	Name:      "commands_executed_total",
	Help:      "Total executed activity commands.",
}, []string{"type"})
