package domain

import "time"

// ─── Aggregate State ────────────────────────────────────────────────────────

// AchievementState is the authoritative aggregate owned by the engagement
// manager. TotalPoints is monotonically non-decreasing and always equals the
// sum of final unlock payouts; Level is derived from it every evaluation.
type AchievementState struct {
	Unlocked      map[string]UnlockedAchievement `json:"unlocked"`
	TotalPoints   int                            `json:"total_points"`
	CurrentStreak int                            `json:"current_streak"`
	LongestStreak int                            `json:"longest_streak"`
	Level         int                            `json:"level"`
	LevelProgress float64                        `json:"level_progress"`
}

// Snapshot is a partial external image of AchievementState, used to hydrate
// the manager from persistence. Nil fields are left untouched on load.
type Snapshot struct {
	Unlocked      []UnlockedAchievement `json:"unlocked,omitempty"`
	TotalPoints   *int                  `json:"total_points,omitempty"`
	CurrentStreak *int                  `json:"current_streak,omitempty"`
	LongestStreak *int                  `json:"longest_streak,omitempty"`
}

// ─── Events ─────────────────────────────────────────────────────────────────

// EventType categorizes achievement lifecycle events.
type EventType string

const (
	EventUnlocked  EventType = "unlocked"
	EventStreak    EventType = "streak"
	EventMilestone EventType = "milestone"
)

// Event is a transient notification dispatched through the bus. It exists
// only for the duration of a publish; nothing persists it.
type Event struct {
	Type        EventType       `json:"type"`
	Achievement *AchievementDef `json:"achievement,omitempty"`
	Value       float64         `json:"value,omitempty"` // streak days or new level
	At          time.Time       `json:"at"`
}
