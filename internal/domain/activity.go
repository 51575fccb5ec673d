// Package domain holds the shared types of the FitQuest engagement engine.
// The engine consumes activity logs and goals as read-only input and owns
// the achievement state derived from them.
package domain

// FoodEntry is a single logged food item.
type FoodEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// ExerciseEntry is a single logged workout.
type ExerciseEntry struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CaloriesBurned int    `json:"calories_burned"`
}

// ActivityLog is one logical day of activity. Date is an effective calendar
// date ("2006-01-02") — the day-boundary adjustment has already happened at
// ingestion, so dates compare at calendar granularity only.
type ActivityLog struct {
	Date      string          `json:"date"`
	Foods     []FoodEntry     `json:"foods"`
	Exercises []ExerciseEntry `json:"exercises"`
	WaterML   int             `json:"water_ml"`
}

// HasActivity reports whether anything at all was logged for the day.
func (l ActivityLog) HasActivity() bool {
	return len(l.Foods) > 0 || len(l.Exercises) > 0 || l.WaterML > 0
}

// GoalDirection is the user's weight-goal direction.
type GoalDirection string

const (
	GoalLose     GoalDirection = "lose"
	GoalMaintain GoalDirection = "maintain"
	GoalGain     GoalDirection = "gain"
)

// UserGoals is the user's goal settings. No progress strategy reads it in the
// current rule set, but it is threaded through every strategy call so new
// goal-aware achievements stay additive.
type UserGoals struct {
	TargetWeightKG float64       `json:"target_weight_kg"`
	Direction      GoalDirection `json:"direction"`
	TimelineWeeks  int           `json:"timeline_weeks"`
}
