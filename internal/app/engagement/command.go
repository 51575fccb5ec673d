package engagement

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitquest-app/fitquest/internal/domain"
	"github.com/fitquest-app/fitquest/internal/infra/metrics"
)

// Command wraps one user-triggered activity event as an executable object.
// Commands are fire-and-record: no rollback or undo semantics.
type Command interface {
	// Name identifies the command type ("food_logged", …).
	Name() string
	// Detail describes the triggering entity for the audit trail.
	Detail() string
	// Execute runs the achievement evaluation and returns new unlocks.
	Execute() []domain.UnlockedAchievement
}

// checkCommand binds a history+goals snapshot to one evaluation pass.
type checkCommand struct {
	name    string
	detail  string
	mgr     *Manager
	history []domain.ActivityLog
	goals   domain.UserGoals
}

func (c *checkCommand) Name() string   { return c.name }
func (c *checkCommand) Detail() string { return c.detail }

func (c *checkCommand) Execute() []domain.UnlockedAchievement {
	metrics.CommandsExecuted.WithLabelValues(c.name).Inc()
	return c.mgr.CheckAchievements(c.history, c.goals)
}

// NewLogFoodCommand records a food entry's evaluation trigger.
func NewLogFoodCommand(mgr *Manager, history []domain.ActivityLog, goals domain.UserGoals, entry domain.FoodEntry) Command {
	return &checkCommand{
		name:    "food_logged",
		detail:  fmt.Sprintf("%s (%d kcal)", entry.Name, entry.Calories),
		mgr:     mgr,
		history: history,
		goals:   goals,
	}
}

// NewLogExerciseCommand records an exercise entry's evaluation trigger.
func NewLogExerciseCommand(mgr *Manager, history []domain.ActivityLog, goals domain.UserGoals, entry domain.ExerciseEntry) Command {
	return &checkCommand{
		name:    "exercise_logged",
		detail:  fmt.Sprintf("%s (%d kcal burned)", entry.Name, entry.CaloriesBurned),
		mgr:     mgr,
		history: history,
		goals:   goals,
	}
}

// NewLogWaterCommand records a water intake's evaluation trigger.
func NewLogWaterCommand(mgr *Manager, history []domain.ActivityLog, goals domain.UserGoals, ml int) Command {
	return &checkCommand{
		name:    "water_logged",
		detail:  fmt.Sprintf("%d ml", ml),
		mgr:     mgr,
		history: history,
		goals:   goals,
	}
}

// NewCheckInCommand records a generic daily check-in trigger.
func NewCheckInCommand(mgr *Manager, history []domain.ActivityLog, goals domain.UserGoals) Command {
	return &checkCommand{
		name:    "check_in",
		detail:  "daily check-in",
		mgr:     mgr,
		history: history,
		goals:   goals,
	}
}

// ─── Invoker ────────────────────────────────────────────────────────────────

// CommandRecord is one entry in the invoker's audit trail.
type CommandRecord struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Detail   string    `json:"detail"`
	At       time.Time `json:"at"`
	Unlocked int       `json:"unlocked"`
}

// Invoker executes commands and keeps a bounded record of recent executions
// for diagnostics. The original design grew without bound; the cap keeps the
// trail from leaking.
type Invoker struct {
	mu      sync.Mutex
	cap     int
	now     func() time.Time
	records []CommandRecord
}

const defaultHistoryCap = 100

// NewInvoker creates an invoker keeping at most cap records (<=0 uses the
// default of 100).
func NewInvoker(cap int) *Invoker {
	if cap <= 0 {
		cap = defaultHistoryCap
	}
	return &Invoker{cap: cap, now: time.Now}
}

// Execute runs the command, records it, and returns its new unlocks.
func (i *Invoker) Execute(cmd Command) []domain.UnlockedAchievement {
	unlocked := cmd.Execute()

	i.mu.Lock()
	defer i.mu.Unlock()
	i.records = append(i.records, CommandRecord{
		ID:       uuid.NewString(),
		Name:     cmd.Name(),
		Detail:   cmd.Detail(),
		At:       i.now(),
		Unlocked: len(unlocked),
	})
	if len(i.records) > i.cap {
		i.records = i.records[len(i.records)-i.cap:]
	}
	return unlocked
}

// Recent returns the last n records, most recent first.
func (i *Invoker) Recent(n int) []CommandRecord {
	i.mu.Lock()
	defer i.mu.Unlock()

	if n <= 0 || n > len(i.records) {
		n = len(i.records)
	}
	out := make([]CommandRecord, 0, n)
	for idx := len(i.records) - 1; idx >= len(i.records)-n; idx-- {
		out = append(out, i.records[idx])
	}
	return out
}

// Len returns the number of retained records.
func (i *Invoker) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.records)
}
