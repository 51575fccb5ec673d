package engagement

import (
	"sync"
	"time"

	"github.com/fitquest-app/fitquest/internal/domain"
	"github.com/fitquest-app/fitquest/internal/infra/metrics"
)

// Config tunes the engagement manager. Zero values fall back to defaults.
type Config struct {
	BoundaryHour   int              // logical day starts at this hour (default 4)
	PointsPerLevel int              // level cost (default 100)
	WaterGoalML    int              // daily water goal (default 2000)
	Now            func() time.Time // injectable clock for tests
}

const (
	defaultBoundaryHour   = 4
	defaultPointsPerLevel = 100
	defaultWaterGoalML    = 2000
)

// levelTitles maps level numbers to rank names; levels beyond the table
// clamp to the last title.
var levelTitles = []string{
	"Rookie",
	"Explorer",
	"Achiever",
	"Athlete",
	"Warrior",
	"Champion",
	"Elite",
	"Master",
	"Grandmaster",
	"Legend",
}

// Manager is the authoritative achievement state store. The daemon owns the
// single instance and hands it to every caller; there is no hidden global.
//
// All mutating and reading operations serialize on an internal mutex so the
// multi-threaded HTTP host stays correct. Events are published after the
// locked section, in order, so listeners may call read paths safely —
// listeners must still never trigger another evaluation synchronously.
type Manager struct {
	mu             sync.Mutex
	catalog        *Catalog
	bus            *Bus
	now            func() time.Time
	boundaryHour   int
	pointsPerLevel int
	waterGoalML    int
	state          domain.AchievementState
}

// NewManager creates a manager with an empty all-zero state at level 1.
func NewManager(cfg Config) *Manager {
	if cfg.BoundaryHour <= 0 {
		cfg.BoundaryHour = defaultBoundaryHour
	}
	if cfg.PointsPerLevel <= 0 {
		cfg.PointsPerLevel = defaultPointsPerLevel
	}
	if cfg.WaterGoalML <= 0 {
		cfg.WaterGoalML = defaultWaterGoalML
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{
		catalog:        NewCatalog(cfg.BoundaryHour, cfg.WaterGoalML, cfg.Now),
		bus:            NewBus(),
		now:            cfg.Now,
		boundaryHour:   cfg.BoundaryHour,
		pointsPerLevel: cfg.PointsPerLevel,
		waterGoalML:    cfg.WaterGoalML,
		state: domain.AchievementState{
			Unlocked: make(map[string]domain.UnlockedAchievement),
			Level:    1,
		},
	}
}

// Bus returns the event bus for subscribe/unsubscribe.
func (m *Manager) Bus() *Bus {
	return m.bus
}

// Catalog returns the achievement catalog.
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// LoadState shallow-merges a persisted snapshot into the aggregate. Nil
// fields are left untouched. Emits no events — hydration is not activity.
func (m *Manager) LoadState(snap domain.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ua := range snap.Unlocked {
		m.state.Unlocked[ua.ID] = ua
	}
	if snap.TotalPoints != nil {
		m.state.TotalPoints = *snap.TotalPoints
	}
	if snap.CurrentStreak != nil {
		m.state.CurrentStreak = *snap.CurrentStreak
	}
	if snap.LongestStreak != nil {
		m.state.LongestStreak = *snap.LongestStreak
	}
	if m.state.LongestStreak < m.state.CurrentStreak {
		m.state.LongestStreak = m.state.CurrentStreak
	}
	m.recomputeLevel()
}

// State returns a defensive copy of the aggregate snapshot.
func (m *Manager) State() domain.AchievementState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copyState()
}

// AllAchievements returns every catalog definition annotated with its unlock
// record if present. This is the UI read path; it never evaluates.
func (m *Manager) AllAchievements() []domain.AchievementStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.AchievementStatus, 0, m.catalog.Len())
	for _, e := range m.catalog.Entries() {
		status := domain.AchievementStatus{AchievementDef: e.Def}
		if ua, ok := m.state.Unlocked[e.Def.ID]; ok {
			at := ua.UnlockedAt
			status.UnlockedAt = &at
			status.Progress = e.Def.Target
		}
		out = append(out, status)
	}
	return out
}

// CheckAchievements runs every not-yet-unlocked strategy against the
// supplied history, unlocks whatever now qualifies, applies the reward
// pipeline, updates streak and level, and publishes events. Idempotent:
// unchanged inputs never double-unlock or double-count points.
func (m *Manager) CheckAchievements(history []domain.ActivityLog, goals domain.UserGoals) []domain.UnlockedAchievement {
	m.mu.Lock()

	now := m.now()
	today := EffectiveDate(now, m.boundaryHour)
	streakNow := CurrentStreak(ActivityDates(history), today)

	ctx := RewardContext{
		StreakDays: streakNow,
		Weekend:    now.Weekday() == time.Saturday || now.Weekday() == time.Sunday,
		PerfectDay: m.isPerfectDay(history, today),
	}

	var newly []domain.UnlockedAchievement
	var events []domain.Event

	for _, e := range m.catalog.Entries() {
		if _, done := m.state.Unlocked[e.Def.ID]; done {
			continue
		}
		if e.Progress(history, goals) < e.Def.Target {
			continue
		}

		ctx.FirstUnlock = len(m.state.Unlocked) == 0
		points, annotation := ApplyBonuses(e.Def.BasePoints, ctx)

		ua := domain.UnlockedAchievement{
			ID:          e.Def.ID,
			UnlockedAt:  now,
			Points:      points,
			Description: annotation,
		}
		m.state.Unlocked[e.Def.ID] = ua
		m.state.TotalPoints += points
		newly = append(newly, ua)

		def := e.Def
		events = append(events, domain.Event{Type: domain.EventUnlocked, Achievement: &def, At: now})

		if ev, ok := m.recomputeLevel(); ok {
			events = append(events, ev)
		}
	}

	prevLongest := m.state.LongestStreak
	m.state.CurrentStreak = streakNow
	if streakNow > m.state.LongestStreak {
		m.state.LongestStreak = streakNow
	}
	if streakNow > 0 && streakNow%7 == 0 && streakNow > prevLongest {
		events = append(events, domain.Event{Type: domain.EventStreak, Value: float64(streakNow), At: now})
	}

	metrics.Evaluations.Inc()
	metrics.AchievementsUnlocked.Add(float64(len(newly)))
	metrics.TotalPoints.Set(float64(m.state.TotalPoints))
	metrics.Level.Set(float64(m.state.Level))
	metrics.StreakDays.Set(float64(m.state.CurrentStreak))

	m.mu.Unlock()

	for _, ev := range events {
		m.bus.Publish(ev)
	}
	return newly
}

// NextAchievement returns the closest not-yet-unlocked achievement with
// strictly positive progress, by smallest (target − progress). Ties resolve
// to catalog order. Returns nil when nothing is in progress.
func (m *Manager) NextAchievement(history []domain.ActivityLog, goals domain.UserGoals) *domain.AchievementStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	var best *domain.AchievementStatus
	var bestDist float64

	for _, e := range m.catalog.Entries() {
		if _, done := m.state.Unlocked[e.Def.ID]; done {
			continue
		}
		progress := e.Progress(history, goals)
		if progress <= 0 {
			continue
		}
		dist := e.Def.Target - progress
		if dist < 0 {
			dist = 0
		}
		if best == nil || dist < bestDist {
			best = &domain.AchievementStatus{AchievementDef: e.Def, Progress: progress}
			bestDist = dist
		}
	}
	return best
}

// LevelTitle maps a level to its rank name, clamping past the top rank.
func LevelTitle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelTitles) {
		level = len(levelTitles)
	}
	return levelTitles[level-1]
}

// recomputeLevel derives level and level progress from total points. If the
// level rose it returns a milestone event for the new level. Must be called
// with the mutex held.
func (m *Manager) recomputeLevel() (domain.Event, bool) {
	level := m.state.TotalPoints/m.pointsPerLevel + 1
	progress := float64(m.state.TotalPoints%m.pointsPerLevel) / float64(m.pointsPerLevel) * 100.0

	rose := level > m.state.Level
	var ev domain.Event
	if rose {
		ev = domain.Event{Type: domain.EventMilestone, Value: float64(level), At: m.now()}
	}
	m.state.Level = level
	m.state.LevelProgress = progress
	return ev, rose
}

// isPerfectDay reports whether the effective day has at least one food, at
// least one exercise, and water at or above the daily goal.
func (m *Manager) isPerfectDay(history []domain.ActivityLog, today string) bool {
	for _, log := range history {
		if log.Date != today {
			continue
		}
		return len(log.Foods) > 0 && len(log.Exercises) > 0 && log.WaterML >= m.waterGoalML
	}
	return false
}

// copyState clones the aggregate including the unlocked map. Mutex held.
func (m *Manager) copyState() domain.AchievementState {
	cp := m.state
	cp.Unlocked = make(map[string]domain.UnlockedAchievement, len(m.state.Unlocked))
	for id, ua := range m.state.Unlocked {
		cp.Unlocked[id] = ua
	}
	return cp
}

// Snapshot exports the aggregate in the shape the persistence layer stores.
func (m *Manager) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := domain.Snapshot{
		TotalPoints:   intPtr(m.state.TotalPoints),
		CurrentStreak: intPtr(m.state.CurrentStreak),
		LongestStreak: intPtr(m.state.LongestStreak),
	}
	for _, e := range m.catalog.Entries() {
		if ua, ok := m.state.Unlocked[e.Def.ID]; ok {
			snap.Unlocked = append(snap.Unlocked, ua)
		}
	}
	return snap
}

func intPtr(v int) *int { return &v }
