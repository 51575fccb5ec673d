package engagement

import (
	"fmt"
	"time"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// Entry pairs an immutable achievement definition with the progress strategy
// that governs it.
type Entry struct {
	Def      domain.AchievementDef
	Progress ProgressFunc
}

// Catalog is the single source of truth for every achievement that exists.
// Built once; the manager never invents or removes entries at runtime.
// Iteration order is stable: category outer loop, tiers bronze→diamond.
type Catalog struct {
	entries []Entry
}

// tierSpec is one cell of a category's tier table.
type tierSpec struct {
	target float64
	points int
	name   string
	desc   string
}

// gridCategories are the categories covered by the tier grid, in catalog
// order. CatSpecial is a valid enum value but lives outside the grid.
var gridCategories = []domain.AchievementCategory{
	domain.CatConsistency,
	domain.CatNutrition,
	domain.CatExercise,
	domain.CatMilestone,
}

var categoryIcons = map[domain.AchievementCategory]string{
	domain.CatConsistency: "🔥",
	domain.CatNutrition:   "🥗",
	domain.CatExercise:    "💪",
	domain.CatMilestone:   "💧",
}

// tierTables holds the fixed (target, points, display) table per category.
var tierTables = map[domain.AchievementCategory]map[domain.Tier]tierSpec{
	domain.CatConsistency: {
		domain.TierBronze:   {3, 10, "Getting Started", "Log activity 3 days in a row"},
		domain.TierSilver:   {7, 25, "Week Warrior", "Keep a 7-day activity streak"},
		domain.TierGold:     {14, 50, "Fortnight Force", "Keep a 14-day activity streak"},
		domain.TierPlatinum: {30, 100, "Monthly Machine", "Keep a 30-day activity streak"},
		domain.TierDiamond:  {90, 250, "Quarter Champion", "Keep a 90-day activity streak"},
	},
	domain.CatNutrition: {
		domain.TierBronze:   {5000, 10, "Calorie Counter", "Log 5,000 total calories"},
		domain.TierSilver:   {25000, 25, "Food Journalist", "Log 25,000 total calories"},
		domain.TierGold:     {100000, 50, "Nutrition Nerd", "Log 100,000 total calories"},
		domain.TierPlatinum: {500000, 100, "Macro Master", "Log 500,000 total calories"},
		domain.TierDiamond:  {1000000, 250, "Million Club", "Log 1,000,000 total calories"},
	},
	domain.CatExercise: {
		domain.TierBronze:   {5, 10, "First Reps", "Log 5 workouts"},
		domain.TierSilver:   {25, 25, "Regular", "Log 25 workouts"},
		domain.TierGold:     {100, 50, "Century", "Log 100 workouts"},
		domain.TierPlatinum: {300, 100, "Iron Will", "Log 300 workouts"},
		domain.TierDiamond:  {1000, 250, "Unstoppable", "Log 1,000 workouts"},
	},
	domain.CatMilestone: {
		domain.TierBronze:   {3, 10, "Well Watered", "Hit your water goal on 3 days"},
		domain.TierSilver:   {14, 25, "Hydration Habit", "Hit your water goal on 14 days"},
		domain.TierGold:     {30, 50, "Aqua Regular", "Hit your water goal on 30 days"},
		domain.TierPlatinum: {90, 100, "Deep Reservoir", "Hit your water goal on 90 days"},
		domain.TierDiamond:  {365, 250, "Year of Water", "Hit your water goal on 365 days"},
	},
}

// NewCatalog enumerates every category×tier combination exactly once and
// builds its (definition, strategy) pair. The clock is injected so streak
// strategies are testable against a fixed "today".
func NewCatalog(boundaryHour, waterGoalML int, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}

	c := &Catalog{}
	for _, cat := range gridCategories {
		for _, tier := range domain.Tiers() {
			c.entries = append(c.entries, Entry{
				Def:      buildDef(cat, tier),
				Progress: strategyFor(cat, boundaryHour, waterGoalML, now),
			})
		}
	}
	return c
}

// Entries returns the full order-stable catalog.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Len returns the number of defined achievements.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// buildDef looks up the fixed tier table for a category. The grid is closed
// and build-time-fixed, so an unknown combination is a programmer error and
// panics rather than silently defaulting.
func buildDef(cat domain.AchievementCategory, tier domain.Tier) domain.AchievementDef {
	table, ok := tierTables[cat]
	if !ok {
		panic(fmt.Sprintf("engagement: no tier table for category %q", cat))
	}
	spec, ok := table[tier]
	if !ok {
		panic(fmt.Sprintf("engagement: category %q has no tier %q", cat, tier))
	}

	return domain.AchievementDef{
		ID:          fmt.Sprintf("%s_%s", cat, tier),
		Name:        spec.name,
		Description: spec.desc,
		Icon:        categoryIcons[cat],
		Category:    cat,
		Tier:        tier,
		BasePoints:  spec.points,
		Target:      spec.target,
	}
}

// strategyFor maps a category to its progress strategy.
func strategyFor(cat domain.AchievementCategory, boundaryHour, waterGoalML int, now func() time.Time) ProgressFunc {
	switch cat {
	case domain.CatConsistency:
		return streakProgress(boundaryHour, now)
	case domain.CatNutrition:
		return calorieProgress()
	case domain.CatExercise:
		return exerciseProgress()
	case domain.CatMilestone:
		return hydrationProgress(waterGoalML)
	default:
		panic(fmt.Sprintf("engagement: no strategy for category %q", cat))
	}
}
