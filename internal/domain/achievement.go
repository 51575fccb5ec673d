package domain

import "time"

// ─── Catalog Types ──────────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme. Closed enum: the catalog
// grid covers the first four; Special is reserved for one-off achievements.
type AchievementCategory string

const (
	CatConsistency AchievementCategory = "consistency"
	CatNutrition   AchievementCategory = "nutrition"
	CatExercise    AchievementCategory = "exercise"
	CatMilestone   AchievementCategory = "milestone"
	CatSpecial     AchievementCategory = "special"
)

// Tier is the five-level rarity classification, strictly ordered
// bronze < silver < gold < platinum < diamond.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// Tiers returns all tiers in ascending rarity order.
func Tiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond}
}

// Rank returns the tier's position in the ordering (bronze=0 … diamond=4),
// or -1 for an unknown tier.
func (t Tier) Rank() int {
	for i, tier := range Tiers() {
		if t == tier {
			return i
		}
	}
	return -1
}

// AchievementDef is an immutable achievement definition. Created once at
// catalog-build time; never mutated afterwards.
type AchievementDef struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Tier        Tier                `json:"tier"`
	BasePoints  int                 `json:"base_points"`
	Target      float64             `json:"target"`
}

// ─── Unlock Types ───────────────────────────────────────────────────────────

// UnlockedAchievement records a one-time unlock. Points is the final payout
// after the reward pipeline, not the definition's base value.
type UnlockedAchievement struct {
	ID          string    `json:"id"`
	UnlockedAt  time.Time `json:"unlocked_at"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
}

// AchievementStatus is a definition annotated with the user's standing —
// the read path the UI consumes. UnlockedAt is nil until unlocked.
type AchievementStatus struct {
	AchievementDef
	Progress   float64    `json:"progress"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}
