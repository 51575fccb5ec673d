package engagement

import (
	"fmt"
	"math"
	"strings"
)

// RewardContext is the situational context captured at the moment of unlock.
// Missing context (zero streak, weekday, ordinary day) simply leaves the
// corresponding bonus inert — never an error.
type RewardContext struct {
	FirstUnlock bool
	StreakDays  int
	Weekend     bool
	PerfectDay  bool
}

// bonus is one stage of the reward pipeline: a label plus a conditional
// multiplier over the running point value.
type bonus struct {
	label string
	mult  func(RewardContext) float64
}

// rewardPipeline is the fixed application order. Multipliers compose
// multiplicatively on the running value; the perfect-day doubling is last.
var rewardPipeline = []bonus{
	{
		label: "first unlock ×1.5",
		mult: func(ctx RewardContext) float64 {
			if ctx.FirstUnlock {
				return 1.5
			}
			return 1.0
		},
	},
	{
		label: "streak bonus",
		mult: func(ctx RewardContext) float64 {
			if ctx.StreakDays <= 0 {
				return 1.0
			}
			// +5% per consecutive day, capped at +50%.
			return 1.0 + math.Min(float64(ctx.StreakDays)*0.05, 0.50)
		},
	},
	{
		label: "weekend ×1.25",
		mult: func(ctx RewardContext) float64 {
			if ctx.Weekend {
				return 1.25
			}
			return 1.0
		},
	},
	{
		label: "perfect day ×2",
		mult: func(ctx RewardContext) float64 {
			if ctx.PerfectDay {
				return 2.0
			}
			return 1.0
		},
	},
}

// ApplyBonuses folds the reward pipeline over an achievement's base points
// and returns the final payout plus an annotation naming the applied bonuses.
// The running value stays floating point and is rounded exactly once, after
// the final stage.
func ApplyBonuses(basePoints int, ctx RewardContext) (int, string) {
	points := float64(basePoints)
	var applied []string

	for _, b := range rewardPipeline {
		m := b.mult(ctx)
		if m == 1.0 {
			continue
		}
		points *= m
		label := b.label
		if b.label == "streak bonus" {
			label = fmt.Sprintf("streak bonus ×%.2f", m)
		}
		applied = append(applied, label)
	}

	if len(applied) == 0 {
		return basePoints, ""
	}
	return int(math.Round(points)), strings.Join(applied, ", ")
}
