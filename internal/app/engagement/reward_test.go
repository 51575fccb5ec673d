package engagement_test

import (
	"strings"
	"testing"

	"github.com/fitquest-app/fitquest/internal/app/engagement"
)

func TestApplyBonuses_NoContext(t *testing.T) {
	points, desc := engagement.ApplyBonuses(10, engagement.RewardContext{})
	if points != 10 {
		t.Errorf("expected base 10, got %d", points)
	}
	if desc != "" {
		t.Errorf("expected no annotation, got %q", desc)
	}
}

func TestApplyBonuses_FirstUnlockWithStreak(t *testing.T) {
	// 10 × 1.5 (first) × 1.5 (10-day streak caps at +50%) = 22.5 → 23
	points, desc := engagement.ApplyBonuses(10, engagement.RewardContext{
		FirstUnlock: true,
		StreakDays:  10,
	})
	if points != 23 {
		t.Errorf("expected 23, got %d", points)
	}
	if !strings.Contains(desc, "first unlock") {
		t.Errorf("annotation should name the first-unlock bonus, got %q", desc)
	}
	if !strings.Contains(desc, "streak bonus") {
		t.Errorf("annotation should name the streak bonus, got %q", desc)
	}
}

func TestApplyBonuses_StreakScale(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 100},  // no bonus
		{1, 105},  // +5%
		{5, 125},  // +25%
		{10, 150}, // +50% cap reached
		{20, 150}, // capped
	}
	for _, tt := range tests {
		got, _ := engagement.ApplyBonuses(100, engagement.RewardContext{StreakDays: tt.days})
		if got != tt.want {
			t.Errorf("streak %d days: expected %d, got %d", tt.days, tt.want, got)
		}
	}
}

func TestApplyBonuses_Weekend(t *testing.T) {
	points, _ := engagement.ApplyBonuses(100, engagement.RewardContext{Weekend: true})
	if points != 125 {
		t.Errorf("expected 125, got %d", points)
	}
}

func TestApplyBonuses_PerfectDayDoublesLast(t *testing.T) {
	// 100 × 1.25 (weekend) × 2 (perfect day) = 250
	points, _ := engagement.ApplyBonuses(100, engagement.RewardContext{
		Weekend:    true,
		PerfectDay: true,
	})
	if points != 250 {
		t.Errorf("expected 250, got %d", points)
	}
}

func TestApplyBonuses_AllBonuses(t *testing.T) {
	// 10 × 1.5 × 1.5 × 1.25 × 2 = 56.25 → 56 (single rounding at the end)
	points, _ := engagement.ApplyBonuses(10, engagement.RewardContext{
		FirstUnlock: true,
		StreakDays:  15,
		Weekend:     true,
		PerfectDay:  true,
	})
	if points != 56 {
		t.Errorf("expected 56, got %d", points)
	}
}

func TestApplyBonuses_NegativeStreakInert(t *testing.T) {
	// Missing/invalid context means the bonus does not apply
	points, _ := engagement.ApplyBonuses(10, engagement.RewardContext{StreakDays: -3})
	if points != 10 {
		t.Errorf("expected 10, got %d", points)
	}
}
