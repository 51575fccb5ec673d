package engagement_test

import (
	"testing"

	"github.com/fitquest-app/fitquest/internal/app/engagement"
	"github.com/fitquest-app/fitquest/internal/domain"
)

func TestInvoker_ExecuteRecords(t *testing.T) {
	m := newTestManager(t)
	inv := engagement.NewInvoker(10)

	history := []domain.ActivityLog{calorieDay("2024-01-03", 5000)}
	cmd := engagement.NewLogFoodCommand(m, history, domain.UserGoals{}, domain.FoodEntry{Name: "pasta", Calories: 5000})

	unlocked := inv.Execute(cmd)
	if len(unlocked) != 1 {
		t.Fatalf("expected 1 unlock through the command, got %d", len(unlocked))
	}

	records := inv.Recent(10)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Name != "food_logged" {
		t.Errorf("expected food_logged, got %s", rec.Name)
	}
	if rec.Unlocked != 1 {
		t.Errorf("record should count 1 unlock, got %d", rec.Unlocked)
	}
	if rec.ID == "" {
		t.Error("record should carry an id")
	}
	if rec.Detail == "" {
		t.Error("record should describe the triggering entry")
	}
}

func TestInvoker_RecentMostRecentFirst(t *testing.T) {
	m := newTestManager(t)
	inv := engagement.NewInvoker(10)
	goals := domain.UserGoals{}

	inv.Execute(engagement.NewLogWaterCommand(m, nil, goals, 300))
	inv.Execute(engagement.NewCheckInCommand(m, nil, goals))
	inv.Execute(engagement.NewLogExerciseCommand(m, nil, goals, domain.ExerciseEntry{Name: "run", CaloriesBurned: 200}))

	records := inv.Recent(2)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "exercise_logged" {
		t.Errorf("most recent first: expected exercise_logged, got %s", records[0].Name)
	}
	if records[1].Name != "check_in" {
		t.Errorf("expected check_in second, got %s", records[1].Name)
	}
}

func TestInvoker_CapDropsOldest(t *testing.T) {
	m := newTestManager(t)
	inv := engagement.NewInvoker(3)
	goals := domain.UserGoals{}

	for i := 0; i < 5; i++ {
		inv.Execute(engagement.NewCheckInCommand(m, nil, goals))
	}
	inv.Execute(engagement.NewLogWaterCommand(m, nil, goals, 100))

	if inv.Len() != 3 {
		t.Errorf("expected cap of 3, got %d", inv.Len())
	}
	if got := inv.Recent(1)[0].Name; got != "water_logged" {
		t.Errorf("newest record should survive the cap, got %s", got)
	}
}

func TestCommands_EmptyHistoryTolerated(t *testing.T) {
	m := newTestManager(t)
	inv := engagement.NewInvoker(0) // default cap

	unlocked := inv.Execute(engagement.NewCheckInCommand(m, nil, domain.UserGoals{}))
	if len(unlocked) != 0 {
		t.Errorf("empty history should unlock nothing, got %d", len(unlocked))
	}
	if st := m.State(); st.CurrentStreak != 0 {
		t.Errorf("expected streak 0, got %d", st.CurrentStreak)
	}
}
