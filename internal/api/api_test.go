package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitquest-app/fitquest/internal/api"
	"github.com/fitquest-app/fitquest/internal/app/engagement"
	"github.com/fitquest-app/fitquest/internal/domain"
	"github.com/fitquest-app/fitquest/internal/infra/sqlite"
)

// testServer wires a full API stack over a temporary database.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mgr := engagement.NewManager(engagement.Config{})
	queue := engagement.NewQueue()
	mgr.Bus().Subscribe(queue)
	inv := engagement.NewInvoker(50)

	srv := api.NewServer(mgr, inv, db, queue, 4, domain.UserGoals{Direction: domain.GoalMaintain})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body, out any) {
	t.Helper()
	raw, _ := json.Marshal(body)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
}

func TestAPI_Health(t *testing.T) {
	ts := testServer(t)

	var resp map[string]string
	getJSON(t, ts, "/health", &resp)
	if resp["status"] != "ok" {
		t.Errorf("expected ok, got %q", resp["status"])
	}
}

func TestAPI_AchievementsList(t *testing.T) {
	ts := testServer(t)

	var all []domain.AchievementStatus
	getJSON(t, ts, "/api/achievements", &all)
	if len(all) != 20 {
		t.Errorf("expected 20 achievements, got %d", len(all))
	}
}

func TestAPI_LogFoodUnlocks(t *testing.T) {
	ts := testServer(t)

	var resp struct {
		Date     string                       `json:"date"`
		Unlocked []domain.UnlockedAchievement `json:"unlocked"`
	}
	postJSON(t, ts, "/api/log/food", map[string]any{"name": "feast", "calories": 5000}, &resp)

	if resp.Date == "" {
		t.Error("expected an effective date in the response")
	}
	found := false
	for _, ua := range resp.Unlocked {
		if ua.ID == "nutrition_bronze" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected nutrition_bronze unlock, got %+v", resp.Unlocked)
	}

	// State reflects the payout
	var stateResp struct {
		State domain.AchievementState `json:"state"`
	}
	getJSON(t, ts, "/api/state", &stateResp)
	if stateResp.State.TotalPoints == 0 {
		t.Error("expected points after unlock")
	}
	if len(stateResp.State.Unlocked) == 0 {
		t.Error("expected unlocked set in state")
	}
}

func TestAPI_NotificationsDrainOnce(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts, "/api/log/food", map[string]any{"name": "feast", "calories": 5000}, nil)

	var events []domain.Event
	getJSON(t, ts, "/api/notifications", &events)
	if len(events) == 0 {
		t.Fatal("expected buffered events after unlock")
	}

	getJSON(t, ts, "/api/notifications", &events)
	if len(events) != 0 {
		t.Errorf("second poll should be empty, got %d", len(events))
	}
}

func TestAPI_WaterAndActivityLog(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts, "/api/log/water", map[string]any{"ml": 1200}, nil)
	postJSON(t, ts, "/api/log/water", map[string]any{"ml": 800}, nil)

	var history []domain.ActivityLog
	getJSON(t, ts, "/api/activity", &history)
	if len(history) != 1 {
		t.Fatalf("expected 1 day, got %d", len(history))
	}
	if history[0].WaterML != 2000 {
		t.Errorf("expected accumulated 2000ml, got %d", history[0].WaterML)
	}
}

func TestAPI_CommandTrail(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts, "/api/checkin", nil, nil)
	postJSON(t, ts, "/api/log/water", map[string]any{"ml": 500}, nil)

	var records []engagement.CommandRecord
	getJSON(t, ts, "/api/commands", &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 command records, got %d", len(records))
	}
	if records[0].Name != "water_logged" {
		t.Errorf("most recent first: got %s", records[0].Name)
	}
}

func TestAPI_NextAchievement(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts, "/api/log/exercise", map[string]any{"name": "run", "calories_burned": 250}, nil)

	var resp struct {
		Next *domain.AchievementStatus `json:"next"`
	}
	getJSON(t, ts, "/api/next", &resp)
	if resp.Next == nil {
		t.Fatal("expected a next achievement with exercise logged")
	}
	if resp.Next.Progress <= 0 {
		t.Errorf("next must have positive progress, got %.0f", resp.Next.Progress)
	}
}

func TestAPI_BadRequestRejected(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/log/food", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
