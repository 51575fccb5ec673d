// Package api provides the HTTP surface of the FitQuest daemon. It is the
// glue between the UI/activity-entry layers and the achievement engine: read
// endpoints never evaluate, activity endpoints persist the entry and drive
// one command through the invoker.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitquest-app/fitquest/internal/app/engagement"
	"github.com/fitquest-app/fitquest/internal/domain"
	"github.com/fitquest-app/fitquest/internal/infra/sqlite"
)

// Server is the FitQuest HTTP API server.
type Server struct {
	mgr            *engagement.Manager
	inv            *engagement.Invoker
	db             *sqlite.DB
	queue          *engagement.Queue
	boundaryHour   int
	goals          domain.UserGoals
	metricsEnabled bool
}

// NewServer creates a new API server around the engine and its storage.
func NewServer(mgr *engagement.Manager, inv *engagement.Invoker, db *sqlite.DB, queue *engagement.Queue, boundaryHour int, goals domain.UserGoals) *Server {
	return &Server{
		mgr:          mgr,
		inv:          inv,
		db:           db,
		queue:        queue,
		boundaryHour: boundaryHour,
		goals:        goals,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Read paths — never trigger evaluation
	r.Get("/api/state", s.handleState)
	r.Get("/api/achievements", s.handleAchievements)
	r.Get("/api/next", s.handleNext)
	r.Get("/api/notifications", s.handleNotifications)
	r.Get("/api/activity", s.handleActivity)
	r.Get("/api/commands", s.handleCommands)

	// Activity entry — each mutation drives one command
	r.Post("/api/log/food", s.handleLogFood)
	r.Post("/api/log/exercise", s.handleLogExercise)
	r.Post("/api/log/water", s.handleLogWater)
	r.Post("/api/checkin", s.handleCheckIn)

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Read Handlers ──────────────────────────────────────────────────────────

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := s.mgr.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":       state,
		"level_title": engagement.LevelTitle(state.Level),
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mgr.AllAchievements())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	history, err := s.db.History()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	next := s.mgr.NextAchievement(history, s.goals)
	if next == nil {
		writeJSON(w, http.StatusOK, map[string]any{"next": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"next": next})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	events := s.queue.Drain()
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	history, err := s.db.History()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if history == nil {
		history = []domain.ActivityLog{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	records := s.inv.Recent(20)
	if records == nil {
		records = []engagement.CommandRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// ─── Activity Handlers ──────────────────────────────────────────────────────

type logFoodRequest struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

func (s *Server) handleLogFood(w http.ResponseWriter, r *http.Request) {
	var req logFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date := engagement.EffectiveDate(time.Now(), s.boundaryHour)
	entry, err := s.db.LogFood(date, domain.FoodEntry{Name: req.Name, Calories: req.Calories})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.runCommand(w, date, entry, func(history []domain.ActivityLog) engagement.Command {
		return engagement.NewLogFoodCommand(s.mgr, history, s.goals, entry)
	})
}

type logExerciseRequest struct {
	Name           string `json:"name"`
	CaloriesBurned int    `json:"calories_burned"`
}

func (s *Server) handleLogExercise(w http.ResponseWriter, r *http.Request) {
	var req logExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date := engagement.EffectiveDate(time.Now(), s.boundaryHour)
	entry, err := s.db.LogExercise(date, domain.ExerciseEntry{Name: req.Name, CaloriesBurned: req.CaloriesBurned})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.runCommand(w, date, entry, func(history []domain.ActivityLog) engagement.Command {
		return engagement.NewLogExerciseCommand(s.mgr, history, s.goals, entry)
	})
}

type logWaterRequest struct {
	ML int `json:"ml"`
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	var req logWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date := engagement.EffectiveDate(time.Now(), s.boundaryHour)
	if err := s.db.AddWater(date, req.ML); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.runCommand(w, date, req, func(history []domain.ActivityLog) engagement.Command {
		return engagement.NewLogWaterCommand(s.mgr, history, s.goals, req.ML)
	})
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	date := engagement.EffectiveDate(time.Now(), s.boundaryHour)
	if err := s.db.CheckIn(date); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.runCommand(w, date, nil, func(history []domain.ActivityLog) engagement.Command {
		return engagement.NewCheckInCommand(s.mgr, history, s.goals)
	})
}

// runCommand loads the full history, executes the built command through the
// invoker, persists the updated snapshot, and writes the response.
func (s *Server) runCommand(w http.ResponseWriter, date string, entry any, build func([]domain.ActivityLog) engagement.Command) {
	history, err := s.db.History()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	unlocked := s.inv.Execute(build(history))
	if unlocked == nil {
		unlocked = []domain.UnlockedAchievement{}
	}

	if err := s.db.SaveSnapshot(s.mgr.Snapshot()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":     date,
		"entry":    entry,
		"unlocked": unlocked,
	})
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// corsMiddleware allows cross-origin requests from the local UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
