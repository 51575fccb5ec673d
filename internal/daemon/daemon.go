package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitquest-app/fitquest/internal/api"
	"github.com/fitquest-app/fitquest/internal/app/engagement"
	"github.com/fitquest-app/fitquest/internal/domain"
	"github.com/fitquest-app/fitquest/internal/infra/sqlite"
)

// Daemon is the FitQuest runtime. It owns the one authoritative engagement
// manager and wires storage, the event queue, and the HTTP API around it.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Manager *engagement.Manager
	Invoker *engagement.Invoker
	Queue   *engagement.Queue
	Server  *api.Server
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(fitquestHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	mgr := engagement.NewManager(engagement.Config{
		BoundaryHour:   cfg.Engagement.DayBoundaryHour,
		PointsPerLevel: cfg.Engagement.PointsPerLevel,
		WaterGoalML:    cfg.Engagement.WaterGoalML,
	})

	// Rehydrate achievement state from the last snapshot
	snap, err := db.LoadSnapshot()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	mgr.LoadState(snap)

	queue := engagement.NewQueue()
	mgr.Bus().Subscribe(queue)
	mgr.Bus().Subscribe(logListener{})

	inv := engagement.NewInvoker(cfg.Engagement.CommandHistory)

	srv := api.NewServer(mgr, inv, db, queue, cfg.Engagement.DayBoundaryHour, cfg.UserGoals())
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Manager: mgr,
		Invoker: inv,
		Queue:   queue,
		Server:  srv,
	}, nil
}

// Serve runs the HTTP API until the context is cancelled or a signal
// arrives, then shuts down gracefully.
func (d *Daemon) Serve(ctx context.Context) error {
	defer d.DB.Close()

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: d.Server.Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] FitQuest API listening on http://%s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[daemon] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// logListener logs every achievement event.
type logListener struct{}

func (logListener) HandleEvent(ev domain.Event) {
	switch ev.Type {
	case domain.EventUnlocked:
		if ev.Achievement != nil {
			log.Printf("[engagement] achievement unlocked: %s (%s %s)",
				ev.Achievement.Name, ev.Achievement.Tier, ev.Achievement.Category)
		}
	case domain.EventStreak:
		log.Printf("[engagement] streak milestone: %d days", int(ev.Value))
	case domain.EventMilestone:
		log.Printf("[engagement] level up: level %d (%s)",
			int(ev.Value), engagement.LevelTitle(int(ev.Value)))
	}
}
