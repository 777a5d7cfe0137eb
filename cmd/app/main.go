package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jynba/worldline/internal/clock"
	"github.com/jynba/worldline/internal/config"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/game"
	"github.com/jynba/worldline/internal/ledger"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/market"
	"github.com/jynba/worldline/internal/scheduler"
	"github.com/jynba/worldline/internal/server"
	"github.com/jynba/worldline/internal/sse"
	"github.com/jynba/worldline/internal/store"
	"github.com/jynba/worldline/internal/tracker"
	"github.com/jynba/worldline/internal/utils"
	"github.com/jynba/worldline/internal/worker"
	"github.com/jynba/worldline/internal/worldevent"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	log.Info("Starting worldline",
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
		"tracker_configured", cfg.HasToken(),
		"token", utils.MaskToken(cfg.TapdToken))

	st, err := store.OpenSQLite(cfg.DBPath())
	if err != nil {
		log.Error("Failed to open save database", "error", err, "path", cfg.DBPath())
		os.Exit(1)
	}
	defer st.Close()

	bus := event.NewMemoryBus()
	clk := clock.NewRealClock()

	gameService := game.NewService(ctx, st, bus)
	claimLedger := ledger.Load(ctx, st)

	trackerClient := tracker.NewClient(tracker.ClientConfig{
		BaseURL:     cfg.TapdAPIBase,
		Token:       cfg.TapdToken,
		WorkspaceID: cfg.TapdWorkspaceID,
		UserName:    cfg.TapdUserName,
	}, nil)
	poller := tracker.NewPoller(trackerClient, claimLedger, bus, clk, cfg.TapdUserRoleField)

	// A broken or missing event config is not fatal: the narrator serves
	// its fallback copy until the file is fixed and the app restarted.
	eventConfigs, err := worldevent.NewConfigStore().Load(ctx, cfg.EventConfigPath)
	if err != nil {
		log.Warn("Failed to load world event configs, using fallback copy", "error", err, "path", cfg.EventConfigPath)
		eventConfigs = nil
	}
	narrator := worldevent.NewNarrator(eventConfigs, nil)
	dispatcher := worldevent.NewDispatcher(narrator, bus, nil, worldevent.DisplayDuration)
	dispatcher.Start()

	marketService, err := market.NewService(ctx, cfg.CharacterConfigPath, gameService, st, bus)
	if err != nil {
		log.Error("Failed to load character catalog", "error", err, "path", cfg.CharacterConfigPath)
		os.Exit(1)
	}

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	pool := worker.NewPool(worker.DefaultWorkerCount, worker.DefaultQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.TickInterval, worker.NewTickJob(gameService))
	sched.ScheduleNow(cfg.PollInterval, worker.NewPollJob(poller))

	srv := server.NewServer(cfg.Port, server.Services{
		Store:      st,
		Game:       gameService,
		Tracker:    poller,
		Ledger:     claimLedger,
		Market:     marketService,
		Dispatcher: dispatcher,
		Hub:        hub,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed", "error", err)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}

	sched.Stop()
	pool.Stop()
	dispatcher.Stop()
	hub.Stop()

	log.Info("Shutdown complete")
}
