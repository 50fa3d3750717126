// Package main is the entry point for the foraging task experiment server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/behavlab/forager/internal/domain/grid"
	"github.com/behavlab/forager/internal/events"
	"github.com/behavlab/forager/internal/infra/storage"
	"github.com/behavlab/forager/internal/network"
	"github.com/behavlab/forager/internal/platform/logger"
	"github.com/behavlab/forager/internal/platform/metrics"
	"github.com/behavlab/forager/internal/session"
)

var (
	configPath = flag.String("config", "", "Path to experiment config JSON (defaults built in)")
	dbPath     = flag.String("db", "forager.db", "Path to the SQLite event store")
	logDir     = flag.String("log-dir", "logs", "Directory for session log files")
	listenAddr = flag.String("listen", ":8080", "HTTP listen address for /ws and /metrics")
)

// SQLitePersisterAdapter translates domain events to storage events.
type SQLitePersisterAdapter struct {
	repo      *storage.SQLiteEventRepository
	sessionID string
}

func (a *SQLitePersisterAdapter) Append(event events.Event) error {
	payloadBytes, _ := json.Marshal(event.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	start := time.Now()
	err := a.repo.Append(context.Background(), storage.ExperimentEvent{
		ID:        event.ID,
		SessionID: a.sessionID,
		BlockID:   event.BlockID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		Payload:   payloadMap,
	})
	metrics.Get().RecordEventWrite(time.Since(start), err)
	return err
}

func main() {
	flag.Parse()

	appLogger := logger.NewLogger()
	appLogger.Info("Initializing foraging task experiment server...")

	cfg := session.DefaultConfig()
	if *configPath != "" {
		loaded, err := session.LoadConfig(*configPath)
		if err != nil {
			appLogger.Error("Failed to load config: " + err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}

	appLogger.Info("Initializing SQLite database '" + *dbPath + "'...")
	db, err := storage.InitSQLite(*dbPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	defer db.Close()

	eventRepo := storage.NewSQLiteEventRepository(db)
	sessionRepo := storage.NewSQLiteSessionRepository(db)
	persister := &SQLitePersisterAdapter{repo: eventRepo}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(persister)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maze := grid.Default()
	inputs := session.NewInputQueue()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger, inputs)
	go hub.Run(ctx)

	runner := session.NewRunner(cfg, maze, eventLog, appLogger, inputs, hub)
	persister.sessionID = runner.SessionID()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWs(hub, w, r)
	})
	http.HandleFunc("/metrics", metrics.Handler())

	server := &http.Server{Addr: *listenAddr}
	go func() {
		appLogger.Info("HTTP listening on " + *listenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed: " + err.Error())
		}
	}()

	// SIGINT/SIGTERM end the session as an operator quit.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		appLogger.Warn("Shutdown signal received, ending session...")
		inputs.RequestQuit()
		cancel()
	}()

	if err := sessionRepo.Open(ctx, runner.SessionID(), time.Now()); err != nil {
		appLogger.Error("Failed to open session record: " + err.Error())
	}

	result := runner.Run(ctx)

	if err := sessionRepo.Close(context.Background(), result.SessionID, time.Now(), result.TotalScore); err != nil {
		appLogger.Error("Failed to close session record: " + err.Error())
	}

	path, err := session.ExportSession(*logDir, result, eventLog)
	if err != nil {
		appLogger.Error("Failed to export session log: " + err.Error())
	} else {
		appLogger.Info("Session log saved to " + path)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}
