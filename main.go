package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jarvis/internal/config"
	"jarvis/internal/handlers"
	"jarvis/internal/permissions"
	"jarvis/internal/store"
	"jarvis/internal/ticktick"
	"jarvis/internal/worker"
)

// hostOSVersion is the platform API level the server assumes when none is
// reported by the device integration.
const hostOSVersion = 34

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", "./jarvis.toml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Initialize cache store
	s, err := store.NewSQLiteStore(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer s.Close()

	// Permission subsystem. The server has no real platform binding, so the
	// static querier stands in; the dialog launcher stays unregistered and
	// requests resolve all-denied per the fail-soft contract.
	env := permissions.StaticEnvironment{Version: hostOSVersion}
	querier := permissions.NewStaticQuerier()
	perms := permissions.NewManager(env, querier)
	launcher := permissions.NewLauncherManager(perms, querier)
	settings := permissions.NewSettingsRequester(logNavigator{})
	if _, err := perms.Refresh(context.Background()); err != nil {
		log.Printf("Initial permission refresh failed: %v", err)
	}

	// TickTick pipeline
	clock := ticktick.SystemClock{}
	client := ticktick.NewClient(cfg.TickTick.BaseURL, cfg.TickTick.Token)
	syncManager := ticktick.NewSyncManager(client, s, clock)
	presenter := ticktick.NewPresenter(s, clock)

	scheduler := worker.NewScheduler(
		syncManager,
		worker.AlwaysOnline{},
		cfg.Sync.InitialBackoff.Duration,
		cfg.Sync.MaxBackoff.Duration,
	)
	if interval := cfg.SyncInterval(); interval > 0 {
		go scheduler.RunPeriodic(context.Background(), interval)
	}

	h := handlers.New(perms, launcher, settings, syncManager, presenter, scheduler)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/api/health", h.Health)

	r.Get("/api/permissions", h.GetPermissions)
	r.Post("/api/permissions/refresh", h.RefreshPermissions)
	r.Post("/api/permissions/request", h.RequestPermissions)
	r.Post("/api/permissions/settings", h.RequestSettingsPermission)

	r.Get("/api/tasks", h.GetTasks)
	r.Get("/api/tasks/items", h.GetTaskItems)
	r.Post("/api/sync", h.Sync)
	r.Post("/api/sync/background", h.EnqueueSync)

	r.Post("/api/ai/chat", h.AiChat)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting server on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// logNavigator stands in for the OS settings navigation capability on the
// server; it records where the user would have been sent.
type logNavigator struct{}

func (logNavigator) Open(screen permissions.SettingsScreen) error {
	log.Printf("navigate to %s settings", screen)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
