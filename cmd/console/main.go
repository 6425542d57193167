package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/escape-engine/internal/config"
	"github.com/jwebster45206/escape-engine/internal/content"
	"github.com/jwebster45206/escape-engine/internal/logger"
	"github.com/jwebster45206/escape-engine/pkg/catalog"
	"github.com/jwebster45206/escape-engine/pkg/engine"
	"github.com/jwebster45206/escape-engine/pkg/state"
	"github.com/jwebster45206/escape-engine/pkg/storage"
)

func main() {
	cfg := config.Load()

	// The TUI owns the terminal; logs go to a file instead.
	logFile, err := os.OpenFile("console.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logFile.Close() }()
	log := logger.SetupWithWriter(cfg, logFile)

	preds := content.Predicates()
	cat, err := catalog.Load(filepath.Join(cfg.DataDir, cfg.Catalog), preds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	store, err := openStorage(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	restored := selectSave(store, cat)

	eng, err := engine.New(cat, engine.Options{
		Restored:   restored,
		Predicates: preds,
		Logger:     log,
	})
	if err != nil {
		// A stale or incompatible save is not fatal; start fresh.
		fmt.Fprintf(os.Stderr, "Cannot resume save (%v), starting a new game.\n", err)
		eng, err = engine.New(cat, engine.Options{Predicates: preds, Logger: log})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start engine: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(NewConsoleUI(eng, store, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		store := storage.NewRedisStorage(cfg.RedisURL, log)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis unavailable at %s: %w", cfg.RedisURL, err)
		}
		return store, nil
	case config.BackendFile:
		return storage.NewFileStorage(cfg.SaveDir, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// selectSave lists existing saves and lets the player resume one.
// Returns nil for a new game, and on any load problem: corrupt or
// missing saves fall back to a fresh state instead of crashing.
func selectSave(store storage.Storage, cat *catalog.Catalog) *state.GameState {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids, err := store.ListGameStates(ctx)
	if err != nil || len(ids) == 0 {
		return nil
	}

	fmt.Printf("%s\n\nSaved games:\n", cat.Name)
	fmt.Println("  0 - New game")
	shown := ids
	if len(shown) > 9 {
		shown = shown[:9]
	}
	loaded := make([]*state.GameState, 0, len(shown))
	for _, id := range shown {
		gs, err := store.LoadGameState(ctx, id)
		if err != nil {
			continue
		}
		loaded = append(loaded, gs)
		scene := gs.CurrentScene
		if s, ok := cat.Scene(scene); ok {
			scene = s.Name
		}
		fmt.Printf("  %d - %s (%s, %d items)\n", len(loaded), shortID(gs.ID), scene, len(gs.Inventory))
	}
	if len(loaded) == 0 {
		return nil
	}

	fmt.Print("\nSelect a save by number: ")
	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(loaded) {
		return nil
	}
	return loaded[choice-1]
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
