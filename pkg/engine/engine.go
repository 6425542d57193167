package engine

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
	"github.com/jwebster45206/escape-engine/pkg/state"
)

// Engine drives one play session: it owns the session's game state and
// applies the catalog's rules to it. It is caller-owned, synchronous,
// and single-threaded; there is no ambient or global instance. One
// engine per session, no cross-session sharing.
type Engine struct {
	catalog *catalog.Catalog
	gs      *state.GameState
	preds   catalog.Predicates
	logger  *slog.Logger
}

// Options configures engine construction.
type Options struct {
	// Restored is a previously persisted game state to resume. Nil
	// starts a fresh session at the catalog's opening scene.
	Restored *state.GameState

	// Predicates resolves custom requirement checks. Must contain
	// every name the catalog references; catalog validation enforces
	// this before a session starts.
	Predicates catalog.Predicates

	// Logger for content diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// New constructs an engine for the given catalog. A restored state is
// checked for schema version and a resolvable position before it is
// accepted; an incompatible snapshot is rejected with
// ErrIncompatibleState so the caller can fall back to a fresh session.
func New(cat *catalog.Catalog, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gs := opts.Restored
	if gs == nil {
		gs = state.New(cat.OpeningChapter, cat.OpeningScene)
	} else {
		if gs.Version != state.SchemaVersion {
			return nil, fmt.Errorf("%w: schema version %d, want %d",
				ErrIncompatibleState, gs.Version, state.SchemaVersion)
		}
		scene, ok := cat.Scene(gs.CurrentScene)
		if !ok {
			return nil, fmt.Errorf("%w: current scene %q not in catalog",
				ErrIncompatibleState, gs.CurrentScene)
		}
		if scene.Chapter != gs.CurrentChapter {
			return nil, fmt.Errorf("%w: scene %q belongs to chapter %q, state says %q",
				ErrIncompatibleState, gs.CurrentScene, scene.Chapter, gs.CurrentChapter)
		}
	}

	return &Engine{
		catalog: cat,
		gs:      gs,
		preds:   opts.Predicates,
		logger:  logger,
	}, nil
}

// State returns a deep-copy snapshot of the game state. Mutating the
// returned value never affects the session; persistence layers store it
// verbatim.
func (e *Engine) State() *state.GameState {
	return e.gs.Snapshot()
}

// Catalog returns the content catalog the session runs on.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// CurrentScene resolves the player's scene. Given a validated catalog
// and a state accepted by New, it always resolves.
func (e *Engine) CurrentScene() (*catalog.Scene, error) {
	scene, ok := e.catalog.Scene(e.gs.CurrentScene)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSceneNotFound, e.gs.CurrentScene)
	}
	return scene, nil
}

// CurrentChapter resolves the player's chapter.
func (e *Engine) CurrentChapter() (*catalog.Chapter, error) {
	ch, ok := e.catalog.Chapter(e.gs.CurrentChapter)
	if !ok {
		return nil, fmt.Errorf("%w: chapter %q", ErrSceneNotFound, e.gs.CurrentChapter)
	}
	return ch, nil
}

// Enter records the current scene as visited and returns its initial
// dialog on the first visit, nil otherwise. The UI calls it once after
// construction; scene changes mid-session surface entry dialogs through
// the effect that moved the player.
func (e *Engine) Enter() *catalog.Dialog {
	scene, err := e.CurrentScene()
	if err != nil {
		return nil
	}
	if e.gs.HasVisited(e.gs.CurrentScene) {
		return nil
	}
	e.gs.MarkVisited(e.gs.CurrentScene)
	return scene.InitialDialog
}

// AddInteraction records a hotspot click without running any event,
// for UI-local bookkeeping.
func (e *Engine) AddInteraction(hotspotID string) {
	e.gs.AddClick(hotspotID)
}
