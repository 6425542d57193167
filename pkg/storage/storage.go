package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jwebster45206/escape-engine/pkg/state"
)

// ErrNotFound is returned by Load when no save exists under the ID.
// Callers treat it as "start fresh", never as a crash.
var ErrNotFound = errors.New("game state not found")

// Storage persists game state snapshots between sessions. The engine
// never touches storage; the UI collaborator saves the engine's
// snapshot verbatim and restores it at construction. Snapshots are
// whole-state: no partial serialization exists.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveGameState stores a snapshot under its ID, overwriting any
	// previous save.
	SaveGameState(ctx context.Context, gs *state.GameState) error

	// LoadGameState returns the snapshot saved under the ID, or
	// ErrNotFound.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)

	// DeleteGameState removes a save. Deleting a missing save is not
	// an error.
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// ListGameStates returns the IDs of all saves.
	ListGameStates(ctx context.Context) ([]uuid.UUID, error)
}
