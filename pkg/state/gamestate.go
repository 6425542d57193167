package state

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current game state schema. Persisted snapshots
// carry it; a snapshot with a different version is rejected at load
// time rather than migrated.
const SchemaVersion = 1

// GameState is the single mutable record of a play session: the
// player's position, inventory, flags, interaction logs, and visited
// scenes. It is mutated only through the engine and persisted verbatim
// as one unit.
type GameState struct {
	ID              uuid.UUID      `json:"id"` // Unique ID per session, doubles as the save key
	Version         int            `json:"version"`
	CurrentChapter  string         `json:"current_chapter"`
	CurrentScene    string         `json:"current_scene"`
	Inventory       []string       `json:"inventory"`        // Item IDs, insertion order preserved for display
	Flags           map[string]any `json:"flags"`            // Author-defined narrative progress values
	ClickedHotspots []string       `json:"clicked_hotspots"` // Hotspot IDs clicked at least once
	FiredEvents     []string       `json:"fired_events"`     // One-time event IDs that already fired
	VisitedScenes   []string       `json:"visited_scenes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// New creates a fresh game state positioned at the given opening
// chapter and scene.
func New(chapterID, sceneID string) *GameState {
	now := time.Now().UTC()
	return &GameState{
		ID:              uuid.New(),
		Version:         SchemaVersion,
		CurrentChapter:  chapterID,
		CurrentScene:    sceneID,
		Inventory:       make([]string, 0),
		Flags:           make(map[string]any),
		ClickedHotspots: make([]string, 0),
		FiredEvents:     make([]string, 0),
		VisitedScenes:   make([]string, 0),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SceneID implements catalog.StateView.
func (gs *GameState) SceneID() string { return gs.CurrentScene }

// ChapterID implements catalog.StateView.
func (gs *GameState) ChapterID() string { return gs.CurrentChapter }

// HasItem reports whether the item is in the inventory.
func (gs *GameState) HasItem(itemID string) bool {
	return contains(gs.Inventory, itemID)
}

// AddItem appends the item to the inventory. Idempotent: adding an item
// that is already held is a no-op, so no item ever appears twice.
func (gs *GameState) AddItem(itemID string) {
	if !contains(gs.Inventory, itemID) {
		gs.Inventory = append(gs.Inventory, itemID)
	}
}

// RemoveItem removes the item from the inventory, a no-op if absent.
func (gs *GameState) RemoveItem(itemID string) {
	for i, id := range gs.Inventory {
		if id == itemID {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			return
		}
	}
}

// Flag returns the value stored under the flag name and whether it is set.
func (gs *GameState) Flag(name string) (any, bool) {
	v, ok := gs.Flags[name]
	return v, ok
}

// SetFlag stores a value under the flag name, overwriting any previous
// value.
func (gs *GameState) SetFlag(name string, value any) {
	if gs.Flags == nil {
		gs.Flags = make(map[string]any)
	}
	gs.Flags[name] = value
}

// HasClicked reports whether the hotspot has been clicked at least once.
func (gs *GameState) HasClicked(hotspotID string) bool {
	return contains(gs.ClickedHotspots, hotspotID)
}

// AddClick records a hotspot click, a no-op if already recorded.
func (gs *GameState) AddClick(hotspotID string) {
	if !contains(gs.ClickedHotspots, hotspotID) {
		gs.ClickedHotspots = append(gs.ClickedHotspots, hotspotID)
	}
}

// HasFired reports whether a one-time event has already fired.
func (gs *GameState) HasFired(eventID string) bool {
	return contains(gs.FiredEvents, eventID)
}

// MarkFired records that a one-time event fired, a no-op if already
// recorded.
func (gs *GameState) MarkFired(eventID string) {
	if !contains(gs.FiredEvents, eventID) {
		gs.FiredEvents = append(gs.FiredEvents, eventID)
	}
}

// HasVisited reports whether the scene has ever been entered.
func (gs *GameState) HasVisited(sceneID string) bool {
	return contains(gs.VisitedScenes, sceneID)
}

// MarkVisited records a scene visit, a no-op if already recorded.
func (gs *GameState) MarkVisited(sceneID string) {
	if !contains(gs.VisitedScenes, sceneID) {
		gs.VisitedScenes = append(gs.VisitedScenes, sceneID)
	}
}

// SetPosition moves the player. Chapter and scene always change
// together; the destination is recorded as visited.
func (gs *GameState) SetPosition(chapterID, sceneID string) {
	gs.CurrentChapter = chapterID
	gs.CurrentScene = sceneID
	gs.MarkVisited(sceneID)
}

// Snapshot returns a deep copy. Callers receive snapshots so that
// mutating a returned state never reaches the engine-owned one.
func (gs *GameState) Snapshot() *GameState {
	cp := *gs
	cp.Inventory = append(make([]string, 0, len(gs.Inventory)), gs.Inventory...)
	cp.ClickedHotspots = append(make([]string, 0, len(gs.ClickedHotspots)), gs.ClickedHotspots...)
	cp.FiredEvents = append(make([]string, 0, len(gs.FiredEvents)), gs.FiredEvents...)
	cp.VisitedScenes = append(make([]string, 0, len(gs.VisitedScenes)), gs.VisitedScenes...)
	cp.Flags = make(map[string]any, len(gs.Flags))
	for k, v := range gs.Flags {
		cp.Flags[k] = v
	}
	return &cp
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
