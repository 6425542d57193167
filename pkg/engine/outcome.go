package engine

import (
	"errors"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// Status is the typed outcome of an engine command. Domain-expected
// conditions (unmet requirements, a wrong answer, a one-time event that
// already fired) are statuses the caller branches on, never errors.
type Status string

const (
	StatusOK                 Status = "ok"
	StatusRequirementsNotMet Status = "requirements_not_met"
	StatusAlreadyFired       Status = "already_fired"  // One-time event already fired; no-op
	StatusAlreadySolved      Status = "already_solved" // Terminal; solve attempts are not accepted
	StatusIncorrectAnswer    Status = "incorrect_answer"
	StatusItemNotUsable      Status = "item_not_usable"
)

// Content-integrity errors. Unknown IDs reaching the engine at runtime
// mean the catalog validation pass was skipped or the caller passed an
// ID that was never in content; both are programmer errors, not
// recoverable play outcomes.
var (
	ErrSceneNotFound     = errors.New("scene not found")
	ErrEventNotFound     = errors.New("event not found in current scene")
	ErrPuzzleNotFound    = errors.New("puzzle not found in current scene")
	ErrHotspotNotFound   = errors.New("hotspot not found in current scene")
	ErrItemNotFound      = errors.New("item not found in catalog")
	ErrIncompatibleState = errors.New("persisted game state is incompatible with this catalog")
	ErrTriggerDepth      = errors.New("trigger_event recursion depth exceeded")
)

// TriggerResult reports an event trigger. On StatusOK, Effects is the
// event's declared effect list and Dialogs holds every dialog surfaced
// while applying it (nested triggers and scene-entry dialogs included),
// in application order, so the caller can queue them without
// re-querying content.
type TriggerResult struct {
	Status  Status
	Effects []catalog.Effect
	Dialogs []catalog.Dialog
}

// SolveResult reports a puzzle solve attempt. StatusIncorrectAnswer is
// recoverable; the caller may retry with a new answer.
type SolveResult struct {
	Status  Status
	Effects []catalog.Effect
	Dialogs []catalog.Dialog
}

// UseResult reports using an inventory item. OpenPanel names a UI panel
// the item opens, if any; Event is the follow-up event's result when
// the item declares one and the current scene has it.
type UseResult struct {
	Status    Status
	OpenPanel string
	Event     *TriggerResult
	Dialogs   []catalog.Dialog
}

// EventOutcome pairs an event ID with its trigger result inside an
// interaction sweep.
type EventOutcome struct {
	EventID string
	TriggerResult
}

// InteractResult reports a hotspot click: the item it picked up (if
// any), every event outcome it produced, and all surfaced dialogs in
// order.
type InteractResult struct {
	Hotspot catalog.Hotspot
	Item    string // Item picked up by this click, empty if none
	Events  []EventOutcome
	Dialogs []catalog.Dialog
}
