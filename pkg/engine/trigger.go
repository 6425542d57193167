package engine

import (
	"fmt"
	"time"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// TriggerEvent runs the named event in the current scene.
//
// The event's requirement list gates it as a conjunction; unmet
// requirements produce StatusRequirementsNotMet with no mutation and no
// partial effects. A one-time event that already fired produces
// StatusAlreadyFired, a no-op. On success the one-time mark is
// committed before any effect runs, so a failure mid-application can
// never replay a one-time event.
func (e *Engine) TriggerEvent(eventID string) (TriggerResult, error) {
	return e.trigger(eventID, 0)
}

func (e *Engine) trigger(eventID string, depth int) (TriggerResult, error) {
	scene, err := e.CurrentScene()
	if err != nil {
		return TriggerResult{}, err
	}

	event, ok := scene.Event(eventID)
	if !ok {
		return TriggerResult{}, fmt.Errorf("%w: %q in scene %q", ErrEventNotFound, eventID, e.gs.CurrentScene)
	}

	if event.OneTime && e.gs.HasFired(eventID) {
		return TriggerResult{Status: StatusAlreadyFired}, nil
	}

	if !e.allMet(event.Requirements) {
		return TriggerResult{Status: StatusRequirementsNotMet}, nil
	}

	// Commit point: mark before effects run.
	if event.OneTime {
		e.gs.MarkFired(eventID)
	}

	var dialogs []catalog.Dialog
	for _, eff := range event.Effects {
		if err := e.applyEffect(eff, &dialogs, depth); err != nil {
			return TriggerResult{}, fmt.Errorf("event %q: %w", eventID, err)
		}
	}
	e.gs.UpdatedAt = time.Now().UTC()

	e.logger.Debug("event fired", "event", eventID, "one_time", event.OneTime, "dialogs", len(dialogs))
	return TriggerResult{
		Status:  StatusOK,
		Effects: event.Effects,
		Dialogs: dialogs,
	}, nil
}
