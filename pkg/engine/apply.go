package engine

import (
	"fmt"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// Runtime backstop for trigger_event recursion. Declared cycles are
// rejected at catalog validation time; the cap guards ad-hoc effects
// injected through ApplyEffect.
const maxTriggerDepth = 8

// ApplyEffect applies a single effect to the game state, outside any
// event. It is the escape hatch the UI collaborator uses for its own
// bookkeeping. Dialogs surfaced by the effect (directly, or through a
// triggered event or scene entry) are returned in order.
func (e *Engine) ApplyEffect(eff catalog.Effect) ([]catalog.Dialog, error) {
	var dialogs []catalog.Dialog
	if err := e.applyEffect(eff, &dialogs, 0); err != nil {
		return nil, err
	}
	return dialogs, nil
}

func (e *Engine) applyEffect(eff catalog.Effect, dialogs *[]catalog.Dialog, depth int) error {
	switch eff.Type {
	case catalog.EffectAddItem:
		e.gs.AddItem(eff.Item)

	case catalog.EffectRemoveItem:
		e.gs.RemoveItem(eff.Item)

	case catalog.EffectSetFlag:
		value := eff.Value
		if value == nil {
			value = true
		}
		e.gs.SetFlag(eff.Flag, value)

	case catalog.EffectShowDialog:
		if eff.Dialog != nil {
			*dialogs = append(*dialogs, *eff.Dialog)
		}

	case catalog.EffectChangeScene:
		return e.changeScene(eff.Chapter, eff.Scene, dialogs)

	case catalog.EffectTriggerEvent:
		if depth >= maxTriggerDepth {
			return fmt.Errorf("%w: event %q at depth %d", ErrTriggerDepth, eff.Event, depth)
		}
		// Nested trigger outcomes that are no-ops (already fired,
		// requirements unmet) are swallowed: the outer effect list
		// keeps applying.
		result, err := e.trigger(eff.Event, depth+1)
		if err != nil {
			return err
		}
		*dialogs = append(*dialogs, result.Dialogs...)

	default:
		return fmt.Errorf("unknown effect type %q", eff.Type)
	}
	return nil
}

// changeScene moves the player. The destination was resolved at
// catalog validation time, so failure here means the catalog skipped
// validation. A first visit surfaces the destination's initial dialog.
func (e *Engine) changeScene(chapterID, sceneID string, dialogs *[]catalog.Dialog) error {
	scene, ok := e.catalog.Scene(sceneID)
	if !ok {
		return fmt.Errorf("%w: change_scene target %q", ErrSceneNotFound, sceneID)
	}
	if scene.Chapter != chapterID {
		return fmt.Errorf("change_scene target %q belongs to chapter %q, not %q",
			sceneID, scene.Chapter, chapterID)
	}

	first := !e.gs.HasVisited(sceneID)
	e.gs.SetPosition(chapterID, sceneID)
	e.logger.Debug("scene change", "chapter", chapterID, "scene", sceneID, "first_visit", first)

	if first && scene.InitialDialog != nil {
		*dialogs = append(*dialogs, *scene.InitialDialog)
	}
	return nil
}
