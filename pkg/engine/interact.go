package engine

import (
	"fmt"
	"time"
)

// Interact handles a hotspot click in the current scene.
//
// The click is recorded first, so has_interacted requirements on the
// events it runs see it. A hotspot that declares a collectible item
// picks it up. If the scene maps the hotspot to an event, only that
// event runs; otherwise every scene event is tried in declared order
// and the eligible ones fire. The sweep stops if an event moves the
// player to another scene.
func (e *Engine) Interact(hotspotID string) (InteractResult, error) {
	scene, err := e.CurrentScene()
	if err != nil {
		return InteractResult{}, err
	}

	hotspot, ok := scene.Hotspot(hotspotID)
	if !ok {
		return InteractResult{}, fmt.Errorf("%w: %q in scene %q", ErrHotspotNotFound, hotspotID, e.gs.CurrentScene)
	}

	e.gs.AddClick(hotspotID)
	result := InteractResult{Hotspot: hotspot}

	if hotspot.Item != "" && !e.gs.HasItem(hotspot.Item) {
		if item, ok := e.catalog.Item(hotspot.Item); ok && item.Collectible {
			e.gs.AddItem(hotspot.Item)
			result.Item = hotspot.Item
		}
	}

	if eventID, mapped := scene.HotspotEvents[hotspotID]; mapped {
		tr, err := e.trigger(eventID, 0)
		if err != nil {
			return InteractResult{}, err
		}
		result.Events = append(result.Events, EventOutcome{EventID: eventID, TriggerResult: tr})
		result.Dialogs = append(result.Dialogs, tr.Dialogs...)
		e.gs.UpdatedAt = time.Now().UTC()
		return result, nil
	}

	sceneID := e.gs.CurrentScene
	for _, event := range scene.Events {
		if e.gs.CurrentScene != sceneID {
			break
		}
		tr, err := e.trigger(event.ID, 0)
		if err != nil {
			return InteractResult{}, err
		}
		if tr.Status != StatusOK {
			continue
		}
		result.Events = append(result.Events, EventOutcome{EventID: event.ID, TriggerResult: tr})
		result.Dialogs = append(result.Dialogs, tr.Dialogs...)
	}

	e.gs.UpdatedAt = time.Now().UTC()
	return result, nil
}

// UseItem dispatches using a usable item from the inventory. The item
// is marked used via the "<id>_used" flag, its UI panel (if any) is
// reported, and its follow-up event fires when the current scene
// declares it.
func (e *Engine) UseItem(itemID string) (UseResult, error) {
	item, ok := e.catalog.Item(itemID)
	if !ok {
		return UseResult{}, fmt.Errorf("%w: %q", ErrItemNotFound, itemID)
	}

	if !item.Usable || !e.gs.HasItem(itemID) {
		return UseResult{Status: StatusItemNotUsable}, nil
	}

	e.gs.SetFlag(itemID+"_used", true)
	result := UseResult{Status: StatusOK, OpenPanel: item.UsePanel}

	if item.UseEvent != "" {
		scene, err := e.CurrentScene()
		if err != nil {
			return UseResult{}, err
		}
		// Items are global but events are scene-scoped: the follow-up
		// only fires where the scene declares it.
		if _, ok := scene.Event(item.UseEvent); ok {
			tr, err := e.trigger(item.UseEvent, 0)
			if err != nil {
				return UseResult{}, err
			}
			result.Event = &tr
			result.Dialogs = append(result.Dialogs, tr.Dialogs...)
		}
	}

	e.gs.UpdatedAt = time.Now().UTC()
	return result, nil
}
