package engine

import (
	"errors"
	"testing"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

func TestTriggerEvent_OneTimeFiresOnce(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.TriggerEvent("wake_up")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("Expected StatusOK, got %v", result.Status)
	}
	if len(result.Dialogs) != 1 || result.Dialogs[0].Text != "You wake up on a cold floor." {
		t.Errorf("Expected the wake-up dialog, got %+v", result.Dialogs)
	}
	if !eng.State().HasFired("wake_up") {
		t.Error("Expected the event recorded as fired")
	}

	result, err = eng.TriggerEvent("wake_up")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusAlreadyFired {
		t.Errorf("Expected StatusAlreadyFired on the second trigger, got %v", result.Status)
	}
	if len(result.Dialogs) != 0 {
		t.Errorf("Expected no dialogs from a no-op trigger, got %+v", result.Dialogs)
	}
}

func TestTriggerEvent_RequirementsGate(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.TriggerEvent("pickup_pulse_clip")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusRequirementsNotMet {
		t.Fatalf("Expected StatusRequirementsNotMet, got %v", result.Status)
	}
	if eng.State().HasItem("pulse_clip") {
		t.Error("Expected no mutation on a gated trigger")
	}
	if eng.State().HasFired("pickup_pulse_clip") {
		t.Error("Expected a gated one-time event to stay unfired")
	}

	// Satisfy the gate and retry.
	eng.AddInteraction("monitor")
	result, err = eng.TriggerEvent("pickup_pulse_clip")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("Expected StatusOK once requirements hold, got %v", result.Status)
	}
	if !eng.State().HasItem("pulse_clip") {
		t.Error("Expected the pulse clip in the inventory")
	}

	result, _ = eng.TriggerEvent("pickup_pulse_clip")
	if result.Status != StatusAlreadyFired {
		t.Errorf("Expected the third trigger to be a no-op, got %v", result.Status)
	}
	if len(eng.State().Inventory) != 1 {
		t.Errorf("Expected exactly one item, got %v", eng.State().Inventory)
	}
}

func TestTriggerEvent_NestedTrigger(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectSetFlag, Flag: "chain_start"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := eng.TriggerEvent("chain_head")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("Expected StatusOK, got %v", result.Status)
	}
	if len(result.Dialogs) != 2 {
		t.Fatalf("Expected dialogs from both links, got %+v", result.Dialogs)
	}
	if result.Dialogs[0].Text != "First link." || result.Dialogs[1].Text != "Last link." {
		t.Errorf("Expected dialogs in application order, got %+v", result.Dialogs)
	}
	gs := eng.State()
	if v, _ := gs.Flag("chain_done"); !Truthy(v) {
		t.Error("Expected the nested event's flag to be set")
	}
	if !gs.HasFired("chain_head") || !gs.HasFired("chain_tail") {
		t.Error("Expected both links recorded as fired")
	}
}

func TestTriggerEvent_SceneChange(t *testing.T) {
	eng := newTestEngine(t)
	eng.Enter()

	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectSetFlag, Flag: "door_open", Value: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := eng.TriggerEvent("open_door")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("Expected StatusOK, got %v", result.Status)
	}
	gs := eng.State()
	if gs.CurrentScene != "hall" {
		t.Fatalf("Expected player moved to hall, got %q", gs.CurrentScene)
	}
	if !gs.HasVisited("hall") {
		t.Error("Expected the destination marked visited")
	}
	if len(result.Dialogs) != 1 || result.Dialogs[0].Text != "The hallway reeks of disinfectant." {
		t.Errorf("Expected the destination's initial dialog, got %+v", result.Dialogs)
	}
}

func TestTriggerEvent_UnknownEvent(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.TriggerEvent("seance")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Expected ErrEventNotFound, got %v", err)
	}
}

func TestTriggerEvent_OneTimeCommitsBeforeEffects(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectSetFlag, Flag: "sabotage"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// broken_link's second effect references an event the scene does
	// not have, so application fails partway through.
	_, err := eng.TriggerEvent("broken_link")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("Expected ErrEventNotFound from the broken effect, got %v", err)
	}

	gs := eng.State()
	if !gs.HasFired("broken_link") {
		t.Error("Expected the one-time mark committed before effects ran")
	}
	if v, _ := gs.Flag("partial"); !Truthy(v) {
		t.Error("Expected effects before the failure to have applied")
	}

	// A retry must not replay the event.
	result, err := eng.TriggerEvent("broken_link")
	if err != nil {
		t.Fatalf("Unexpected error on retry: %v", err)
	}
	if result.Status != StatusAlreadyFired {
		t.Errorf("Expected StatusAlreadyFired on retry, got %v", result.Status)
	}
}

func TestApplyEffect_TriggerDepthCap(t *testing.T) {
	// Declared cycles are rejected at validation time; this catalog
	// skips validation to exercise the runtime backstop.
	cat := testCatalog()
	cell := cat.Scenes["cell"]
	cell.Events = append(cell.Events,
		catalog.Event{ID: "ping", Effects: []catalog.Effect{{Type: catalog.EffectTriggerEvent, Event: "pong"}}},
		catalog.Event{ID: "pong", Effects: []catalog.Effect{{Type: catalog.EffectTriggerEvent, Event: "ping"}}},
	)
	cat.Scenes["cell"] = cell

	eng, err := New(cat, Options{})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	_, err = eng.TriggerEvent("ping")
	if !errors.Is(err, ErrTriggerDepth) {
		t.Errorf("Expected ErrTriggerDepth, got %v", err)
	}
}

func TestApplyEffect_SetFlagDefaultsTrue(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectSetFlag, Flag: "uv_light_on"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	v, ok := eng.State().Flag("uv_light_on")
	if !ok || v != true {
		t.Errorf("Expected flag set to true, got %v (set=%v)", v, ok)
	}
}

func TestApplyEffect_RemoveItem(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectAddItem, Item: "key"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := eng.ApplyEffect(catalog.Effect{Type: catalog.EffectRemoveItem, Item: "key"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if eng.State().HasItem("key") {
		t.Error("Expected the item removed")
	}
}
