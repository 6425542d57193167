package catalog

// EffectType discriminates the Effect union.
type EffectType string

const (
	EffectAddItem      EffectType = "add_item"      // Add Item to the inventory, no-op if present
	EffectRemoveItem   EffectType = "remove_item"   // Remove Item from the inventory, no-op if absent
	EffectSetFlag      EffectType = "set_flag"      // Set Flag to Value, true when Value is absent
	EffectShowDialog   EffectType = "show_dialog"   // Surface Dialog to the UI, no state change
	EffectChangeScene  EffectType = "change_scene"  // Move the player to Chapter/Scene
	EffectTriggerEvent EffectType = "trigger_event" // Inline invocation of Event in the current scene
)

// Effect is one consequence of an event firing or a puzzle being
// solved. Effects are applied in declaration order, each independently
// and unconditionally once reached.
type Effect struct {
	Type    EffectType `json:"type"`
	Item    string     `json:"item,omitempty"`    // add_item, remove_item
	Flag    string     `json:"flag,omitempty"`    // set_flag
	Value   any        `json:"value,omitempty"`   // set_flag: value to store; nil means true
	Dialog  *Dialog    `json:"dialog,omitempty"`  // show_dialog
	Chapter string     `json:"chapter,omitempty"` // change_scene
	Scene   string     `json:"scene,omitempty"`   // change_scene
	Event   string     `json:"event,omitempty"`   // trigger_event
}
