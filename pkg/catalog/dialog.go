package catalog

// DialogType tells the UI which voice a dialog line belongs to.
type DialogType string

const (
	DialogNarrator  DialogType = "narrator"
	DialogBroadcast DialogType = "broadcast"
	DialogItem      DialogType = "item"
	DialogSystem    DialogType = "system"
)

// Dialog is a line of narrative text surfaced to the player. The engine
// never interprets it; it is returned to the caller in declared order so
// the UI can queue it faithfully.
type Dialog struct {
	Text  string     `json:"text"`
	Type  DialogType `json:"type,omitempty"`  // Defaults to narrator when empty
	Audio string     `json:"audio,omitempty"` // Audio path, opaque to the engine
}
