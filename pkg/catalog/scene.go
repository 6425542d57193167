package catalog

// Scene is one room of the experience: a background, its clickable
// hotspots, the items present in it, and the events and puzzles scoped
// to it. Events and puzzles keep their declared order; a hotspot click
// sweeps events in that order.
type Scene struct {
	Chapter       string            `json:"chapter"` // Owning chapter ID
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Background    string            `json:"background,omitempty"` // Image path, opaque to the engine
	Hotspots      []Hotspot         `json:"hotspots,omitempty"`
	Items         []string          `json:"items,omitempty"` // IDs of catalog items present in this scene
	Events        []Event           `json:"events,omitempty"`
	Puzzles       []Puzzle          `json:"puzzles,omitempty"`
	InitialDialog *Dialog           `json:"initial_dialog,omitempty"` // Shown on first entry
	AmbientAudio  string            `json:"ambient_audio,omitempty"`  // Audio path, opaque to the engine
	HotspotEvents map[string]string `json:"hotspot_events,omitempty"` // hotspot ID -> event ID shortcut map
}

// Hotspot returns the hotspot with the given ID, if the scene has one.
func (s *Scene) Hotspot(id string) (Hotspot, bool) {
	for _, h := range s.Hotspots {
		if h.ID == id {
			return h, true
		}
	}
	return Hotspot{}, false
}

// Event returns the event with the given ID, if the scene has one.
func (s *Scene) Event(id string) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Puzzle returns the puzzle with the given ID, if the scene has one.
func (s *Scene) Puzzle(id string) (Puzzle, bool) {
	for _, p := range s.Puzzles {
		if p.ID == id {
			return p, true
		}
	}
	return Puzzle{}, false
}

// Chapter is an ordered group of scenes defining the nominal narrative
// order. The engine does not enforce linearity; any scene is directly
// addressable by a change_scene effect.
type Chapter struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Scenes      []string `json:"scenes"` // Scene IDs in narrative order
}
