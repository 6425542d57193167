package catalog

// Event is a scripted interaction scoped to one scene. Its requirement
// list gates it as a conjunction; its effects run in declared order on
// a successful trigger. A one-time event produces effects at most once
// per game state; later triggers are no-ops.
type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Description  string        `json:"description,omitempty"`
	Requirements []Requirement `json:"requirements,omitempty"`
	Effects      []Effect      `json:"effects"`
	OneTime      bool          `json:"one_time,omitempty"`
}
