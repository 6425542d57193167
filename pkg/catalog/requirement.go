package catalog

// RequirementType discriminates the Requirement union.
type RequirementType string

const (
	RequireItem       RequirementType = "has_item"       // Item is in the inventory
	RequireInteracted RequirementType = "has_interacted" // Hotspot has been clicked at least once
	RequireFlag       RequirementType = "has_flag"       // Flag is truthy, or equals Value when set
	RequireCustom     RequirementType = "custom"         // Named predicate registered in code
)

// Requirement is one condition gating an event or puzzle. A requirement
// list is a conjunction: every element must hold. There are no
// disjunction or negation primitives; conditions that need either are
// expressed as a custom predicate.
type Requirement struct {
	Type    RequirementType `json:"type"`
	Item    string          `json:"item,omitempty"`    // has_item
	Hotspot string          `json:"hotspot,omitempty"` // has_interacted
	Flag    string          `json:"flag,omitempty"`    // has_flag
	Value   any             `json:"value,omitempty"`   // has_flag: expected value; nil means truthy
	Check   string          `json:"check,omitempty"`   // custom: predicate name
}

// StateView is the read-only view of game state that requirement
// evaluation needs. It is defined here rather than in the state package
// to avoid an import cycle; state.GameState implements it.
type StateView interface {
	HasItem(itemID string) bool
	HasClicked(hotspotID string) bool
	Flag(name string) (any, bool)
	SceneID() string
	ChapterID() string
}

// Predicate is a custom requirement check. It receives a read-only view
// and must not retain it.
type Predicate func(StateView) bool

// Predicates maps predicate names referenced by custom requirements to
// their implementations. Content validation resolves every referenced
// name against this registry before a session starts.
type Predicates map[string]Predicate
