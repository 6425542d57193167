package catalog

// Item represents an object the player can find, carry, and use.
type Item struct {
	Name        string `json:"name"`                  // Display name
	Description string `json:"description"`           // Flavor text shown in the inventory
	Image       string `json:"image,omitempty"`       // Image path, opaque to the engine
	Collectible bool   `json:"collectible"`           // Whether the item can enter the inventory
	Usable      bool   `json:"usable,omitempty"`      // Whether the item can be used from the inventory
	UsePanel    string `json:"use_panel,omitempty"`   // UI panel to open when the item is used
	UseEvent    string `json:"use_event,omitempty"`   // Event to fire when the item is used
}
