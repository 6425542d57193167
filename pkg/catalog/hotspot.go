package catalog

// HotspotShape selects how a hotspot's coords are interpreted.
type HotspotShape string

const (
	ShapeRect HotspotShape = "rect" // coords are [x1, y1, x2, y2]
	ShapePoly HotspotShape = "poly" // coords are [x1, y1, x2, y2, ...], at least three vertices
)

// Hotspot is a clickable region within a scene. Coordinates are
// normalized to the [0,1] range so the UI can scale them to any
// rendered background size.
type Hotspot struct {
	ID          string       `json:"id"`
	Shape       HotspotShape `json:"shape"`
	Coords      []float64    `json:"coords"`
	Description string       `json:"description,omitempty"`
	Hint        string       `json:"hint,omitempty"`
	Item        string       `json:"item,omitempty"`  // Collectible item picked up by clicking this hotspot
	Panel       string       `json:"panel,omitempty"` // UI panel opened by clicking this hotspot
}

// Contains reports whether the normalized point (x, y) falls inside the
// hotspot. Polygon containment uses the even-odd rule.
func (h Hotspot) Contains(x, y float64) bool {
	switch h.Shape {
	case ShapeRect:
		if len(h.Coords) != 4 {
			return false
		}
		return x >= h.Coords[0] && y >= h.Coords[1] && x <= h.Coords[2] && y <= h.Coords[3]
	case ShapePoly:
		if len(h.Coords) < 6 || len(h.Coords)%2 != 0 {
			return false
		}
		inside := false
		n := len(h.Coords) / 2
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			xi, yi := h.Coords[2*i], h.Coords[2*i+1]
			xj, yj := h.Coords[2*j], h.Coords[2*j+1]
			if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
		return inside
	default:
		return false
	}
}
