package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// Content IDs are lowercase snake_case. Display text is unrestricted.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks the catalog for internal consistency: ID formats,
// every cross-reference resolving (items, scenes, chapters, events,
// hotspots, predicate names), puzzle solution shapes, and the absence
// of trigger_event cycles. It fails fast with every problem found so a
// content author never discovers a dangling reference mid-session.
func (c *Catalog) Validate(preds Predicates) error {
	v := &validator{catalog: c, preds: preds}
	v.run()
	if len(v.errors) > 0 {
		return fmt.Errorf("catalog validation failed:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

type validator struct {
	catalog *Catalog
	preds   Predicates
	errors  []string

	// All hotspot IDs across scenes; clicks share one namespace.
	hotspots map[string]bool
}

func (v *validator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) checkID(kind, id string) {
	if !idPattern.MatchString(id) {
		v.addError("%s %q must be lowercase snake_case", kind, id)
	}
}

func (v *validator) run() {
	c := v.catalog

	if c.Name == "" {
		v.addError("catalog name is required")
	}

	v.hotspots = make(map[string]bool)
	for _, sceneID := range c.SortedSceneIDs() {
		scene := c.Scenes[sceneID]
		for _, h := range scene.Hotspots {
			if v.hotspots[h.ID] {
				v.addError("scene %q: hotspot ID %q is declared in more than one scene", sceneID, h.ID)
			}
			v.hotspots[h.ID] = true
		}
	}

	for id := range c.Items {
		v.checkID("item ID", id)
	}

	v.checkOpening()
	v.checkChapters()
	for _, sceneID := range c.SortedSceneIDs() {
		scene := c.Scenes[sceneID]
		v.checkScene(sceneID, &scene)
	}
}

func (v *validator) checkOpening() {
	c := v.catalog
	if c.OpeningChapter == "" || c.OpeningScene == "" {
		v.addError("opening_chapter and opening_scene are required")
		return
	}
	if _, ok := c.Chapters[c.OpeningChapter]; !ok {
		v.addError("opening_chapter %q does not exist", c.OpeningChapter)
	}
	scene, ok := c.Scenes[c.OpeningScene]
	if !ok {
		v.addError("opening_scene %q does not exist", c.OpeningScene)
		return
	}
	if scene.Chapter != c.OpeningChapter {
		v.addError("opening_scene %q belongs to chapter %q, not opening_chapter %q",
			c.OpeningScene, scene.Chapter, c.OpeningChapter)
	}
}

func (v *validator) checkChapters() {
	c := v.catalog
	for chapterID, chapter := range c.Chapters {
		v.checkID("chapter ID", chapterID)
		if len(chapter.Scenes) == 0 {
			v.addError("chapter %q has no scenes", chapterID)
		}
		for _, sceneID := range chapter.Scenes {
			scene, ok := c.Scenes[sceneID]
			if !ok {
				v.addError("chapter %q references unknown scene %q", chapterID, sceneID)
				continue
			}
			if scene.Chapter != chapterID {
				v.addError("chapter %q lists scene %q, but the scene declares chapter %q",
					chapterID, sceneID, scene.Chapter)
			}
		}
	}
}

func (v *validator) checkScene(sceneID string, scene *Scene) {
	c := v.catalog
	v.checkID("scene ID", sceneID)

	chapter, ok := c.Chapters[scene.Chapter]
	if !ok {
		v.addError("scene %q declares unknown chapter %q", sceneID, scene.Chapter)
	} else {
		listed := false
		for _, id := range chapter.Scenes {
			if id == sceneID {
				listed = true
				break
			}
		}
		if !listed {
			v.addError("scene %q is not listed in chapter %q", sceneID, scene.Chapter)
		}
	}

	for _, itemID := range scene.Items {
		if _, ok := c.Items[itemID]; !ok {
			v.addError("scene %q lists unknown item %q", sceneID, itemID)
		}
	}

	for _, h := range scene.Hotspots {
		v.checkHotspot(sceneID, h)
	}

	eventIDs := make(map[string]bool, len(scene.Events))
	for _, e := range scene.Events {
		if eventIDs[e.ID] {
			v.addError("scene %q: duplicate event ID %q", sceneID, e.ID)
		}
		eventIDs[e.ID] = true
		v.checkEvent(sceneID, scene, e)
	}

	puzzleIDs := make(map[string]bool, len(scene.Puzzles))
	for _, p := range scene.Puzzles {
		if puzzleIDs[p.ID] {
			v.addError("scene %q: duplicate puzzle ID %q", sceneID, p.ID)
		}
		puzzleIDs[p.ID] = true
		v.checkPuzzle(sceneID, scene, p)
	}

	for hotspotID, eventID := range scene.HotspotEvents {
		if _, ok := scene.Hotspot(hotspotID); !ok {
			v.addError("scene %q: hotspot_events references unknown hotspot %q", sceneID, hotspotID)
		}
		if !eventIDs[eventID] {
			v.addError("scene %q: hotspot_events maps %q to unknown event %q", sceneID, hotspotID, eventID)
		}
	}

	v.checkTriggerCycles(sceneID, scene)
}

func (v *validator) checkHotspot(sceneID string, h Hotspot) {
	v.checkID("hotspot ID", h.ID)

	switch h.Shape {
	case ShapeRect:
		if len(h.Coords) != 4 {
			v.addError("scene %q: rect hotspot %q needs 4 coords, has %d", sceneID, h.ID, len(h.Coords))
		}
	case ShapePoly:
		if len(h.Coords) < 6 || len(h.Coords)%2 != 0 {
			v.addError("scene %q: poly hotspot %q needs an even coord count of at least 6, has %d",
				sceneID, h.ID, len(h.Coords))
		}
	default:
		v.addError("scene %q: hotspot %q has unknown shape %q", sceneID, h.ID, h.Shape)
	}
	for _, coord := range h.Coords {
		if coord < 0 || coord > 1 {
			v.addError("scene %q: hotspot %q coord %v is outside the normalized [0,1] range", sceneID, h.ID, coord)
			break
		}
	}

	if h.Item != "" {
		item, ok := v.catalog.Items[h.Item]
		if !ok {
			v.addError("scene %q: hotspot %q picks up unknown item %q", sceneID, h.ID, h.Item)
		} else if !item.Collectible {
			v.addError("scene %q: hotspot %q picks up item %q, which is not collectible", sceneID, h.ID, h.Item)
		}
	}
}

func (v *validator) checkEvent(sceneID string, scene *Scene, e Event) {
	v.checkID("event ID", e.ID)
	if len(e.Effects) == 0 {
		v.addError("scene %q: event %q has no effects", sceneID, e.ID)
	}
	where := fmt.Sprintf("scene %q event %q", sceneID, e.ID)
	for _, r := range e.Requirements {
		v.checkRequirement(where, r)
	}
	for _, eff := range e.Effects {
		v.checkEffect(where, scene, eff)
	}
}

func (v *validator) checkPuzzle(sceneID string, scene *Scene, p Puzzle) {
	v.checkID("puzzle ID", p.ID)
	where := fmt.Sprintf("scene %q puzzle %q", sceneID, p.ID)

	switch p.Type {
	case PuzzleInput:
		if p.Solution.IsList {
			v.addError("%s: input puzzles need a string solution", where)
		} else if p.Solution.Value == "" {
			v.addError("%s: solution is empty", where)
		}
	case PuzzleSequence, PuzzleArrangement, PuzzleCombination:
		if !p.Solution.IsList || len(p.Solution.Values) == 0 {
			v.addError("%s: %s puzzles need a non-empty array solution", where, p.Type)
		}
	case PuzzleVisualSelection:
		if p.Solution.IsList && len(p.Solution.Values) == 0 {
			v.addError("%s: solution is empty", where)
		}
		if !p.Solution.IsList && p.Solution.Value == "" {
			v.addError("%s: solution is empty", where)
		}
		v.checkVisualOptions(where, p)
	default:
		v.addError("%s: unknown puzzle type %q", where, p.Type)
	}

	for _, r := range p.Requirements {
		v.checkRequirement(where, r)
	}
	for _, eff := range p.OnSolve {
		v.checkEffect(where, scene, eff)
	}
}

func (v *validator) checkVisualOptions(where string, p Puzzle) {
	if len(p.Options) == 0 {
		v.addError("%s: visual_selection puzzles need options", where)
		return
	}
	optionIDs := make(map[string]bool, len(p.Options))
	for _, opt := range p.Options {
		if optionIDs[opt.ID] {
			v.addError("%s: duplicate option ID %q", where, opt.ID)
		}
		optionIDs[opt.ID] = true
	}

	solution := p.Solution.Values
	if !p.Solution.IsList {
		solution = []string{p.Solution.Value}
	}
	for _, id := range solution {
		if !optionIDs[id] {
			v.addError("%s: solution references unknown option %q", where, id)
		}
	}
}

func (v *validator) checkRequirement(where string, r Requirement) {
	switch r.Type {
	case RequireItem:
		if r.Item == "" {
			v.addError("%s: has_item requirement needs an item", where)
		} else if _, ok := v.catalog.Items[r.Item]; !ok {
			v.addError("%s: has_item references unknown item %q", where, r.Item)
		}
	case RequireInteracted:
		if r.Hotspot == "" {
			v.addError("%s: has_interacted requirement needs a hotspot", where)
		} else if !v.hotspots[r.Hotspot] {
			v.addError("%s: has_interacted references unknown hotspot %q", where, r.Hotspot)
		}
	case RequireFlag:
		if r.Flag == "" {
			v.addError("%s: has_flag requirement needs a flag", where)
		}
	case RequireCustom:
		if r.Check == "" {
			v.addError("%s: custom requirement needs a check name", where)
		} else if _, ok := v.preds[r.Check]; !ok {
			v.addError("%s: custom requirement references unregistered predicate %q", where, r.Check)
		}
	default:
		v.addError("%s: unknown requirement type %q", where, r.Type)
	}
}

func (v *validator) checkEffect(where string, scene *Scene, e Effect) {
	c := v.catalog
	switch e.Type {
	case EffectAddItem, EffectRemoveItem:
		if e.Item == "" {
			v.addError("%s: %s effect needs an item", where, e.Type)
		} else if _, ok := c.Items[e.Item]; !ok {
			v.addError("%s: %s references unknown item %q", where, e.Type, e.Item)
		}
	case EffectSetFlag:
		if e.Flag == "" {
			v.addError("%s: set_flag effect needs a flag", where)
		}
	case EffectShowDialog:
		if e.Dialog == nil || e.Dialog.Text == "" {
			v.addError("%s: show_dialog effect needs dialog text", where)
		}
	case EffectChangeScene:
		if e.Chapter == "" || e.Scene == "" {
			v.addError("%s: change_scene effect needs a chapter and a scene", where)
			return
		}
		if _, ok := c.Chapters[e.Chapter]; !ok {
			v.addError("%s: change_scene references unknown chapter %q", where, e.Chapter)
		}
		target, ok := c.Scenes[e.Scene]
		if !ok {
			v.addError("%s: change_scene references unknown scene %q", where, e.Scene)
		} else if target.Chapter != e.Chapter {
			v.addError("%s: change_scene target %q belongs to chapter %q, not %q",
				where, e.Scene, target.Chapter, e.Chapter)
		}
	case EffectTriggerEvent:
		if e.Event == "" {
			v.addError("%s: trigger_event effect needs an event", where)
		} else if _, ok := scene.Event(e.Event); !ok {
			v.addError("%s: trigger_event references unknown event %q in this scene", where, e.Event)
		}
	default:
		v.addError("%s: unknown effect type %q", where, e.Type)
	}
}

// checkTriggerCycles walks the static trigger_event call graph of a
// scene and rejects direct or indirect self-reference. The engine also
// caps trigger depth at runtime, but content with a declared cycle is
// an authoring error and is rejected here.
func (v *validator) checkTriggerCycles(sceneID string, scene *Scene) {
	targets := make(map[string][]string, len(scene.Events))
	for _, e := range scene.Events {
		for _, eff := range e.Effects {
			if eff.Type == EffectTriggerEvent && eff.Event != "" {
				targets[e.ID] = append(targets[e.ID], eff.Event)
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	mark := make(map[string]int, len(targets))

	var visit func(id string, path []string) bool
	visit = func(id string, path []string) bool {
		switch mark[id] {
		case visiting:
			v.addError("scene %q: trigger_event cycle: %s -> %s",
				sceneID, strings.Join(path, " -> "), id)
			return false
		case done:
			return true
		}
		mark[id] = visiting
		for _, next := range targets[id] {
			if !visit(next, append(path, id)) {
				break
			}
		}
		mark[id] = done
		return true
	}

	for _, e := range scene.Events {
		visit(e.ID, nil)
	}
}
