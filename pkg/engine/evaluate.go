package engine

import (
	"reflect"

	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// Evaluate checks a single requirement against a read-only state view.
// Pure and total: every variant is handled and unknown variants are
// false, never an error.
func Evaluate(r catalog.Requirement, view catalog.StateView, preds catalog.Predicates) bool {
	switch r.Type {
	case catalog.RequireItem:
		return r.Item != "" && view.HasItem(r.Item)

	case catalog.RequireInteracted:
		return r.Hotspot != "" && view.HasClicked(r.Hotspot)

	case catalog.RequireFlag:
		if r.Flag == "" {
			return false
		}
		v, ok := view.Flag(r.Flag)
		if !ok {
			return false
		}
		// An explicit expected value means strict equality; absence
		// means truthy.
		if r.Value != nil {
			return reflect.DeepEqual(v, r.Value)
		}
		return Truthy(v)

	case catalog.RequireCustom:
		pred, ok := preds[r.Check]
		if !ok {
			return false
		}
		return pred(view)

	default:
		return false
	}
}

// AllMet reports whether every requirement in the list holds. The list
// is a conjunction; an empty list is vacuously satisfied.
func AllMet(reqs []catalog.Requirement, view catalog.StateView, preds catalog.Predicates) bool {
	for _, r := range reqs {
		if !Evaluate(r, view, preds) {
			return false
		}
	}
	return true
}

// Truthy interprets a flag value with no declared expectation. Flags
// are open-ended author data, so any JSON scalar may appear.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return true
	}
}

func (e *Engine) allMet(reqs []catalog.Requirement) bool {
	return AllMet(reqs, e.gs, e.preds)
}
