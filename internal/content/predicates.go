// Package content holds the code half of the shipped catalogs: the
// custom requirement predicates their JSON references by name.
package content

import (
	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// Predicates returns the predicate registry for the shipped catalogs.
// Both the console player and the validator register the same set, so
// what validates is what runs.
func Predicates() catalog.Predicates {
	return catalog.Predicates{
		// The drawer stays locked until the hairpin is found. The
		// requirement model has no negation primitive, so "does not
		// hold the item" is a custom check.
		"lacks_rusty_hairpin": func(v catalog.StateView) bool {
			return !v.HasItem("rusty_hairpin")
		},
	}
}
