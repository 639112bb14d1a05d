package router

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds the edit distance of a suggestion.
const maxSuggestDistance = 3

// Suggest returns the registered route closest to path by edit distance,
// used by the not-found view to offer a "did you mean" link. A route
// qualifies when the distance is at most half the length of its path
// segment, capped at maxSuggestDistance, so short routes (and "/") need a
// near-exact match. Ties go to the earlier route.
func (t *Table) Suggest(path string) (Route, bool) {
	target := strings.ToLower(strings.TrimSuffix(path, "/"))
	if target == "" {
		return Route{}, false
	}

	best := -1
	bestDistance := maxSuggestDistance + 1
	for i, r := range t.routes {
		limit := min(maxSuggestDistance, len(strings.TrimPrefix(r.Path, "/"))/2)
		d := levenshtein.ComputeDistance(target, strings.ToLower(r.Path))
		if d <= limit && d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return Route{}, false
	}
	return t.routes[best], true
}
