package match

import (
	"slices"
	"strings"
)

// Levenshtein computes the edit distance between two strings, counting runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag, row[i] = row[i], next
		}
	}

	return row[len(ra)]
}

// Suggest returns up to limit candidates whose normalized form lies within maxDistance
// edits of the normalized name, closest first. Ties keep the order of candidates.
func Suggest(name string, candidates []string, maxDistance, limit int) []string {
	type scored struct {
		name     string
		distance int
	}

	norm := NormalizeIdent(name)

	var found []scored
	for _, c := range candidates {
		if d := Levenshtein(norm, NormalizeIdent(c)); d <= maxDistance {
			found = append(found, scored{c, d})
		}
	}

	slices.SortStableFunc(found, func(x, y scored) int { return x.distance - y.distance })

	out := make([]string, 0, min(limit, len(found)))
	for _, s := range found {
		if len(out) == limit {
			break
		}

		if !slices.ContainsFunc(out, func(o string) bool { return strings.EqualFold(o, s.name) }) {
			out = append(out, s.name)
		}
	}

	return out
}
