package scope

import "sort"

// Suggest returns the closest known names to an unresolved identifier, for
// a "did you mean" diagnostic enrichment (see DESIGN.md; adapted from the
// teacher's internal/core/fuzzy.go levenshteinDistance/levenshteinMatch —
// the rest of that file's tree-sitter query-variation machinery has no
// target here since this package resolves identifiers, not DSL queries).
func Suggest(scopes []*Scope, name string, max int) []string {
	type scored struct {
		name string
		dist int
	}
	var cands []scored
	seen := map[string]bool{}
	for _, sc := range scopes {
		if sc == nil {
			continue
		}
		for n := range sc.names {
			if seen[n] {
				continue
			}
			seen[n] = true
			d := levenshtein(name, n)
			if d <= 3 {
				cands = append(cands, scored{n, d})
			}
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})
	if len(cands) > max {
		cands = cands[:max]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
