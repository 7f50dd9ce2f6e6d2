package editor

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is one jump-overlay candidate: a type index and its rank class.
type Match struct {
	Index int
	Name  string
}

// RankTypes orders type indices by how well their names match query:
// prefix matches first, then substring matches, then everything else by
// edit distance. An empty query returns all types in document order.
func (e *Editor) RankTypes(query string) []Match {
	names := e.TypeNames()
	matches := make([]Match, 0, len(names))
	for i, n := range names {
		matches = append(matches, Match{Index: i, Name: n})
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return matches
	}

	type scored struct {
		m     Match
		class int
		dist  int
	}
	ranked := make([]scored, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m.Name)
		s := scored{m: m, dist: levenshtein.ComputeDistance(q, name)}
		switch {
		case strings.HasPrefix(name, q):
			s.class = 0
		case strings.Contains(name, q):
			s.class = 1
		default:
			s.class = 2
		}
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].class != ranked[j].class {
			return ranked[i].class < ranked[j].class
		}
		return ranked[i].dist < ranked[j].dist
	})

	out := make([]Match, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.m)
	}
	return out
}
