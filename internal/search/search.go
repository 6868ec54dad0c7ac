// Package search implements the quick-select matcher: fuzzy matching of
// a typed query against the names in the current listing. Deep search is
// delegated to external fzf/rg (see internal/tools).
package search

import "github.com/sahilm/fuzzy"

// Match pairs a listing index with the character positions that matched,
// best score first.
type Match struct {
	Index          int
	Score          int
	MatchedIndexes []int
}

// Names fuzzy-matches query against names. An empty query matches
// nothing; callers treat that as "no filter".
func Names(query string, names []string) []Match {
	if query == "" {
		return nil
	}

	results := fuzzy.Find(query, names)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Index:          r.Index,
			Score:          r.Score,
			MatchedIndexes: r.MatchedIndexes,
		}
	}
	return matches
}

// Best returns the index of the best match, or -1 when nothing matches.
func Best(query string, names []string) int {
	matches := Names(query, names)
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Index
}
