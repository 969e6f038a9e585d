package app

import (
	"strings"

	"golang.org/x/text/cases"
)

// updateSearchResults recomputes the matching note indexes. Matching is a
// case-folded substring test over title, body and tags.
func (s *State) updateSearchResults() {
	s.SearchResults = s.SearchResults[:0]
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(s.SearchQuery))
	if q == "" {
		return
	}
	for i, n := range s.Notes {
		fields := append([]string{n.Title, n.Content}, n.Tags...)
		for _, f := range fields {
			if strings.Contains(fold.String(f), q) {
				s.SearchResults = append(s.SearchResults, i)
				break
			}
		}
	}
}
