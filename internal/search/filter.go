package search

import (
	"strings"

	"github.com/codr1/resort-booking/internal/models"
)

// Filters is the filter-panel selection.
type Filters struct {
	SelectedTypes []string
	// Term is matched against name, city, province and type name.
	Term string
}

// Group is one type bucket of the results listing.
type Group struct {
	TypeName       string
	Accommodations []models.Accommodation
}

// Apply runs the type filter and then the destination term match. The
// input slice is not modified.
func Apply(results []models.Accommodation, filters Filters) []models.Accommodation {
	typeFiltered := FilterByType(results, filters.SelectedTypes)

	visible := make([]models.Accommodation, 0, len(typeFiltered))
	for _, acc := range typeFiltered {
		if MatchesTerm(acc, filters.Term) {
			visible = append(visible, acc)
		}
	}
	return visible
}

// FilterByType keeps every result when no types are selected, otherwise
// only results whose type name is selected.
func FilterByType(results []models.Accommodation, selected []string) []models.Accommodation {
	if len(selected) == 0 {
		return append([]models.Accommodation(nil), results...)
	}

	allowed := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		allowed[name] = struct{}{}
	}

	filtered := make([]models.Accommodation, 0, len(results))
	for _, acc := range results {
		if _, ok := allowed[acc.TypeName()]; ok {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}

// MatchesTerm reports whether term is a case-insensitive substring of the
// accommodation's name, city, province or type name. An empty term matches.
func MatchesTerm(acc models.Accommodation, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	for _, field := range []string{acc.Name, acc.City, acc.Province, acc.TypeName()} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// GroupByType buckets results by type name in first-seen order. Results
// without a type land in the "Other" bucket.
func GroupByType(results []models.Accommodation) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, acc := range results {
		name := acc.TypeName()
		if name == "" {
			name = models.OtherTypeName
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{TypeName: name})
		}
		groups[i].Accommodations = append(groups[i].Accommodations, acc)
	}
	return groups
}
