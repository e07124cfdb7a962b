package search

import (
	"testing"

	"github.com/codr1/resort-booking/internal/models"
)

func fixtureResults() []models.Accommodation {
	villa := &models.AccommodationType{Name: "Villa"}
	deluxe := &models.AccommodationType{Name: "Deluxe"}
	return []models.Accommodation{
		{ID: "1", Name: "Beach Villa", Type: villa, City: "Trat", Province: "Koh Chang"},
		{ID: "2", Name: "Garden Deluxe", Type: deluxe, City: "Trat"},
		{ID: "3", Name: "Pool Villa", Type: villa, City: "Bangkok"},
		{ID: "4", Name: "Staff Cottage", City: "Chanthaburi"},
		{ID: "5", Name: "Sea View Deluxe", Type: deluxe, Province: "Beachside"},
	}
}

func ids(rows []models.Accommodation) []models.ID {
	out := make([]models.ID, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out
}

func sameIDs(t *testing.T, got []models.Accommodation, want ...models.ID) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, gotIDs)
		}
	}
}

func TestFilterByTypeNoSelectionKeepsAll(t *testing.T) {
	results := fixtureResults()
	sameIDs(t, FilterByType(results, nil), "1", "2", "3", "4", "5")
}

func TestFilterByTypeSelection(t *testing.T) {
	results := fixtureResults()
	sameIDs(t, FilterByType(results, []string{"Villa"}), "1", "3")
	sameIDs(t, FilterByType(results, []string{"Deluxe", "Villa"}), "1", "2", "3", "5")
	sameIDs(t, FilterByType(results, []string{"Suite"}))
}

func TestMatchesTermCaseInsensitive(t *testing.T) {
	acc := models.Accommodation{Name: "Beach Villa"}
	for _, term := range []string{"beach", "BEACH", "Beach", " villa "} {
		if !MatchesTerm(acc, term) {
			t.Fatalf("expected %q to match %q", term, acc.Name)
		}
	}
	if MatchesTerm(acc, "mountain") {
		t.Fatal("expected mountain not to match")
	}
	if !MatchesTerm(acc, "") {
		t.Fatal("expected empty term to match")
	}
}

func TestMatchesTermSearchesLocationAndType(t *testing.T) {
	results := fixtureResults()
	sameIDs(t, Apply(results, Filters{Term: "trat"}), "1", "2")
	sameIDs(t, Apply(results, Filters{Term: "koh chang"}), "1")
	sameIDs(t, Apply(results, Filters{Term: "deluxe"}), "2", "5")
	sameIDs(t, Apply(results, Filters{Term: "beach"}), "1", "5")
}

func TestApplyCombinesTypeAndTerm(t *testing.T) {
	results := fixtureResults()
	sameIDs(t, Apply(results, Filters{SelectedTypes: []string{"Villa"}, Term: "trat"}), "1")
	sameIDs(t, Apply(results, Filters{SelectedTypes: []string{"Villa"}, Term: "nowhere"}))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	results := fixtureResults()
	_ = Apply(results, Filters{SelectedTypes: []string{"Deluxe"}})
	sameIDs(t, results, "1", "2", "3", "4", "5")
}

func TestGroupByTypeFirstSeenOrderAndOther(t *testing.T) {
	groups := GroupByType(fixtureResults())
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	expectedNames := []string{"Villa", "Deluxe", models.OtherTypeName}
	for i, name := range expectedNames {
		if groups[i].TypeName != name {
			t.Fatalf("group %d: expected %q, got %q", i, name, groups[i].TypeName)
		}
	}
	sameIDs(t, groups[0].Accommodations, "1", "3")
	sameIDs(t, groups[1].Accommodations, "2", "5")
	sameIDs(t, groups[2].Accommodations, "4")
}

func TestGroupUnionEqualsTypeFilter(t *testing.T) {
	results := fixtureResults()
	selections := [][]string{nil, {"Villa"}, {"Deluxe"}, {"Villa", "Deluxe"}, {"Missing"}}

	for _, selected := range selections {
		filtered := FilterByType(results, selected)
		groups := GroupByType(filtered)

		seen := make(map[models.ID]struct{})
		for _, group := range groups {
			for _, acc := range group.Accommodations {
				seen[acc.ID] = struct{}{}
			}
		}

		allowed := make(map[string]bool)
		for _, name := range selected {
			allowed[name] = true
		}
		expected := 0
		for _, acc := range results {
			if len(selected) > 0 && !allowed[acc.TypeName()] {
				if _, ok := seen[acc.ID]; ok {
					t.Fatalf("selection %v: unexpected id %s in groups", selected, acc.ID)
				}
				continue
			}
			expected++
			if _, ok := seen[acc.ID]; !ok {
				t.Fatalf("selection %v: missing id %s from groups", selected, acc.ID)
			}
		}
		if len(seen) != expected {
			t.Fatalf("selection %v: expected %d ids, got %d", selected, expected, len(seen))
		}
	}
}

func TestGroupByTypeEmpty(t *testing.T) {
	if groups := GroupByType(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
