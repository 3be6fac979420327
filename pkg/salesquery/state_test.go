package salesquery

import (
	"testing"
)

func TestDefaultStateValues(t *testing.T) {
	params := DefaultState().Values()

	if got := params.Get("sortBy"); got != "date" {
		t.Errorf("expected sortBy date, got %q", got)
	}
	if got := params.Get("sortOrder"); got != "desc" {
		t.Errorf("expected sortOrder desc, got %q", got)
	}
	if got := params.Get("page"); got != "1" {
		t.Errorf("expected page 1, got %q", got)
	}
	if got := params.Get("limit"); got != "10" {
		t.Errorf("expected limit 10, got %q", got)
	}
	for _, key := range []string{"search", "customerRegion", "gender", "tags", "minAge", "maxAge", "startDate", "endDate"} {
		if _, ok := params[key]; ok {
			t.Errorf("expected %s omitted from default state, got %v", key, params[key])
		}
	}
}

func TestValuesSerializesActiveFilters(t *testing.T) {
	minAge, maxAge := 21, 65
	state := DefaultState()
	state.Search = "alice"
	state.Regions = []string{"North", "South"}
	state.Tags = []string{"organic"}
	state.MinAge = &minAge
	state.MaxAge = &maxAge
	state.StartDate = "2024-03-01"
	state.EndDate = "2024-03-31"

	params := state.Values()

	if got := params.Get("search"); got != "alice" {
		t.Errorf("expected search alice, got %q", got)
	}
	if got := params["customerRegion"]; len(got) != 2 || got[0] != "North" || got[1] != "South" {
		t.Errorf("expected repeated region params, got %v", got)
	}
	if got := params.Get("minAge"); got != "21" {
		t.Errorf("expected minAge 21, got %q", got)
	}
	if got := params.Get("maxAge"); got != "65" {
		t.Errorf("expected maxAge 65, got %q", got)
	}
	if got := params.Get("startDate"); got != "2024-03-01" {
		t.Errorf("expected startDate, got %q", got)
	}
}

func TestValuesOmitsEmptyListEntries(t *testing.T) {
	state := DefaultState()
	state.Genders = []string{"", "Female", ""}

	params := state.Values()
	if got := params["gender"]; len(got) != 1 || got[0] != "Female" {
		t.Errorf("expected only non-empty entries, got %v", got)
	}
}

func TestCloneIsolatesSlicesAndPointers(t *testing.T) {
	minAge := 30
	state := DefaultState()
	state.Regions = []string{"North"}
	state.MinAge = &minAge

	copied := state.clone()
	copied.Regions[0] = "South"
	*copied.MinAge = 99

	if state.Regions[0] != "North" {
		t.Errorf("clone shares region slice")
	}
	if *state.MinAge != 30 {
		t.Errorf("clone shares age pointer")
	}
}
