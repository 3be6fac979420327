package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/salesdash/api/internal/domain"
)

func intPtr(v int) *int { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCompileFilterEmpty(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{})
	if pred.where != "" {
		t.Errorf("expected empty where, got %q", pred.where)
	}
	if len(pred.args) != 0 {
		t.Errorf("expected no args, got %v", pred.args)
	}
}

func TestCompileFilterSearch(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{Search: "alice"})

	if !strings.HasPrefix(pred.where, "WHERE (") {
		t.Fatalf("expected WHERE prefix, got %q", pred.where)
	}
	if strings.Count(pred.where, "ILIKE $1") != 3 {
		t.Errorf("expected the same placeholder across all three search fields, got %q", pred.where)
	}
	for _, expr := range []string{customerNameExpr, phoneNumberExpr, transactionIDExpr} {
		if !strings.Contains(pred.where, expr) {
			t.Errorf("expected search to cover %s, got %q", expr, pred.where)
		}
	}
	if len(pred.args) != 1 || pred.args[0] != "%alice%" {
		t.Errorf("expected single %%alice%% arg, got %v", pred.args)
	}
}

func TestCompileFilterSearchEscapesWildcards(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{Search: `50%_off\now`})
	if len(pred.args) != 1 {
		t.Fatalf("expected one arg, got %v", pred.args)
	}
	got, ok := pred.args[0].(string)
	if !ok {
		t.Fatalf("expected string arg, got %T", pred.args[0])
	}
	want := `%50\%\_off\\now%`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCompileFilterMultiValueDimensions(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{
		Regions: []string{"North", "South"},
		Genders: []string{"Female"},
	})

	if !strings.Contains(pred.where, regionExpr+" = ANY($1::text[])") {
		t.Errorf("expected region ANY clause, got %q", pred.where)
	}
	if !strings.Contains(pred.where, genderExpr+" = ANY($2::text[])") {
		t.Errorf("expected gender ANY clause, got %q", pred.where)
	}
	if !strings.Contains(pred.where, " AND ") {
		t.Errorf("expected dimensions joined with AND, got %q", pred.where)
	}
	if len(pred.args) != 2 {
		t.Fatalf("expected two args, got %v", pred.args)
	}
}

func TestCompileFilterTagsNormalized(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{Tags: []string{" Organic ", "SALE"}})

	if !strings.Contains(pred.where, tagsExpr+" && $1::text[]") {
		t.Errorf("expected tags overlap clause, got %q", pred.where)
	}
	tags, ok := pred.args[0].([]string)
	if !ok {
		t.Fatalf("expected []string arg, got %T", pred.args[0])
	}
	if len(tags) != 2 || tags[0] != "organic" || tags[1] != "sale" {
		t.Errorf("expected lowercased trimmed tags, got %v", tags)
	}
}

func TestCompileFilterAgeBounds(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{MinAge: intPtr(18), MaxAge: intPtr(65)})

	if !strings.Contains(pred.where, ageExpr+" >= $1") {
		t.Errorf("expected min age clause, got %q", pred.where)
	}
	if !strings.Contains(pred.where, ageExpr+" <= $2") {
		t.Errorf("expected max age clause, got %q", pred.where)
	}

	// A single bound compiles alone.
	pred = compileFilter(domain.SaleFilter{MaxAge: intPtr(30)})
	if strings.Contains(pred.where, ">=") {
		t.Errorf("expected no lower bound, got %q", pred.where)
	}
	if len(pred.args) != 1 || pred.args[0] != 30 {
		t.Errorf("expected single arg 30, got %v", pred.args)
	}
}

func TestCompileFilterDateRangeInclusive(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{
		StartDate: datePtr(2024, 3, 1),
		EndDate:   datePtr(2024, 3, 31),
	})

	if !strings.Contains(pred.where, dateExpr+" >= $1::date") {
		t.Errorf("expected inclusive start bound, got %q", pred.where)
	}
	if !strings.Contains(pred.where, dateExpr+" <= $2::date") {
		t.Errorf("expected inclusive end bound, got %q", pred.where)
	}
}

func TestCompileFilterPlaceholderNumbering(t *testing.T) {
	pred := compileFilter(domain.SaleFilter{
		Search:  "bob",
		Regions: []string{"East"},
		MinAge:  intPtr(21),
	})

	for _, ph := range []string{"$1", "$2", "$3"} {
		if !strings.Contains(pred.where, ph) {
			t.Errorf("expected placeholder %s in %q", ph, pred.where)
		}
	}
	if len(pred.args) != 3 {
		t.Errorf("expected three args, got %v", pred.args)
	}
}

func TestCompileFilterDeterministic(t *testing.T) {
	filter := domain.SaleFilter{
		Search:  "alice",
		Regions: []string{"North"},
		Tags:    []string{"sale"},
		MinAge:  intPtr(20),
	}
	first := compileFilter(filter)
	second := compileFilter(filter)
	if first.where != second.where {
		t.Errorf("expected identical predicates, got %q vs %q", first.where, second.where)
	}
	if len(first.args) != len(second.args) {
		t.Errorf("expected identical arg counts, got %d vs %d", len(first.args), len(second.args))
	}
}

func TestOrderClauseMappings(t *testing.T) {
	cases := []struct {
		sort domain.SortSpec
		want string
	}{
		{domain.SortSpec{Key: domain.SortByDate, Descending: true}, dateExpr + " DESC NULLS LAST"},
		{domain.SortSpec{Key: domain.SortByDate, Descending: false}, dateExpr + " ASC NULLS LAST"},
		{domain.SortSpec{Key: domain.SortByQuantity, Descending: true}, quantityExpr + " DESC NULLS LAST"},
		{domain.SortSpec{Key: domain.SortByAmount, Descending: false}, finalAmountExpr + " ASC NULLS LAST"},
		{domain.SortSpec{Key: domain.SortByCustomerName, Descending: false}, "lower(" + customerNameExpr + ") ASC NULLS LAST"},
	}
	for _, tc := range cases {
		got := orderClause(tc.sort)
		if !strings.Contains(got, tc.want) {
			t.Errorf("orderClause(%+v) = %q, expected to contain %q", tc.sort, got, tc.want)
		}
	}
}

func TestOrderClauseAlwaysHasTieBreak(t *testing.T) {
	for _, key := range []domain.SortKey{domain.SortByDate, domain.SortByQuantity, domain.SortByAmount, domain.SortByCustomerName} {
		got := orderClause(domain.SortSpec{Key: key, Descending: true})
		if !strings.HasSuffix(got, transactionIDExpr+" ASC") {
			t.Errorf("orderClause(%s) = %q, expected transaction id tie-break suffix", key, got)
		}
	}
}
