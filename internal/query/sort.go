package query

import "github.com/salesdash/api/internal/domain"

// ResolveSort maps the client-facing sort key and direction token to a
// concrete SortSpec. Unrecognized or absent keys fall back to date, and
// unrecognized directions fall back to descending, so the default listing
// is newest first.
func ResolveSort(sortBy, sortOrder string) domain.SortSpec {
	switch domain.SortKey(sortBy) {
	case domain.SortByDate, domain.SortByQuantity, domain.SortByAmount, domain.SortByCustomerName:
		return domain.SortSpec{
			Key:        domain.SortKey(sortBy),
			Descending: sortOrder != "asc",
		}
	}
	return domain.SortSpec{Key: domain.SortByDate, Descending: true}
}
