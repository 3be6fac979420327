// Package salesquery owns the dashboard's query state: the active filters,
// sort, and page, plus the rules that keep them consistent (debounced
// search, page reset on filter changes, discarding out-of-order
// responses). State serializes to the exact request the sales API
// consumes.
package salesquery

import (
	"net/url"
	"strconv"
)

const (
	DefaultSortBy    = "date"
	DefaultSortOrder = "desc"
	DefaultLimit     = 10
)

// State is the serializable query state. The zero value is not useful;
// start from DefaultState.
type State struct {
	Search            string
	Regions           []string
	Genders           []string
	ProductCategories []string
	Tags              []string
	PaymentMethods    []string
	MinAge            *int
	MaxAge            *int
	StartDate         string
	EndDate           string
	SortBy            string
	SortOrder         string
	Page              int
	Limit             int
}

// DefaultState returns the state the dashboard opens with and that Reset
// restores.
func DefaultState() State {
	return State{
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      1,
		Limit:     DefaultLimit,
	}
}

// Values maps the state to request query parameters. The mapping is pure:
// empty filters are omitted entirely so the server sees "no filter" rather
// than an empty pattern.
func (s State) Values() url.Values {
	params := url.Values{}

	if s.Search != "" {
		params.Set("search", s.Search)
	}
	addAll(params, "customerRegion", s.Regions)
	addAll(params, "gender", s.Genders)
	addAll(params, "productCategory", s.ProductCategories)
	addAll(params, "tags", s.Tags)
	addAll(params, "paymentMethod", s.PaymentMethods)

	if s.MinAge != nil {
		params.Set("minAge", strconv.Itoa(*s.MinAge))
	}
	if s.MaxAge != nil {
		params.Set("maxAge", strconv.Itoa(*s.MaxAge))
	}
	if s.StartDate != "" {
		params.Set("startDate", s.StartDate)
	}
	if s.EndDate != "" {
		params.Set("endDate", s.EndDate)
	}

	if s.SortBy != "" {
		params.Set("sortBy", s.SortBy)
	}
	if s.SortOrder != "" {
		params.Set("sortOrder", s.SortOrder)
	}
	if s.Page > 0 {
		params.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit > 0 {
		params.Set("limit", strconv.Itoa(s.Limit))
	}

	return params
}

func addAll(params url.Values, key string, values []string) {
	for _, v := range values {
		if v != "" {
			params.Add(key, v)
		}
	}
}

// clone copies the state so emitted snapshots are immune to later edits.
func (s State) clone() State {
	out := s
	out.Regions = append([]string(nil), s.Regions...)
	out.Genders = append([]string(nil), s.Genders...)
	out.ProductCategories = append([]string(nil), s.ProductCategories...)
	out.Tags = append([]string(nil), s.Tags...)
	out.PaymentMethods = append([]string(nil), s.PaymentMethods...)
	if s.MinAge != nil {
		v := *s.MinAge
		out.MinAge = &v
	}
	if s.MaxAge != nil {
		v := *s.MaxAge
		out.MaxAge = &v
	}
	return out
}
