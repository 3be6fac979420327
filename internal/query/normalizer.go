// Package query turns loosely-typed HTTP query parameters into the typed,
// bounded values the repository consumes. All validation happens here,
// before any store access; failures carry the specific violated constraint.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/salesdash/api/internal/domain"
)

const (
	maxSearchLength = 100
	maxAgeBound     = 150
	defaultLimit    = 10
	maxLimit        = 100
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// Normalize validates and coerces raw query parameters into a ListQuery.
// It is a pure transform: no side effects, and any returned error is a
// *domain.ValidationError terminal for the request.
func Normalize(params url.Values) (domain.ListQuery, error) {
	var q domain.ListQuery

	q.Filter.Search = sanitizeSearch(params.Get("search"))

	minAge, err := parseAge(params.Get("minAge"), "min age")
	if err != nil {
		return q, err
	}
	maxAge, err := parseAge(params.Get("maxAge"), "max age")
	if err != nil {
		return q, err
	}
	if err := validateAgeRange(minAge, maxAge); err != nil {
		return q, err
	}
	q.Filter.MinAge = minAge
	q.Filter.MaxAge = maxAge

	startDate, err := parseDate(params.Get("startDate"))
	if err != nil {
		return q, err
	}
	endDate, err := parseDate(params.Get("endDate"))
	if err != nil {
		return q, err
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return q, domain.NewValidationError("start date cannot be after end date")
	}
	q.Filter.StartDate = startDate
	q.Filter.EndDate = endDate

	q.Filter.Regions = multiValue(params, "customerRegion")
	q.Filter.Genders = multiValue(params, "gender")
	q.Filter.ProductCategories = multiValue(params, "productCategory")
	q.Filter.Tags = multiValue(params, "tags")
	q.Filter.PaymentMethods = multiValue(params, "paymentMethod")

	q.Sort = ResolveSort(params.Get("sortBy"), params.Get("sortOrder"))
	q.Page = parsePage(params.Get("page"))
	q.Limit = parseLimit(params.Get("limit"))

	return q, nil
}

// sanitizeSearch trims and caps free-text search. The cap counts runes, not
// bytes, so multi-byte input is never cut mid-character into invalid UTF-8.
// An empty result means "no search filter"; it must never reach the compiler
// as an empty pattern.
func sanitizeSearch(raw string) string {
	s := strings.TrimSpace(raw)
	if r := []rune(s); len(r) > maxSearchLength {
		s = string(r[:maxSearchLength])
	}
	return s
}

func parseAge(raw, label string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError("%s must be a number", label)
	}
	return &age, nil
}

func validateAgeRange(minAge, maxAge *int) error {
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return domain.NewValidationError("min age cannot be greater than max age")
	}
	if minAge != nil && *minAge < 0 {
		return domain.NewValidationError("age cannot be negative")
	}
	if minAge != nil && *minAge > maxAgeBound {
		return domain.NewValidationError("age seems invalid")
	}
	if maxAge != nil && *maxAge > maxAgeBound {
		return domain.NewValidationError("age seems invalid")
	}
	return nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day, nil
		}
	}
	return nil, domain.NewValidationError("invalid date format")
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// multiValue normalizes a filter dimension that accepts a single value or a
// list. Repeated parameters and comma-separated values both work; empty
// input yields an empty list meaning "no filter on this field".
func multiValue(params url.Values, key string) []string {
	values := []string{}
	for _, raw := range params[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}
