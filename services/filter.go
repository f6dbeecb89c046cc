package services

import (
	"log"
	"strings"
	"time"

	"handyhub/backend/models"
)

// FilterConfig names the record fields each entity's screen filters over.
type FilterConfig struct {
	// SearchFields are matched by case-insensitive substring; a record
	// matches when any of them contains the search term.
	SearchFields []string
	// CategoryField backs the category dropdown; empty disables it.
	CategoryField string
	// DateField holds the record timestamp for range filtering.
	DateField string
	// Rules derives the status matched by the status dropdown.
	Rules StatusRules
}

// Filter narrows records to those satisfying every active predicate in the
// filter state. Predicates combine with AND; order is preserved; the input
// slice is never mutated.
func Filter(records []models.Record, state models.FilterState, cfg FilterConfig) []models.Record {
	state = state.Normalize()
	term := strings.ToLower(strings.TrimSpace(state.Search))

	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if !matchSearch(rec, term, cfg.SearchFields) {
			continue
		}
		if state.Status != models.StatusAll && Derive(rec, cfg.Rules) != state.Status {
			continue
		}
		if cfg.CategoryField != "" && state.Category != models.StatusAll &&
			rec.String(cfg.CategoryField) != state.Category {
			continue
		}
		if !matchDateRange(rec, state.StartDate, state.EndDate, cfg.DateField) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchSearch reports whether any configured field contains the term. An
// empty term matches everything.
func matchSearch(rec models.Record, term string, fields []string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(rec.String(f)), term) {
			return true
		}
	}
	return false
}

// matchDateRange checks the record's timestamp against [start, end],
// inclusive. Unset bounds are unbounded on that side. A record whose
// timestamp cannot be parsed never matches a bounded range.
func matchDateRange(rec models.Record, start, end, dateField string) bool {
	if start == "" && end == "" {
		return true
	}
	when, ok := rec.Time(dateField)
	if !ok {
		log.Printf("Skipping record %s from date-range filter: unparseable %s %q", rec.ID(), dateField, rec.String(dateField))
		return false
	}
	if start != "" {
		lower, ok := parseBound(start)
		if ok && when.Before(lower) {
			return false
		}
	}
	if end != "" {
		upper, ok := parseBound(end)
		if ok && when.After(upper.AddDate(0, 0, 1).Add(-time.Nanosecond)) {
			return false
		}
	}
	return true
}

// parseBound parses a filter bound. Bounds come from date inputs so a bare
// date form is expected, but full timestamps are accepted too.
func parseBound(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
