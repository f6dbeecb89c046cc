package services

import (
	"testing"

	"handyhub/backend/models"
)

var handymanFilterConfig = FilterConfig{
	SearchFields: []string{"firstName", "lastName", "email", "phoneNumber"},
	DateField:    "createdAt",
	Rules:        HandymanRules,
}

func TestFilterSearchCaseInsensitiveSubstring(t *testing.T) {
	records := []models.Record{
		{"id": "1", "firstName": "Theodore"},
		{"id": "2", "firstName": "Maria"},
		{"id": "3", "lastName": "Amadeo"},
	}

	// Lowercase term against a capitalized value, matched mid-word
	got := Filter(records, models.FilterState{Search: "theo"}, handymanFilterConfig)
	if len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("Expected only Theodore, got %v", got)
	}

	// Any configured field may match, last name included
	got = Filter(records, models.FilterState{Search: "deo"}, handymanFilterConfig)
	if len(got) != 1 || got[0].ID() != "3" {
		t.Fatalf("Expected only Amadeo, got %v", got)
	}
}

func TestFilterEmptySearchMatchesAll(t *testing.T) {
	records := []models.Record{
		{"id": "1", "firstName": "Theodore"},
		{"id": "2"},
	}

	got := Filter(records, models.FilterState{}, handymanFilterConfig)
	if len(got) != len(records) {
		t.Errorf("Expected all %d records, got %d", len(records), len(got))
	}
}

func TestFilterStatusPredicate(t *testing.T) {
	records := []models.Record{
		{"id": "1", "idApprovedStatus": "approved", "certificateApprovedStatus": "approved"},
		{"id": "2", "idApprovedStatus": "declined"},
		{"id": "3"},
	}

	got := Filter(records, models.FilterState{Status: "approved"}, handymanFilterConfig)
	if len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("Expected only record 1, got %v", got)
	}

	all := Filter(records, models.FilterState{Status: "All"}, handymanFilterConfig)
	if len(all) != 3 {
		t.Errorf("Expected All to match every record, got %d", len(all))
	}
}

func TestFilterCategoryPredicate(t *testing.T) {
	cfg := FilterConfig{
		SearchFields:  []string{"jobTitle"},
		CategoryField: "jobCategory",
		DateField:     "createdAt",
		Rules:         JobRules,
	}
	records := []models.Record{
		{"id": "1", "jobCategory": "Plumbing"},
		{"id": "2", "jobCategory": "Electrical"},
	}

	got := Filter(records, models.FilterState{Category: "Plumbing"}, cfg)
	if len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("Expected only the plumbing job, got %v", got)
	}
}

func TestFilterDateRangeUnboundedUpper(t *testing.T) {
	records := []models.Record{
		{"id": "in", "createdAt": "2025-06-01"},
		{"id": "out", "createdAt": "2024-12-31"},
	}

	got := Filter(records, models.FilterState{StartDate: "2025-01-01"}, handymanFilterConfig)
	if len(got) != 1 || got[0].ID() != "in" {
		t.Fatalf("Expected only the 2025 record, got %v", got)
	}
}

func TestFilterDateRangeInclusiveBounds(t *testing.T) {
	records := []models.Record{
		{"id": "start", "createdAt": "2025-01-01T09:30:00Z"},
		{"id": "end", "createdAt": "2025-01-31T23:00:00Z"},
		{"id": "after", "createdAt": "2025-02-01T00:00:00Z"},
	}

	state := models.FilterState{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	got := Filter(records, state, handymanFilterConfig)

	if len(got) != 2 {
		t.Fatalf("Expected both boundary records, got %d", len(got))
	}
}

func TestFilterMalformedTimestampExcludedFromBoundedRange(t *testing.T) {
	records := []models.Record{
		{"id": "bad", "createdAt": "not-a-date"},
		{"id": "missing"},
		{"id": "good", "createdAt": "2025-06-01"},
	}

	bounded := Filter(records, models.FilterState{StartDate: "2025-01-01"}, handymanFilterConfig)
	if len(bounded) != 1 || bounded[0].ID() != "good" {
		t.Fatalf("Expected malformed timestamps excluded from bounded range, got %v", bounded)
	}

	// Without bounds the same records all pass
	unbounded := Filter(records, models.FilterState{}, handymanFilterConfig)
	if len(unbounded) != 3 {
		t.Errorf("Expected unbounded range to keep all records, got %d", len(unbounded))
	}
}

func TestFilterConjunction(t *testing.T) {
	records := []models.Record{
		{"id": "1", "firstName": "Theodore", "idApprovedStatus": "approved", "certificateApprovedStatus": "approved", "createdAt": "2025-06-01"},
		{"id": "2", "firstName": "Theodore", "idApprovedStatus": "declined", "createdAt": "2025-06-01"},
		{"id": "3", "firstName": "Maria", "idApprovedStatus": "approved", "certificateApprovedStatus": "approved", "createdAt": "2025-06-01"},
		{"id": "4", "firstName": "Theodore", "idApprovedStatus": "approved", "certificateApprovedStatus": "approved", "createdAt": "2024-01-01"},
	}

	state := models.FilterState{
		Search:    "theo",
		Status:    "approved",
		StartDate: "2025-01-01",
	}
	got := Filter(records, state, handymanFilterConfig)

	if len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("Expected only record 1 to satisfy every predicate, got %v", got)
	}

	// Every returned record satisfies each predicate independently
	for _, rec := range got {
		if Derive(rec, HandymanRules) != "approved" {
			t.Errorf("Record %s fails the status predicate", rec.ID())
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := []models.Record{
		{"id": "2", "firstName": "Zed"},
		{"id": "1", "firstName": "Amy"},
	}

	Filter(records, models.FilterState{Search: "amy"}, handymanFilterConfig)

	if records[0].ID() != "2" || records[1].ID() != "1" {
		t.Error("Filter reordered the input slice")
	}
}
