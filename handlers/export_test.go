package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"handyhub/backend/models"
)

func TestExportRecordsCSV(t *testing.T) {
	_, mem, _, r := newTestHandler(t)

	seed(t, mem, models.PathJob, "j1", map[string]interface{}{
		"jobTitle": "Fix sink", "jobCategory": "Plumbing", "customerName": "Maria",
	})
	seed(t, mem, models.PathJob, "j2", map[string]interface{}{
		"jobTitle": "Paint wall", "jobCategory": "Painting", "customerName": "Omar",
	})

	rr := doRequest(t, r, "GET", "/jobs/export?format=csv&category=Plumbing", nil)
	mustStatus(t, rr, http.StatusOK)

	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "jobs-report.csv") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	rows, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse exported CSV: %v", err)
	}
	// Header plus the one Plumbing job; the filter ran before export
	if len(rows) != 2 {
		t.Fatalf("Expected 1 filtered data row, got %d", len(rows)-1)
	}
	if rows[1][1] != "Fix sink" {
		t.Errorf("Unexpected exported row %v", rows[1])
	}
}

func TestExportRecordsPDF(t *testing.T) {
	_, mem, _, r := newTestHandler(t)

	seed(t, mem, models.PathHandyman, "h1", map[string]interface{}{"firstName": "Rahim"})

	rr := doRequest(t, r, "GET", "/handymen/export?format=pdf", nil)
	mustStatus(t, rr, http.StatusOK)

	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Error("Expected PDF magic header")
	}
}

func TestExportRecordsDefaultsToCSV(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	rr := doRequest(t, r, "GET", "/users/export", nil)
	mustStatus(t, rr, http.StatusOK)
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected CSV default, got %q", ct)
	}
}

func TestExportRecordsRejectsUnknownFormat(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	rr := doRequest(t, r, "GET", "/users/export?format=xlsx", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown format, got %d", rr.Code)
	}
}
