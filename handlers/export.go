package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"handyhub/backend/services"
)

// ExportRecords serves GET /{entity}/export?format=csv|pdf. The export runs
// the same filter pipeline as the list view but skips pagination, so the
// file holds every matching record; the projector guarantees its cell values
// are identical to what the table rendered.
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	entity, err := services.LookupEntity(mux.Vars(r)["entity"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		respondValidation(w, map[string]string{"format": "must be csv or pdf"})
		return
	}

	records, err := h.Store.Collection(r.Context(), entity.Path)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	filtered := services.Filter(records, filterStateFromQuery(r), entity.Filter)

	fileName := fmt.Sprintf("%s-report.%s", entity.Name, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		err = services.WriteCSV(w, filtered, entity.Columns)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		err = services.WritePDF(w, exportTitle(entity.Name), filtered, entity.Columns)
	}
	if err != nil {
		// Headers are already sent; all that is left is logging
		log.Printf("Export of %s failed: %v", entity.Name, err)
	}
}

func exportTitle(name string) string {
	switch name {
	case "handymen":
		return "Handyman Verification Report"
	case "users":
		return "User Accounts Report"
	case "jobs":
		return "Job Management Report"
	case "tickets":
		return "Support Requests Report"
	default:
		return "Report"
	}
}
