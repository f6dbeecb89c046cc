package handlers

import (
	"net/http"
	"strconv"

	"handyhub/backend/services"
)

// GetAuditEntries serves GET /audit: recent status changes, newest first,
// optionally narrowed to one entity.
func (h *Handler) GetAuditEntries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := services.GetAuditEntries(r.URL.Query().Get("entity"), limit)
	if err != nil {
		http.Error(w, "Failed to get audit entries: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
