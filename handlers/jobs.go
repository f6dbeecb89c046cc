package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"handyhub/backend/middleware"
	"handyhub/backend/models"
	"handyhub/backend/services"
)

// jobEditableFields are the form fields the job detail modal may change.
// Everything else in the record is owned by the mobile apps.
var jobEditableFields = map[string]bool{
	"jobTitle":       true,
	"jobDescription": true,
	"jobCategory":    true,
	"jobAddress":     true,
	"scheduledDate":  true,
}

// UpdateJob serves PUT /jobs/{id}: edits to the job form with required-field
// validation. The patch carries only editable fields, so concurrent app
// writes to other fields survive.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor := middleware.ActorFromRequest(r)

	var body map[string]interface{}
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := map[string]interface{}{}
	for field, value := range body {
		if jobEditableFields[field] {
			patch[field] = value
		}
	}

	errors := map[string]string{}
	if title, ok := patch["jobTitle"]; ok {
		if s, _ := title.(string); strings.TrimSpace(s) == "" {
			errors["jobTitle"] = "Title is required"
		}
	}
	if cat, ok := patch["jobCategory"]; ok {
		if s, _ := cat.(string); strings.TrimSpace(s) == "" {
			errors["jobCategory"] = "Category is required"
		}
	}
	if len(errors) > 0 {
		respondValidation(w, errors)
		return
	}
	if len(patch) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{"updated": false})
		return
	}

	rec, err := h.Store.Get(r.Context(), models.PathJob, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	patch["lastUpdatedBy"] = services.Stamp(actor, "jobEdit")
	if err := h.Store.Update(r.Context(), models.PathJob, id, patch); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"updated": true})
}
