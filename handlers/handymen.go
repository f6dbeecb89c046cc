package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"handyhub/backend/middleware"
	"handyhub/backend/models"
	"handyhub/backend/services"
)

// documentField maps the URL document name to the approval field it controls.
var documentField = map[string]string{
	"identity":    "idApprovedStatus",
	"certificate": "certificateApprovedStatus",
}

// ReviewDocument serves PUT /handymen/{id}/documents/{doc}: an admin
// approves or declines one verification document. This is the only trigger
// for automatic derivation: once both documents are approved the overall
// status auto-approves, unless a manual decision already pinned it.
func (h *Handler) ReviewDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	actor := middleware.ActorFromRequest(r)

	field, ok := documentField[vars["doc"]]
	if !ok {
		http.Error(w, "Unknown document type", http.StatusNotFound)
		return
	}

	var body struct {
		Decision string `json:"decision"` // approved or declined
		Comments string `json:"comments"`
	}
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Decision != models.HandymanApproved && body.Decision != models.HandymanDeclined {
		respondValidation(w, map[string]string{"decision": "must be approved or declined"})
		return
	}

	rec, err := h.Store.Get(r.Context(), models.PathHandyman, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Handyman not found", http.StatusNotFound)
		return
	}

	// Record the document decision itself
	patch := map[string]interface{}{
		field:           body.Decision,
		"lastUpdatedBy": services.Stamp(actor, "documentReview"),
	}
	if err := h.Store.Update(r.Context(), models.PathHandyman, id, patch); err != nil {
		respondStoreError(w, err)
		return
	}

	// Re-derive on the updated record and persist the automatic result. A
	// manual pin suppresses this silently. The transition must run against
	// the pre-decision record: its derived status is the "current" side of
	// the idempotence check, while the updated record supplies the target.
	updated := cloneRecord(rec)
	updated[field] = body.Decision
	auto := services.StatusChangeRequest{
		RecordID:   id,
		Status:     services.Derive(updated, services.HandymanRules),
		Manual:     false,
		ChangeType: "documentReview",
	}
	before := services.Derive(rec, services.HandymanRules)
	fields, err := services.Apply(rec, auto, services.HandymanTransitions, actor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if fields != nil {
		if err := h.Store.Update(r.Context(), models.PathHandyman, id, fields); err != nil {
			respondStoreError(w, err)
			return
		}
		services.RecordStatusChange("handymen", id, before, auto.Status, false, actor)
		h.notifyVerification(r, updated, auto.Status, body.Comments)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"document": vars["doc"],
		"decision": body.Decision,
		"status":   services.Derive(updated, services.HandymanRules),
	})
}

// UpdateHandymanPhone serves PUT /handymen/{id}/phone.
func (h *Handler) UpdateHandymanPhone(w http.ResponseWriter, r *http.Request) {
	h.updatePhoneFlag(w, r, models.PathHandyman)
}

// updatePhoneFlag flips a record's isPhoneVerified field. Values mirror the
// stored data: boolean true/false or the string "fail".
func (h *Handler) updatePhoneFlag(w http.ResponseWriter, r *http.Request, path string) {
	id := mux.Vars(r)["id"]
	actor := middleware.ActorFromRequest(r)

	var body struct {
		Verified interface{} `json:"isPhoneVerified"`
	}
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validPhoneFlag(body.Verified) {
		respondValidation(w, map[string]string{"isPhoneVerified": "must be true, false, or \"fail\""})
		return
	}

	rec, err := h.Store.Get(r.Context(), path, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	patch := map[string]interface{}{
		"isPhoneVerified": body.Verified,
		"lastUpdatedBy":   services.Stamp(actor, "phoneVerification"),
	}
	if err := h.Store.Update(r.Context(), path, id, patch); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"updated": true})
}

func validPhoneFlag(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return true
	case string:
		return t == "fail"
	default:
		return false
	}
}

// notifyVerification emails the handyman about an automatic verification
// decision. Send failures are logged, not surfaced: the status change
// already succeeded.
func (h *Handler) notifyVerification(r *http.Request, rec models.Record, status, comments string) {
	email := rec.String("email")
	if email == "" {
		return
	}
	name := rec.String("firstName")
	if err := h.Notifier.SendVerificationDecision(r.Context(), email, name, status, comments); err != nil {
		log.Printf("Warning: %v", fmt.Errorf("verification notification failed: %w", err))
	}
}
