package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"handyhub/backend/services"
	"handyhub/backend/store"
)

// Handler serves the dashboard API over the document store and the email
// notifier. Both collaborators are interfaces so tests run against in-memory
// fakes.
type Handler struct {
	Store    store.Store
	Notifier services.Notifier
}

// New creates the API handler.
func New(s store.Store, n services.Notifier) *Handler {
	return &Handler{Store: s, Notifier: n}
}

// HealthCheck responds to load balancer probes.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondStoreError maps a failed store call to a 502 with a generic
// message; the real error stays in the log.
func respondStoreError(w http.ResponseWriter, err error) {
	log.Printf("Store error: %v", err)
	http.Error(w, "The data store is currently unavailable", http.StatusBadGateway)
}

// respondValidation renders field-keyed validation errors for inline
// display.
func respondValidation(w http.ResponseWriter, errors map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errors})
}
