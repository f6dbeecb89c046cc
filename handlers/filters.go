package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"handyhub/backend/middleware"
	"handyhub/backend/models"
	"handyhub/backend/services"
)

// savedFilterRequest is the create/update body for filter presets.
type savedFilterRequest struct {
	Name         string `json:"name"`
	ResourceType string `json:"resourceType"`
	FilterConfig string `json:"filterConfig"`
	IsDefault    bool   `json:"isDefault"`
}

// GetSavedFilters returns the acting admin's presets for a resource type.
func (h *Handler) GetSavedFilters(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)

	resourceType := r.URL.Query().Get("resourceType")
	if resourceType == "" {
		http.Error(w, "resourceType query parameter is required", http.StatusBadRequest)
		return
	}

	filters, err := services.GetSavedFilters(actor.ID, resourceType)
	if err != nil {
		http.Error(w, "Failed to get saved filters: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, filters)
}

// GetSavedFilter returns one preset; admins only see their own.
func (h *Handler) GetSavedFilter(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)
	filterID := mux.Vars(r)["id"]

	filter, err := services.GetSavedFilterByID(filterID)
	if err != nil {
		http.Error(w, "Failed to get saved filter: "+err.Error(), http.StatusNotFound)
		return
	}

	if filter.AdminID != actor.ID && !middleware.IsRoleAtLeast(actor.Role, models.RoleMasterAdmin) {
		http.Error(w, "Forbidden: You do not have permission to access this filter", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, filter)
}

// CreateSavedFilter stores a new preset for the acting admin.
func (h *Handler) CreateSavedFilter(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)

	var req savedFilterRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondValidation(w, map[string]string{"name": "Name is required"})
		return
	}

	filter, err := services.CreateSavedFilter(actor.ID, req.Name, req.ResourceType, req.FilterConfig, req.IsDefault)
	if err != nil {
		http.Error(w, "Failed to create saved filter: "+err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, filter)
}

// UpdateSavedFilter updates one of the acting admin's presets.
func (h *Handler) UpdateSavedFilter(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)
	filterID := mux.Vars(r)["id"]

	existing, err := services.GetSavedFilterByID(filterID)
	if err != nil {
		http.Error(w, "Failed to get saved filter: "+err.Error(), http.StatusNotFound)
		return
	}
	if existing.AdminID != actor.ID {
		http.Error(w, "Forbidden: You do not have permission to modify this filter", http.StatusForbidden)
		return
	}

	var req savedFilterRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter, err := services.UpdateSavedFilter(filterID, req.Name, req.FilterConfig, req.IsDefault)
	if err != nil {
		http.Error(w, "Failed to update saved filter: "+err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, filter)
}

// DeleteSavedFilter removes one of the acting admin's presets.
func (h *Handler) DeleteSavedFilter(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)
	filterID := mux.Vars(r)["id"]

	existing, err := services.GetSavedFilterByID(filterID)
	if err != nil {
		http.Error(w, "Failed to get saved filter: "+err.Error(), http.StatusNotFound)
		return
	}
	if existing.AdminID != actor.ID {
		http.Error(w, "Forbidden: You do not have permission to delete this filter", http.StatusForbidden)
		return
	}

	if err := services.DeleteSavedFilter(filterID); err != nil {
		http.Error(w, "Failed to delete saved filter: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
