package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"handyhub/backend/middleware"
	"handyhub/backend/models"
	"handyhub/backend/services"
)

// ListResponse carries one page of a record-list screen: the page's records
// with their derived status, the projected rows the table renders, and the
// pagination metadata.
type ListResponse struct {
	Records   []models.Record `json:"records"`
	Headers   []string        `json:"headers"`
	Rows      [][]string      `json:"rows"`
	Page      int             `json:"page"`
	PageCount int             `json:"pageCount"`
	Total     int             `json:"total"`
	Window    []int           `json:"window"`
}

// ListRecords serves GET /{entity}. Every request re-runs the full pipeline
// over the current collection snapshot: derive, filter, paginate, project.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	entity, err := services.LookupEntity(mux.Vars(r)["entity"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	state := filterStateFromQuery(r)

	records, err := h.Store.Collection(r.Context(), entity.Path)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	filtered := services.Filter(records, state, entity.Filter)
	page := services.Paginate(filtered, state.PageSize, state.Page)

	respondJSON(w, http.StatusOK, ListResponse{
		Records:   withDerivedStatus(page.Records, entity.Filter.Rules),
		Headers:   services.Headers(entity.Columns),
		Rows:      services.Project(page.Records, entity.Columns),
		Page:      page.Number,
		PageCount: page.PageCount,
		Total:     page.Total,
		Window:    services.PageWindow(page.PageCount, page.Number),
	})
}

// GetRecord serves GET /{entity}/{id}.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity, err := services.LookupEntity(vars["entity"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	rec, err := h.Store.Get(r.Context(), entity.Path, vars["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	out := cloneRecord(rec)
	out["derivedStatus"] = services.Derive(rec, entity.Filter.Rules)
	respondJSON(w, http.StatusOK, out)
}

// ChangeStatus serves PUT /{entity}/{id}/status: the manual status path
// behind the confirm modal and the status dropdown.
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity, err := services.LookupEntity(vars["entity"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req services.StatusChangeRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.RecordID = vars["id"]

	h.applyTransition(w, r, entity, req)
}

// applyTransition runs the shared transition path: load, apply, patch, audit.
func (h *Handler) applyTransition(w http.ResponseWriter, r *http.Request, entity services.Entity, req services.StatusChangeRequest) {
	actor := middleware.ActorFromRequest(r)

	rec, err := h.Store.Get(r.Context(), entity.Path, req.RecordID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	before := services.Derive(rec, entity.Filter.Rules)

	fields, err := services.Apply(rec, req, entity.Transitions, actor)
	if err != nil {
		if errors.Is(err, services.ErrUnknownStatus) {
			respondValidation(w, map[string]string{"status": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if fields == nil {
		// No-op: already at the requested status, or suppressed by a pin
		respondJSON(w, http.StatusOK, map[string]interface{}{"updated": false, "status": before})
		return
	}

	if err := h.Store.Update(r.Context(), entity.Path, req.RecordID, fields); err != nil {
		respondStoreError(w, err)
		return
	}

	services.RecordStatusChange(entity.Name, req.RecordID, before, req.Status, req.Manual, actor)
	respondJSON(w, http.StatusOK, map[string]interface{}{"updated": true, "status": req.Status})
}

// filterStateFromQuery builds the screen's filter state from query
// parameters; absent values fall back to defaults.
func filterStateFromQuery(r *http.Request) models.FilterState {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	return models.FilterState{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Category:  q.Get("category"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Page:      page,
		PageSize:  pageSize,
	}.Normalize()
}

func withDerivedStatus(records []models.Record, rules services.StatusRules) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		c := cloneRecord(rec)
		c["derivedStatus"] = services.Derive(rec, rules)
		out = append(out, c)
	}
	return out
}

func cloneRecord(rec models.Record) models.Record {
	c := make(models.Record, len(rec)+1)
	for k, v := range rec {
		c[k] = v
	}
	return c
}
