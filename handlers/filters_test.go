package handlers

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"

	"handyhub/backend/models"
)

func createFilterAs(t *testing.T, r *mux.Router, actor models.Actor) models.SavedFilter {
	t.Helper()

	body := map[string]interface{}{
		"name":         "Open plumbing",
		"resourceType": "jobs",
		"filterConfig": `{"status":"Open","category":"Plumbing"}`,
		"isDefault":    true,
	}
	rr := doRequestAs(t, r, "POST", "/filters", body, actor)
	mustStatus(t, rr, http.StatusCreated)

	var filter models.SavedFilter
	decodeResponse(t, rr, &filter)
	return filter
}

func TestSavedFilterLifecycle(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	filter := createFilterAs(t, r, testActor)
	if filter.AdminID != testActor.ID || !filter.IsDefault {
		t.Errorf("Unexpected created filter %+v", filter)
	}

	rr := doRequest(t, r, "GET", "/filters?resourceType=jobs", nil)
	mustStatus(t, rr, http.StatusOK)
	var filters []models.SavedFilter
	decodeResponse(t, rr, &filters)
	if len(filters) != 1 || filters[0].ID != filter.ID {
		t.Errorf("Expected the created filter, got %+v", filters)
	}

	update := map[string]interface{}{
		"name":         "Renamed",
		"filterConfig": `{"status":"Done"}`,
		"isDefault":    false,
	}
	rr = doRequest(t, r, "PUT", "/filters/"+filter.ID, update)
	mustStatus(t, rr, http.StatusOK)

	rr = doRequest(t, r, "GET", "/filters/"+filter.ID, nil)
	mustStatus(t, rr, http.StatusOK)
	var fetched models.SavedFilter
	decodeResponse(t, rr, &fetched)
	if fetched.Name != "Renamed" || fetched.IsDefault {
		t.Errorf("Unexpected updated filter %+v", fetched)
	}

	rr = doRequest(t, r, "DELETE", "/filters/"+filter.ID, nil)
	mustStatus(t, rr, http.StatusOK)

	rr = doRequest(t, r, "GET", "/filters/"+filter.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rr.Code)
	}
}

func TestSavedFilterOwnership(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	owner := models.Actor{ID: "staff-1", Email: "staff@handyhub.app", Role: models.RoleStaffMember}
	other := models.Actor{ID: "staff-2", Email: "other@handyhub.app", Role: models.RoleStaffMember}

	filter := createFilterAs(t, r, owner)

	// Another staff member cannot read, modify, or delete it
	rr := doRequestAs(t, r, "GET", "/filters/"+filter.ID, nil, other)
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 reading another admin's filter, got %d", rr.Code)
	}

	update := map[string]interface{}{"name": "Hijacked", "filterConfig": `{}`}
	rr = doRequestAs(t, r, "PUT", "/filters/"+filter.ID, update, other)
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 updating another admin's filter, got %d", rr.Code)
	}

	rr = doRequestAs(t, r, "DELETE", "/filters/"+filter.ID, nil, other)
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 deleting another admin's filter, got %d", rr.Code)
	}

	// A master admin may read it
	rr = doRequestAs(t, r, "GET", "/filters/"+filter.ID, nil, testActor)
	mustStatus(t, rr, http.StatusOK)
}

func TestSavedFilterValidation(t *testing.T) {
	_, _, _, r := newTestHandler(t)

	body := map[string]interface{}{
		"name":         "",
		"resourceType": "jobs",
		"filterConfig": `{}`,
	}
	rr := doRequest(t, r, "POST", "/filters", body)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank name, got %d", rr.Code)
	}

	body["name"] = "Bad entity"
	body["resourceType"] = "invoices"
	rr = doRequest(t, r, "POST", "/filters", body)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown resource type, got %d", rr.Code)
	}

	rr = doRequest(t, r, "GET", "/filters", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing resourceType, got %d", rr.Code)
	}
}
