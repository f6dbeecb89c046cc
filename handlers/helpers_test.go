package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"

	"handyhub/backend/database"
	"handyhub/backend/middleware"
	"handyhub/backend/migrations"
	"handyhub/backend/models"
	"handyhub/backend/store"
)

// fakeNotifier records outbound email instead of sending it.
type fakeNotifier struct {
	ticketReplies []fakeEmail
	verifications []fakeEmail
	err           error
}

type fakeEmail struct {
	To       string
	Status   string
	Response string
}

func (f *fakeNotifier) SendTicketReply(_ context.Context, to, _, _, _, response, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.ticketReplies = append(f.ticketReplies, fakeEmail{To: to, Response: response})
	return nil
}

func (f *fakeNotifier) SendVerificationDecision(_ context.Context, to, _, status, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.verifications = append(f.verifications, fakeEmail{To: to, Status: status})
	return nil
}

var testActor = models.Actor{
	ID:    "admin-test",
	Email: "admin@handyhub.app",
	Name:  "Test Admin",
	Role:  models.RoleMasterAdmin,
}

// newTestHandler builds a handler over the in-memory store and a local test
// database, plus the router the production server uses.
func newTestHandler(t *testing.T) (*Handler, *store.Memory, *fakeNotifier, *mux.Router) {
	t.Helper()

	os.Setenv("TEST_DB", "1")
	if err := database.InitDB(); err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}
	if err := migrations.RunMigrations(database.DB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	for _, table := range []string{"saved_filters", "status_audit"} {
		if _, err := database.DB.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	mem := store.NewMemory()
	notifier := &fakeNotifier{}
	h := New(mem, notifier)

	r := mux.NewRouter()
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/{entity:handymen|users|jobs|tickets}", h.ListRecords).Methods("GET")
	r.HandleFunc("/{entity:handymen|users|jobs|tickets}/export", h.ExportRecords).Methods("GET")
	r.HandleFunc("/{entity:handymen|users|jobs|tickets}/{id}", h.GetRecord).Methods("GET")
	r.HandleFunc("/{entity:handymen|users|jobs|tickets}/{id}/status", h.ChangeStatus).Methods("PUT")
	r.HandleFunc("/handymen/{id}/documents/{doc}", h.ReviewDocument).Methods("PUT")
	r.HandleFunc("/handymen/{id}/phone", h.UpdateHandymanPhone).Methods("PUT")
	r.HandleFunc("/users/{id}/phone", h.UpdateUserPhone).Methods("PUT")
	r.HandleFunc("/jobs/{id}", h.UpdateJob).Methods("PUT")
	r.HandleFunc("/tickets/{id}/replies", h.ReplyToTicket).Methods("POST")
	r.HandleFunc("/admins", h.ListAdmins).Methods("GET")
	r.HandleFunc("/admins", h.CreateAdmin).Methods("POST")
	r.HandleFunc("/admins/{id}", h.UpdateAdmin).Methods("PUT")
	r.HandleFunc("/admins/{id}", h.DeleteAdmin).Methods("DELETE")
	r.HandleFunc("/filters", h.GetSavedFilters).Methods("GET")
	r.HandleFunc("/filters", h.CreateSavedFilter).Methods("POST")
	r.HandleFunc("/filters/{id}", h.GetSavedFilter).Methods("GET")
	r.HandleFunc("/filters/{id}", h.UpdateSavedFilter).Methods("PUT")
	r.HandleFunc("/filters/{id}", h.DeleteSavedFilter).Methods("DELETE")
	r.HandleFunc("/audit", h.GetAuditEntries).Methods("GET")

	return h, mem, notifier, r
}

// doRequest performs a request against the test router as the test actor.
func doRequest(t *testing.T, r *mux.Router, method, url string, body interface{}) *httptest.ResponseRecorder {
	return doRequestAs(t, r, method, url, body, testActor)
}

func doRequestAs(t *testing.T, r *mux.Router, method, url string, body interface{}, actor models.Actor) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}

// seed inserts a record directly into the memory store.
func seed(t *testing.T, mem *store.Memory, path, id string, fields map[string]interface{}) {
	t.Helper()
	if err := mem.Set(context.Background(), path, id, fields); err != nil {
		t.Fatalf("Failed to seed %s/%s: %v", path, id, err)
	}
}

func mustStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}
