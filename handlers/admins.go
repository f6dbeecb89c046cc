package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"handyhub/backend/middleware"
	"handyhub/backend/models"
	"handyhub/backend/security"
	"handyhub/backend/services"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// adminRequest is the create/update form for staff accounts.
type adminRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

// ListAdmins serves GET /admins. Password hashes never leave the backend.
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.Collection(r.Context(), models.PathAdmin)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	admins := make([]models.Admin, 0, len(records))
	for _, rec := range records {
		admins = append(admins, adminFromRecord(rec))
	}
	respondJSON(w, http.StatusOK, admins)
}

// CreateAdmin serves POST /admins. The password is stored as a bcrypt hash.
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if errs := validateAdmin(req, true); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			respondValidation(w, map[string]string{"password": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	admin := models.Admin{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.Store.Set(r.Context(), models.PathAdmin, admin.ID, admin); err != nil {
		respondStoreError(w, err)
		return
	}

	admin.PasswordHash = ""
	respondJSON(w, http.StatusCreated, admin)
}

// UpdateAdmin serves PUT /admins/{id}. A blank password keeps the current
// hash.
func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor := middleware.ActorFromRequest(r)

	var req adminRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if errs := validateAdmin(req, req.Password != ""); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	rec, err := h.Store.Get(r.Context(), models.PathAdmin, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Admin not found", http.StatusNotFound)
		return
	}

	patch := map[string]interface{}{
		"firstName":     req.FirstName,
		"lastName":      req.LastName,
		"email":         strings.ToLower(req.Email),
		"phone":         req.Phone,
		"role":          req.Role,
		"lastUpdated":   time.Now().UTC().Format(time.RFC3339),
		"lastUpdatedBy": services.Stamp(actor, "adminEdit"),
	}
	if req.Password != "" {
		hash, err := security.HashPassword(req.Password)
		if err != nil {
			respondValidation(w, map[string]string{"password": err.Error()})
			return
		}
		patch["passwordHash"] = hash
	}

	if err := h.Store.Update(r.Context(), models.PathAdmin, id, patch); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"updated": true})
}

// DeleteAdmin serves DELETE /admins/{id}. Routed behind the Master Admin
// role check.
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.Store.Get(r.Context(), models.PathAdmin, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if rec == nil {
		http.Error(w, "Admin not found", http.StatusNotFound)
		return
	}

	if err := h.Store.Remove(r.Context(), models.PathAdmin, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// Login serves POST /login: credential verification against the admin
// collection using bcrypt hashes.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.Store.Collection(r.Context(), models.PathAdmin)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, rec := range records {
		if strings.ToLower(rec.String("email")) != email {
			continue
		}
		if !security.CheckPassword(rec.String("passwordHash"), req.Password) {
			break
		}
		respondJSON(w, http.StatusOK, adminFromRecord(rec))
		return
	}

	// Same response for unknown email and wrong password
	http.Error(w, "Invalid email or password", http.StatusUnauthorized)
}

func validateAdmin(req adminRequest, requirePassword bool) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if !emailPattern.MatchString(req.Email) {
		errs["email"] = "A valid email is required"
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		errs["phone"] = "Phone number format is invalid"
	}
	if req.Role != models.RoleMasterAdmin && req.Role != models.RoleStaffMember {
		errs["role"] = "Role must be Master Admin or Staff Member"
	}
	if requirePassword && len(req.Password) < security.MinPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

func adminFromRecord(rec models.Record) models.Admin {
	return models.Admin{
		ID:          rec.ID(),
		FirstName:   rec.String("firstName"),
		LastName:    rec.String("lastName"),
		Email:       rec.String("email"),
		Phone:       rec.String("phone"),
		Role:        rec.String("role"),
		CreatedAt:   rec.String("createdAt"),
		LastUpdated: rec.String("lastUpdated"),
	}
}
