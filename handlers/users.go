package handlers

import (
	"net/http"

	"handyhub/backend/models"
)

// UpdateUserPhone serves PUT /users/{id}/phone: mark a user's phone
// verification as passed (true) or failed ("fail"). Suspecting or clearing a
// user goes through the generic status endpoint as a manual change.
func (h *Handler) UpdateUserPhone(w http.ResponseWriter, r *http.Request) {
	h.updatePhoneFlag(w, r, models.PathUser)
}
