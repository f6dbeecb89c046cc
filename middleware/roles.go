package middleware

import (
	"log"
	"net/http"

	"handyhub/backend/models"
)

// RoleHierarchy orders dashboard roles; higher numbers may do more.
var RoleHierarchy = map[string]int{
	models.RoleStaffMember: 1,
	models.RoleMasterAdmin: 2,
}

// IsRoleAtLeast checks if a role is at least at the required level. Unknown
// roles only match themselves.
func IsRoleAtLeast(actorRole, requiredRole string) bool {
	actorLevel, actorKnown := RoleHierarchy[actorRole]
	requiredLevel, requiredKnown := RoleHierarchy[requiredRole]
	if !actorKnown || !requiredKnown {
		return actorRole == requiredRole
	}
	return actorLevel >= requiredLevel
}

// RequireRole ensures the acting admin holds at least the given role.
// Destructive admin-management operations demand Master Admin.
func RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromRequest(r)
			if actor.ID == "" {
				http.Error(w, "Unauthorized: No actor found", http.StatusUnauthorized)
				return
			}
			if !IsRoleAtLeast(actor.Role, requiredRole) {
				log.Printf("Actor %s (%s) denied %s %s: requires %s", actor.Email, actor.Role, r.Method, r.URL.Path, requiredRole)
				http.Error(w, "Forbidden: Insufficient role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
