package middleware

import (
	"net/http"
	"os"
	"strings"
)

// defaultOrigins are the dashboard hosts allowed when CORS_ALLOWED_ORIGINS
// is not set.
var defaultOrigins = []string{
	"https://admin.handyhub.app",     // Production dashboard
	"https://handyhub-admin.web.app", // Firebase hosting
	"http://localhost:5173",          // Vite development server
	"http://localhost:3000",          // Alternative local development
	"http://localhost:8080",          // Backend port
}

// IsDevelopment reports whether the backend runs outside production.
// Deployments set one of these variables to "production".
func IsDevelopment() bool {
	for _, key := range []string{"APP_ENV", "ENVIRONMENT", "ENV"} {
		if os.Getenv(key) == "production" {
			return false
		}
	}
	return true
}

// EnableCORS answers preflight requests and sets the CORS headers for the
// dashboard origins. Unknown origins are echoed back only in development.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedOrigins()

		origin := r.Header.Get("Origin")
		switch {
		case originAllowed(origin, allowed):
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case origin != "" && IsDevelopment():
			w.Header().Set("Access-Control-Allow-Origin", origin)
		default:
			w.Header().Set("Access-Control-Allow-Origin", allowed[0])
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, X-Requested-With, Accept, Origin, Access-Control-Request-Method, Access-Control-Request-Headers")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return defaultOrigins
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if origin == a {
			return true
		}
	}
	return false
}
