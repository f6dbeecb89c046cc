package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"handyhub/backend/models"
)

// Context keys for the authenticated actor
type contextKey string

const ActorKey contextKey = "actor"

var firebaseAuth *auth.Client

// InitializeFirebase initializes the Firebase Admin SDK auth client.
// Credentials are read from FIREBASE_SERVICE_ACCOUNT_JSON or the base64
// variant; with neither set, token verification is disabled (development).
func InitializeFirebase() error {
	log.Println("Starting Firebase initialization...")

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	config := &firebase.Config{ProjectID: projectID}

	if creds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); creds != "" {
		log.Println("Using JSON Firebase credentials from environment")
		return initAuthClient(config, option.WithCredentialsJSON([]byte(creds)))
	}

	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); encoded != "" {
		log.Println("Using base64-encoded Firebase credentials from environment")
		credBytes, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.Printf("Error decoding base64 Firebase credentials: %v", err)
			return err
		}
		return initAuthClient(config, option.WithCredentialsJSON(credBytes))
	}

	log.Println("No Firebase credentials found; running in development mode with auth checks disabled")
	return nil
}

func initAuthClient(config *firebase.Config, opts ...option.ClientOption) error {
	app, err := firebase.NewApp(context.Background(), config, opts...)
	if err != nil {
		log.Printf("Error initializing Firebase app: %v", err)
		return err
	}

	firebaseAuth, err = app.Auth(context.Background())
	if err != nil {
		log.Printf("Error getting Firebase Auth client: %v", err)
		return err
	}

	log.Println("Firebase Admin SDK initialized successfully")
	return nil
}

// AuthMiddleware verifies Firebase JWT tokens from the Authorization header
// and places the acting admin on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth for OPTIONS requests (CORS preflight)
		if r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}

		// If Firebase auth is not initialized, skip token verification (dev mode)
		if firebaseAuth == nil {
			actor := models.Actor{
				ID:    "dev-admin",
				Email: "dev@handyhub.local",
				Name:  "Dev Admin",
				Role:  models.RoleMasterAdmin,
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := verifyToken(r.Context(), idToken)
		if err != nil {
			log.Printf("Error verifying token: %v", err)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		actor := models.Actor{ID: token.UID}
		if email, ok := token.Claims["email"].(string); ok {
			actor.Email = email
		}
		if name, ok := token.Claims["name"].(string); ok {
			actor.Name = name
		}
		if role, ok := token.Claims["role"].(string); ok {
			actor.Role = role
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor stamps the acting admin onto a context.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFromRequest retrieves the acting admin from the request context.
func ActorFromRequest(r *http.Request) models.Actor {
	actor, ok := r.Context().Value(ActorKey).(models.Actor)
	if !ok {
		return models.Actor{}
	}
	return actor
}

// extractToken gets the token from the Authorization header.
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// verifyToken verifies the Firebase JWT token.
func verifyToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, errors.New("Firebase auth client not initialized")
	}
	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}
	return token, nil
}
