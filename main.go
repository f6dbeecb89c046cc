package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"handyhub/backend/database"
	"handyhub/backend/handlers"
	"handyhub/backend/middleware"
	"handyhub/backend/migrations"
	"handyhub/backend/models"
	"handyhub/backend/services"
	"handyhub/backend/store"
)

func main() {
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the local database")
	flag.Parse()

	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB

	isDevelopment := middleware.IsDevelopment()
	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Initialize the local database (saved filters, audit log)
	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Running migrations...")
	err = migrations.RunMigrations(database.DB)
	if err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	// Initialize Firebase Admin SDK for token verification
	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase()
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Connect to the realtime document store; without a database URL the
	// backend runs against an in-memory store (development only)
	var docStore store.Store
	if databaseURL := os.Getenv("FIREBASE_DATABASE_URL"); databaseURL != "" {
		docStore, err = store.NewFirebase(context.Background(), databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to document store: %v", err)
		}
	} else if isDevelopment {
		log.Println("Warning: FIREBASE_DATABASE_URL not set, using in-memory store")
		docStore = store.NewMemory()
	} else {
		log.Fatal("FIREBASE_DATABASE_URL is required in production")
	}

	// Email notifier: real sender only when configured
	var notifier services.Notifier
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		from := os.Getenv("MAIL_FROM")
		if from == "" {
			from = "support@handyhub.app"
		}
		notifier = services.NewResendNotifier(apiKey, from)
	} else {
		log.Println("Warning: RESEND_API_KEY not set, email notifications disabled")
		notifier = services.LogNotifier{}
	}

	h := handlers.New(docStore, notifier)

	// Warm the snapshot watcher for the dashboard collections so changes
	// land in the logs; list requests always read fresh snapshots
	watcher := store.NewWatcher(docStore, 30*time.Second)
	for _, entity := range services.Entities {
		go drainSnapshots(watcher, entity.Path)
	}

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r, h)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, h)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router, h *handlers.Handler) {
	// Public routes (no auth required)
	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/login", h.Login).Methods("POST", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Generic record-list screens: handymen, users, jobs, tickets
	protectedRouter.HandleFunc("/{entity:handymen|users|jobs|tickets}", h.ListRecords).Methods("GET")
	protectedRouter.HandleFunc("/{entity:handymen|users|jobs|tickets}/export", h.ExportRecords).Methods("GET")
	protectedRouter.HandleFunc("/{entity:handymen|users|jobs|tickets}/{id}", h.GetRecord).Methods("GET")
	protectedRouter.HandleFunc("/{entity:handymen|users|jobs|tickets}/{id}/status", h.ChangeStatus).Methods("PUT")

	// Handyman verification
	protectedRouter.HandleFunc("/handymen/{id}/documents/{doc}", h.ReviewDocument).Methods("PUT")
	protectedRouter.HandleFunc("/handymen/{id}/phone", h.UpdateHandymanPhone).Methods("PUT")

	// User accounts
	protectedRouter.HandleFunc("/users/{id}/phone", h.UpdateUserPhone).Methods("PUT")

	// Jobs
	protectedRouter.HandleFunc("/jobs/{id}", h.UpdateJob).Methods("PUT")

	// Support tickets
	protectedRouter.HandleFunc("/tickets/{id}/replies", h.ReplyToTicket).Methods("POST")

	// Admin account management
	protectedRouter.HandleFunc("/admins", h.ListAdmins).Methods("GET")
	protectedRouter.HandleFunc("/admins", h.CreateAdmin).Methods("POST")
	protectedRouter.HandleFunc("/admins/{id}", h.UpdateAdmin).Methods("PUT")
	protectedRouter.Handle("/admins/{id}",
		middleware.RequireRole(models.RoleMasterAdmin)(http.HandlerFunc(h.DeleteAdmin))).Methods("DELETE")

	// Saved filter presets
	protectedRouter.HandleFunc("/filters", h.GetSavedFilters).Methods("GET")
	protectedRouter.HandleFunc("/filters", h.CreateSavedFilter).Methods("POST")
	protectedRouter.HandleFunc("/filters/{id}", h.GetSavedFilter).Methods("GET")
	protectedRouter.HandleFunc("/filters/{id}", h.UpdateSavedFilter).Methods("PUT")
	protectedRouter.HandleFunc("/filters/{id}", h.DeleteSavedFilter).Methods("DELETE")

	// Status-change audit log
	protectedRouter.HandleFunc("/audit", h.GetAuditEntries).Methods("GET")
}

// drainSnapshots logs collection changes pushed by the watcher.
func drainSnapshots(w *store.Watcher, path string) {
	for snapshot := range w.Subscribe(context.Background(), path) {
		log.Printf("Snapshot for %s: %d records", path, len(snapshot))
	}
}
