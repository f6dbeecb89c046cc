// Package store wraps the hosted realtime document database the dashboard
// reads and mutates. Collections are untyped document trees keyed by entity
// root ("Handyman", "User", "Job", "support_requests", "admin"); every write
// is a field-level patch, never a full-record overwrite.
package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"handyhub/backend/models"
)

// Store is the persistence collaborator the handlers and the watcher consume.
type Store interface {
	// Collection reads a full collection snapshot, sorted by record key for
	// deterministic pipeline input.
	Collection(ctx context.Context, path string) ([]models.Record, error)
	// Get reads one record, nil when absent.
	Get(ctx context.Context, path, id string) (models.Record, error)
	// Update applies a field-level patch to one record.
	Update(ctx context.Context, path, id string, fields map[string]interface{}) error
	// Set replaces one record wholesale. Used only for record creation.
	Set(ctx context.Context, path, id string, value interface{}) error
	// Remove deletes one record.
	Remove(ctx context.Context, path, id string) error
}

// Firebase is the production Store over the Firebase Realtime Database.
type Firebase struct {
	client *db.Client
}

// NewFirebase initializes the Admin SDK database client. Credentials follow
// the same environment fallbacks as the auth middleware; databaseURL comes
// from FIREBASE_DATABASE_URL.
func NewFirebase(ctx context.Context, databaseURL string) (*Firebase, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL is not set")
	}

	config := &firebase.Config{DatabaseURL: databaseURL}

	var opts []option.ClientOption
	if creds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %w", err)
	}

	log.Printf("Connected to realtime database at %s", databaseURL)
	return &Firebase{client: client}, nil
}

func (f *Firebase) Collection(ctx context.Context, path string) ([]models.Record, error) {
	var snapshot map[string]map[string]interface{}
	if err := f.client.NewRef(path).Get(ctx, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", path, err)
	}
	return sortedRecords(snapshot), nil
}

func (f *Firebase) Get(ctx context.Context, path, id string) (models.Record, error) {
	var fields map[string]interface{}
	if err := f.client.NewRef(path).Child(id).Get(ctx, &fields); err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", path, id, err)
	}
	if fields == nil {
		return nil, nil
	}
	rec := models.Record(fields)
	rec["id"] = id
	return rec, nil
}

func (f *Firebase) Update(ctx context.Context, path, id string, fields map[string]interface{}) error {
	if err := f.client.NewRef(path).Child(id).Update(ctx, fields); err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", path, id, err)
	}
	return nil
}

func (f *Firebase) Set(ctx context.Context, path, id string, value interface{}) error {
	if err := f.client.NewRef(path).Child(id).Set(ctx, value); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", path, id, err)
	}
	return nil
}

func (f *Firebase) Remove(ctx context.Context, path, id string) error {
	if err := f.client.NewRef(path).Child(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", path, id, err)
	}
	return nil
}

// sortedRecords flattens a snapshot into records ordered by store key.
func sortedRecords(snapshot map[string]map[string]interface{}) []models.Record {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return models.CollectionToRecords(keys, snapshot)
}
