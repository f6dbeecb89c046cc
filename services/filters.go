package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"handyhub/backend/database"
	"handyhub/backend/models"
)

// CreateSavedFilter stores a new filter preset for an admin and entity type.
func CreateSavedFilter(adminID, name, resourceType, filterConfig string, isDefault bool) (*models.SavedFilter, error) {
	if _, err := LookupEntity(resourceType); err != nil {
		return nil, err
	}

	// Validate the filter config against the FilterState shape
	var state models.FilterState
	if err := json.Unmarshal([]byte(filterConfig), &state); err != nil {
		return nil, fmt.Errorf("invalid filter configuration JSON: %w", err)
	}

	id := uuid.NewString()
	now := time.Now()

	// Only one default preset per admin and entity type
	if isDefault {
		_, err := database.DB.Exec(`
			UPDATE saved_filters
			SET is_default = 0
			WHERE admin_id = ? AND resource_type = ?
		`, adminID, resourceType)
		if err != nil {
			return nil, fmt.Errorf("failed to update existing default filters: %w", err)
		}
	}

	_, err := database.DB.Exec(`
		INSERT INTO saved_filters (id, name, admin_id, resource_type, filter_config, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, name, adminID, resourceType, filterConfig, isDefault, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saved filter: %w", err)
	}

	return &models.SavedFilter{
		ID:           id,
		Name:         name,
		AdminID:      adminID,
		ResourceType: resourceType,
		FilterConfig: filterConfig,
		IsDefault:    isDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetSavedFilters retrieves an admin's filter presets for one entity type.
func GetSavedFilters(adminID, resourceType string) ([]models.SavedFilter, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, admin_id, resource_type, filter_config, is_default, created_at, updated_at
		FROM saved_filters
		WHERE admin_id = ? AND resource_type = ?
	`, adminID, resourceType)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved filters: %w", err)
	}
	defer rows.Close()

	var filters []models.SavedFilter
	for rows.Next() {
		var f models.SavedFilter
		err := rows.Scan(&f.ID, &f.Name, &f.AdminID, &f.ResourceType, &f.FilterConfig, &f.IsDefault, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved filter: %w", err)
		}
		filters = append(filters, f)
	}
	return filters, rows.Err()
}

// GetSavedFilterByID retrieves one filter preset.
func GetSavedFilterByID(id string) (*models.SavedFilter, error) {
	var f models.SavedFilter
	err := database.DB.QueryRow(`
		SELECT id, name, admin_id, resource_type, filter_config, is_default, created_at, updated_at
		FROM saved_filters
		WHERE id = ?
	`, id).Scan(&f.ID, &f.Name, &f.AdminID, &f.ResourceType, &f.FilterConfig, &f.IsDefault, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("saved filter not found")
		}
		return nil, fmt.Errorf("failed to query saved filter: %w", err)
	}
	return &f, nil
}

// GetDefaultFilter retrieves the default preset for an admin and entity
// type, or nil when none is set.
func GetDefaultFilter(adminID, resourceType string) (*models.SavedFilter, error) {
	var f models.SavedFilter
	err := database.DB.QueryRow(`
		SELECT id, name, admin_id, resource_type, filter_config, is_default, created_at, updated_at
		FROM saved_filters
		WHERE admin_id = ? AND resource_type = ? AND is_default = 1
	`, adminID, resourceType).Scan(&f.ID, &f.Name, &f.AdminID, &f.ResourceType, &f.FilterConfig, &f.IsDefault, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query default filter: %w", err)
	}
	return &f, nil
}

// UpdateSavedFilter updates a preset's name, config, and default flag.
func UpdateSavedFilter(id, name, filterConfig string, isDefault bool) (*models.SavedFilter, error) {
	f, err := GetSavedFilterByID(id)
	if err != nil {
		return nil, err
	}

	var state models.FilterState
	if err := json.Unmarshal([]byte(filterConfig), &state); err != nil {
		return nil, fmt.Errorf("invalid filter configuration JSON: %w", err)
	}

	now := time.Now()

	if isDefault {
		_, err = database.DB.Exec(`
			UPDATE saved_filters
			SET is_default = 0
			WHERE admin_id = ? AND resource_type = ? AND id != ?
		`, f.AdminID, f.ResourceType, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update existing default filters: %w", err)
		}
	}

	_, err = database.DB.Exec(`
		UPDATE saved_filters
		SET name = ?, filter_config = ?, is_default = ?, updated_at = ?
		WHERE id = ?
	`, name, filterConfig, isDefault, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update saved filter: %w", err)
	}

	f.Name = name
	f.FilterConfig = filterConfig
	f.IsDefault = isDefault
	f.UpdatedAt = now
	return f, nil
}

// DeleteSavedFilter removes a preset.
func DeleteSavedFilter(id string) error {
	result, err := database.DB.Exec(`DELETE FROM saved_filters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved filter: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("saved filter not found")
	}
	return nil
}
