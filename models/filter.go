package models

import "time"

// FilterState is the combined set of active filter, search, and pagination
// parameters for one record-list screen. It lives only for the request that
// carries it; screens reset to defaults when re-entered.
type FilterState struct {
	Search    string `json:"search"`
	Status    string `json:"status"`
	Category  string `json:"category"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
}

// DefaultPageSize matches the dashboard's entries-per-page default.
const DefaultPageSize = 15

// Normalize fills zero values with defaults so that PageSize >= 1 and
// Page >= 1 always hold downstream.
func (f FilterState) Normalize() FilterState {
	if f.Status == "" {
		f.Status = StatusAll
	}
	if f.Category == "" {
		f.Category = StatusAll
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// SavedFilter is a stored filter preset for one admin and entity type, kept
// in the local database rather than the document store.
type SavedFilter struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AdminID      string    `json:"adminId"`
	ResourceType string    `json:"resourceType"` // handymen, users, jobs, tickets
	FilterConfig string    `json:"filterConfig"` // JSON-encoded FilterState
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
