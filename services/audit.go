package services

import (
	"fmt"
	"log"
	"time"

	"handyhub/backend/database"
	"handyhub/backend/models"
)

// RecordStatusChange appends a status change to the local audit log. Audit
// failures are logged and swallowed: the store write already succeeded and
// must not be reported as failed because of local bookkeeping.
func RecordStatusChange(entity, recordID, fromStatus, toStatus string, manual bool, actor models.Actor) {
	_, err := database.DB.Exec(`
		INSERT INTO status_audit (entity, record_id, from_status, to_status, manual, admin_email, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entity, recordID, fromStatus, toStatus, manual, actor.Email, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		log.Printf("Warning: failed to record audit entry for %s/%s: %v", entity, recordID, err)
	}
}

// GetAuditEntries returns recent status changes, newest first. A non-empty
// entity narrows the result to one screen's records.
func GetAuditEntries(entity string, limit int) ([]models.AuditEntry, error) {
	if limit < 1 {
		limit = 100
	}

	query := `
		SELECT id, entity, record_id, from_status, to_status, manual, admin_email, changed_at
		FROM status_audit
	`
	args := []interface{}{}
	if entity != "" {
		query += " WHERE entity = ?"
		args = append(args, entity)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		err := rows.Scan(&e.ID, &e.Entity, &e.RecordID, &e.FromStatus, &e.ToStatus, &e.Manual, &e.AdminEmail, &e.ChangedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
