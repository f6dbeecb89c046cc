package migrations

import "database/sql"

// BaseSchema creates the saved filter preset table.
func BaseSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS saved_filters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			admin_id TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			filter_config TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`)
	return err
}

// AddStatusAudit creates the status-change audit log.
func AddStatusAudit(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS status_audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity TEXT NOT NULL,
			record_id TEXT NOT NULL,
			from_status TEXT NOT NULL,
			to_status TEXT NOT NULL,
			manual BOOLEAN NOT NULL DEFAULT 0,
			admin_email TEXT NOT NULL,
			changed_at TEXT NOT NULL
		);
	`)
	return err
}
