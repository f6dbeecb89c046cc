package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB holds the local operational database: saved filter presets and the
// status-change audit log. Dashboard entity data lives in the realtime
// document store, not here.
var DB *sql.DB

func InitDB() error {
	var dsn string
	if os.Getenv("FLY_APP_NAME") != "" {
		// Running on Fly.io, use the mounted volume
		dsn = filepath.Join("/data", "handyhub.db") + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	} else if os.Getenv("TEST_DB") == "1" {
		// Shared cache so every pooled connection sees the same in-memory DB
		dsn = "file::memory:?cache=shared&_busy_timeout=10000"
	} else {
		dsn = "./handyhub.db?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	}

	var err error
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	return DB.Ping()
}
