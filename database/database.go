package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mbolis/quick-forms/config"
)

// Open connects to the SQLite database file named by the configuration,
// enables foreign key enforcement and runs any pending migrations.
func Open(cfg config.Config) (db *sql.DB, err error) {
	// the pragma rides on the DSN so every pooled connection enforces
	// foreign keys, not just the first one
	db, err = sql.Open("sqlite3", cfg.DBUrl+"?_foreign_keys=on")
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}
