package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema bootstrap for the five application tables.  All timestamps are
// stored as UTC RFC3339 strings written by the application, which keeps the
// two store backends scan-compatible.  Event dates are calendar dates in
// YYYY-MM-DD form, normalized on input.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		date VARCHAR(10) NOT NULL,
		time VARCHAR(32) NULL,
		location VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		image_filename VARCHAR(255) NULL,
		max_attendees INT NOT NULL DEFAULT 100,
		ticket_price DOUBLE NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
		created_at VARCHAR(32) NOT NULL,
		updated_at VARCHAR(32) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		event_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		registered_at VARCHAR(32) NOT NULL,
		KEY idx_registrations_event (event_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS pending_events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		date VARCHAR(10) NOT NULL,
		time VARCHAR(32) NULL,
		location VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		image_filename VARCHAR(255) NULL,
		max_attendees INT NOT NULL DEFAULT 100,
		ticket_price DOUBLE NOT NULL DEFAULT 0,
		created_by VARCHAR(255) NOT NULL DEFAULT 'User',
		user_email VARCHAR(255) NOT NULL DEFAULT 'user@example.com',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at VARCHAR(32) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		sent_at VARCHAR(32) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		image_filename TEXT NULL,
		max_attendees INTEGER NOT NULL DEFAULT 100,
		ticket_price REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'upcoming',
		created_at TEXT NOT NULL,
		updated_at TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		registered_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_registrations_event ON registrations (event_id)`,
	`CREATE TABLE IF NOT EXISTS pending_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		image_filename TEXT NULL,
		max_attendees INTEGER NOT NULL DEFAULT 100,
		ticket_price REAL NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL DEFAULT 'User',
		user_email TEXT NOT NULL DEFAULT 'user@example.com',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		sent_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
}

// Bootstrap creates the application tables for the given driver if they do
// not already exist.
func Bootstrap(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case "mysql":
		stmts = mysqlSchema
	case "sqlite":
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported db driver: %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
