// Package database provides sqlite connection management for the three
// application databases: history (draws), combinations (generated output),
// and cache (ephemeral statistics snapshots).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Profile selects the PRAGMA configuration for a database.
type Profile string

const (
	// ProfileStandard - balanced configuration for durable data.
	ProfileStandard Profile = "standard"
	// ProfileCache - maximum speed for data that can be recomputed.
	ProfileCache Profile = "cache"
)

// DB wraps a sqlite connection with profile-specific configuration.
type DB struct {
	conn    *sql.DB
	path    string
	profile Profile
	name    string
}

// Config holds database configuration.
type Config struct {
	Path    string
	Profile Profile
	Name    string // "history", "combinations", "cache" - selects the schema
}

// New opens a database connection with the profile's PRAGMAs applied and the
// parent directory created as needed. file: URIs pass through untouched so
// tests can use in-memory databases.
func New(cfg Config) (*DB, error) {
	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		cfg.Path = absPath
	}

	if cfg.Profile == "" {
		cfg.Profile = ProfileStandard
	}

	conn, err := sql.Open("sqlite", buildConnectionString(cfg.Path, cfg.Profile))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}

	configureConnectionPool(conn, cfg.Profile)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &DB{
		conn:    conn,
		path:    cfg.Path,
		profile: cfg.Profile,
		name:    cfg.Name,
	}, nil
}

// buildConnectionString creates the sqlite connection string with
// profile-specific PRAGMAs. All databases run in WAL mode.
func buildConnectionString(path string, profile Profile) string {
	connStr := path + "?_pragma=journal_mode(WAL)"

	switch profile {
	case ProfileCache:
		connStr += "&_pragma=synchronous(OFF)"
		connStr += "&_pragma=auto_vacuum(FULL)"
		connStr += "&_pragma=temp_store(MEMORY)"
	default:
		connStr += "&_pragma=synchronous(NORMAL)"
		connStr += "&_pragma=auto_vacuum(INCREMENTAL)"
		connStr += "&_pragma=temp_store(MEMORY)"
	}

	connStr += "&_pragma=foreign_keys(1)"
	connStr += "&_pragma=wal_autocheckpoint(1000)"

	return connStr
}

// configureConnectionPool sets pool limits for long-running operation.
func configureConnectionPool(conn *sql.DB, profile Profile) {
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(24 * time.Hour)
	conn.SetConnMaxIdleTime(30 * time.Minute)

	if profile == ProfileCache {
		conn.SetMaxOpenConns(5)
		conn.SetMaxIdleConns(1)
	}
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for repositories.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Name returns the database name.
func (db *DB) Name() string {
	return db.name
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Migrate applies the schema file matching the database name. The schema
// files under internal/database/schemas/ are the single source of truth for
// each database's structure.
func (db *DB) Migrate() error {
	schemaFiles := map[string]string{
		"history":      "history_schema.sql",
		"combinations": "combinations_schema.sql",
		"cache":        "cache_schema.sql",
	}
	schemaFile, ok := schemaFiles[db.name]
	if !ok {
		return nil
	}

	schemasDir, err := findSchemasDirectory()
	if err != nil {
		return nil // tables may already exist
	}

	content, err := os.ReadFile(filepath.Join(schemasDir, schemaFile))
	if err != nil {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for schema %s: %w", schemaFile, err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("failed to execute schema %s for %s: %w", schemaFile, db.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema %s: %w", schemaFile, err)
	}
	return nil
}

// findSchemasDirectory locates the schemas directory relative to this source
// file, so migration works regardless of working directory (tests, CI,
// production).
func findSchemasDirectory() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get caller information")
	}
	schemasDir := filepath.Join(filepath.Dir(currentFile), "schemas")
	if info, err := os.Stat(schemasDir); err != nil {
		return "", fmt.Errorf("schemas directory not found at %s: %w", schemasDir, err)
	} else if !info.IsDir() {
		return "", fmt.Errorf("schemas path is not a directory: %s", schemasDir)
	}
	return schemasDir, nil
}
