package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Readers keep working while an ingestion transaction is open
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			description TEXT NOT NULL,
			is_root INTEGER NOT NULL DEFAULT 0,
			label_fold TEXT NOT NULL DEFAULT '',
			description_fold TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS chains (
			node_id TEXT NOT NULL,
			chain_index INTEGER NOT NULL,
			ancestor_id TEXT NOT NULL,
			size INTEGER NOT NULL,
			children TEXT NOT NULL,
			PRIMARY KEY (node_id, chain_index),
			FOREIGN KEY (node_id) REFERENCES nodes(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_position ON nodes(position);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_root ON nodes(is_root, position);`,
		`CREATE INDEX IF NOT EXISTS idx_chains_size ON chains(chain_index, size);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Databases created before search folding lack these columns.
	// Rows stay unmatched until the next ingestion fills them.
	for _, col := range []string{"label_fold", "description_fold"} {
		if err := addColumnIfMissing(db, "nodes", col, "TEXT NOT NULL DEFAULT ''"); err != nil {
			return err
		}
	}

	return nil
}

func addColumnIfMissing(db *sql.DB, table, column, decl string) error {
	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	// Close before ALTER so the schema change does not wait on this read.
	_ = rows.Close()

	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	return nil
}
