package database

import "database/sql"

// Schema version for migrations
const currentSchemaVersion = 2

// SQL migration scripts
var migrations = []migration{
	{
		version: 1,
		up: []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			// Single-row table holding the server token
			`CREATE TABLE credentials (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				username TEXT NOT NULL DEFAULT '',
				token TEXT NOT NULL,
				expiry DATETIME,
				saved_at DATETIME NOT NULL
			)`,

			// Last addition list fetched from the server
			`CREATE TABLE additions (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				state TEXT NOT NULL,
				progress REAL NOT NULL DEFAULT 0,
				files_json TEXT NOT NULL DEFAULT '[]',
				position INTEGER NOT NULL DEFAULT 0,
				refreshed_at DATETIME NOT NULL
			)`,

			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
	{
		version: 2,
		up: []string{
			`CREATE TABLE rename_sessions (
				id TEXT PRIMARY KEY,
				addition_id TEXT NOT NULL,
				addition_name TEXT NOT NULL DEFAULT '',
				flow TEXT NOT NULL,
				new_title TEXT NOT NULL,
				season INTEGER,
				delete_untouched INTEGER NOT NULL DEFAULT 0,
				status TEXT NOT NULL,
				error TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL
			)`,
			`CREATE INDEX idx_rename_sessions_addition ON rename_sessions(addition_id)`,
			`CREATE INDEX idx_rename_sessions_created ON rename_sessions(created_at)`,

			`CREATE TABLE rename_files (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id TEXT NOT NULL REFERENCES rename_sessions(id) ON DELETE CASCADE,
				current_name TEXT NOT NULL,
				new_name TEXT NOT NULL
			)`,
			`CREATE INDEX idx_rename_files_session ON rename_files(session_id)`,

			`INSERT INTO schema_version (version) VALUES (2)`,
		},
	},
}

type migration struct {
	version int
	up      []string
}

// applyMigrations applies any pending schema migrations
func applyMigrations(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		// schema_version doesn't exist yet - this is a fresh database
		currentVersion = 0
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}

		// Each migration inserts its own schema_version row
		for _, stmt := range m.up {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
