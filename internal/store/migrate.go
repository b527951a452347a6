package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS models (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL UNIQUE,
			created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS unigram_counts (
			model_id INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			tag      TEXT NOT NULL,
			count    INTEGER NOT NULL,
			PRIMARY KEY (model_id, tag)
		);`,
		`CREATE TABLE IF NOT EXISTS bigram_counts (
			model_id INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			from_tag TEXT NOT NULL,
			to_tag   TEXT NOT NULL,
			count    INTEGER NOT NULL,
			PRIMARY KEY (model_id, from_tag, to_tag)
		);`,
		`CREATE TABLE IF NOT EXISTS emission_counts (
			model_id INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			tag      TEXT NOT NULL,
			word     TEXT NOT NULL,
			count    INTEGER NOT NULL,
			PRIMARY KEY (model_id, tag, word)
		);`,
		`CREATE TABLE IF NOT EXISTS boundary_counts (
			model_id INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			tag      TEXT NOT NULL,
			starting INTEGER NOT NULL DEFAULT 0,
			ending   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (model_id, tag)
		);`,
		"CREATE INDEX IF NOT EXISTS idx_emission_word ON emission_counts(model_id, word);",
		// meta: last seen mtime of the corpus each model was trained from
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			path  TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}
	return nil
}
