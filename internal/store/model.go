package store

import (
	"database/sql"

	"github.com/trknhr/hmmtag/internal/counts"
	"github.com/trknhr/hmmtag/internal/logger"
	"github.com/trknhr/hmmtag/internal/model/hmm"
)

// ModelStore persists trained frequency tables so the tagger does not
// retrain on every invocation. Counts are the only thing stored;
// probabilities are rebuilt on load.
type ModelStore interface {
	SaveTables(name string, t hmm.Tables) error
	LoadTables(name string) (*hmm.Tables, bool, error)
	GetLastProcessedMtime(key, path string) (int64, error)
	UpdateMetadata(key, path string, mtime int64) error
}

type SQLModelStore struct {
	db *sql.DB
}

func NewSQLModelStore(db *sql.DB) ModelStore {
	return &SQLModelStore{db: db}
}

func (s *SQLModelStore) SaveTables(name string, t hmm.Tables) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var modelID int64
	err = tx.QueryRow(`
        INSERT INTO models(name) VALUES (?)
        ON CONFLICT(name) DO UPDATE SET created_at = CURRENT_TIMESTAMP
        RETURNING id
    `, name).Scan(&modelID)
	if err != nil {
		return err
	}
	for _, table := range []string{"unigram_counts", "bigram_counts", "emission_counts", "boundary_counts"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE model_id = ?", modelID); err != nil {
			return err
		}
	}

	uniStmt, err := tx.Prepare("INSERT INTO unigram_counts(model_id, tag, count) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer uniStmt.Close()
	for tag, c := range t.Unigram {
		if _, err := uniStmt.Exec(modelID, tag, c); err != nil {
			return err
		}
	}

	biStmt, err := tx.Prepare("INSERT INTO bigram_counts(model_id, from_tag, to_tag, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer biStmt.Close()
	for pair, c := range t.Bigram {
		if _, err := biStmt.Exec(modelID, pair.From, pair.To, c); err != nil {
			return err
		}
	}

	emStmt, err := tx.Prepare("INSERT INTO emission_counts(model_id, tag, word, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer emStmt.Close()
	for tag, words := range t.Emission {
		for word, c := range words {
			if _, err := emStmt.Exec(modelID, tag, word, c); err != nil {
				return err
			}
		}
	}

	bdStmt, err := tx.Prepare(`
        INSERT INTO boundary_counts(model_id, tag, starting, ending) VALUES (?, ?, ?, ?)
        ON CONFLICT(model_id, tag) DO UPDATE SET starting = excluded.starting, ending = excluded.ending
    `)
	if err != nil {
		return err
	}
	defer bdStmt.Close()
	seen := make(map[string]bool, len(t.Starting))
	for tag, c := range t.Starting {
		seen[tag] = true
		if _, err := bdStmt.Exec(modelID, tag, c, t.Ending[tag]); err != nil {
			return err
		}
	}
	for tag, c := range t.Ending {
		if seen[tag] {
			continue
		}
		if _, err := bdStmt.Exec(modelID, tag, 0, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit model tables for %q: %v", name, err)
		return err
	}
	return nil
}

func (s *SQLModelStore) LoadTables(name string) (*hmm.Tables, bool, error) {
	var modelID int64
	err := s.db.QueryRow("SELECT id FROM models WHERE name = ?", name).Scan(&modelID)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	t := &hmm.Tables{
		Unigram:  make(map[string]int),
		Bigram:   make(map[counts.TagPair]int),
		Emission: make(map[string]map[string]int),
		Starting: make(map[string]int),
		Ending:   make(map[string]int),
	}

	rows, err := s.db.Query("SELECT tag, count FROM unigram_counts WHERE model_id = ?", modelID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		var c int
		if err := rows.Scan(&tag, &c); err != nil {
			return nil, false, err
		}
		t.Unigram[tag] = c
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	biRows, err := s.db.Query("SELECT from_tag, to_tag, count FROM bigram_counts WHERE model_id = ?", modelID)
	if err != nil {
		return nil, false, err
	}
	defer biRows.Close()
	for biRows.Next() {
		var from, to string
		var c int
		if err := biRows.Scan(&from, &to, &c); err != nil {
			return nil, false, err
		}
		t.Bigram[counts.TagPair{From: from, To: to}] = c
	}
	if err := biRows.Err(); err != nil {
		return nil, false, err
	}

	emRows, err := s.db.Query("SELECT tag, word, count FROM emission_counts WHERE model_id = ?", modelID)
	if err != nil {
		return nil, false, err
	}
	defer emRows.Close()
	for emRows.Next() {
		var tag, word string
		var c int
		if err := emRows.Scan(&tag, &word, &c); err != nil {
			return nil, false, err
		}
		if _, ok := t.Emission[tag]; !ok {
			t.Emission[tag] = make(map[string]int)
		}
		t.Emission[tag][word] = c
	}
	if err := emRows.Err(); err != nil {
		return nil, false, err
	}

	bdRows, err := s.db.Query("SELECT tag, starting, ending FROM boundary_counts WHERE model_id = ?", modelID)
	if err != nil {
		return nil, false, err
	}
	defer bdRows.Close()
	for bdRows.Next() {
		var tag string
		var starting, ending int
		if err := bdRows.Scan(&tag, &starting, &ending); err != nil {
			return nil, false, err
		}
		if starting > 0 {
			t.Starting[tag] = starting
		}
		if ending > 0 {
			t.Ending[tag] = ending
		}
	}
	if err := bdRows.Err(); err != nil {
		return nil, false, err
	}

	return t, true, nil
}

func (s *SQLModelStore) GetLastProcessedMtime(key, path string) (int64, error) {
	var mtime int64
	err := s.db.QueryRow("SELECT mtime FROM meta WHERE key = ? AND path = ?", key, path).Scan(&mtime)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return mtime, err
}

func (s *SQLModelStore) UpdateMetadata(key, path string, mtime int64) error {
	_, err := s.db.Exec(`
        INSERT INTO meta (key, path, mtime)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET
            path = excluded.path,
            mtime = excluded.mtime`,
		key, path, mtime)
	return err
}
