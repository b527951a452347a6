package store_test

import (
	"database/sql"
	"reflect"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/trknhr/hmmtag/internal/model/hmm"
	"github.com/trknhr/hmmtag/internal/store"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db, func() {
		db.Close()
	}
}

func trainedTables(t *testing.T) hmm.Tables {
	t.Helper()
	m, err := hmm.Train(
		[][]string{{"See", "Spot", "run"}, {"Spot", "ran"}},
		[][]string{{"VERB", "NOUN", "VERB"}, {"NOUN", "VERB"}},
	)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return m.Tables()
}

func TestModelStore_SaveAndLoadTables(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	s := store.NewSQLModelStore(db)
	tables := trainedTables(t)

	if err := s.SaveTables("default", tables); err != nil {
		t.Fatalf("SaveTables failed: %v", err)
	}

	loaded, found, err := s.LoadTables("default")
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}
	if !found {
		t.Fatal("LoadTables did not find saved model")
	}

	if !reflect.DeepEqual(loaded.Unigram, tables.Unigram) {
		t.Errorf("Unigram mismatch.\nExpected: %#v\nGot:      %#v", tables.Unigram, loaded.Unigram)
	}
	if !reflect.DeepEqual(loaded.Bigram, tables.Bigram) {
		t.Errorf("Bigram mismatch.\nExpected: %#v\nGot:      %#v", tables.Bigram, loaded.Bigram)
	}
	if !reflect.DeepEqual(loaded.Emission, tables.Emission) {
		t.Errorf("Emission mismatch.\nExpected: %#v\nGot:      %#v", tables.Emission, loaded.Emission)
	}
	if !reflect.DeepEqual(loaded.Starting, tables.Starting) {
		t.Errorf("Starting mismatch.\nExpected: %#v\nGot:      %#v", tables.Starting, loaded.Starting)
	}
	if !reflect.DeepEqual(loaded.Ending, tables.Ending) {
		t.Errorf("Ending mismatch.\nExpected: %#v\nGot:      %#v", tables.Ending, loaded.Ending)
	}

	// A model rebuilt from the loaded tables decodes identically.
	rebuilt, err := hmm.Build(*loaded)
	if err != nil {
		t.Fatalf("Build from loaded tables failed: %v", err)
	}
	seq, _, err := rebuilt.Decode([]string{"Spot", "ran"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(seq, []string{"NOUN", "VERB"}) {
		t.Errorf("Decode = %v, want [NOUN VERB]", seq)
	}
}

func TestModelStore_SaveOverwrites(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	s := store.NewSQLModelStore(db)
	tables := trainedTables(t)
	if err := s.SaveTables("default", tables); err != nil {
		t.Fatalf("first SaveTables failed: %v", err)
	}

	m, err := hmm.Train([][]string{{"Spot"}}, [][]string{{"NOUN"}})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if err := s.SaveTables("default", m.Tables()); err != nil {
		t.Fatalf("second SaveTables failed: %v", err)
	}

	loaded, found, err := s.LoadTables("default")
	if err != nil || !found {
		t.Fatalf("LoadTables failed: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(loaded.Unigram, map[string]int{"NOUN": 1}) {
		t.Errorf("overwrite left stale counts: %#v", loaded.Unigram)
	}
}

func TestModelStore_LoadMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, found, err := store.NewSQLModelStore(db).LoadTables("nope")
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}
	if found {
		t.Error("LoadTables found a model that was never saved")
	}
}

func TestModelStore_Metadata(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	s := store.NewSQLModelStore(db)

	mtime, err := s.GetLastProcessedMtime("corpus", "/tmp/corpus.txt")
	if err != nil {
		t.Fatalf("GetLastProcessedMtime failed: %v", err)
	}
	if mtime != 0 {
		t.Errorf("mtime = %d, want 0 before any update", mtime)
	}

	if err := s.UpdateMetadata("corpus", "/tmp/corpus.txt", 12345); err != nil {
		t.Fatalf("UpdateMetadata failed: %v", err)
	}
	mtime, err = s.GetLastProcessedMtime("corpus", "/tmp/corpus.txt")
	if err != nil {
		t.Fatalf("GetLastProcessedMtime failed: %v", err)
	}
	if mtime != 12345 {
		t.Errorf("mtime = %d, want 12345", mtime)
	}
}
