package model

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/model/hmm"
)

type memStore struct {
	mu     sync.Mutex
	tables map[string]hmm.Tables
	mtimes map[string]int64
}

func newMemStore() *memStore {
	return &memStore{tables: map[string]hmm.Tables{}, mtimes: map[string]int64{}}
}

func (m *memStore) SaveTables(name string, t hmm.Tables) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = t
	return nil
}

func (m *memStore) LoadTables(name string) (*hmm.Tables, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[name]
	if !ok {
		return nil, false, nil
	}
	return &t, true, nil
}

func (m *memStore) GetLastProcessedMtime(key, path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mtimes[key+path], nil
}

func (m *memStore) UpdateMetadata(key, path string, mtime int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mtimes[key+path] = mtime
	return nil
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	content := "See/VERB Spot/NOUN run/VERB\nSpot/NOUN ran/VERB\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

func TestGenerateModel_TrainsAndPersistsWhenStoreEmpty(t *testing.T) {
	s := newMemStore()
	loader := corpus.NewFileLoader(writeCorpus(t), "/")

	engine, hmmTagger, err := GenerateModel(s, loader, "default", "")
	if err != nil {
		t.Fatalf("GenerateModel failed: %v", err)
	}
	if hmmTagger.Model() == nil {
		t.Fatal("hmm tagger was not trained")
	}
	if _, found, _ := s.LoadTables("default"); !found {
		t.Error("tables were not persisted")
	}

	res, err := engine.Predict([]string{"Spot", "ran"})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if !reflect.DeepEqual(res.Tags, []string{"NOUN", "VERB"}) {
		t.Errorf("Predict = %v, want [NOUN VERB]", res.Tags)
	}
}

func TestGenerateModel_LoadsFromStoreWithoutCorpus(t *testing.T) {
	s := newMemStore()
	m, err := hmm.Train(
		[][]string{{"Spot", "ran"}},
		[][]string{{"NOUN", "VERB"}},
	)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if err := s.SaveTables("default", m.Tables()); err != nil {
		t.Fatalf("SaveTables failed: %v", err)
	}

	engine, _, err := GenerateModel(s, nil, "default", "")
	if err != nil {
		t.Fatalf("GenerateModel failed: %v", err)
	}
	res, err := engine.Predict([]string{"Spot", "ran"})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if !reflect.DeepEqual(res.Tags, []string{"NOUN", "VERB"}) {
		t.Errorf("Predict = %v, want [NOUN VERB]", res.Tags)
	}
}

func TestGenerateModel_NoStoreNoCorpus(t *testing.T) {
	if _, _, err := GenerateModel(newMemStore(), nil, "default", ""); err == nil {
		t.Fatal("GenerateModel should fail with nothing to train from")
	}
}

func TestGenerateModel_FilterModels(t *testing.T) {
	s := newMemStore()
	loader := corpus.NewFileLoader(writeCorpus(t), "/")

	engine, _, err := GenerateModel(s, loader, "default", "mfc")
	if err != nil {
		t.Fatalf("GenerateModel failed: %v", err)
	}
	res, err := engine.Predict([]string{"Spot"})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if res.Source != "mfc" {
		t.Errorf("Source = %q, want %q (hmm filtered out)", res.Source, "mfc")
	}
}
