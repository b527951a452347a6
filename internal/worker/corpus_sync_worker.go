package worker

import (
	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/model/hmm"
	"github.com/trknhr/hmmtag/internal/store"
)

// CorpusSyncWorker retrains the HMM in the background when the corpus
// file has changed since the stored mtime, then publishes the fresh
// model through the tagger's atomic swap and persists its tables.
type CorpusSyncWorker struct {
	store     store.ModelStore
	loader    corpus.Loader
	tagger    *hmm.Tagger
	modelName string
}

func NewCorpusSyncWorker(store store.ModelStore, loader corpus.Loader, tagger *hmm.Tagger, modelName string) *CorpusSyncWorker {
	return &CorpusSyncWorker{store: store, loader: loader, tagger: tagger, modelName: modelName}
}

func (w *CorpusSyncWorker) Key() string  { return w.loader.Key() }
func (w *CorpusSyncWorker) Path() string { return w.loader.Path() }

func (w *CorpusSyncWorker) NeedsReload() bool {
	last, err := w.store.GetLastProcessedMtime(w.Key(), w.Path())
	if err != nil {
		return true // conservative: try to reload if error
	}
	curr, err := w.loader.GetCurrentMtime()
	if err != nil {
		return false // don't try if can't stat
	}
	return curr > last
}

func (w *CorpusSyncWorker) Sync() error {
	words, tags, err := w.loader.Load()
	if err != nil {
		return err
	}
	m, err := hmm.Train(words, tags)
	if err != nil {
		return err
	}
	if err := w.store.SaveTables(w.modelName, m.Tables()); err != nil {
		return err
	}
	w.tagger.Swap(m)

	curr, err := w.loader.GetCurrentMtime()
	if err != nil {
		return err
	}
	return w.store.UpdateMetadata(w.Key(), w.Path(), curr)
}
