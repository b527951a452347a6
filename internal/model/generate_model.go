package model

import (
	"fmt"
	"strings"

	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/logger"
	"github.com/trknhr/hmmtag/internal/model/ensemble"
	"github.com/trknhr/hmmtag/internal/model/entity"
	"github.com/trknhr/hmmtag/internal/model/hmm"
	"github.com/trknhr/hmmtag/internal/model/mfc"
	"github.com/trknhr/hmmtag/internal/store"
)

// GenerateModel assembles the tagging ensemble. Trained tables are taken
// from the store when present; otherwise the corpus is loaded, both
// taggers are trained, and the tables are saved for the next run. The
// returned hmm.Tagger is the swap target for the corpus sync worker.
func GenerateModel(
	modelStore store.ModelStore,
	loader corpus.Loader,
	modelName string,
	filterModels string,
) (*ensemble.Ensemble, *hmm.Tagger, error) {

	enabled := map[string]bool{}
	if filterModels == "" {
		enabled["hmm"] = true
		enabled["mfc"] = true
	} else {
		for _, name := range strings.Split(filterModels, ",") {
			enabled[strings.TrimSpace(name)] = true
		}
	}

	hmmTagger := hmm.NewTagger()

	tables, found, err := modelStore.LoadTables(modelName)
	if err != nil {
		return nil, nil, err
	}
	if found {
		m, err := hmm.Build(*tables)
		if err != nil {
			return nil, nil, fmt.Errorf("stored tables for %q are unusable: %w", modelName, err)
		}
		hmmTagger.Swap(m)
		logger.Debug("model %q loaded from store (%d tags, %d words)", modelName, len(m.Tags()), m.VocabSize())
	} else {
		if loader == nil {
			return nil, nil, fmt.Errorf("no trained model %q in store and no corpus to train from", modelName)
		}
		words, tags, err := loader.Load()
		if err != nil {
			return nil, nil, err
		}
		m, err := hmm.Train(words, tags)
		if err != nil {
			return nil, nil, err
		}
		hmmTagger.Swap(m)
		t := m.Tables()
		tables = &t
		if err := modelStore.SaveTables(modelName, t); err != nil {
			logger.Warn("failed to persist model %q: %v", modelName, err)
		} else if mtime, err := loader.GetCurrentMtime(); err == nil {
			if err := modelStore.UpdateMetadata(loader.Key(), loader.Path(), mtime); err != nil {
				logger.Warn("failed to record corpus mtime: %v", err)
			}
		}
		logger.Info("model %q trained from %s (%d sentences)", modelName, loader.Path(), len(words))
	}

	var models []entity.TagModel
	if enabled["hmm"] {
		models = append(models, hmmTagger)
	}
	if enabled["mfc"] {
		mfcTagger := mfc.NewTagger()
		mfcTagger.LearnFromCounts(tables.Emission)
		models = append(models, mfcTagger)
	}
	if len(models) == 0 {
		return nil, nil, fmt.Errorf("no models enabled by filter %q", filterModels)
	}
	return ensemble.New(models...), hmmTagger, nil
}
