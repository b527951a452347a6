package ensemble

import (
	"errors"
	"sync"

	"github.com/trknhr/hmmtag/internal/model/entity"
)

// Ensemble runs several taggers over the same sentences. Predict tries
// them in registration order and returns the first success, so a
// context-free fallback can catch sentences whose HMM lattice is
// blocked. PredictAll runs every tagger concurrently for side-by-side
// comparison.
type Ensemble struct {
	models []entity.TagModel
}

func New(models ...entity.TagModel) *Ensemble {
	return &Ensemble{models: models}
}

func (e *Ensemble) Learn(words, tags [][]string) error {
	var allErr error
	for _, m := range e.models {
		if err := m.Learn(words, tags); err != nil {
			allErr = errors.Join(allErr, err)
		}
	}
	return allErr
}

func (e *Ensemble) Predict(words []string) (*entity.TagResult, error) {
	var allErr error
	for _, m := range e.models {
		res, err := m.Predict(words)
		if err != nil {
			allErr = errors.Join(allErr, err)
			continue
		}
		return res, nil
	}
	if allErr == nil {
		allErr = errors.New("ensemble: no models registered")
	}
	return nil, allErr
}

// Outcome is one tagger's result (or failure) for a sentence.
type Outcome struct {
	Name   string
	Result *entity.TagResult
	Err    error
}

// PredictAll decodes with every registered tagger in parallel. Outcomes
// keep registration order; per-model failures are reported, not raised.
func (e *Ensemble) PredictAll(words []string) []Outcome {
	outcomes := make([]Outcome, len(e.models))
	var wg sync.WaitGroup
	for i, m := range e.models {
		wg.Add(1)
		go func(i int, m entity.TagModel) {
			defer wg.Done()
			res, err := m.Predict(words)
			outcomes[i] = Outcome{Name: m.Name(), Result: res, Err: err}
		}(i, m)
	}
	wg.Wait()
	return outcomes
}

func (e *Ensemble) Name() string {
	return "ensemble"
}
