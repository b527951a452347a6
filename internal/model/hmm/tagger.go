package hmm

import (
	"errors"
	"sync/atomic"

	"github.com/trknhr/hmmtag/internal/model/entity"
)

// Tagger adapts Model to the TagModel interface and allows the current
// model to be swapped atomically when the corpus is retrained.
type Tagger struct {
	model atomic.Value // *Model
}

func NewTagger() *Tagger {
	return &Tagger{}
}

func NewTaggerWithModel(m *Model) *Tagger {
	t := &Tagger{}
	t.model.Store(m)
	return t
}

func (t *Tagger) Learn(words, tags [][]string) error {
	m, err := Train(words, tags)
	if err != nil {
		return err
	}
	t.model.Store(m)
	return nil
}

// Swap publishes a new model; in-flight Decode calls keep the one they
// loaded.
func (t *Tagger) Swap(m *Model) {
	t.model.Store(m)
}

func (t *Tagger) Model() *Model {
	m, _ := t.model.Load().(*Model)
	return m
}

func (t *Tagger) Predict(words []string) (*entity.TagResult, error) {
	m := t.Model()
	if m == nil {
		return nil, errors.New("hmm: model not trained")
	}
	seq, score, err := m.Decode(words)
	if err != nil {
		return nil, err
	}
	return &entity.TagResult{Tags: seq, Score: score, Source: t.Name()}, nil
}

func (t *Tagger) Name() string {
	return "hmm"
}
