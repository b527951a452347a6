package mfc

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/trknhr/hmmtag/internal/counts"
	"github.com/trknhr/hmmtag/internal/model/entity"
)

// MissingTag is emitted for words never seen during training.
const MissingTag = "<MISSING>"

// Tagger assigns every word the tag it most frequently carried in
// training, ignoring sentence context. It exists as the accuracy floor
// the HMM is measured against.
type Tagger struct {
	best atomic.Value // map[string]string
}

func NewTagger() *Tagger {
	return &Tagger{}
}

func (t *Tagger) Learn(words, tags [][]string) error {
	pair, err := counts.Pair(words, tags)
	if err != nil {
		return err
	}
	t.best.Store(argmax(pair))
	return nil
}

// LearnFromCounts trains from emission tables (tag -> word -> count), the
// form the model store persists. The tables get transposed into the
// per-word view Learn builds directly.
func (t *Tagger) LearnFromCounts(emission map[string]map[string]int) {
	byWord := make(map[string]map[string]int)
	for tag, words := range emission {
		for word, c := range words {
			if _, ok := byWord[word]; !ok {
				byWord[word] = make(map[string]int)
			}
			byWord[word][tag] += c
		}
	}
	t.best.Store(argmax(byWord))
}

func argmax(pair map[string]map[string]int) map[string]string {
	best := make(map[string]string, len(pair))
	for word, tagCounts := range pair {
		bestTag := ""
		bestCount := -1
		for tag, c := range tagCounts {
			// Lexicographic tie-break keeps the arg-max deterministic.
			if c > bestCount || (c == bestCount && tag < bestTag) {
				bestTag = tag
				bestCount = c
			}
		}
		best[word] = bestTag
	}
	return best
}

func (t *Tagger) Predict(words []string) (*entity.TagResult, error) {
	best, _ := t.best.Load().(map[string]string)
	if best == nil {
		return nil, errors.New("mfc: model not trained")
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty observation sequence", counts.ErrMalformedSequence)
	}
	tags := make([]string, len(words))
	for i, w := range words {
		if tag, ok := best[w]; ok {
			tags[i] = tag
		} else {
			tags[i] = MissingTag
		}
	}
	return &entity.TagResult{Tags: tags, Score: 0, Source: t.Name()}, nil
}

func (t *Tagger) Name() string {
	return "mfc"
}
