package hmm

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/trknhr/hmmtag/internal/counts"
)

// UnknownToken replaces out-of-vocabulary words before decoding. It has
// no emission distribution of its own; see emitLogAt.
const UnknownToken = "<unk>"

var (
	ErrInconsistentCounts = errors.New("inconsistent count tables")
	ErrNoPath             = errors.New("no tag sequence explains the observations")
)

// Tables holds the raw frequency tables a model is normalized from.
// They are the persisted form of a trained model: probabilities are
// always rebuilt from counts, never stored.
type Tables struct {
	Unigram  map[string]int
	Bigram   map[counts.TagPair]int
	Emission map[string]map[string]int
	Starting map[string]int
	Ending   map[string]int
}

// Model is a first-order HMM over tags. Immutable once built; safe for
// concurrent Decode calls.
type Model struct {
	tables   Tables
	tags     []string
	tagIndex map[string]int
	emitLog  []map[string]float64
	transLog map[counts.TagPair]float64
	startLog map[string]float64
	endLog   map[string]float64
	vocab    map[string]struct{}
}

// Train counts the five frequency tables from a tagged corpus and builds
// the model from them.
func Train(words, tags [][]string) (*Model, error) {
	emission, err := counts.Pair(tags, words)
	if err != nil {
		return nil, err
	}
	return Build(Tables{
		Unigram:  counts.Unigram(tags),
		Bigram:   counts.Bigram(tags),
		Emission: emission,
		Starting: counts.Starting(tags),
		Ending:   counts.Ending(tags),
	})
}

// Build normalizes frequency tables into log-space distributions. Only
// observed tag pairs get a transition; everything else stays implicitly
// impossible (callers wanting robustness should smooth the tables before
// building). A tag referenced by any table but missing from the unigram
// counts means the tables are corrupt.
func Build(t Tables) (*Model, error) {
	numSentences := 0
	for _, c := range t.Starting {
		numSentences += c
	}
	if numSentences == 0 {
		return nil, fmt.Errorf("%w: no training sentences", ErrInconsistentCounts)
	}

	for pair := range t.Bigram {
		if t.Unigram[pair.From] == 0 {
			return nil, fmt.Errorf("%w: bigram references tag %q with no unigram count", ErrInconsistentCounts, pair.From)
		}
		if t.Unigram[pair.To] == 0 {
			return nil, fmt.Errorf("%w: bigram references tag %q with no unigram count", ErrInconsistentCounts, pair.To)
		}
	}
	for _, table := range []map[string]int{t.Starting, t.Ending} {
		for tag := range table {
			if t.Unigram[tag] == 0 {
				return nil, fmt.Errorf("%w: boundary count references tag %q with no unigram count", ErrInconsistentCounts, tag)
			}
		}
	}
	for tag := range t.Emission {
		if t.Unigram[tag] == 0 {
			return nil, fmt.Errorf("%w: emission references tag %q with no unigram count", ErrInconsistentCounts, tag)
		}
	}

	m := &Model{
		tables:   t,
		tagIndex: make(map[string]int, len(t.Unigram)),
		transLog: make(map[counts.TagPair]float64, len(t.Bigram)),
		startLog: make(map[string]float64, len(t.Starting)),
		endLog:   make(map[string]float64, len(t.Ending)),
		vocab:    make(map[string]struct{}),
	}

	// Sorted state order keeps decoding deterministic under ties.
	m.tags = make([]string, 0, len(t.Unigram))
	for tag := range t.Unigram {
		m.tags = append(m.tags, tag)
	}
	sort.Strings(m.tags)
	for i, tag := range m.tags {
		m.tagIndex[tag] = i
	}

	m.emitLog = make([]map[string]float64, len(m.tags))
	for i, tag := range m.tags {
		total := float64(t.Unigram[tag])
		dist := make(map[string]float64, len(t.Emission[tag]))
		for w, c := range t.Emission[tag] {
			dist[w] = math.Log(float64(c) / total)
			m.vocab[w] = struct{}{}
		}
		m.emitLog[i] = dist
	}
	for pair, c := range t.Bigram {
		m.transLog[pair] = math.Log(float64(c) / float64(t.Unigram[pair.From]))
	}
	for tag, c := range t.Starting {
		m.startLog[tag] = math.Log(float64(c) / float64(numSentences))
	}
	for tag, c := range t.Ending {
		m.endLog[tag] = math.Log(float64(c) / float64(numSentences))
	}
	return m, nil
}

// Tables returns the frequency tables the model was built from.
func (m *Model) Tables() Tables {
	return m.tables
}

// Tags returns the tag set in state order.
func (m *Model) Tags() []string {
	return m.tags
}

// KnowsWord reports whether the word was seen during training.
func (m *Model) KnowsWord(word string) bool {
	_, ok := m.vocab[word]
	return ok
}

// VocabSize is the number of distinct training words.
func (m *Model) VocabSize() int {
	return len(m.vocab)
}

// maskUnknown maps every out-of-vocabulary word to UnknownToken. The
// vocabulary lives on the model, so taggers trained on different splits
// never interfere.
func (m *Model) maskUnknown(words []string) []string {
	obs := make([]string, len(words))
	for i, w := range words {
		if _, ok := m.vocab[w]; ok {
			obs[i] = w
		} else {
			obs[i] = UnknownToken
		}
	}
	return obs
}
