package evaluate

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/trknhr/hmmtag/internal/counts"
	"github.com/trknhr/hmmtag/internal/model/entity"
)

// Report aggregates token-level accuracy over one evaluation run.
type Report struct {
	ModelName string
	Tokens    int
	Correct   int
	Sentences int
	Failed    int // sentences whose decoding failed; their tokens count as wrong
}

func (r *Report) Accuracy() float64 {
	if r.Tokens == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Tokens)
}

// Evaluate decodes every sentence and scores the predictions against the
// gold tags. Sentences decode in parallel; the model is only read.
// Per-sentence decoding failures are conservative misses: all their
// tokens stay in the denominator with zero correct.
func Evaluate(m entity.TagModel, words, tags [][]string) (*Report, error) {
	if len(words) != len(tags) {
		return nil, fmt.Errorf("%w: %d word sequences paired with %d tag sequences", counts.ErrMalformedSequence, len(words), len(tags))
	}
	for i := range words {
		if len(words[i]) != len(tags[i]) {
			return nil, fmt.Errorf("%w: sentence %d has %d words paired with %d tags", counts.ErrMalformedSequence, i, len(words[i]), len(tags[i]))
		}
	}

	report := &Report{ModelName: m.Name(), Sentences: len(words)}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range words {
		g.Go(func() error {
			sentence := words[i]
			gold := tags[i]

			res, err := m.Predict(sentence)

			mu.Lock()
			defer mu.Unlock()
			report.Tokens += len(gold)
			if err != nil {
				report.Failed++
				return nil
			}
			if len(res.Tags) != len(gold) {
				report.Failed++
				return nil
			}
			for j, tag := range res.Tags {
				if tag == gold[j] {
					report.Correct++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
