package hmm

import (
	"fmt"
	"math"

	"github.com/trknhr/hmmtag/internal/counts"
)

// Decode runs the Viterbi algorithm over the observation sequence and
// returns the maximum-probability tag sequence with its log-probability.
// Out-of-vocabulary words are masked first; arithmetic is in log space
// with -Inf marking impossible paths. A lattice with no surviving path
// fails with ErrNoPath.
func (m *Model) Decode(words []string) ([]string, float64, error) {
	if len(words) == 0 {
		return nil, 0, fmt.Errorf("%w: empty observation sequence", counts.ErrMalformedSequence)
	}
	obs := m.maskUnknown(words)
	n := len(obs)
	k := len(m.tags)
	negInf := math.Inf(-1)

	delta := make([]float64, k)
	back := make([][]int, n)

	for i, tag := range m.tags {
		sp, ok := m.startLog[tag]
		if !ok {
			delta[i] = negInf
			continue
		}
		delta[i] = sp + m.emitLogAt(i, obs[0])
	}

	for t := 1; t < n; t++ {
		back[t] = make([]int, k)
		next := make([]float64, k)
		for j, tag := range m.tags {
			best := negInf
			bestPrev := -1
			for i, prev := range m.tags {
				if math.IsInf(delta[i], -1) {
					continue
				}
				tp, ok := m.transLog[counts.TagPair{From: prev, To: tag}]
				if !ok {
					continue
				}
				if s := delta[i] + tp; s > best {
					best = s
					bestPrev = i
				}
			}
			if bestPrev < 0 {
				next[j] = negInf
				back[t][j] = -1
				continue
			}
			next[j] = best + m.emitLogAt(j, obs[t])
			back[t][j] = bestPrev
		}
		delta = next
	}

	best := negInf
	bestState := -1
	for i, tag := range m.tags {
		if math.IsInf(delta[i], -1) {
			continue
		}
		ep, ok := m.endLog[tag]
		if !ok {
			continue
		}
		if s := delta[i] + ep; s > best {
			best = s
			bestState = i
		}
	}
	if bestState < 0 {
		return nil, 0, fmt.Errorf("%w: lattice blocked for %d-token sentence", ErrNoPath, n)
	}

	seq := make([]string, n)
	for t := n - 1; t >= 0; t-- {
		seq[t] = m.tags[bestState]
		if t > 0 {
			bestState = back[t][bestState]
		}
	}
	return seq, best, nil
}

// emitLogAt is the emission log-probability with the pass-through
// policy: when a state has no emission entry for the word (the unknown
// sentinel, or a known word never seen under this tag) the emission
// factor is 1, so the path continues on transition structure alone.
func (m *Model) emitLogAt(state int, word string) float64 {
	if lp, ok := m.emitLog[state][word]; ok {
		return lp
	}
	return 0
}
