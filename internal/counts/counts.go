package counts

import (
	"errors"
	"fmt"
)

// ErrMalformedSequence is returned when paired sequences disagree in
// sentence count or per-sentence length.
var ErrMalformedSequence = errors.New("malformed sequence")

// TagPair is an ordered pair of adjacent elements within one sentence.
type TagPair struct {
	From string
	To   string
}

// Pair counts aligned co-occurrences across two parallel sequence
// collections: result[seqA[i][j]][seqB[i][j]]++. With (tags, words) it
// yields emission counts; with (words, tags) the per-word tag counts
// used by the most-frequent-class tagger.
func Pair(seqA, seqB [][]string) (map[string]map[string]int, error) {
	if len(seqA) != len(seqB) {
		return nil, fmt.Errorf("%w: %d sequences paired with %d", ErrMalformedSequence, len(seqA), len(seqB))
	}
	result := make(map[string]map[string]int)
	for i := range seqA {
		if len(seqA[i]) != len(seqB[i]) {
			return nil, fmt.Errorf("%w: sentence %d has %d elements paired with %d", ErrMalformedSequence, i, len(seqA[i]), len(seqB[i]))
		}
		for j, a := range seqA[i] {
			b := seqB[i][j]
			if _, ok := result[a]; !ok {
				result[a] = make(map[string]int)
			}
			result[a][b]++
		}
	}
	return result, nil
}

// Unigram counts occurrences of each element across all sentences.
func Unigram(seqs [][]string) map[string]int {
	result := make(map[string]int)
	for _, seq := range seqs {
		for _, s := range seq {
			result[s]++
		}
	}
	return result
}

// Bigram counts adjacent ordered pairs within each sentence. Pairs never
// cross sentence boundaries.
func Bigram(seqs [][]string) map[TagPair]int {
	result := make(map[TagPair]int)
	for _, seq := range seqs {
		for i := 0; i < len(seq)-1; i++ {
			result[TagPair{From: seq[i], To: seq[i+1]}]++
		}
	}
	return result
}

// Starting counts the first element of every sentence.
func Starting(seqs [][]string) map[string]int {
	result := make(map[string]int)
	for _, seq := range seqs {
		if len(seq) > 0 {
			result[seq[0]]++
		}
	}
	return result
}

// Ending counts the last element of every sentence.
func Ending(seqs [][]string) map[string]int {
	result := make(map[string]int)
	for _, seq := range seqs {
		if len(seq) > 0 {
			result[seq[len(seq)-1]]++
		}
	}
	return result
}
