package counts

import (
	"errors"
	"reflect"
	"testing"
)

var (
	testWords = [][]string{
		{"See", "Spot", "run"},
		{"Spot", "ran"},
	}
	testTags = [][]string{
		{"VERB", "NOUN", "VERB"},
		{"NOUN", "VERB"},
	}
)

func TestPair_EmissionCounts(t *testing.T) {
	got, err := Pair(testTags, testWords)
	if err != nil {
		t.Fatalf("Pair returned unexpected error: %v", err)
	}

	expected := map[string]map[string]int{
		"VERB": {"See": 1, "run": 1, "ran": 1},
		"NOUN": {"Spot": 2},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Pair mismatch.\nExpected: %#v\nGot:      %#v", expected, got)
	}

	// Total across all cells must equal the token count.
	total := 0
	for _, inner := range got {
		for _, c := range inner {
			total += c
		}
	}
	if total != 5 {
		t.Errorf("Pair total = %d, want 5", total)
	}
}

func TestPair_Malformed(t *testing.T) {
	tests := []struct {
		name string
		a, b [][]string
	}{
		{
			name: "sentence count mismatch",
			a:    [][]string{{"a"}},
			b:    [][]string{{"a"}, {"b"}},
		},
		{
			name: "sentence length mismatch",
			a:    [][]string{{"a", "b"}},
			b:    [][]string{{"a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Pair(tt.a, tt.b); !errors.Is(err, ErrMalformedSequence) {
				t.Errorf("Pair error = %v, want ErrMalformedSequence", err)
			}
		})
	}
}

func TestUnigram(t *testing.T) {
	got := Unigram(testTags)
	expected := map[string]int{"VERB": 3, "NOUN": 2}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Unigram mismatch.\nExpected: %#v\nGot:      %#v", expected, got)
	}
}

func TestBigram_NoCrossSentencePairs(t *testing.T) {
	got := Bigram(testTags)
	expected := map[TagPair]int{
		{From: "VERB", To: "NOUN"}: 1,
		{From: "NOUN", To: "VERB"}: 2,
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Bigram mismatch.\nExpected: %#v\nGot:      %#v", expected, got)
	}

	// ("VERB","NOUN") from the boundary of sentence 1 into sentence 2
	// would show up as an extra count if pairs crossed sentences.
	if got[TagPair{From: "VERB", To: "NOUN"}] != 1 {
		t.Errorf("Bigram counted a pair across a sentence boundary")
	}
}

func TestStartingAndEnding(t *testing.T) {
	starts := Starting(testTags)
	ends := Ending(testTags)

	if !reflect.DeepEqual(starts, map[string]int{"VERB": 1, "NOUN": 1}) {
		t.Errorf("Starting mismatch: %#v", starts)
	}
	if !reflect.DeepEqual(ends, map[string]int{"VERB": 2}) {
		t.Errorf("Ending mismatch: %#v", ends)
	}

	sumStart, sumEnd := 0, 0
	for _, c := range starts {
		sumStart += c
	}
	for _, c := range ends {
		sumEnd += c
	}
	if sumStart != len(testTags) || sumEnd != len(testTags) {
		t.Errorf("start/end totals = %d/%d, want %d", sumStart, sumEnd, len(testTags))
	}
}
