package ensemble

import (
	"errors"
	"reflect"
	"testing"

	"github.com/trknhr/hmmtag/internal/model/entity"
)

type stubModel struct {
	name string
	tags []string
	err  error
}

func (s *stubModel) Learn(words, tags [][]string) error { return nil }
func (s *stubModel) Name() string                       { return s.name }
func (s *stubModel) Predict(words []string) (*entity.TagResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.TagResult{Tags: s.tags, Source: s.name}, nil
}

func TestPredict_FallsBackInOrder(t *testing.T) {
	blocked := &stubModel{name: "hmm", err: errors.New("lattice blocked")}
	fallback := &stubModel{name: "mfc", tags: []string{"NOUN"}}

	e := New(blocked, fallback)
	res, err := e.Predict([]string{"Spot"})
	if err != nil {
		t.Fatalf("Predict returned unexpected error: %v", err)
	}
	if res.Source != "mfc" {
		t.Errorf("Source = %q, want fallback %q", res.Source, "mfc")
	}
}

func TestPredict_AllModelsFail(t *testing.T) {
	failure := errors.New("boom")
	e := New(&stubModel{name: "a", err: failure})
	if _, err := e.Predict([]string{"x"}); !errors.Is(err, failure) {
		t.Errorf("Predict error = %v, want wrapped %v", err, failure)
	}
}

func TestPredictAll_KeepsRegistrationOrder(t *testing.T) {
	e := New(
		&stubModel{name: "hmm", tags: []string{"VERB"}},
		&stubModel{name: "mfc", err: errors.New("not trained")},
	)

	outcomes := e.PredictAll([]string{"run"})
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if outcomes[0].Name != "hmm" || outcomes[1].Name != "mfc" {
		t.Errorf("outcome order = %q, %q", outcomes[0].Name, outcomes[1].Name)
	}
	if !reflect.DeepEqual(outcomes[0].Result.Tags, []string{"VERB"}) {
		t.Errorf("hmm outcome = %#v", outcomes[0].Result)
	}
	if outcomes[1].Err == nil {
		t.Errorf("mfc outcome should carry its error")
	}
}
