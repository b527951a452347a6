package entity

// TagResult is one decoded tagging of a sentence.
type TagResult struct {
	Tags   []string
	Score  float64 // log-probability of the decoded path; 0 for context-free taggers
	Source string
}

// TagModel is implemented by every tagger variant. Learn may be called
// once with the full training split; Predict must be safe for concurrent
// use after Learn has returned.
type TagModel interface {
	Learn(words, tags [][]string) error
	Predict(words []string) (*TagResult, error)
	Name() string
}
