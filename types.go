package textquiz

import (
	"context"
	"time"
)

// DefaultModel is used when no model is configured explicitly.
const DefaultModel = "gemini-2.0-flash"

// QuestionRecord is one multiple-choice question as extracted from free-form
// text. CorrectIndex is a pointer so that "the model never said which answer
// is right" survives into the merge step, where it degrades to index 0 with a
// flag instead of failing the batch.
type QuestionRecord struct {
	Question     string   `json:"question"`
	Answers      []string `json:"answers"`
	CorrectIndex *int     `json:"correct_index"`
}

// Runner lets the package schedule work with any concurrency model.
type Runner interface {
	Go(fn func() error) // schedule
	Wait() error        // join / propagate first err
}

// Invoker abstraction allows mocking, retrying, and caching the model call.
type Invoker interface {
	Generate(ctx context.Context, model, system, prompt string) ([]byte, error)
}

// Options represents functional options for extraction.
type Options struct {
	Model      string
	Timeout    time.Duration
	MaxRetries int           // 0 → no retry
	Backoff    time.Duration // backoff duration for retries
}

// Functional option constructors
func WithModel(name string) func(*Options) {
	return func(o *Options) { o.Model = name }
}

func WithTimeout(d time.Duration) func(*Options) {
	return func(o *Options) { o.Timeout = d }
}

func WithRetry(max int, backoff time.Duration) func(*Options) {
	return func(o *Options) {
		o.MaxRetries = max
		o.Backoff = backoff
	}
}
