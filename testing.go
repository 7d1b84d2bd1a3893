package textquiz

import (
	"context"
	"encoding/json"
	"log/slog"
)

// stubInvoker is a mock invoker for testing.
type stubInvoker struct{}

func (s *stubInvoker) Generate(ctx context.Context, model, system, prompt string) ([]byte, error) {
	idx := 0
	mockResponse := map[string]any{
		"questions": []QuestionRecord{
			{
				Question:     "What is the capital of Belgium?",
				Answers:      []string{"Brussels", "Paris", "Berlin", "Madrid"},
				CorrectIndex: &idx,
			},
		},
	}
	return json.Marshal(mockResponse)
}

// NewExtractorForTesting creates an Extractor with a stub invoker that
// doesn't require a real client.
func NewExtractorForTesting(p PromptProvider) *Extractor {
	if p == nil {
		p = DefaultPrompts()
	}
	return &Extractor{
		invoker: &stubInvoker{},
		prompts: p,
		log:     slog.Default(),
	}
}
