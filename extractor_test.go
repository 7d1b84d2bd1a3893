package textquiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockInvoker records what it was asked and replies with canned bytes.
type mockInvoker struct {
	resp  []byte
	err   error
	calls int

	lastModel  string
	lastSystem string
	lastPrompt string

	failFirst int // number of leading calls that fail before resp is served
}

func (m *mockInvoker) Generate(ctx context.Context, model, system, prompt string) ([]byte, error) {
	m.calls++
	m.lastModel = model
	m.lastSystem = system
	m.lastPrompt = prompt
	if m.failFirst > 0 {
		m.failFirst--
		return nil, errors.New("transient failure")
	}
	return m.resp, m.err
}

func newMockExtractor(inv Invoker) *Extractor {
	return &Extractor{invoker: inv, prompts: DefaultPrompts(), log: testLogger()}
}

func TestExtract_ParsesQuestions(t *testing.T) {
	inv := &mockInvoker{resp: []byte(`{
		"questions": [
			{"question": "What is 2+2?", "answers": ["3", "4", "5", "6"], "correct_index": 1},
			{"question": "Unmarked?", "answers": ["a", "b", "c", "d"]}
		]
	}`)}
	ex := newMockExtractor(inv)

	records, err := ex.Extract(context.Background(), "1. What is 2+2? ...", "English")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "What is 2+2?", records[0].Question)
	assert.Equal(t, []string{"3", "4", "5", "6"}, records[0].Answers)
	require.NotNil(t, records[0].CorrectIndex)
	assert.Equal(t, 1, *records[0].CorrectIndex)

	// absence of correct_index is preserved, not defaulted here
	assert.Nil(t, records[1].CorrectIndex)
}

func TestExtract_MissingQuestionsKeyMeansNothingFound(t *testing.T) {
	inv := &mockInvoker{resp: []byte(`{"note": "could not find any questions"}`)}
	ex := newMockExtractor(inv)

	records, err := ex.Extract(context.Background(), "no questions here", "English")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestExtract_MalformedOutput(t *testing.T) {
	cases := map[string]string{
		"prose":               "Sure! Here are your questions: 1. ...",
		"truncated json":      `{"questions": [{"question": "q", "answers": ["a"`,
		"questions not array": `{"questions": "none"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ex := newMockExtractor(&mockInvoker{resp: []byte(payload)})
			_, err := ex.Extract(context.Background(), "text", "English")

			var extractionErr *ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, payload, string(extractionErr.Raw))
		})
	}
}

func TestExtract_CodeFencedJSONIsTolerated(t *testing.T) {
	inv := &mockInvoker{resp: []byte("```json\n{\"questions\": [{\"question\": \"q\", \"answers\": [\"a\",\"b\",\"c\",\"d\"], \"correct_index\": 0}]}\n```")}
	ex := newMockExtractor(inv)

	records, err := ex.Extract(context.Background(), "text", "English")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestExtract_ServiceFailure(t *testing.T) {
	inv := &mockInvoker{err: errors.New("401 unauthorized")}
	ex := newMockExtractor(inv)

	_, err := ex.Extract(context.Background(), "text", "English")

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Contains(t, err.Error(), "401")
}

func TestExtract_PromptCarriesLanguageAndDocument(t *testing.T) {
	inv := &mockInvoker{resp: []byte(`{"questions": []}`)}
	ex := newMockExtractor(inv)

	_, err := ex.Extract(context.Background(), "1. Wat is de hoofdstad van België?", "Dutch")
	require.NoError(t, err)

	assert.Contains(t, inv.lastPrompt, "in Dutch")
	assert.Contains(t, inv.lastPrompt, "Wat is de hoofdstad van België?")
	assert.Contains(t, inv.lastPrompt, "<<DOC>>")
	assert.Contains(t, inv.lastPrompt, "Do not translate")
	assert.Contains(t, inv.lastPrompt, "correct_index")
	assert.Contains(t, inv.lastSystem, "JSON validator")
	assert.Equal(t, DefaultModel, inv.lastModel)
}

func TestExtract_ModelOverride(t *testing.T) {
	inv := &mockInvoker{resp: []byte(`{"questions": []}`)}
	ex := newMockExtractor(inv)

	_, err := ex.Extract(context.Background(), "text", "English", WithModel("gemini-1.5-pro"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", inv.lastModel)
}

func TestExtract_EmptyInputPassesThrough(t *testing.T) {
	inv := &mockInvoker{resp: []byte(`{"questions": []}`)}
	ex := newMockExtractor(inv)

	records, err := ex.Extract(context.Background(), "", "English")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 1, inv.calls, "empty input must still reach the service")
}

func TestExtract_RetriesTransientFailures(t *testing.T) {
	inv := &mockInvoker{
		resp:      []byte(`{"questions": [{"question": "q", "answers": ["a","b","c","d"], "correct_index": 0}]}`),
		failFirst: 2,
	}
	ex := newMockExtractor(inv)

	records, err := ex.Extract(context.Background(), "text", "English",
		WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 3, inv.calls)
}

func TestExtract_NoRetryByDefault(t *testing.T) {
	inv := &mockInvoker{err: errors.New("boom")}
	ex := newMockExtractor(inv)

	_, err := ex.Extract(context.Background(), "text", "English")
	require.Error(t, err)
	assert.Equal(t, 1, inv.calls)
}

func TestNewExtractorForTesting(t *testing.T) {
	ex := NewExtractorForTesting(nil)
	records, err := ex.Extract(context.Background(), "any text", "English")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "What is the capital of Belgium?", records[0].Question)
	require.NotNil(t, records[0].CorrectIndex)
	assert.Equal(t, 0, *records[0].CorrectIndex)
}
