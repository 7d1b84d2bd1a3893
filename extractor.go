package textquiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Extractor turns free-form pasted text into QuestionRecords by way of a
// text-understanding model. It holds no mutable state; concurrent Extract
// calls are safe.
type Extractor struct {
	invoker Invoker
	prompts PromptProvider
	log     *slog.Logger
}

// NewExtractor returns an Extractor that logs with slog.Default().
func NewExtractor(client *genai.Client, p PromptProvider) *Extractor {
	return NewExtractorWithLogger(client, p, slog.Default())
}

// NewExtractorWithLogger lets the caller supply their own logger.
func NewExtractorWithLogger(client *genai.Client, p PromptProvider, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	if p == nil {
		p = DefaultPrompts()
	}
	return &Extractor{invoker: &genaiInvoker{client: client, log: log}, prompts: p, log: log}
}

// Extract asks the model to structure rawText into multiple-choice questions.
// language names the language the pasted questions are written in; the prompt
// forbids translating them. Empty input is passed through to the service and
// typically yields an empty result rather than a local rejection.
//
// Failure modes: *ServiceError when the call itself does not complete,
// *ExtractionError when the response cannot be parsed as question JSON. A
// well-formed response without a questions key is "nothing found" and returns
// an empty slice.
func (x *Extractor) Extract(ctx context.Context, rawText, language string, optFns ...func(*Options)) ([]QuestionRecord, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	tpl, err := x.prompts.GetPrompt(ExtractPromptTag, map[string]any{
		"language": language,
	})
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	prompt := buildPrompt(tpl, rawText)

	x.log.Debug("extracting questions",
		"model", model,
		"language", language,
		"text_length", len(rawText))

	var raw []byte
	err = retryable(func() error {
		var genErr error
		raw, genErr = x.invoker.Generate(ctx, model, extractSystemPrompt, prompt)
		return genErr
	}, opts.MaxRetries, opts.Backoff, x.log)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	x.log.Info("extraction completed", "question_count", len(records))
	return records, nil
}

// buildPrompt appends the document to the rendered template between sentinel
// markers, matching what the template announces to the model.
func buildPrompt(tpl, doc string) string {
	var sb strings.Builder
	sb.WriteString(tpl)
	sb.WriteString("\n\nUnformatted input text:\n<<DOC>>\n")
	sb.WriteString(doc)
	sb.WriteString("\n<<END>>")
	return sb.String()
}
