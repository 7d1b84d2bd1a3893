package textquiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Flag marks a question that was accepted in degraded form. The batch never
// aborts over these; the presentation layer decides what to tell the user.
type Flag struct {
	Question int // 1-based position in the output
	Reason   string
}

func (f Flag) String() string {
	return fmt.Sprintf("question %d: %s", f.Question, f.Reason)
}

// MergeResult is the output archive plus any per-question degradations.
type MergeResult struct {
	Archive []byte
	Flags   []Flag
}

// MergeOption configures a single merge invocation.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	contentPath string
	runner      func() Runner
}

// WithContentPath overrides the path of the content description entry.
func WithContentPath(path string) MergeOption {
	return func(cfg *mergeConfig) { cfg.contentPath = path }
}

// WithProjectionRunner supplies the runner used to build the generated
// questions. Every projection works on its own deep copy, so any concurrency
// level is safe.
func WithProjectionRunner(r Runner) MergeOption {
	return func(cfg *mergeConfig) { cfg.runner = func() Runner { return r } }
}

// Merge reads the template archive, replaces its question list with one
// generated question per record, and returns the rewritten archive. The
// first question of the template serves as the structural skeleton: only the
// question text, the answer texts and correct flags, the title metadata, and
// the subContentId change; every other field of the skeleton, every other
// field of the content description, and every other archive entry pass
// through untouched.
//
// An empty record list is valid and produces a package with an empty question
// list. Failure modes: *TemplateFormatError when the archive holds no usable
// content description or skeleton, *ArchiveError when the container itself
// cannot be read or written. On error no partial output exists.
func Merge(template []byte, records []QuestionRecord, opts ...MergeOption) (*MergeResult, error) {
	cfg := mergeConfig{
		contentPath: ContentEntryPath,
		runner:      func() Runner { return DefaultRunner(context.Background()) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	zr, err := openArchive(template)
	if err != nil {
		return nil, err
	}

	data, found, err := readEntry(zr, cfg.contentPath)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &TemplateFormatError{Reason: fmt.Sprintf("archive has no %s entry", cfg.contentPath)}
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &TemplateFormatError{Reason: "content description is not valid JSON", Err: err}
	}

	skeleton, err := skeletonOf(doc)
	if err != nil {
		return nil, err
	}

	// Fan out one projection per record. Slots are index-addressed, so no
	// locking: each goroutine owns its own deep copy and its own slot.
	generated := make([]any, len(records))
	flagged := make([][]Flag, len(records))
	r := cfg.runner()
	for i, rec := range records {
		i, rec := i, rec // loop capture
		r.Go(func() error {
			q, flags := project(skeleton, rec, i+1)
			generated[i] = q
			flagged[i] = flags
			return nil
		})
	}
	if err := r.Wait(); err != nil {
		return nil, err
	}

	doc["questions"] = generated

	payload, err := encodeContent(doc)
	if err != nil {
		return nil, err
	}

	out, err := rewriteArchive(zr, cfg.contentPath, payload)
	if err != nil {
		return nil, err
	}

	var flags []Flag
	for _, fs := range flagged {
		flags = append(flags, fs...)
	}
	return &MergeResult{Archive: out, Flags: flags}, nil
}

// skeletonOf pulls the first template question out of the content description
// and checks the pieces project relies on, so projection itself cannot hit a
// malformed tree.
func skeletonOf(doc map[string]any) (map[string]any, error) {
	questions, ok := doc["questions"].([]any)
	if !ok {
		return nil, &TemplateFormatError{Reason: "content description has no questions list"}
	}
	if len(questions) == 0 {
		return nil, &TemplateFormatError{Reason: "questions list is empty; no skeleton question to copy"}
	}
	skeleton, ok := questions[0].(map[string]any)
	if !ok {
		return nil, &TemplateFormatError{Reason: "first question is not an object"}
	}
	params, ok := skeleton["params"].(map[string]any)
	if !ok {
		return nil, &TemplateFormatError{Reason: "skeleton question has no params object"}
	}
	answers, ok := params["answers"].([]any)
	if !ok || len(answers) == 0 {
		return nil, &TemplateFormatError{Reason: "skeleton question has no answers to copy"}
	}
	if _, ok := answers[0].(map[string]any); !ok {
		return nil, &TemplateFormatError{Reason: "skeleton answer is not an object"}
	}
	if _, ok := skeleton["metadata"].(map[string]any); !ok {
		return nil, &TemplateFormatError{Reason: "skeleton question has no metadata object"}
	}
	return skeleton, nil
}

// project builds one generated question: an independent deep copy of the
// skeleton patched with the record's content. pos is 1-based. Pure function;
// the skeleton is never mutated, and no substructure is shared between the
// returned copy, the skeleton, or any sibling copy.
func project(skeleton map[string]any, rec QuestionRecord, pos int) (map[string]any, []Flag) {
	q := deepCopyMap(skeleton)
	params := q["params"].(map[string]any)
	params["question"] = rec.Question

	base := params["answers"].([]any)[0].(map[string]any)

	var flags []Flag
	correct := 0
	switch {
	case rec.CorrectIndex == nil:
		flags = append(flags, Flag{Question: pos, Reason: "correct answer not indicated; first answer marked correct"})
	default:
		correct = *rec.CorrectIndex
		if correct < 0 || correct >= len(rec.Answers) {
			flags = append(flags, Flag{Question: pos, Reason: fmt.Sprintf("correct_index %d out of range; no answer marked correct", correct)})
		}
	}
	if len(rec.Answers) != 4 {
		flags = append(flags, Flag{Question: pos, Reason: fmt.Sprintf("expected 4 answers, got %d", len(rec.Answers))})
	}

	answers := make([]any, 0, len(rec.Answers))
	for idx, text := range rec.Answers {
		a := deepCopyMap(base)
		a["text"] = text
		a["correct"] = idx == correct
		answers = append(answers, a)
	}
	params["answers"] = answers

	title := fmt.Sprintf("Question %d", pos)
	meta := q["metadata"].(map[string]any)
	meta["title"] = title
	meta["extraTitle"] = title
	q["subContentId"] = uuid.NewString()

	return q, flags
}

// encodeContent serializes the content description. HTML escaping is off so
// question markup like <p> and non-ASCII text round-trip as written.
func encodeContent(doc map[string]any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode content description: %w", err)
	}
	return buf.Bytes(), nil
}

func deepCopyMap(m map[string]any) map[string]any {
	return deepCopyValue(m).(map[string]any)
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = deepCopyValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = deepCopyValue(e)
		}
		return s
	default:
		// JSON scalars are immutable; share them.
		return v
	}
}
