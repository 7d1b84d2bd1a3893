package textquiz

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tyler-sommer/stick"
)

// ExtractPromptTag names the template used for question extraction.
const ExtractPromptTag = "extract"

// defaultExtractTemplate turns arbitrarily formatted pasted text into the
// fixed question JSON. The wording mirrors three hard rules: never translate,
// four answers with one correct index, JSON only.
const defaultExtractTemplate = `You are given a text that contains multiple-choice questions in an arbitrary
format. They may be numbered lists, bullet points, or plainly pasted prose.
Your task is to analyse the text and turn it into a list of complete
multiple-choice questions.

Rules:
- Do not translate; return the questions and answers exactly as they appear in
  the input text, in {{ language }}.
- Every question must have 4 answer options and exactly 1 correct index.
- Return ONLY valid JSON in this exact format:

{
  "questions": [
    {
      "question": "question text",
      "answers": ["answer A", "answer B", "answer C", "answer D"],
      "correct_index": 0
    }
  ]
}`

// extractSystemPrompt primes the model for the validator role.
const extractSystemPrompt = "You are a JSON validator and text analyser. You extract " +
	"multiple-choice questions from unformatted text and always return them as valid " +
	"JSON in the specified format."

// PromptProvider should return the rendered prompt text for the given tag.
type PromptProvider interface {
	GetPrompt(tag string, vars map[string]any) (string, error)
}

// StickPromptProvider renders Twig templates; fs-agnostic.
type StickPromptProvider struct {
	env       *stick.Env
	templates map[string]string
	vars      map[string]any // variables shared by all templates
}

// PromptOption configures a StickPromptProvider.
type PromptOption func(*StickPromptProvider) error

// WithFS loads every *.twig file found under dir in the supplied FS.
func WithFS[F fs.FS](fsys F, dir string) PromptOption {
	return func(p *StickPromptProvider) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			tag := strings.TrimSuffix(filepath.Base(path), ".twig")
			p.templates[tag] = string(content)
			return nil
		})
	}
}

// WithTemplates lets you inject an in-memory map.
func WithTemplates(m map[string]string) PromptOption {
	return func(p *StickPromptProvider) error {
		for k, v := range m {
			p.templates[k] = v
		}
		return nil
	}
}

// WithVar adds a variable that will be available in all templates.
func WithVar(key string, value any) PromptOption {
	return func(p *StickPromptProvider) error {
		p.vars[key] = value
		return nil
	}
}

// NewStickPromptProvider builds a provider from any combination of options.
func NewStickPromptProvider(opts ...PromptOption) (*StickPromptProvider, error) {
	p := &StickPromptProvider{
		env:       stick.New(nil),
		templates: make(map[string]string),
		vars:      make(map[string]any),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DefaultPrompts returns a provider preloaded with the built-in extraction
// template.
func DefaultPrompts() *StickPromptProvider {
	p, _ := NewStickPromptProvider(WithTemplates(map[string]string{
		ExtractPromptTag: defaultExtractTemplate,
	}))
	return p
}

// AddTemplate updates or inserts one template.
func (p *StickPromptProvider) AddTemplate(tag, tpl string) { p.templates[tag] = tpl }

// GetPrompt renders the template for the given tag.
func (p *StickPromptProvider) GetPrompt(tag string, vars map[string]any) (string, error) {
	tpl, ok := p.templates[tag]
	if !ok {
		return "", fmt.Errorf("template %q not found", tag)
	}

	templateCtx := make(map[string]stick.Value)
	templateCtx["tag"] = tag
	for k, v := range p.vars {
		templateCtx[k] = v
	}
	for k, v := range vars {
		templateCtx[k] = v
	}

	var out strings.Builder
	if err := p.env.Execute(tpl, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute %q: %w", tag, err)
	}
	return out.String(), nil
}

// SimplePromptProvider serves raw template strings without rendering.
type SimplePromptProvider map[string]string

func (s SimplePromptProvider) GetPrompt(tag string, vars map[string]any) (string, error) {
	if tpl, ok := s[tag]; ok {
		return tpl, nil
	}
	return "", fmt.Errorf("prompt %q not found", tag)
}
