package textquiz

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// GenerateOption represents options for a single generation call.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	ModelName string
	System    string
	Texts     []string
	Schema    *genai.Schema
}

// WithModelName sets the model name.
func WithModelName(name string) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.ModelName = name
	}
}

// WithSystemPrompt sets the system instruction.
func WithSystemPrompt(system string) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.System = system
	}
}

// WithTexts sets the user text parts.
func WithTexts(texts ...string) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.Texts = texts
	}
}

// WithResponseSchema constrains the response to the given JSON schema.
func WithResponseSchema(schema *genai.Schema) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.Schema = schema
	}
}

// GenerateBytes generates structured JSON bytes using the Gemini API via
// Google GenAI. The response MIME type is always application/json; callers
// that need a guaranteed shape pass WithResponseSchema as well.
func GenerateBytes(ctx context.Context, client *genai.Client, log *slog.Logger, opts ...GenerateOption) ([]byte, error) {
	var cfg generateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if client == nil {
		return nil, fmt.Errorf("client not initialized")
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = DefaultModel
	}

	var parts []*genai.Part
	for _, text := range cfg.Texts {
		parts = append(parts, genai.NewPartFromText(text))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no content provided")
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if cfg.Schema != nil {
		config.ResponseSchema = cfg.Schema
	}
	if cfg.System != "" {
		config.SystemInstruction = genai.NewContentFromText(cfg.System, genai.RoleUser)
	}

	log.Debug("generating content", "model", modelName, "part_count", len(parts))

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no parts in candidate content")
	}
	part := candidate.Content.Parts[0]
	if part.Text == "" {
		return nil, fmt.Errorf("no text in first part of response")
	}

	log.Debug("generated content", "response_length", len(part.Text))
	return []byte(part.Text), nil
}

// genaiInvoker implements the Invoker interface using Google GenAI.
type genaiInvoker struct {
	client *genai.Client
	log    *slog.Logger
}

func (gv *genaiInvoker) Generate(ctx context.Context, model, system, prompt string) ([]byte, error) {
	if gv.client == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return GenerateBytes(ctx, gv.client, gv.log,
		WithModelName(model),
		WithSystemPrompt(system),
		WithTexts(prompt),
		WithResponseSchema(extractionSchema()),
	)
}
