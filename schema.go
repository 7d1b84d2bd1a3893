package textquiz

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// extractionSchema is handed to the model as the mandatory response shape.
// It bounds the parse-failure rate; decodeRecords still validates the result.
func extractionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {Type: genai.TypeString},
						"answers": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"correct_index": {Type: genai.TypeInteger},
					},
					Required: []string{"question", "answers"},
				},
			},
		},
	}
}

// decodeRecords validates the raw model output against the question schema.
// A parsed object without a "questions" key means "nothing found" and yields
// an empty slice, not an error; anything that fails to parse yields an
// *ExtractionError.
func decodeRecords(raw []byte) ([]QuestionRecord, error) {
	cleaned := SanitizeJSONResponse(raw)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(cleaned, &envelope); err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}

	qs, ok := envelope["questions"]
	if !ok {
		return []QuestionRecord{}, nil
	}

	var records []QuestionRecord
	if err := json.Unmarshal(qs, &records); err != nil {
		return nil, &ExtractionError{Raw: raw, Err: fmt.Errorf("questions field: %w", err)}
	}
	if records == nil {
		records = []QuestionRecord{}
	}
	return records, nil
}
