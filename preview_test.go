package textquiz

import (
	"strings"
	"testing"
)

func TestFormatPreview_MarksCorrectAnswer(t *testing.T) {
	idx := 2
	out := FormatPreview([]QuestionRecord{
		{
			Question:     "What is the capital of Belgium?",
			Answers:      []string{"Paris", "Berlin", "Brussels", "Madrid"},
			CorrectIndex: &idx,
		},
	})

	if !strings.Contains(out, "Question 1: What is the capital of Belgium?") {
		t.Errorf("missing question header:\n%s", out)
	}
	if !strings.Contains(out, "✓ C. Brussels") {
		t.Errorf("correct answer not marked:\n%s", out)
	}
	if strings.Contains(out, "✓ A.") || strings.Contains(out, "✓ B.") || strings.Contains(out, "✓ D.") {
		t.Errorf("wrong answer marked:\n%s", out)
	}
	if strings.Contains(out, "correct answer not marked") {
		t.Errorf("unexpected warning:\n%s", out)
	}
}

func TestFormatPreview_WarnsWhenUnmarked(t *testing.T) {
	out := FormatPreview([]QuestionRecord{
		{Question: "Which?", Answers: []string{"a", "b", "c", "d"}},
	})

	if !strings.Contains(out, "! correct answer not marked") {
		t.Errorf("expected unmarked warning:\n%s", out)
	}
	if strings.Contains(out, "✓") {
		t.Errorf("no answer should be marked:\n%s", out)
	}
}

func TestFormatPreview_NumbersQuestions(t *testing.T) {
	idx := 0
	records := []QuestionRecord{
		{Question: "one", Answers: []string{"a", "b"}, CorrectIndex: &idx},
		{Question: "two", Answers: []string{"c", "d"}, CorrectIndex: &idx},
	}
	out := FormatPreview(records)

	if !strings.Contains(out, "Question 1: one") || !strings.Contains(out, "Question 2: two") {
		t.Errorf("questions not numbered 1-based:\n%s", out)
	}
}

func TestFormatPreview_Empty(t *testing.T) {
	if out := FormatPreview(nil); out != "" {
		t.Errorf("expected empty preview, got %q", out)
	}
}
