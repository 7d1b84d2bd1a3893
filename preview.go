package textquiz

import (
	"fmt"
	"strings"
)

// FormatPreview renders extracted records as a human-readable listing, one
// block per question with lettered answers and the correct one marked. Meant
// for showing the user what the merge is about to package.
func FormatPreview(records []QuestionRecord) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Question %d: %s\n", i+1, rec.Question))

		correct := -1
		if rec.CorrectIndex != nil {
			correct = *rec.CorrectIndex
		}
		for idx, ans := range rec.Answers {
			marker := "   "
			if idx == correct {
				marker = " ✓ "
			}
			sb.WriteString(fmt.Sprintf("%s%c. %s\n", marker, answerLetter(idx), ans))
		}
		if correct < 0 || correct >= len(rec.Answers) {
			sb.WriteString(" ! correct answer not marked\n")
		}
	}
	return sb.String()
}

// answerLetter maps an answer position to its display letter (A, B, C, ...).
func answerLetter(idx int) rune {
	return rune('A' + idx)
}
