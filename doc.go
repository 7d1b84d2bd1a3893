// Package textquiz converts free-form pasted text containing multiple-choice
// questions into an H5P quiz package, using an AI model to recover the
// question structure and a template package to supply everything else.
//
// # Problem Statement
//
// People collect quiz questions in whatever shape their tools produce:
// numbered lists, bullet points, text copied out of a chat window. Turning
// that into an interactive H5P package by hand means re-typing every question
// into an authoring UI and losing the styling and behaviour settings an
// existing template already has right.
//
// The textquiz package splits the job in two:
//
//   - Extractor: sends the raw text to a Gemini model constrained to a fixed
//     JSON schema and returns []QuestionRecord. The prompt forbids
//     translation and demands four answers with one correct index.
//   - Merge: reads a template .h5p archive, deep-copies its first question as
//     a structural skeleton, projects each record onto a fresh copy, and
//     rewrites the archive with only the question list replaced. Feedback
//     texts, button settings, scoring rules, and every other archive entry
//     survive byte for byte.
//
// # Basic Usage
//
//	clients := textquiz.NewClients(textquiz.Config{APIKey: apiKey})
//	client, err := clients.GenAI(ctx)
//	if err != nil { ... }
//
//	ex := textquiz.NewExtractor(client, textquiz.DefaultPrompts())
//	records, err := ex.Extract(ctx, pastedText, "English",
//	    textquiz.WithModel("gemini-2.0-flash"),
//	    textquiz.WithRetry(2, time.Second),
//	)
//	if err != nil { ... }
//
//	result, err := textquiz.Merge(templateBytes, records)
//	if err != nil { ... }
//	os.WriteFile("quiz.h5p", result.Archive, 0o644)
//
// # Degraded records
//
// Per-question defects never abort a batch. A record without a correct_index
// gets its first answer marked correct; a record with three or five answers
// produces exactly that many answer entries. Both conditions are reported in
// MergeResult.Flags so the caller can warn the user.
//
// # Error Taxonomy
//
// Extraction fails with *ServiceError (the call did not complete; retry) or
// *ExtractionError (the model's output was not valid question JSON; rephrase
// the input). Merge fails with *TemplateFormatError (no usable content
// description or skeleton question; check the template file) or
// *ArchiveError (the zip container could not be read or written). All are
// recoverable with errors.As at the presentation boundary, and a failed merge
// never leaves a partially written archive behind.
package textquiz
