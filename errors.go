package textquiz

import (
	"fmt"
)

// ServiceError wraps a failure of the extraction service call itself:
// network, authentication, quota. Retryable from the caller's point of view.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("extraction service call failed: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ExtractionError means the service answered, but the payload could not be
// parsed into the required question schema. The raw bytes are kept for
// diagnostics. Callers should surface this as "rephrase and retry".
type ExtractionError struct {
	Raw []byte
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("model output is not valid question JSON: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TemplateFormatError means the template archive has no usable content
// description or skeleton question. Fatal for the merge invocation; the
// remedy is to check the template file.
type TemplateFormatError struct {
	Reason string
	Err    error
}

func (e *TemplateFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("template format: %s: %v", e.Reason, e.Err)
	}
	return "template format: " + e.Reason
}

func (e *TemplateFormatError) Unwrap() error { return e.Err }

// ArchiveError wraps a read or write failure of the zip container itself
// (corrupt file, I/O error), as opposed to a well-formed archive with bad
// contents.
type ArchiveError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s failed: %v", e.Op, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }
