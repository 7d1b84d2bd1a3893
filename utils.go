package textquiz

import (
	"log/slog"
	"strings"
	"time"
)

// SanitizeJSONResponse removes garbage characters often produced by LLMs:
// surrounding whitespace and markdown code fences.
func SanitizeJSONResponse(b []byte) []byte {
	s := strings.TrimSpace(string(b))
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return []byte(strings.TrimSpace(s))
}

// retryable executes a function with exponential backoff retry logic.
func retryable(call func() error, max int, backoff time.Duration, log *slog.Logger) error {
	if max == 0 {
		return call() // no retry
	}

	delay := backoff
	var err error
	for i := 0; i <= max; i++ {
		if err = call(); err == nil {
			if i > 0 {
				log.Debug("attempt succeeded", "attempt", i+1)
			}
			return nil
		}
		if i == max {
			break
		}
		log.Debug("attempt failed, retrying", "attempt", i+1, "error", err, "delay", delay)
		time.Sleep(delay)
		delay *= 2
	}
	return err
}
