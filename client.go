package textquiz

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Config holds the explicit settings needed to talk to the Gemini API. No
// ambient globals: whoever owns the Clients handle decides where the key
// comes from.
type Config struct {
	APIKey  string
	Backend genai.Backend // zero value selects the Gemini API backend
}

// Clients is a process-wide, lazily-initialized handle for the GenAI client.
// Construct it once from explicit configuration and reuse it for the lifetime
// of the process; the underlying client is built on first use and shared by
// every subsequent call, also under concurrency.
type Clients struct {
	cfg Config

	once   sync.Once
	client *genai.Client
	err    error
}

// NewClients prepares a handle without connecting anywhere yet.
func NewClients(cfg Config) *Clients {
	return &Clients{cfg: cfg}
}

// GenAI returns the shared client, constructing it on first call. The
// construction error, if any, is sticky: a handle with a bad key stays bad.
func (c *Clients) GenAI(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		if c.cfg.APIKey == "" {
			c.err = fmt.Errorf("genai client: API key is not set")
			return
		}
		backend := c.cfg.Backend
		if backend == genai.BackendUnspecified {
			backend = genai.BackendGeminiAPI
		}
		c.client, c.err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.cfg.APIKey,
			Backend: backend,
		})
	})
	return c.client, c.err
}
