package llm

import "context"

// Client is the oracle interface consumed by the engine. Implementations
// must tolerate arbitrary latency; the engine issues at most one call at a
// time and blocks on it.
type Client interface {
	// Generate sends a single-turn prompt and returns the model's raw text
	// response. The response is untrusted free text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Chat sends a full message history and returns the model's response.
	Chat(ctx context.Context, messages []Message) (string, error)
}
