package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single chat call when no timeout is configured.
// Local models can take minutes on long planning prompts.
const DefaultTimeout = 10 * time.Minute

// OllamaClient talks to an Ollama server's /api/chat endpoint.
type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
}

// OllamaOption configures an OllamaClient.
type OllamaOption func(*OllamaClient)

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// inject a stub transport.
func WithHTTPClient(c *http.Client) OllamaOption {
	return func(o *OllamaClient) {
		o.http = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) OllamaOption {
	return func(o *OllamaClient) {
		o.http.Timeout = d
	}
}

// NewOllamaClient creates a client for the given chat endpoint and model.
// baseURL should be the full chat URL, e.g. "http://localhost:11434/api/chat".
func NewOllamaClient(baseURL, model string, opts ...OllamaOption) *OllamaClient {
	c := &OllamaClient{
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
}

// Generate implements Client by sending the prompt as a single user turn.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []Message{UserMessage(prompt)})
}

// Chat implements Client against the Ollama chat API.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: unexpected status %s", resp.Status)
	}

	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	return out.Message.Content, nil
}
