package adapter

import (
	"context"
	"errors"
	"time"
)

// ErrNoCandidates is returned when the model produced no usable candidate.
var ErrNoCandidates = errors.New("ai: no candidates returned")

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant"
	Content string `json:"content"`
}

// GenerationOptions are the decoding parameters for a single call.
type GenerationOptions struct {
	Temperature float32
	TopP        float32
	TopK        int
	// Timeout bounds the whole call; zero leaves it to the caller's context.
	Timeout time.Duration
	// Purpose labels the call for logs and metrics ("classify", "chat").
	Purpose string
}

// Usage for a single call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AIServiceAdapter is the port for LLM text generation.
type AIServiceAdapter interface {
	// Name identifies the provider ("gemini", "openai").
	Name() string

	// Generate returns the first candidate's text. Transport and status
	// failures wrap domain.ErrUpstream.
	Generate(ctx context.Context, messages []Message, opts GenerationOptions) (string, error)
}
