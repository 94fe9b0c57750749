// File: .\internal\infra\adapters\ai\gemini_adapter.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/metrics"
)

var _ adapter.AIServiceAdapter = (*GeminiAdapter)(nil)

type GeminiAdapter struct {
	client *genai.Client
	model  string
}

// NewGeminiAdapter creates a Gemini adapter using the official SDK.
// baseURL may be empty to use the public endpoint; httpClient may be nil.
func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, model string, httpClient *http.Client) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, model: model}, nil
}

func (g *GeminiAdapter) Name() string { return "gemini" }

func (g *GeminiAdapter) Generate(ctx context.Context, messages []adapter.Message, opts adapter.GenerationOptions) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("gemini: no messages")
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toGenAIHistory(messages), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
		TopP:        genai.Ptr(opts.TopP),
		TopK:        genai.Ptr(float32(opts.TopK)),
	})
	latency := time.Since(start).Milliseconds()
	if err != nil {
		metrics.ObserveAICall(g.Name(), opts.Purpose, 0, 0, latency, false)
		return "", fmt.Errorf("%w: gemini generate: %v", domain.ErrUpstream, err)
	}

	u := usageOf(resp)
	metrics.ObserveAICall(g.Name(), opts.Purpose, u.PromptTokens, u.CompletionTokens, latency, true)

	// First candidate's first part, as the REST contract describes.
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", adapter.ErrNoCandidates
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func usageOf(resp *genai.GenerateContentResponse) adapter.Usage {
	u := adapter.Usage{}
	if resp != nil && resp.UsageMetadata != nil {
		u.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		u.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		u.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return u
}

func toGenAIHistory(msgs []adapter.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		switch strings.ToLower(m.Role) {
		case "assistant", "model":
			role = genai.RoleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return out
}
