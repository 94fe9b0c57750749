package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.AIServiceAdapter on the Chat Completions
// API. Any OpenAI-compatible gateway works through baseURL. TopK has no
// equivalent there and is ignored.
type OpenAIAdapter struct {
	client openai.Client
	model  string
}

func NewOpenAIAdapter(apiKey, model, baseURL string, httpClient *http.Client) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// A single attempt per call; callers decide how to degrade.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAIAdapter{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (o *OpenAIAdapter) Name() string { return "openai" }

func (o *OpenAIAdapter) Generate(ctx context.Context, messages []adapter.Message, opts adapter.GenerationOptions) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("openai: no messages")
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(float64(opts.Temperature)),
		TopP:        openai.Float(float64(opts.TopP)),
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		metrics.ObserveAICall(o.Name(), opts.Purpose, 0, 0, latency, false)
		return "", fmt.Errorf("%w: openai chat completion: %v", domain.ErrUpstream, err)
	}
	metrics.ObserveAICall(o.Name(), opts.Purpose, int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens), latency, true)

	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", adapter.ErrNoCandidates
}

func toOpenAIMessages(msgs []adapter.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch strings.ToLower(m.Role) {
		case "assistant", "model":
			out = append(out, openai.AssistantMessage(m.Content))
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
