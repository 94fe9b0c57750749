package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/logging"
	"aura-assistant/internal/infra/metrics"
)

// Compile-time check
var _ IntentClassifier = (*intentClassifier)(nil)

// IntentClassifier turns free text into a model.Intent. It never fails:
// anything it cannot classify comes back as a chat intent.
type IntentClassifier interface {
	Classify(ctx context.Context, message string) model.Intent
}

var classifyOptions = adapter.GenerationOptions{
	Temperature: 0,
	TopP:        1,
	TopK:        1,
	Timeout:     10 * time.Second,
	Purpose:     "classify",
}

const classifyPrompt = `Analyze the user's message and determine their intent.
Respond with ONLY a JSON object.

The possible intents are:
- "get_weather": User wants to know the weather.
- "get_music": User wants a song or music recommendation.
- "chat": User is just chatting, greeting, or asking a general question (this INCLUDES questions about you or your creator).
- "goodbye": User is ending the conversation.

If intent is "get_weather", extract the "city".
If intent is "get_music", extract the "query".

User Message: "%s"

Examples:
- User: "hi how are you" -> {"intent": "chat"}
- User: "what's the weather in paris?" -> {"intent": "get_weather", "city": "Paris"}
- User: "recommend some happy songs" -> {"intent": "get_music", "query": "happy songs"}
- User: "who built you?" -> {"intent": "chat"}
- User: "who is your owner?" -> {"intent": "chat"}
- User: "I'm feeling sad" -> {"intent": "chat"}
- User: "bye" -> {"intent": "goodbye"}

JSON Response:`

type intentClassifier struct {
	ai  adapter.AIServiceAdapter
	log *zerolog.Logger
}

func NewIntentClassifier(ai adapter.AIServiceAdapter, logger *zerolog.Logger) *intentClassifier {
	return &intentClassifier{ai: ai, log: logger}
}

func (c *intentClassifier) Classify(ctx context.Context, message string) model.Intent {
	l := logging.With(ctx, c.log)
	defer logging.TraceDuration(l, "IntentClassifier.Classify")()

	prompt := fmt.Sprintf(classifyPrompt, message)
	text, err := c.ai.Generate(ctx, []adapter.Message{{Role: "user", Content: prompt}}, classifyOptions)
	if err != nil {
		metrics.IncClassifyFallback("request")
		l.Warn().Err(err).Str("stage", "classify").Msg("intent classification request failed, treating as chat")
		return model.ChatIntent()
	}

	intent, err := decodeIntent(text)
	if err != nil {
		reason := "parse"
		if errors.Is(err, errIntentShape) {
			reason = "shape"
		}
		metrics.IncClassifyFallback(reason)
		l.Warn().Err(err).Str("stage", "classify").Str("raw", text).Msg("unusable classification, treating as chat")
		return model.ChatIntent()
	}

	metrics.IncIntent(intent.Kind.String())
	l.Info().Str("intent", intent.Kind.String()).Str("city", intent.City).Str("query", intent.Query).Msg("intent classified")
	return intent
}

var errIntentShape = errors.New("classification has no intent field")

// intentPayload is the only shape the classifier accepts.
type intentPayload struct {
	Intent *string `json:"intent"`
	City   string  `json:"city"`
	Query  string  `json:"query"`
}

// decodeIntent parses the model's reply after removing code fences.
func decodeIntent(raw string) (model.Intent, error) {
	cleaned := cleanJSONReply(raw)
	if cleaned == "" {
		return model.Intent{}, errors.New("empty classification")
	}
	var p intentPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return model.Intent{}, fmt.Errorf("decode classification: %w", err)
	}
	if p.Intent == nil {
		return model.Intent{}, errIntentShape
	}

	switch model.ParseIntentKind(*p.Intent) {
	case model.IntentWeather:
		return model.WeatherIntent(p.City), nil
	case model.IntentMusic:
		return model.MusicIntent(p.Query), nil
	case model.IntentChat:
		return model.ChatIntent(), nil
	case model.IntentGoodbye:
		return model.GoodbyeIntent(), nil
	default:
		return model.UnknownIntent(), nil
	}
}

// cleanJSONReply strips ``` fences and any chatter around the JSON object.
func cleanJSONReply(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '{' {
		return s
	}
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}
	return s
}
