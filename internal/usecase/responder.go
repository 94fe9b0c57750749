package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/logging"
	"aura-assistant/internal/infra/metrics"
)

// Compile-time check
var _ Responder = (*responder)(nil)

// Responder produces a free-form assistant reply from the whole conversation.
type Responder interface {
	Respond(ctx context.Context, conv *model.Conversation) (string, error)
}

var respondOptions = adapter.GenerationOptions{
	Temperature: 0.7,
	TopP:        0.95,
	TopK:        40,
	Timeout:     20 * time.Second,
	Purpose:     "chat",
}

type responder struct {
	ai      adapter.AIServiceAdapter
	phrases Phrasebook
	log     *zerolog.Logger
}

func NewResponder(ai adapter.AIServiceAdapter, phrases Phrasebook, logger *zerolog.Logger) *responder {
	return &responder{ai: ai, phrases: phrases, log: logger}
}

func (r *responder) Respond(ctx context.Context, conv *model.Conversation) (string, error) {
	l := logging.With(ctx, r.log)
	defer logging.TraceDuration(l, "Responder.Respond")()

	text, err := r.ai.Generate(ctx, buildChatMessages(r.phrases.Persona(), conv.Turns()), respondOptions)
	if errors.Is(err, adapter.ErrNoCandidates) || (err == nil && strings.TrimSpace(text) == "") {
		l.Warn().Str("stage", "respond").Msg("model returned no candidates")
		metrics.IncReply("chat", "no_candidates")
		return r.phrases.T(msgChatNoCandidates), nil
	}
	if err != nil {
		return "", err
	}
	metrics.IncReply("chat", "ok")
	return text, nil
}

// buildChatMessages puts the persona first as a user turn, then the history.
func buildChatMessages(persona string, turns []model.Turn) []adapter.Message {
	msgs := make([]adapter.Message, 0, len(turns)+1)
	msgs = append(msgs, adapter.Message{Role: string(model.RoleUser), Content: persona})
	for _, t := range turns {
		role := "user"
		if t.Role == model.RoleAssistant {
			role = "model"
		}
		msgs = append(msgs, adapter.Message{Role: role, Content: t.Text})
	}
	return msgs
}
