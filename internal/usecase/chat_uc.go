// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/infra/logging"
	"aura-assistant/internal/infra/metrics"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// Reply is the outcome of one user message. Failed marks an apology
// produced because the conversational path broke.
type Reply struct {
	Text   string
	Intent model.Intent
	Failed bool
}

type ChatUseCase interface {
	SendMessage(ctx context.Context, conv *model.Conversation, message string) (Reply, error)
}

type chatUC struct {
	classifier IntentClassifier
	router     ToolRouter
	phrases    Phrasebook
	log        *zerolog.Logger
	devMode    bool
}

func NewChatUseCase(classifier IntentClassifier, router ToolRouter, phrases Phrasebook, logger *zerolog.Logger, devMode bool) *chatUC {
	return &chatUC{classifier: classifier, router: router, phrases: phrases, log: logger, devMode: devMode}
}

func (c *chatUC) SendMessage(ctx context.Context, conv *model.Conversation, message string) (Reply, error) {
	if conv == nil {
		return Reply{}, fmt.Errorf("send message: %w", domain.ErrInvalidArgument)
	}
	ctx = logging.WithSessID(ctx, conv.ID)
	l := logging.With(ctx, c.log)
	defer logging.TraceDuration(l, "ChatUC.SendMessage")()

	message = strings.TrimSpace(message)
	if message == "" {
		metrics.IncReply("input", "empty")
		return Reply{Text: c.phrases.T(msgEmpty)}, nil
	}

	conv.Append(model.RoleUser, message)
	l.Debug().Str("message", logging.Redact(message, c.devMode)).Int("turns", conv.Len()).Msg("user message received")

	intent := c.classifier.Classify(ctx, message)
	text, err := c.router.Route(ctx, intent, conv)
	if err != nil {
		apology := c.phrases.T(msgErrorUnexpected)
		outcome := "unexpected"
		if errors.Is(err, domain.ErrUpstream) || errors.Is(err, context.DeadlineExceeded) {
			apology = c.phrases.T(msgErrorConnectivity)
			outcome = "connectivity"
		}
		l.Error().Err(err).Str("stage", "route").Str("intent", intent.Kind.String()).Msg("could not produce a reply")
		metrics.IncReply("fallback", outcome)
		conv.Append(model.RoleAssistant, apology)
		return Reply{Text: apology, Intent: intent, Failed: true}, err
	}

	conv.Append(model.RoleAssistant, text)
	return Reply{Text: text, Intent: intent}, nil
}
