package usecase

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aura-assistant/internal/domain/model"
)

// SessionManager owns the single active conversation of the process.
type SessionManager struct {
	mu      sync.Mutex
	current *model.Conversation
	log     *zerolog.Logger
}

func NewSessionManager(logger *zerolog.Logger) *SessionManager {
	s := &SessionManager{log: logger}
	s.current = s.start()
	return s
}

// Current returns the active conversation.
func (s *SessionManager) Current() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset discards the active conversation and starts a new one.
func (s *SessionManager) Reset() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.current
	s.current = s.start()
	if old != nil {
		s.log.Info().Str("old_session_id", old.ID).Int("turns", old.Len()).Str("session_id", s.current.ID).Msg("session reset")
	}
	return s.current
}

func (s *SessionManager) start() *model.Conversation {
	return model.NewConversation(uuid.NewString())
}
