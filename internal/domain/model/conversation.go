package model

import (
	"sync"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in a conversation. Turns are values and are never
// mutated after they are appended.
type Turn struct {
	Role Role
	Text string
	At   time.Time
}

// Conversation is the ordered record of one session's turns.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	turns []Turn
}

func NewConversation(id string) *Conversation {
	return &Conversation{
		ID:        id,
		CreatedAt: time.Now(),
		turns:     make([]Turn, 0, 8),
	}
}

func (c *Conversation) Append(role Role, text string) Turn {
	t := Turn{Role: role, Text: text, At: time.Now()}
	c.mu.Lock()
	c.turns = append(c.turns, t)
	c.mu.Unlock()
	return t
}

// Turns returns a copy of the history in order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Reset drops every turn.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.turns = nil
	c.mu.Unlock()
}
