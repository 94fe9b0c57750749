//go:build !integration

package usecase

import (
	"testing"

	"github.com/google/uuid"

	"aura-assistant/internal/domain/model"
)

func TestSessionManager(t *testing.T) {
	s := NewSessionManager(nopLogger())

	first := s.Current()
	if first == nil {
		t.Fatal("expected an active conversation at start")
	}
	if _, err := uuid.Parse(first.ID); err != nil {
		t.Fatalf("session id %q is not a uuid: %v", first.ID, err)
	}
	if s.Current() != first {
		t.Fatal("Current must return the same conversation until reset")
	}

	first.Append(model.RoleUser, "hi")
	second := s.Reset()
	if second == first || second.ID == first.ID {
		t.Fatal("reset must start a new conversation")
	}
	if second.Len() != 0 {
		t.Errorf("new conversation has %d turns", second.Len())
	}
	if s.Current() != second {
		t.Error("Current must return the reset conversation")
	}
}
