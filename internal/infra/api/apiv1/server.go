package apiv1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/infra/logging"
	"aura-assistant/internal/usecase"
)

const maxBodyBytes = 64 << 10

// Sessions hands out the process's active conversation.
type Sessions interface {
	Current() *model.Conversation
	Reset() *model.Conversation
}

type Server struct {
	chat     usecase.ChatUseCase
	sessions Sessions
	log      *zerolog.Logger
}

func NewServer(chat usecase.ChatUseCase, sessions Sessions, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{chat: chat, sessions: sessions, log: logger}
}

// RegisterAPIV1 mounts the versioned JSON routes on r.
func RegisterAPIV1(r chi.Router, s *Server) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/messages", s.ProcessMessage)
		r.Post("/session/reset", s.ResetSession)
	})
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Response string `json:"response"`
}

// ProcessMessage answers {"message": "..."} with {"response": "..."}.
// A reply produced by the failure path is sent with status 500.
func (s *Server) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reply, err := s.chat.SendMessage(r.Context(), s.sessions.Current(), req.Message)
	if err != nil && !reply.Failed {
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Str("stage", "http").Msg("send message failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusOK
	if reply.Failed {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, messageResponse{Response: reply.Text})
}

func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
