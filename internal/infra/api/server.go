package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"aura-assistant/internal/config"
	"aura-assistant/internal/infra/api/apiv1"
	"aura-assistant/internal/infra/logging"
)

//go:embed templates/index.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Server is the browser-facing HTTP surface: the chat page, the message
// endpoint it posts to, the versioned API, health and metrics.
type Server struct {
	cfg     config.HTTPConfig
	v1      *apiv1.Server
	reset   func()
	limiter Limiter
	keyFn   func(ip, route string) string
	log     *zerolog.Logger
	srv     *http.Server
}

// NewServer wires the routes. limiter may be nil to disable rate limiting.
func NewServer(cfg config.HTTPConfig, v1 *apiv1.Server, sessions apiv1.Sessions, limiter Limiter, keyFn func(ip, route string) string, logger *zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		v1:      v1,
		reset:   func() { sessions.Reset() },
		limiter: limiter,
		keyFn:   keyFn,
		log:     logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), Recover(s.log), RequestLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(Timeout(s.cfg.RequestTimeout), RateLimit(s.limiter, s.cfg.RateLimit, s.cfg.RateWindow, s.keyFn, s.log))
		r.Get("/", s.handleIndex)
		r.Post("/process-message", s.v1.ProcessMessage)
		apiv1.RegisterAPIV1(r, s.v1)
	})
	return r
}

// handleIndex starts a fresh conversation on every page load.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.reset()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, nil); err != nil {
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Msg("render index")
	}
}

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Port).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
