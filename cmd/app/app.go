package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"aura-assistant/internal/config"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/domain/ports/repository"
	aiAdapters "aura-assistant/internal/infra/adapters/ai"
	"aura-assistant/internal/infra/adapters/music"
	"aura-assistant/internal/infra/adapters/weather"
	"aura-assistant/internal/infra/i18n"
	"aura-assistant/internal/infra/logging"
	"aura-assistant/internal/infra/metrics"
	red "aura-assistant/internal/infra/redis"
	"aura-assistant/internal/usecase"
)

// application holds everything a command needs after startup.
type application struct {
	cfg      *config.Config
	log      *zerolog.Logger
	chat     usecase.ChatUseCase
	sessions *usecase.SessionManager
	limiter  *red.RateLimiter
	closers  []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("close")
		}
	}
}

func buildApplication(ctx context.Context, flags *rootFlags) (*application, error) {
	cfg, err := config.Load(flags.configPath, flags.dev)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit, cfg.AI.Provider)

	app := &application{cfg: cfg, log: logger}

	// ---- Redis (optional) ----
	var tokens repository.TokenStore = music.NewMemoryTokenStore()
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		app.closers = append(app.closers, redisClient.Close)
		tokens = red.NewTokenStore(redisClient, cfg.Redis.TokenKey)
		app.limiter = red.NewRateLimiter(redisClient)
		logger.Info().Msg("redis enabled for token store and rate limiting")
	}

	// ---- Phrases ----
	phrases, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Locale)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("i18n: %w", err)
	}

	// ---- AI Adapter ----
	ai, err := newAIAdapter(ctx, cfg.AI)
	if err != nil {
		app.Close()
		return nil, err
	}
	ai = aiAdapters.NewLimitedAI(ai, cfg.AI.ConcurrentLimit)
	logger.Info().Str("provider", ai.Name()).Str("model", cfg.AI.Model).Msg("AI adapter ready")

	// ---- Tools ----
	weatherClient, err := weather.New(cfg.Weather.APIKey, weather.WithBaseURL(cfg.Weather.BaseURL))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("weather: %w", err)
	}
	musicClient, err := music.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret,
		music.WithEndpoints(cfg.Spotify.AccountsURL, cfg.Spotify.APIURL),
		music.WithTokenStore(tokens),
		music.WithLogger(logger),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("spotify: %w", err)
	}

	// ---- Use cases ----
	responder := usecase.NewResponder(ai, phrases, logger)
	router := usecase.NewToolRouter(weatherClient, musicClient, responder, phrases, logger)
	classifier := usecase.NewIntentClassifier(ai, logger)
	app.chat = usecase.NewChatUseCase(classifier, router, phrases, logger, cfg.Runtime.Dev)
	app.sessions = usecase.NewSessionManager(logger)
	return app, nil
}

func newAIAdapter(ctx context.Context, cfg config.AIConfig) (adapter.AIServiceAdapter, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		a, err := aiAdapters.NewOpenAIAdapter(cfg.OpenAIKey, cfg.Model, cfg.OpenAIBaseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("openai adapter: %w", err)
		}
		return a, nil
	default:
		a, err := aiAdapters.NewGeminiAdapter(ctx, cfg.GeminiKey, cfg.GeminiURL, cfg.Model, httpClient)
		if err != nil {
			return nil, fmt.Errorf("gemini adapter: %w", err)
		}
		return a, nil
	}
}
