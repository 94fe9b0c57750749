package usecase

import (
	"context"
	"errors"
	"html"

	"github.com/rs/zerolog"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/logging"
	"aura-assistant/internal/infra/metrics"
)

// Compile-time check
var _ ToolRouter = (*toolRouter)(nil)

// ToolRouter turns a classified intent into reply text. Tool failures are
// answered in text; only responder errors are returned.
type ToolRouter interface {
	Route(ctx context.Context, intent model.Intent, conv *model.Conversation) (string, error)
}

type toolRouter struct {
	weather   adapter.WeatherProvider
	music     adapter.MusicCatalog
	responder Responder
	phrases   Phrasebook
	log       *zerolog.Logger
}

func NewToolRouter(weather adapter.WeatherProvider, music adapter.MusicCatalog, responder Responder, phrases Phrasebook, logger *zerolog.Logger) *toolRouter {
	return &toolRouter{weather: weather, music: music, responder: responder, phrases: phrases, log: logger}
}

func (r *toolRouter) Route(ctx context.Context, intent model.Intent, conv *model.Conversation) (string, error) {
	switch {
	case intent.Kind == model.IntentWeather && intent.City != "":
		return r.weatherReply(ctx, intent.City), nil
	case intent.Kind == model.IntentMusic && intent.Query != "":
		return r.musicReply(ctx, intent.Query), nil
	default:
		return r.responder.Respond(ctx, conv)
	}
}

func (r *toolRouter) weatherReply(ctx context.Context, city string) string {
	report, err := r.weather.Current(ctx, city)
	if err != nil {
		l := logging.With(ctx, r.log)
		l.Warn().Err(err).Str("stage", "weather").Str("city", city).Msg("weather lookup failed")
		if errors.Is(err, domain.ErrCityNotFound) {
			metrics.IncReply("weather", "not_found")
			return r.phrases.T(msgCityNotFound, html.EscapeString(city))
		}
		metrics.IncReply("weather", "error")
		return r.phrases.T(msgWeatherError)
	}
	metrics.IncReply("weather", "ok")
	return FormatWeather(r.phrases, report)
}

func (r *toolRouter) musicReply(ctx context.Context, query string) string {
	tracks, err := r.music.SearchTracks(ctx, query)
	if err != nil {
		l := logging.With(ctx, r.log)
		l.Warn().Err(err).Str("stage", "music").Str("query", query).Msg("track search failed")
		if errors.Is(err, domain.ErrMusicUnavailable) {
			metrics.IncReply("music", "unavailable")
			return r.phrases.T(msgMusicUnavailable)
		}
		metrics.IncReply("music", "error")
		return r.phrases.T(msgMusicError)
	}
	metrics.IncReply("music", "ok")
	return FormatTracks(r.phrases, query, tracks)
}
