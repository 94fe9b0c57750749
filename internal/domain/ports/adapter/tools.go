package adapter

import (
	"context"

	"aura-assistant/internal/domain/model"
)

// WeatherProvider fetches current conditions for a city.
//
// Errors: domain.ErrCityNotFound when the service does not know the city,
// domain.ErrWeatherService for everything else.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (model.WeatherReport, error)
}

// MusicCatalog searches tracks.
//
// Errors: domain.ErrMusicUnavailable when no access token can be obtained,
// domain.ErrMusicService for everything else.
type MusicCatalog interface {
	SearchTracks(ctx context.Context, query string) ([]model.Track, error)
}
