package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstream marks network or HTTP-layer failures talking to an upstream service.
	ErrUpstream = errors.New("upstream request failed")

	// Weather lookups
	ErrCityNotFound   = errors.New("city not found")
	ErrWeatherService = errors.New("weather service error")

	// Music search
	ErrMusicUnavailable = errors.New("music service unavailable")
	ErrMusicService     = errors.New("music service error")
)
