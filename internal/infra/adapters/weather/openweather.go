package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/metrics"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"
	defaultTimeout = 10 * time.Second
)

var _ adapter.WeatherProvider = (*Client)(nil)

// StatusError is a non-2xx reply from the weather service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweather: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Client talks to the OpenWeather current-conditions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openweather api key required")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type currentResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
}

// Current returns the conditions for city. A 404 maps to
// domain.ErrCityNotFound; every other failure wraps domain.ErrWeatherService.
func (c *Client) Current(ctx context.Context, city string) (model.WeatherReport, error) {
	var empty model.WeatherReport
	city = strings.TrimSpace(city)
	if city == "" {
		return empty, fmt.Errorf("%w: city required", domain.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty, fmt.Errorf("%w: build request: %v", domain.ErrWeatherService, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream("weather", 0, time.Since(start).Milliseconds())
		return empty, fmt.Errorf("%w: %w: %v", domain.ErrWeatherService, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("weather", resp.StatusCode, time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusNotFound {
		return empty, fmt.Errorf("%w: %q", domain.ErrCityNotFound, city)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return empty, fmt.Errorf("%w: %w", domain.ErrWeatherService, &StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return empty, fmt.Errorf("%w: decode: %v", domain.ErrWeatherService, err)
	}
	if len(payload.Weather) == 0 {
		return empty, fmt.Errorf("%w: response has no weather entries", domain.ErrWeatherService)
	}

	return model.WeatherReport{
		Location:        payload.Name,
		Description:     payload.Weather[0].Description,
		TemperatureC:    int(math.Round(payload.Main.Temp)),
		HumidityPercent: payload.Main.Humidity,
	}, nil
}
