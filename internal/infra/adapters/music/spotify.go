package music

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/domain/ports/repository"
	"aura-assistant/internal/infra/metrics"
)

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"
	defaultTimeout     = 10 * time.Second
)

var _ adapter.MusicCatalog = (*Client)(nil)

var errUnauthorized = errors.New("spotify: unauthorized")

// StatusError is a non-2xx reply from a Spotify endpoint.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify %s: http %d: %s", e.Endpoint, e.StatusCode, strings.TrimSpace(e.Body))
}

// Client searches the Spotify catalog with a client-credentials token.
type Client struct {
	clientID     string
	clientSecret string
	accountsURL  string
	apiURL       string
	httpClient   *http.Client
	tokens       repository.TokenStore
	log          *zerolog.Logger
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

// WithEndpoints overrides the accounts and API hosts.
func WithEndpoints(accountsURL, apiURL string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(accountsURL); v != "" {
			c.accountsURL = strings.TrimRight(v, "/")
		}
		if v := strings.TrimSpace(apiURL); v != "" {
			c.apiURL = strings.TrimRight(v, "/")
		}
	}
}

// WithTokenStore replaces the in-memory token store.
func WithTokenStore(store repository.TokenStore) Option {
	return func(c *Client) {
		if store != nil {
			c.tokens = store
		}
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(clientID, clientSecret string, opts ...Option) (*Client, error) {
	clientID, clientSecret = strings.TrimSpace(clientID), strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("spotify client id and secret required")
	}
	nop := zerolog.Nop()
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		accountsURL:  defaultAccountsURL,
		apiURL:       defaultAPIURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		tokens:       NewMemoryTokenStore(),
		log:          &nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchTracks returns up to model.MaxTracks tracks for query.
//
// A missing token is acquired first; failing that the result is
// domain.ErrMusicUnavailable. A 401 from search triggers exactly one token
// refresh and one retry. Everything else wraps domain.ErrMusicService.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]model.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query required", domain.ErrInvalidArgument)
	}

	token, err := c.tokens.Get(ctx)
	if err != nil || token == "" {
		metrics.IncCacheRequest("spotify_token", "miss")
		token, err = c.refreshToken(ctx, "missing")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMusicUnavailable, err)
		}
	} else {
		metrics.IncCacheRequest("spotify_token", "hit")
	}

	tracks, err := c.search(ctx, token, query)
	if errors.Is(err, errUnauthorized) {
		c.log.Info().Msg("spotify token rejected, refreshing once")
		token, err = c.refreshToken(ctx, "unauthorized")
		if err != nil {
			return nil, fmt.Errorf("%w: refresh after 401: %v", domain.ErrMusicService, err)
		}
		tracks, err = c.search(ctx, token, query)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMusicService, err)
	}
	return tracks, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// refreshToken runs the client-credentials grant and stores the new token.
func (c *Client) refreshToken(ctx context.Context, trigger string) (string, error) {
	token, err := c.requestToken(ctx)
	metrics.IncTokenRefresh(trigger, err == nil)
	if err != nil {
		c.log.Error().Err(err).Str("stage", "spotify_token").Str("trigger", trigger).Msg("token acquisition failed")
		return "", err
	}
	if err := c.tokens.Set(ctx, token); err != nil {
		// The token is still usable for this call.
		c.log.Warn().Err(err).Msg("token store write failed")
	}
	return token, nil
}

func (c *Client) requestToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream("spotify_token", 0, time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("spotify_token", resp.StatusCode, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{Endpoint: "token", StatusCode: resp.StatusCode, Body: string(body)}
	}
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("token response has no access_token")
	}
	return tr.AccessToken, nil
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"tracks"`
}

func (c *Client) search(ctx context.Context, token, query string) ([]model.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(model.MaxTracks))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream("spotify_search", 0, time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("spotify_search", resp.StatusCode, time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Endpoint: "search", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	items := payload.Tracks.Items
	if len(items) > model.MaxTracks {
		items = items[:model.MaxTracks]
	}
	out := make([]model.Track, 0, len(items))
	for _, it := range items {
		t := model.Track{Title: it.Name, URL: it.ExternalURLs.Spotify}
		if len(it.Artists) > 0 {
			t.Artist = it.Artists[0].Name
		}
		out = append(out, t)
	}
	return out, nil
}
