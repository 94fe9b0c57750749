//go:build !integration

package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aura-assistant/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New("w-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCurrent_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Paris" || q.Get("units") != "metric" || q.Get("appid") != "w-key" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"name":"Paris","weather":[{"description":"clear sky"}],"main":{"temp":18.4,"humidity":60}}`))
	})

	got, err := c.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Location != "Paris" || got.Description != "clear sky" || got.TemperatureC != 18 || got.HumidityPercent != 60 {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestCurrent_RoundsTemperature(t *testing.T) {
	cases := map[string]int{"21.6": 22, "21.5": 22, "-3.5": -4, "0.4": 0}
	for raw, want := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":"X","weather":[{"description":"d"}],"main":{"temp":` + raw + `,"humidity":1}}`))
		})
		got, err := c.Current(context.Background(), "X")
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if got.TemperatureC != want {
			t.Errorf("temp %s rounded to %d, want %d", raw, got.TemperatureC, want)
		}
	}
}

func TestCurrent_Errors(t *testing.T) {
	t.Run("404 is city not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
		})
		_, err := c.Current(context.Background(), "Atlantis")
		if !errors.Is(err, domain.ErrCityNotFound) {
			t.Fatalf("expected ErrCityNotFound, got %v", err)
		}
		if errors.Is(err, domain.ErrWeatherService) {
			t.Fatal("404 must not be reported as a generic service error")
		}
	})

	t.Run("other status is service error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		})
		_, err := c.Current(context.Background(), "Paris")
		if !errors.Is(err, domain.ErrWeatherService) {
			t.Fatalf("expected ErrWeatherService, got %v", err)
		}
		var se *StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected StatusError 401, got %v", err)
		}
	})

	t.Run("malformed payload is service error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":"Paris","weather":[],"main":{}}`))
		})
		if _, err := c.Current(context.Background(), "Paris"); !errors.Is(err, domain.ErrWeatherService) {
			t.Fatalf("expected ErrWeatherService, got %v", err)
		}
	})

	t.Run("network failure is service error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()
		c, _ := New("k", WithBaseURL(base))
		_, err := c.Current(context.Background(), "Paris")
		if !errors.Is(err, domain.ErrWeatherService) || !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("expected ErrWeatherService wrapping ErrUpstream, got %v", err)
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		if _, err := New(" "); err == nil {
			t.Fatal("expected error")
		}
	})
}
