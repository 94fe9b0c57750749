//go:build !integration

package usecase

import (
	"fmt"
	"strings"
	"testing"

	"aura-assistant/internal/domain/model"
)

func TestWeatherEmoji_Rules(t *testing.T) {
	cases := map[string]string{
		"overcast clouds":        "☁️",
		"light rain":             "🌧️",
		"Heavy Snow":             "❄️",
		"thunderstorm":           "⛈️",
		"mist":                   "🌫️",
		"FOG":                    "🌫️",
		"clear sky":              "☀️",
		"":                       "☀️",
		"rain and snow":          "🌧️",
		"broken clouds, drizzle": "☁️",
	}
	for desc, want := range cases {
		if got := WeatherEmoji(desc); got != want {
			t.Errorf("WeatherEmoji(%q) = %q, want %q", desc, got, want)
		}
	}
}

func TestWeatherEmoji_EveryRuleReachable(t *testing.T) {
	for _, r := range weatherEmojis {
		if got := WeatherEmoji("some " + strings.ToUpper(r.keyword)); got != r.emoji {
			t.Errorf("rule %q yields %q, want %q", r.keyword, got, r.emoji)
		}
	}
}

func TestFormatWeather(t *testing.T) {
	p := testPhrases(t)
	got := FormatWeather(p, model.WeatherReport{Location: "Paris", Description: "clear sky", TemperatureC: 18, HumidityPercent: 60})
	want := "Here's the current weather for **Paris**: ☀️<br>It's **18°C** with clear sky and 60% humidity."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestFormatWeather_EscapesUpstreamText(t *testing.T) {
	got := FormatWeather(testPhrases(t), model.WeatherReport{Location: "<script>", Description: "rain"})
	if strings.Contains(got, "<script>") {
		t.Fatalf("location not escaped: %q", got)
	}
}

func TestFormatTracks(t *testing.T) {
	p := testPhrases(t)

	t.Run("no results", func(t *testing.T) {
		got := FormatTracks(p, "jazz", nil)
		want := "I searched, but couldn't find any songs for **'jazz'**. 🧐 Try a different genre or mood?"
		if got != want {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("numbered in order with placeholders", func(t *testing.T) {
		tracks := []model.Track{
			{Title: "One", Artist: "A", URL: "https://open.spotify.com/track/1"},
			{},
		}
		got := FormatTracks(p, "happy", tracks)
		want := "Here are a few tracks I found for **'happy'**: 🎶<br><br>" +
			"1. <a href='https://open.spotify.com/track/1' target='_blank' class='text-blue-400 hover:underline'><strong>One</strong> by A</a><br>" +
			"2. <a href='#' target='_blank' class='text-blue-400 hover:underline'><strong>Unknown Song</strong> by Unknown Artist</a><br>"
		if got != want {
			t.Fatalf("got  %q\nwant %q", got, want)
		}
	})

	t.Run("idempotent and capped", func(t *testing.T) {
		var tracks []model.Track
		for i := 1; i <= 7; i++ {
			tracks = append(tracks, model.Track{Title: fmt.Sprintf("T%d", i), Artist: "X", URL: "u"})
		}
		first := FormatTracks(p, "q", tracks)
		second := FormatTracks(p, "q", tracks)
		if first != second {
			t.Fatal("formatting is not idempotent")
		}
		if !strings.Contains(first, "5. ") || strings.Contains(first, "6. ") {
			t.Fatalf("expected exactly five entries: %q", first)
		}
		if len(tracks) != 7 {
			t.Fatal("input slice was modified")
		}
	})
}
