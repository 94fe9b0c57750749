package usecase

import (
	"html"
	"strings"

	"aura-assistant/internal/domain/model"
)

type emojiRule struct {
	keyword string
	emoji   string
}

// weatherEmojis is evaluated in order; the first keyword found in the
// description wins.
var weatherEmojis = []emojiRule{
	{"cloud", "☁️"},
	{"rain", "🌧️"},
	{"snow", "❄️"},
	{"storm", "⛈️"},
	{"mist", "🌫️"},
	{"fog", "🌫️"},
}

const defaultWeatherEmoji = "☀️"

// WeatherEmoji picks the icon for a weather description.
func WeatherEmoji(description string) string {
	d := strings.ToLower(description)
	for _, r := range weatherEmojis {
		if strings.Contains(d, r.keyword) {
			return r.emoji
		}
	}
	return defaultWeatherEmoji
}

// FormatWeather renders a report as the chat reply. Upstream text is escaped
// since the reply is inserted into the page as HTML.
func FormatWeather(p Phrasebook, r model.WeatherReport) string {
	return p.T(msgWeatherReport,
		html.EscapeString(r.Location),
		WeatherEmoji(r.Description),
		r.TemperatureC,
		html.EscapeString(r.Description),
		r.HumidityPercent,
	)
}

// FormatTracks renders up to model.MaxTracks search results, numbered from 1.
func FormatTracks(p Phrasebook, query string, tracks []model.Track) string {
	q := html.EscapeString(query)
	if len(tracks) == 0 {
		return p.T(msgMusicNoResults, q)
	}
	if len(tracks) > model.MaxTracks {
		tracks = tracks[:model.MaxTracks]
	}

	var b strings.Builder
	b.WriteString(p.T(msgMusicHeader, q))
	for i, t := range tracks {
		title, artist, url := t.Title, t.Artist, t.URL
		if title == "" {
			title = p.T(msgUnknownSong)
		}
		if artist == "" {
			artist = p.T(msgUnknownArtist)
		}
		if url == "" {
			url = "#"
		}
		b.WriteString(p.T(msgMusicTrack, i+1,
			html.EscapeString(url),
			html.EscapeString(title),
			html.EscapeString(artist),
		))
	}
	return b.String()
}
