package model

// WeatherReport is the current conditions for one location.
type WeatherReport struct {
	Location        string
	Description     string
	TemperatureC    int // rounded
	HumidityPercent int
}

// Track is a single music search hit. Empty fields are rendered with
// placeholders by the formatter.
type Track struct {
	Title  string
	Artist string
	URL    string
}

// MaxTracks caps how many search hits are requested and rendered.
const MaxTracks = 5
