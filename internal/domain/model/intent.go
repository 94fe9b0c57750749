package model

import "strings"

type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentWeather
	IntentMusic
	IntentChat
	IntentGoodbye
)

// Wire names used by the classifier prompt.
const (
	IntentNameWeather = "get_weather"
	IntentNameMusic   = "get_music"
	IntentNameChat    = "chat"
	IntentNameGoodbye = "goodbye"
)

func (k IntentKind) String() string {
	switch k {
	case IntentWeather:
		return IntentNameWeather
	case IntentMusic:
		return IntentNameMusic
	case IntentChat:
		return IntentNameChat
	case IntentGoodbye:
		return IntentNameGoodbye
	default:
		return "unknown"
	}
}

// ParseIntentKind maps a classifier label onto the closed taxonomy.
// Anything outside it is IntentUnknown.
func ParseIntentKind(name string) IntentKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case IntentNameWeather:
		return IntentWeather
	case IntentNameMusic:
		return IntentMusic
	case IntentNameChat:
		return IntentChat
	case IntentNameGoodbye:
		return IntentGoodbye
	default:
		return IntentUnknown
	}
}

// Intent is the classified purpose of one user message. City is only
// meaningful for IntentWeather and Query only for IntentMusic.
type Intent struct {
	Kind  IntentKind
	City  string
	Query string
}

func WeatherIntent(city string) Intent { return Intent{Kind: IntentWeather, City: strings.TrimSpace(city)} }
func MusicIntent(query string) Intent  { return Intent{Kind: IntentMusic, Query: strings.TrimSpace(query)} }
func ChatIntent() Intent               { return Intent{Kind: IntentChat} }
func GoodbyeIntent() Intent            { return Intent{Kind: IntentGoodbye} }
func UnknownIntent() Intent            { return Intent{Kind: IntentUnknown} }
