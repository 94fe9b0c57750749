package usecase

// Phrasebook supplies user-facing reply text and the persona instruction.
// *i18n.Translator satisfies it.
type Phrasebook interface {
	T(key string, args ...any) string
	Persona() string
}

// Catalog keys used by the use cases.
const (
	msgEmpty             = "empty_message"
	msgWeatherReport     = "weather_report"
	msgCityNotFound      = "weather_city_not_found"
	msgWeatherError      = "weather_error"
	msgMusicHeader       = "music_header"
	msgMusicTrack        = "music_track"
	msgMusicNoResults    = "music_no_results"
	msgMusicUnavailable  = "music_unavailable"
	msgMusicError        = "music_error"
	msgUnknownSong       = "unknown_song"
	msgUnknownArtist     = "unknown_artist"
	msgChatNoCandidates  = "chat_no_candidates"
	msgErrorConnectivity = "error_connectivity"
	msgErrorUnexpected   = "error_unexpected"
)
