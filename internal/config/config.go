// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      int           `yaml:"rate_limit"`  // requests per window per client, 0 disables
	RateWindow     time.Duration `yaml:"rate_window"` // window for rate_limit
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty keeps all state in process memory
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TokenKey string `yaml:"token_key"`
}

type AIConfig struct {
	Provider        string `yaml:"provider"` // gemini | openai
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	OpenAIKey       string `yaml:"openai_key"`
	OpenAIBaseURL   string `yaml:"openai_base_url"`
	Model           string `yaml:"model"`
	ConcurrentLimit int    `yaml:"concurrent_limit"` // max concurrent AI calls
}

type WeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	AccountsURL  string `yaml:"accounts_url"`
	APIURL       string `yaml:"api_url"`
}

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Redis   RedisConfig   `yaml:"redis"`
	AI      AIConfig      `yaml:"ai"`
	Weather WeatherConfig `yaml:"weather"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Locale  string        `yaml:"locale"`

	Runtime RuntimeConfig `yaml:"-"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Load reads the YAML file at path (a missing file is fine), overlays the
// environment and validates the result. Missing credentials are reported
// here so the process never starts half-configured.
func Load(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// env-only configuration
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.AI.GeminiKey, "GEMINI_API_KEY")
	setString(&cfg.AI.OpenAIKey, "OPENAI_API_KEY")
	setString(&cfg.AI.Provider, "AURA_AI_PROVIDER")
	setString(&cfg.Weather.APIKey, "OPENWEATHER_API_KEY")
	setString(&cfg.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	setString(&cfg.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Log.Level, "AURA_LOG_LEVEL")
	if v := strings.TrimSpace(os.Getenv("AURA_HTTP_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = p
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port <= 0 {
		cfg.HTTP.Port = 5001
	}
	if cfg.HTTP.RequestTimeout <= 0 {
		cfg.HTTP.RequestTimeout = 60 * time.Second
	}
	if cfg.HTTP.RateWindow <= 0 {
		cfg.HTTP.RateWindow = time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TokenKey == "" {
		cfg.Redis.TokenKey = "aura:spotify:access_token"
	}
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	if cfg.AI.Provider == "" {
		if cfg.AI.GeminiKey == "" && cfg.AI.OpenAIKey != "" {
			cfg.AI.Provider = ProviderOpenAI
		} else {
			cfg.AI.Provider = ProviderGemini
		}
	}
	if cfg.AI.Model == "" {
		if cfg.AI.Provider == ProviderOpenAI {
			cfg.AI.Model = "gpt-4o-mini"
		} else {
			cfg.AI.Model = "gemini-2.0-flash"
		}
	}
	if cfg.AI.GeminiURL == "" {
		cfg.AI.GeminiURL = "https://generativelanguage.googleapis.com/"
	}
	if cfg.AI.OpenAIBaseURL == "" {
		cfg.AI.OpenAIBaseURL = "https://api.openai.com/v1/"
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org"
	}
	if cfg.Spotify.AccountsURL == "" {
		cfg.Spotify.AccountsURL = "https://accounts.spotify.com"
	}
	if cfg.Spotify.APIURL == "" {
		cfg.Spotify.APIURL = "https://api.spotify.com"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
}

// Validate reports every missing credential at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.GeminiKey == "" {
			errs = append(errs, errors.New("ai.gemini_key (GEMINI_API_KEY) is required"))
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			errs = append(errs, errors.New("ai.openai_key (OPENAI_API_KEY) is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("ai.provider %q is not supported", c.AI.Provider))
	}
	if c.Weather.APIKey == "" {
		errs = append(errs, errors.New("weather.api_key (OPENWEATHER_API_KEY) is required"))
	}
	if c.Spotify.ClientID == "" {
		errs = append(errs, errors.New("spotify.client_id (SPOTIFY_CLIENT_ID) is required"))
	}
	if c.Spotify.ClientSecret == "" {
		errs = append(errs, errors.New("spotify.client_secret (SPOTIFY_CLIENT_SECRET) is required"))
	}
	return errors.Join(errs...)
}
