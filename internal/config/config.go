// Package config loads runtime settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Spotify    SpotifyConfig    `mapstructure:"spotify"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Log        LogConfig        `mapstructure:"log"`
	Debug      bool             `mapstructure:"debug"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type SpotifyConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	APIURL       string        `mapstructure:"api_url"`
	TokenURL     string        `mapstructure:"token_url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	Market       string        `mapstructure:"market"`
}

// Configured reports whether both client credentials are present.
func (s SpotifyConfig) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type ClassifierConfig struct {
	Provider     string `mapstructure:"provider"`
	OllamaHost   string `mapstructure:"ollama_host"`
	OllamaModel  string `mapstructure:"ollama_model"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`
}

type WorkerConfig struct {
	Count     int `mapstructure:"count"`
	QueueSize int `mapstructure:"queue_size"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Classifier providers.
const (
	ClassifierKeywords = "keywords"
	ClassifierOllama   = "ollama"
	ClassifierOpenAI   = "openai"
)

// ErrMissingCredentials is returned when the provider client id or secret is unset.
var ErrMissingCredentials = errors.New("config: spotify.client_id and spotify.client_secret are required")

// SetDefaults registers every key so that environment overrides apply even
// when no config file mentions the key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.read_header_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("spotify.client_id", "")
	v.SetDefault("spotify.client_secret", "")
	v.SetDefault("spotify.api_url", "https://api.spotify.com/v1")
	v.SetDefault("spotify.token_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("spotify.max_retries", 3)
	v.SetDefault("spotify.retry_backoff", 500*time.Millisecond)
	v.SetDefault("spotify.market", "US")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "moodtune.db")

	v.SetDefault("classifier.provider", ClassifierKeywords)
	v.SetDefault("classifier.ollama_host", "http://localhost:11434")
	v.SetDefault("classifier.ollama_model", "llama3.2")
	v.SetDefault("classifier.openai_api_key", "")
	v.SetDefault("classifier.openai_model", "gpt-4o-mini")

	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.queue_size", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("debug", false)
}

// Load reads cfgFile, or moodtune.yaml from the working or home directory
// when cfgFile is empty, then applies environment overrides such as
// SPOTIFY_CLIENT_ID.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("moodtune")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", describe(cfgFile), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Classifier.Provider = strings.ToLower(strings.TrimSpace(cfg.Classifier.Provider))
	return cfg, nil
}

func describe(cfgFile string) string {
	if cfgFile == "" {
		return "moodtune.yaml"
	}
	return cfgFile
}

// Validate checks settings the server cannot start without.
func (c Config) Validate() error {
	if !c.Spotify.Configured() {
		return ErrMissingCredentials
	}
	switch c.Classifier.Provider {
	case ClassifierKeywords, ClassifierOllama, ClassifierOpenAI:
	default:
		return fmt.Errorf("config: unknown classifier.provider %q", c.Classifier.Provider)
	}
	if c.Classifier.Provider == ClassifierOpenAI && c.Classifier.OpenAIAPIKey == "" {
		return errors.New("config: classifier.openai_api_key is required for the openai classifier")
	}
	if c.Storage.Driver != "sqlite" {
		return fmt.Errorf("config: unsupported storage.driver %q", c.Storage.Driver)
	}
	return nil
}
