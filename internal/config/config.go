// Package config loads settings from a config file, VERBICO_* environment
// variables and bound command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/upstream"
)

const (
	EnvPrefix = "VERBICO"
	AppName   = "verbico"
)

// Translation backends.
const (
	BackendGenerative = "generative"
	BackendCloud      = "cloud"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Client      ClientConfig      `mapstructure:"client"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	Translation TranslationConfig `mapstructure:"translation"`
	Detection   DetectionConfig   `mapstructure:"detection"`
	History     HistoryConfig     `mapstructure:"history"`
	Speech      SpeechConfig      `mapstructure:"speech"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UpstreamConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	TranslateModel string        `mapstructure:"translate_model"`
	DetectModel    string        `mapstructure:"detect_model"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// Translate returns the upstream settings for translation requests.
func (u UpstreamConfig) Translate() upstream.Config {
	return u.with(u.TranslateModel, DefaultTranslateModel)
}

// Detect returns the upstream settings for detection requests.
func (u UpstreamConfig) Detect() upstream.Config {
	return u.with(u.DetectModel, DefaultDetectModel)
}

// Gemini models used when none is configured. Other providers fall back to
// their client's own default.
const (
	DefaultTranslateModel = "gemini-1.5-flash"
	DefaultDetectModel    = "gemini-pro"
)

func (u UpstreamConfig) with(model, geminiDefault string) upstream.Config {
	if model == "" && (u.Provider == "" || u.Provider == upstream.ProviderGemini) {
		model = geminiDefault
	}
	return upstream.Config{
		Provider:  u.Provider,
		APIKey:    u.APIKey,
		BaseURL:   u.BaseURL,
		Model:     model,
		Timeout:   u.Timeout,
		RateLimit: u.RateLimit,
	}
}

type TranslationConfig struct {
	Backend     string `mapstructure:"backend"`
	Credentials string `mapstructure:"credentials"`
	ProjectID   string `mapstructure:"project_id"`
}

type DetectionConfig struct {
	Statistical bool `mapstructure:"statistical"`
}

type HistoryConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type SpeechConfig struct {
	Language        string `mapstructure:"language"`
	RecognitionURL  string `mapstructure:"recognition_url"`
	SynthesisBinary string `mapstructure:"synthesis_binary"`
	Voice           string `mapstructure:"voice"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultDBPath is $HOME/.local/share/verbico/verbico.db, or a relative path
// when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("data", AppName+".db")
	}
	return filepath.Join(home, ".local", "share", AppName, AppName+".db")
}

// SetDefaults registers every key so environment variables can override
// keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", time.Duration(0))
	v.SetDefault("upstream.provider", upstream.ProviderGemini)
	v.SetDefault("upstream.api_key", "")
	v.SetDefault("upstream.base_url", "")
	v.SetDefault("upstream.translate_model", "")
	v.SetDefault("upstream.detect_model", "")
	v.SetDefault("upstream.rate_limit", 0.0)
	v.SetDefault("upstream.timeout", time.Duration(0))
	v.SetDefault("translation.backend", BackendGenerative)
	v.SetDefault("translation.credentials", "")
	v.SetDefault("translation.project_id", "")
	v.SetDefault("detection.statistical", false)
	v.SetDefault("history.db_path", DefaultDBPath())
	v.SetDefault("speech.language", catalog.DefaultSpeechTag)
	v.SetDefault("speech.recognition_url", "")
	v.SetDefault("speech.synthesis_binary", "")
	v.SetDefault("speech.voice", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration into a Config. configFile may be empty to search
// the working directory and $HOME/.config/verbico.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The API key also honours the conventional Google variable names.
	if err := v.BindEnv("upstream.api_key", EnvPrefix+"_UPSTREAM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(upstream.Providers(), c.Upstream.Provider) {
		return fmt.Errorf("%w: unknown upstream.provider %q", internal.ErrValidation, c.Upstream.Provider)
	}
	if c.Translation.Backend != BackendGenerative && c.Translation.Backend != BackendCloud {
		return fmt.Errorf("%w: unknown translation.backend %q", internal.ErrValidation, c.Translation.Backend)
	}
	if c.Upstream.RateLimit < 0 {
		return fmt.Errorf("%w: upstream.rate_limit must not be negative", internal.ErrValidation)
	}
	tag, err := catalog.ParseTag(c.Speech.Language)
	if err != nil {
		return fmt.Errorf("speech.language: %w", err)
	}
	c.Speech.Language = tag
	return nil
}
