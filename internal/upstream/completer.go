// Package upstream talks to the generative-language APIs that do the actual
// detection and translation work. Every provider is reduced to a Completer:
// one natural-language prompt in, one text reply out.
package upstream

//go:generate mockgen -source=completer.go -destination=mock/completer_mock.go -package=mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Completer submits a single prompt and returns the first candidate's text.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNoCandidate means the reply decoded fine but carried no candidate text.
	ErrNoCandidate = errors.New("upstream reply has no candidate text")
	// ErrMalformed means the reply body could not be decoded.
	ErrMalformed = errors.New("upstream reply is malformed")
	// ErrMissingAPIKey is returned by New when a hosted provider has no key.
	ErrMissingAPIKey = errors.New("upstream API key is required")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown upstream provider")
)

// StatusError reports a non-200 reply from a provider called over plain HTTP.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// wrapReplyError marks SDK errors that come from decoding the reply body as
// ErrMalformed. Everything else keeps its transport meaning.
func wrapReplyError(provider string, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, provider, err)
	}
	return fmt.Errorf("%s: %w", provider, err)
}

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOllama}
}

// Config selects and parameterises a provider.
type Config struct {
	Provider string        `mapstructure:"provider" json:"provider"`
	APIKey   string        `mapstructure:"api_key" json:"-"`
	BaseURL  string        `mapstructure:"base_url" json:"base_url"`
	Model    string        `mapstructure:"model" json:"model"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
	// RateLimit caps requests per second; zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit"`
}

// New builds the Completer described by cfg. A zero Timeout means no client
// deadline: a stalled upstream only blocks its own caller.
func New(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}
	if cfg.APIKey == "" && cfg.Provider != ProviderOllama {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	var (
		c   Completer
		err error
	)
	switch cfg.Provider {
	case ProviderGemini:
		c, err = NewGemini(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	case ProviderOpenAI:
		c = NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	case ProviderAnthropic:
		c = NewAnthropic(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	case ProviderOllama:
		c = NewOllama(cfg.BaseURL, cfg.Model, httpClient)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		c = NewRateLimited(c, cfg.RateLimit)
	}
	return c, nil
}
