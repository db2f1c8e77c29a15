package translator

import (
	"context"
	"fmt"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
)

// CloudConfig configures the Google Cloud Translation backend.
type CloudConfig struct {
	Credentials string `mapstructure:"credentials" json:"credentials"`
	APIKey      string `mapstructure:"api_key" json:"-"`
	BaseURL     string `mapstructure:"base_url" json:"base_url"`
	// ProjectID is billed for quota when set.
	ProjectID string `mapstructure:"project_id" json:"project_id"`
}

// CloudService translates with Google Cloud Translation v2 instead of a
// generative prompt.
type CloudService struct {
	cfg CloudConfig
}

func NewCloudService(cfg CloudConfig) *CloudService {
	return &CloudService{cfg: cfg}
}

func (s *CloudService) Name() string {
	return "google-cloud"
}

func (s *CloudService) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	authenticated := false
	if s.cfg.Credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.cfg.Credentials))
		authenticated = true
	}
	if s.cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(s.cfg.APIKey))
		authenticated = true
	}
	if s.cfg.ProjectID != "" {
		opts = append(opts, option.WithQuotaProject(s.cfg.ProjectID))
	}
	if s.cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(s.cfg.BaseURL))
		if !authenticated {
			opts = append(opts, option.WithoutAuthentication())
		}
	}
	return opts
}

// Translate omits the source option for "auto" and lets the service detect it.
func (s *CloudService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Service: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	target, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", req.TargetLang, internal.ErrValidation)
	}

	// Plain text in and out, so the reply needs no HTML unescaping.
	opts := &translate.Options{Format: translate.Text}
	if req.SourceLang != "" && req.SourceLang != catalog.Auto {
		source, err := language.Parse(req.SourceLang)
		if err != nil {
			return nil, fmt.Errorf("invalid source language %q: %w", req.SourceLang, internal.ErrValidation)
		}
		opts.Source = source
	}

	client, err := translate.NewClient(ctx, s.clientOptions()...)
	if err != nil {
		return nil, &TranslationError{Service: s.Name(), Err: fmt.Errorf("%w: create client: %v", internal.ErrTransport, err)}
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, target, opts)
	if err != nil {
		return nil, &TranslationError{Service: s.Name(), Err: fmt.Errorf("%w: %v", internal.ErrTransport, err)}
	}

	if len(translations) == 0 || translations[0].Text == "" {
		result.Text = req.Text
		result.Passthrough = true
		return result, nil
	}

	result.Text = translations[0].Text
	return result, nil
}
