// Package client wraps the translate and detect endpoints for callers on the
// far side of the HTTP hop. Translation fails loudly; detection never fails.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/heuristic"
	"github.com/valpere/verbico/internal/logger"
)

const DefaultBaseURL = "http://localhost:8080"

// ErrTranslateFailed carries the one message shown to users for any
// translation failure.
var ErrTranslateFailed = errors.New("Failed to translate text. Please try again.")

// TranslateError is returned by TranslateText. It matches ErrTranslateFailed
// and the underlying cause with errors.Is.
type TranslateError struct {
	Cause error
}

func (e *TranslateError) Error() string {
	return ErrTranslateFailed.Error()
}

func (e *TranslateError) Unwrap() []error {
	return []error{ErrTranslateFailed, e.Cause}
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A zero timeout means none.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient is New with a caller-supplied transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: %s returned %d %s", internal.ErrTransport, path, resp.StatusCode, e.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrUpstreamShape, err)
	}
	return nil
}

// TranslateText makes exactly one request. An empty source means "auto".
func (c *Client) TranslateText(ctx context.Context, text, target, source string) (string, error) {
	if source == "" {
		source = catalog.Auto
	}

	var out struct {
		TranslatedText *string `json:"translatedText"`
	}
	err := c.post(ctx, "/api/translate", map[string]string{
		"text":           text,
		"targetLanguage": target,
		"sourceLanguage": source,
	}, &out)
	if err != nil {
		return "", &TranslateError{Cause: err}
	}
	if out.TranslatedText == nil {
		return "", &TranslateError{Cause: fmt.Errorf("%w: missing translatedText", internal.ErrUpstreamShape)}
	}
	return *out.TranslatedText, nil
}

// DetectLanguage falls back to the character-range heuristic when the hop
// fails or answers outside the catalog.
func (c *Client) DetectLanguage(ctx context.Context, text string) string {
	var out struct {
		Language string `json:"language"`
	}
	if err := c.post(ctx, "/api/detect-language", map[string]string{"text": text}, &out); err != nil {
		logger.Debug("detect request failed, using heuristic", "module", "client", "error", err)
		return heuristic.Detect(text)
	}
	if !catalog.IsSupported(out.Language) {
		logger.Debug("detect returned unsupported code, using heuristic", "module", "client", "code", out.Language)
		return heuristic.Detect(text)
	}
	return out.Language
}
