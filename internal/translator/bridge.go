package translator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/logger"
	"github.com/valpere/verbico/internal/postprocess"
	"github.com/valpere/verbico/internal/upstream"
)

const autoSourcePhrase = "the detected language"

// BuildPrompt renders the instruction sent upstream.
func BuildPrompt(text, source, target string) string {
	from := source
	if source == "" || source == catalog.Auto {
		from = autoSourcePhrase
	}
	return fmt.Sprintf("You are a professional translator. Translate the following text from %s to %s. "+
		"Return ONLY the translated text without any explanations, prefixes, or additional content.\n\n"+
		"Text to translate: \"%s\"", from, target, text)
}

// Bridge translates through a generative completion service.
type Bridge struct {
	completer upstream.Completer
}

// NewBridge returns a Bridge. A nil completer makes every call fail with a
// transport error, matching an absent API key.
func NewBridge(completer upstream.Completer) *Bridge {
	return &Bridge{completer: completer}
}

func (b *Bridge) Name() string {
	if b.completer == nil {
		return "generative"
	}
	return b.completer.Name()
}

// Translate never retries. A reply without candidate text, or one that is
// empty after cleanup, yields the input unchanged with Passthrough set.
func (b *Bridge) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Service: b.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if b.completer == nil {
		return nil, &TranslationError{
			Service: result.Service,
			Err:     fmt.Errorf("%w: %v", internal.ErrTransport, upstream.ErrMissingAPIKey),
		}
	}

	reply, err := b.completer.Complete(ctx, BuildPrompt(req.Text, req.SourceLang, req.TargetLang))
	switch {
	case errors.Is(err, upstream.ErrNoCandidate):
		logger.Warn("upstream reply had no candidate, returning input", "module", "translator", "service", result.Service)
		result.Text = req.Text
		result.Passthrough = true
		return result, nil
	case errors.Is(err, upstream.ErrMalformed):
		return nil, &TranslationError{Service: result.Service, Err: fmt.Errorf("%w: %v", internal.ErrUpstreamShape, err)}
	case err != nil:
		return nil, &TranslationError{Service: result.Service, Err: fmt.Errorf("%w: %v", internal.ErrTransport, err)}
	}

	cleaned := postprocess.StripQuotes(reply)
	if cleaned == "" {
		result.Text = req.Text
		result.Passthrough = true
		return result, nil
	}

	result.Text = cleaned
	return result, nil
}
