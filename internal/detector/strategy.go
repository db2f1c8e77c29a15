// Package detector names the language of a text snippet. Detection is an
// ordered list of strategies tried in turn; the last one, the character-range
// heuristic, cannot fail, so detection as a whole always yields a catalog code.
package detector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/heuristic"
	"github.com/valpere/verbico/internal/logger"
	"github.com/valpere/verbico/internal/upstream"
)

// ErrNoCredential is returned by APIStrategy when no upstream is configured.
var ErrNoCredential = errors.New("no upstream credential configured")

// Strategy is one step of the detection chain. Any error means "try next".
type Strategy interface {
	Name() string
	Detect(ctx context.Context, text string) (string, error)
}

// Detection is the outcome of a chain run.
type Detection struct {
	Code     string `json:"language"`
	Strategy string `json:"strategy"`
}

// BuildPrompt renders the detection instruction sent upstream.
func BuildPrompt(text string) string {
	return fmt.Sprintf("Detect the language of this text and respond with only the ISO 639-1 language code (2 letters): \"%s\"", text)
}

// APIStrategy asks a generative upstream for the code.
type APIStrategy struct {
	completer upstream.Completer
}

func NewAPIStrategy(completer upstream.Completer) *APIStrategy {
	return &APIStrategy{completer: completer}
}

func (s *APIStrategy) Name() string {
	return "api"
}

func (s *APIStrategy) Detect(ctx context.Context, text string) (string, error) {
	if s.completer == nil {
		return "", ErrNoCredential
	}

	reply, err := s.completer.Complete(ctx, BuildPrompt(text))
	if err != nil {
		return "", err
	}

	code := strings.ToLower(strings.TrimSpace(reply))
	if !catalog.IsSupported(code) {
		return "", fmt.Errorf("%w: upstream answered %q", internal.ErrValidation, code)
	}
	return code, nil
}

// HeuristicStrategy is the terminal character-range guess.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string {
	return "heuristic"
}

func (HeuristicStrategy) Detect(_ context.Context, text string) (string, error) {
	return heuristic.Detect(text), nil
}

// Chain tries strategies in order.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a chain. The heuristic is always appended as the last step
// unless already present.
func NewChain(strategies ...Strategy) *Chain {
	hasHeuristic := false
	for _, s := range strategies {
		if _, ok := s.(HeuristicStrategy); ok {
			hasHeuristic = true
		}
	}
	if !hasHeuristic {
		strategies = append(strategies, HeuristicStrategy{})
	}
	return &Chain{strategies: strategies}
}

// Names lists the strategies in the order they are tried.
func (c *Chain) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Detect returns the first catalog code any strategy produces.
func (c *Chain) Detect(ctx context.Context, text string) Detection {
	for _, s := range c.strategies {
		code, err := s.Detect(ctx, text)
		if err != nil {
			logger.Debug("detection strategy failed", "module", "detector", "strategy", s.Name(), "error", err)
			continue
		}
		if !catalog.IsSupported(code) {
			logger.Debug("detection strategy returned unsupported code", "module", "detector", "strategy", s.Name(), "code", code)
			continue
		}
		return Detection{Code: code, Strategy: s.Name()}
	}

	return Detection{Code: heuristic.Detect(text), Strategy: HeuristicStrategy{}.Name()}
}
