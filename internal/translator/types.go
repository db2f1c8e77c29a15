// Package translator turns a translation request into a single completion
// request against an upstream service and sanitises the reply.
package translator

import (
	"context"
	"fmt"
	"time"
)

// Request is one translation job. SourceLang may be "auto".
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Result is the outcome of a successful Translate call.
type Result struct {
	Text string `json:"text"`
	// Passthrough is set when the upstream gave no usable candidate and Text
	// is the unchanged input.
	Passthrough bool          `json:"passthrough,omitempty"`
	Service     string        `json:"service"`
	Latency     time.Duration `json:"latency"`
}

// Service translates text.
type Service interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
}

// TranslationError is returned when the upstream call fails. Err wraps
// internal.ErrTransport or internal.ErrUpstreamShape.
type TranslationError struct {
	Service string
	Err     error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s translation failed: %v", e.Service, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
