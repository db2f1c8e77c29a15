package client

import (
	"context"

	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/detector"
	"github.com/valpere/verbico/internal/translator"
)

// Local offers the Client operations without the HTTP hop, calling the
// bridges in-process.
type Local struct {
	translator translator.Service
	detector   *detector.Bridge
}

func NewLocal(t translator.Service, d *detector.Bridge) *Local {
	return &Local{translator: t, detector: d}
}

func (l *Local) TranslateText(ctx context.Context, text, target, source string) (string, error) {
	if source == "" {
		source = catalog.Auto
	}
	res, err := l.translator.Translate(ctx, translator.Request{Text: text, SourceLang: source, TargetLang: target})
	if err != nil {
		return "", &TranslateError{Cause: err}
	}
	return res.Text, nil
}

func (l *Local) DetectLanguage(ctx context.Context, text string) string {
	return l.detector.Detect(ctx, text).Code
}
