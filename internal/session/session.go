// Package session runs the translate flow: detect the source when it is
// "auto", translate, and record the result in history.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/logger"
)

var (
	// ErrEmptyText is returned before any request is made for blank input.
	ErrEmptyText = errors.New("Please enter text to translate")
	// ErrStale is returned when a newer Translate call started before this
	// one finished. Its result is discarded and not recorded.
	ErrStale = errors.New("translation superseded by a newer request")
)

// Service is the pair of client operations a session drives. Both the HTTP
// Client and the in-process Local satisfy it.
type Service interface {
	TranslateText(ctx context.Context, text, target, source string) (string, error)
	DetectLanguage(ctx context.Context, text string) string
}

// Recorder receives completed translations.
type Recorder interface {
	Add(ctx context.Context, t internal.Translation) error
}

type Session struct {
	svc     Service
	history Recorder
	seq     atomic.Uint64
	// commit makes the staleness check and the history write one step.
	commit sync.Mutex
	now    func() time.Time
	newID  func() string
}

// New creates a Session. history may be nil to skip recording.
func New(svc Service, history Recorder) *Session {
	return &Session{
		svc:     svc,
		history: history,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Translate runs one user action. The returned record carries the detected
// source language when source was "auto".
func (s *Session) Translate(ctx context.Context, text, source, target string) (*internal.Translation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if source == "" {
		source = catalog.Auto
	}

	ticket := s.seq.Add(1)

	if source == catalog.Auto {
		source = s.svc.DetectLanguage(ctx, text)
		logger.Debug("source detected", "module", "session", "language", source)
	}

	translated, err := s.svc.TranslateText(ctx, text, target, source)
	if err != nil {
		return nil, err
	}

	s.commit.Lock()
	defer s.commit.Unlock()

	if s.seq.Load() != ticket {
		logger.Debug("discarding stale translation", "module", "session", "ticket", ticket)
		return nil, ErrStale
	}

	rec := &internal.Translation{
		ID:             s.newID(),
		SourceText:     text,
		TranslatedText: translated,
		SourceLanguage: source,
		TargetLanguage: target,
		Timestamp:      s.now().UnixMilli(),
	}

	if s.history != nil {
		if err := s.history.Add(ctx, *rec); err != nil {
			logger.Warn("failed to record translation", "module", "session", "error", err)
		}
	}
	return rec, nil
}

// Languages is the editable state of the language pickers and text panes.
type Languages struct {
	Source         string
	Target         string
	SourceText     string
	TranslatedText string
}

// SwapLanguages exchanges the languages and the two texts. An "auto" source
// stays auto and the target becomes English.
func SwapLanguages(l Languages) Languages {
	out := Languages{
		Source:         l.Source,
		Target:         "en",
		SourceText:     l.TranslatedText,
		TranslatedText: l.SourceText,
	}
	if l.Source != catalog.Auto {
		out.Source = l.Target
		out.Target = l.Source
	}
	return out
}

// VoiceInputTag is the recognition language for a source selection.
func VoiceInputTag(source string) string {
	if source == "" || source == catalog.Auto {
		return catalog.DefaultSpeechTag
	}
	return catalog.SpeechTag(source)
}
