package speech

import (
	"context"
	"sync"

	"github.com/valpere/verbico/internal/logger"
)

// Playback parameters applied to every utterance.
const (
	DefaultRate  = 0.8
	DefaultPitch = 1.0
)

// Utterance is one piece of text to be spoken.
type Utterance struct {
	Text  string
	Lang  string
	Rate  float64
	Pitch float64
}

// SynthesisEngine plays an utterance, returning when playback ends or ctx is
// cancelled.
type SynthesisEngine interface {
	Speak(ctx context.Context, u Utterance) error
}

// Synthesizer plays at most one utterance at a time.
type Synthesizer struct {
	engine SynthesisEngine

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSynthesizer wraps engine; a nil engine means the platform has none.
func NewSynthesizer(engine SynthesisEngine) *Synthesizer {
	return &Synthesizer{engine: engine}
}

// Speak cancels the current utterance, waits for it to end, then starts
// text. Without an engine it logs a warning and does nothing.
func (s *Synthesizer) Speak(text, lang string) {
	if s.engine == nil {
		logger.Warn("text-to-speech is not supported", "module", "speech")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	u := Utterance{Text: text, Lang: lang, Rate: DefaultRate, Pitch: DefaultPitch}
	go func() {
		defer close(done)
		defer cancel()
		if err := s.engine.Speak(ctx, u); err != nil && ctx.Err() == nil {
			logger.Warn("speech synthesis failed", "module", "speech", "lang", lang, "error", err)
		}
	}()
}

// Stop cancels playback unconditionally.
func (s *Synthesizer) Stop() {
	if s.engine == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Synthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the current utterance, if any, has finished.
func (s *Synthesizer) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Synthesizer) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}
