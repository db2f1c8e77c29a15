// Package speech adapts platform speech engines: streaming recognition with
// interim and final transcripts, and single-utterance synthesis.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
)

// Result is one increment of a recognition session.
type Result struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
}

// Segment is one hypothesis inside an engine event.
type Segment struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"isFinal"`
}

// Event is a batch of segments delivered by an engine at once.
type Event struct {
	Segments []Segment `json:"results"`
}

// RecognitionEngine streams events for one utterance until it ends, fails or
// ctx is cancelled. It must not close events.
type RecognitionEngine interface {
	Recognize(ctx context.Context, lang string, events chan<- Event) error
}

type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrRecognitionUnsupported is reported through onError when no engine is
// available.
var ErrRecognitionUnsupported = fmt.Errorf("%w: speech recognition is not supported", internal.ErrCapability)

// Recognizer runs at most one recognition session at a time.
type Recognizer struct {
	engine RecognitionEngine

	mu      sync.Mutex
	lang    string
	state   State
	session uint64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRecognizer wraps engine; a nil engine means the platform has none.
func NewRecognizer(engine RecognitionEngine) *Recognizer {
	return &Recognizer{engine: engine, lang: catalog.DefaultSpeechTag}
}

// SetLanguage sets the BCP-47 tag used by the next Start.
func (r *Recognizer) SetLanguage(tag string) error {
	canonical, err := catalog.ParseTag(tag)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.lang = canonical
	r.mu.Unlock()
	return nil
}

func (r *Recognizer) Language() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lang
}

func (r *Recognizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start begins a session, replacing any session in progress. Interim results
// of an event are delivered before its final result. Callbacks run on the
// session goroutine; once the session is stopped or replaced no new callback
// starts, but one already running finishes.
func (r *Recognizer) Start(ctx context.Context, onResult func(Result), onError func(error)) {
	if r.engine == nil {
		if onError != nil {
			onError(ErrRecognitionUnsupported)
		}
		return
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.session++
	id := r.session
	sctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.state = Recording
	lang := r.lang
	r.wg.Add(1)
	r.mu.Unlock()

	events := make(chan Event)
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.engine.Recognize(sctx, lang, events)
		close(events)
	}()

	go func() {
		defer r.wg.Done()
		defer cancel()

		for ev := range events {
			interim, final := split(ev)
			if interim != "" && r.current(id) && onResult != nil {
				onResult(Result{Text: interim, IsFinal: false})
			}
			if final != "" && r.current(id) && onResult != nil {
				onResult(Result{Text: final, IsFinal: true})
			}
		}

		err := <-errCh
		if err != nil && !errors.Is(err, context.Canceled) && r.current(id) && onError != nil {
			onError(err)
		}

		r.mu.Lock()
		if r.session == id {
			r.state = Idle
			r.cancel = nil
		}
		r.mu.Unlock()
	}()
}

// Stop aborts the current session and returns to Idle. A callback that was
// already being delivered may still be running when Stop returns; Wait
// returns only after it has finished.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.session++
	r.state = Idle
}

// Wait blocks until every started session goroutine has finished.
func (r *Recognizer) Wait() {
	r.wg.Wait()
}

func (r *Recognizer) current(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session == id
}

func split(ev Event) (interim, final string) {
	var ib, fb strings.Builder
	for _, s := range ev.Segments {
		if s.IsFinal {
			fb.WriteString(s.Transcript)
		} else {
			ib.WriteString(s.Transcript)
		}
	}
	return ib.String(), fb.String()
}
