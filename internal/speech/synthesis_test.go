package speech

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playEvent struct {
	kind string
	text string
}

type fakePlayer struct {
	mu         sync.Mutex
	log        []playEvent
	utterances []Utterance
	hold       bool
}

func (p *fakePlayer) Speak(ctx context.Context, u Utterance) error {
	p.mu.Lock()
	p.log = append(p.log, playEvent{"start", u.Text})
	p.utterances = append(p.utterances, u)
	hold := p.hold
	p.mu.Unlock()

	if hold {
		<-ctx.Done()
	}

	p.mu.Lock()
	kind := "end"
	if ctx.Err() != nil {
		kind = "cancel"
	}
	p.log = append(p.log, playEvent{kind, u.Text})
	p.mu.Unlock()
	return ctx.Err()
}

func TestSynthesizer_SecondSpeakCancelsFirst(t *testing.T) {
	p := &fakePlayer{hold: true}
	s := NewSynthesizer(p)

	s.Speak("hello", "en-US")
	require.Eventually(t, s.Speaking, time.Second, 5*time.Millisecond)

	s.Speak("hello", "en-US")
	s.Stop()
	s.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, []playEvent{
		{"start", "hello"},
		{"cancel", "hello"},
		{"start", "hello"},
		{"cancel", "hello"},
	}, p.log)
}

func TestSynthesizer_RateAndPitch(t *testing.T) {
	p := &fakePlayer{}
	s := NewSynthesizer(p)

	s.Speak("Hola", "es-ES")
	s.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	require.Len(t, p.utterances, 1)
	assert.Equal(t, Utterance{Text: "Hola", Lang: "es-ES", Rate: 0.8, Pitch: 1.0}, p.utterances[0])
	assert.Equal(t, []playEvent{{"start", "Hola"}, {"end", "Hola"}}, p.log)
}

func TestSynthesizer_StopWhenIdle(t *testing.T) {
	s := NewSynthesizer(&fakePlayer{})
	s.Stop()
	assert.False(t, s.Speaking())
	s.Wait()
}

func TestSynthesizer_NoEngine(t *testing.T) {
	s := NewSynthesizer(nil)
	s.Speak("hello", "en-US")
	s.Stop()
	assert.False(t, s.Speaking())
}
