package translator_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/translator"
	"github.com/valpere/verbico/internal/upstream"
	"github.com/valpere/verbico/internal/upstream/mock"
)

func newBridge(t *testing.T) (*translator.Bridge, *mock.MockCompleter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := mock.NewMockCompleter(ctrl)
	c.EXPECT().Name().Return("gemini").AnyTimes()
	return translator.NewBridge(c), c
}

func TestBuildPrompt(t *testing.T) {
	got := translator.BuildPrompt("Hello", "en", "es")
	assert.Equal(t, "You are a professional translator. Translate the following text from en to es. "+
		"Return ONLY the translated text without any explanations, prefixes, or additional content.\n\n"+
		"Text to translate: \"Hello\"", got)

	auto := translator.BuildPrompt("Hello", "auto", "fr")
	assert.Contains(t, auto, "from the detected language to fr.")

	empty := translator.BuildPrompt("Hello", "", "fr")
	assert.Contains(t, empty, "from the detected language to fr.")
}

func TestBridge_Translate(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "plain", reply: "Hola mundo", want: "Hola mundo"},
		{name: "double quoted", reply: "\"Hola mundo\"", want: "Hola mundo"},
		{name: "single quoted with whitespace", reply: "  'Hola mundo'\n", want: "Hola mundo"},
		{name: "only one layer", reply: "\"\"Hola\"\"", want: "\"Hola\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := newBridge(t)
			c.EXPECT().
				Complete(gomock.Any(), translator.BuildPrompt("Hello world", "en", "es")).
				Return(tt.reply, nil)

			res, err := b.Translate(context.Background(), translator.Request{
				Text: "Hello world", SourceLang: "en", TargetLang: "es",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.False(t, res.Passthrough)
			assert.Equal(t, "gemini", res.Service)
		})
	}
}

func TestBridge_Translate_Passthrough(t *testing.T) {
	for name, reply := range map[string]struct {
		text string
		err  error
	}{
		"no candidate":         {err: upstream.ErrNoCandidate},
		"wrapped no candidate": {err: fmt.Errorf("gemini: %w", upstream.ErrNoCandidate)},
		"empty after cleanup":  {text: "\"\""},
	} {
		t.Run(name, func(t *testing.T) {
			b, c := newBridge(t)
			c.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(reply.text, reply.err)

			res, err := b.Translate(context.Background(), translator.Request{
				Text: "Bonjour", SourceLang: "auto", TargetLang: "en",
			})
			require.NoError(t, err)
			assert.Equal(t, "Bonjour", res.Text)
			assert.True(t, res.Passthrough)
		})
	}
}

func TestBridge_Translate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "transport", err: errors.New("connection refused"), wantErr: internal.ErrTransport},
		{name: "status", err: &upstream.StatusError{Provider: "ollama", StatusCode: 500}, wantErr: internal.ErrTransport},
		{name: "malformed", err: fmt.Errorf("%w: unexpected EOF", upstream.ErrMalformed), wantErr: internal.ErrUpstreamShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := newBridge(t)
			c.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", tt.err)

			res, err := b.Translate(context.Background(), translator.Request{
				Text: "Hello", SourceLang: "en", TargetLang: "de",
			})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)

			var te *translator.TranslationError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "gemini", te.Service)
		})
	}
}

func TestBridge_Translate_NoCompleter(t *testing.T) {
	b := translator.NewBridge(nil)
	_, err := b.Translate(context.Background(), translator.Request{Text: "Hi", TargetLang: "es"})
	assert.ErrorIs(t, err, internal.ErrTransport)
	assert.Equal(t, "generative", b.Name())
}

func TestBridge_Translate_GeminiUndecodableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	g, err := upstream.NewGemini(context.Background(), "test-key", server.URL, "", server.Client())
	require.NoError(t, err)

	_, err = translator.NewBridge(g).Translate(context.Background(), translator.Request{
		Text: "Hello", SourceLang: "en", TargetLang: "es",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrUpstreamShape)
	assert.False(t, errors.Is(err, internal.ErrTransport))
}
