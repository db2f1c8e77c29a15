package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptFrom(t *testing.T, r *http.Request) string {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	for _, p := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic} {
		_, err := New(context.Background(), Config{Provider: p})
		assert.ErrorIs(t, err, ErrMissingAPIKey, p)
	}

	c, err := New(context.Background(), Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, c.Name())
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "babelfish", APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNew_WrapsRateLimit(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: ProviderOllama, RateLimit: 2})
	require.NoError(t, err)
	_, ok := c.(*RateLimited)
	assert.True(t, ok)
	assert.Equal(t, ProviderOllama, c.Name())
}

func TestGemini_Complete(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-1.5-flash:generateContent"), r.URL.Path)
		gotBody = promptFrom(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hola mundo"}]}}]}`))
	}))
	defer server.Close()

	g, err := NewGemini(context.Background(), "test-key", server.URL, "", server.Client())
	require.NoError(t, err)

	text, err := g.Complete(context.Background(), "Translate: Hello world")
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", text)
	assert.Contains(t, gotBody, "Translate: Hello world")
}

func TestGemini_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	g, err := NewGemini(context.Background(), "test-key", server.URL, "gemini-pro", server.Client())
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestGemini_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}))
	defer server.Close()

	g, err := NewGemini(context.Background(), "test-key", server.URL, "", server.Client())
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoCandidate))
}

func TestGemini_UndecodableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	g, err := NewGemini(context.Background(), "test-key", server.URL, "", server.Client())
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestOpenAI_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Bonjour"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAI("test-key", server.URL+"/", "gpt-test", server.Client())
	text, err := p.Complete(context.Background(), "Translate: Hello")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", text)
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAI("test-key", server.URL+"/", "", server.Client())
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestOpenAI_NoRetryOnFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewOpenAI("test-key", server.URL+"/", "", server.Client())
	_, err := p.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestOpenAI_UndecodableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [`))
	}))
	defer server.Close()

	p := NewOpenAI("test-key", server.URL+"/", "", server.Client())
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestOpenAI_ServerErrorIsNotMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewOpenAI("test-key", server.URL+"/", "", server.Client())
	_, err := p.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestAnthropic_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"Hallo Welt"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`))
	}))
	defer server.Close()

	p := NewAnthropic("test-key", server.URL, "claude-test", server.Client())
	text, err := p.Complete(context.Background(), "Translate: Hello world")
	require.NoError(t, err)
	assert.Equal(t, "Hallo Welt", text)
}

func TestAnthropic_NoTextBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m",
			"content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer server.Close()

	p := NewAnthropic("test-key", server.URL, "", server.Client())
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestAnthropic_UndecodableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": not-json}`))
	}))
	defer server.Close()

	p := NewAnthropic("test-key", server.URL, "", server.Client())
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMalformed)
}
