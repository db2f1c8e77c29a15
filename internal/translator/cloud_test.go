package translator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/valpere/verbico/internal"
)

func TestCloudService_Translate(t *testing.T) {
	var gotSource, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v2") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		r.ParseForm()
		gotSource = r.Form.Get("source")
		gotFormat = r.Form.Get("format")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hola & adiós"}]}}`))
	}))
	defer server.Close()

	svc := NewCloudService(CloudConfig{BaseURL: server.URL + "/language/translate/"})

	res, err := svc.Translate(context.Background(), Request{Text: "Hello & goodbye", SourceLang: "en", TargetLang: "es"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Hola & adiós" {
		t.Errorf("expected %q, got %q", "Hola & adiós", res.Text)
	}
	if gotSource != "en" {
		t.Errorf("expected source=en, got %q", gotSource)
	}
	if gotFormat != "text" {
		t.Errorf("expected format=text, got %q", gotFormat)
	}
	if res.Service != "google-cloud" {
		t.Errorf("expected service google-cloud, got %q", res.Service)
	}
}

func TestCloudService_Translate_AutoKeepsLiteralEntities(t *testing.T) {
	var gotSource, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotSource = r.Form.Get("source")
		gotFormat = r.Form.Get("format")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Escribe &lt; en HTML","detectedSourceLanguage":"en"}]}}`))
	}))
	defer server.Close()

	svc := NewCloudService(CloudConfig{BaseURL: server.URL + "/language/translate/"})

	res, err := svc.Translate(context.Background(), Request{Text: "Write &lt; in HTML", SourceLang: "auto", TargetLang: "es"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Escribe &lt; en HTML" {
		t.Errorf("expected literal entity kept, got %q", res.Text)
	}
	if gotSource != "" {
		t.Errorf("expected no source for auto, got %q", gotSource)
	}
	if gotFormat != "text" {
		t.Errorf("expected format=text, got %q", gotFormat)
	}
}

func TestCloudService_Translate_InvalidTarget(t *testing.T) {
	svc := NewCloudService(CloudConfig{})

	_, err := svc.Translate(context.Background(), Request{Text: "Hello", TargetLang: "not a tag"})
	if !errors.Is(err, internal.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCloudService_Translate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	}))
	defer server.Close()

	svc := NewCloudService(CloudConfig{BaseURL: server.URL + "/language/translate/"})

	_, err := svc.Translate(context.Background(), Request{Text: "Hello", SourceLang: "auto", TargetLang: "fr"})
	if !errors.Is(err, internal.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
	var te *TranslationError
	if !errors.As(err, &te) {
		t.Errorf("expected TranslationError, got %T", err)
	}
}
