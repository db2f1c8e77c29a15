package catalog

import (
	"errors"
	"testing"

	"github.com/valpere/verbico/internal"
)

func TestAll_FifteenUniqueEntries(t *testing.T) {
	all := All()
	if len(all) != 15 {
		t.Fatalf("expected 15 languages, got %d", len(all))
	}

	seen := make(map[string]bool)
	for _, l := range all {
		if seen[l.Code] {
			t.Errorf("duplicate code %q", l.Code)
		}
		seen[l.Code] = true
		if l.Name == "" || l.NativeName == "" {
			t.Errorf("language %q has empty names", l.Code)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"

	if Name("en") != "English" {
		t.Error("mutating All() result changed the catalog")
	}
}

func TestLookup(t *testing.T) {
	l, ok := Lookup("ja")
	if !ok {
		t.Fatal("expected ja to be supported")
	}
	if l.NativeName != "日本語" {
		t.Errorf("expected native name 日本語, got %q", l.NativeName)
	}

	if _, ok := Lookup("xx"); ok {
		t.Error("expected xx to be unknown")
	}
	if IsSupported(Auto) {
		t.Error("auto must not be a catalog entry")
	}
}

func TestName(t *testing.T) {
	if got := Name("pl"); got != "Polish" {
		t.Errorf("Name(pl) = %q, want Polish", got)
	}
	if got := Name("tlh"); got != "Unknown Language" {
		t.Errorf("Name(tlh) = %q, want Unknown Language", got)
	}
}

func TestSpeechTag(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "en-US"},
		{"ja", "ja-JP"},
		{"de", "de-DE"},
		{"ko", "ko-KR"},
		{"xx", DefaultSpeechTag},
		{"auto", DefaultSpeechTag},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := SpeechTag(tt.code); got != tt.want {
				t.Errorf("SpeechTag(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	got, err := ParseTag("pt-BR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "pt-BR" {
		t.Errorf("expected pt-BR, got %q", got)
	}

	_, err = ParseTag("not a tag!")
	if !errors.Is(err, internal.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
