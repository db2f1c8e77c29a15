// Package catalog holds the fixed table of languages the translator supports.
package catalog

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/valpere/verbico/internal"
)

// Auto is the pseudo source language that asks for detection.
const Auto = "auto"

// DefaultSpeechTag is used when a code has no usable BCP-47 mapping.
const DefaultSpeechTag = "en-US"

// Language describes one supported language.
type Language struct {
	Code       string `json:"code" yaml:"code"`
	Name       string `json:"name" yaml:"name"`
	NativeName string `json:"nativeName" yaml:"native_name"`
}

var languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "it", Name: "Italian", NativeName: "Italiano"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
	{Code: "ru", Name: "Russian", NativeName: "Русский"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands"},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska"},
	{Code: "pl", Name: "Polish", NativeName: "Polski"},
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(languages))
	for _, l := range languages {
		if _, dup := m[l.Code]; dup {
			panic("catalog: duplicate language code " + l.Code)
		}
		m[l.Code] = l
	}
	return m
}()

// All returns a copy of the catalog in display order.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Codes returns the ISO 639-1 codes in display order.
func Codes() []string {
	codes := make([]string, len(languages))
	for i, l := range languages {
		codes[i] = l.Code
	}
	return codes
}

func Lookup(code string) (Language, bool) {
	l, ok := byCode[code]
	return l, ok
}

func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Name returns the English display name of code, or "Unknown Language".
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return "Unknown Language"
}

// SpeechTag maps a catalog code to a full BCP-47 tag with its most likely
// region, e.g. "en" -> "en-US", "ja" -> "ja-JP". Speech engines want a region.
func SpeechTag(code string) string {
	if !IsSupported(code) {
		return DefaultSpeechTag
	}
	tag := language.Make(code)
	base, _ := tag.Base()
	region, _ := tag.Region()
	if region.String() == "ZZ" {
		return base.String()
	}
	return base.String() + "-" + region.String()
}

// ParseTag validates s as a BCP-47 tag and returns its canonical form.
func ParseTag(s string) (string, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid language tag %q: %v", internal.ErrValidation, s, err)
	}
	return tag.String(), nil
}
