package detector

import (
	"context"
	"errors"
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/verbico/internal/catalog"
)

// ErrUndetermined is returned when the statistical model cannot decide.
var ErrUndetermined = errors.New("language could not be determined")

// catalogLanguages mirrors the catalog so the model never answers outside it.
var catalogLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Japanese,
	lingua.Korean,
	lingua.Chinese,
	lingua.Arabic,
	lingua.Hindi,
	lingua.Dutch,
	lingua.Swedish,
	lingua.Polish,
}

// LinguaStrategy detects offline with n-gram models. The models are loaded on
// first use.
type LinguaStrategy struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func NewLinguaStrategy() *LinguaStrategy {
	return &LinguaStrategy{}
}

func (s *LinguaStrategy) Name() string {
	return "lingua"
}

func (s *LinguaStrategy) build() {
	s.detector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(catalogLanguages...).
		Build()
}

func (s *LinguaStrategy) Detect(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrUndetermined
	}

	s.once.Do(s.build)

	lang, ok := s.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrUndetermined
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	if !catalog.IsSupported(code) {
		return "", ErrUndetermined
	}
	return code, nil
}
