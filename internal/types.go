package internal

// Translation is one completed translation as kept in the session history.
// Records are immutable once created.
type Translation struct {
	ID             string `json:"id" yaml:"id" toml:"id"`
	SourceText     string `json:"sourceText" yaml:"source_text" toml:"source_text"`
	TranslatedText string `json:"translatedText" yaml:"translated_text" toml:"translated_text"`
	SourceLanguage string `json:"sourceLanguage" yaml:"source_language" toml:"source_language"`
	TargetLanguage string `json:"targetLanguage" yaml:"target_language" toml:"target_language"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}
