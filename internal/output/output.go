// Package output renders CLI listings as an aligned table or as JSON, YAML
// or TOML documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML, FormatTOML}
}

const snippetLen = 40

// Encode writes v as a JSON, YAML or TOML document. TOML needs a table at the
// top level, so slices are wrapped under key.
func Encode(w io.Writer, format, key string, v any) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(map[string]any{key: v})
	default:
		return fmt.Errorf("%w: unsupported format %q", internal.ErrValidation, format)
	}
}

// Translations renders history records.
func Translations(w io.Writer, format string, items []internal.Translation) error {
	if strings.ToLower(format) != FormatTable {
		return Encode(w, format, "translations", items)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No translations in history.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tFROM\tTO\tSOURCE\tTRANSLATION")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			time.UnixMilli(t.Timestamp).Format("2006-01-02 15:04"),
			t.SourceLanguage, t.TargetLanguage,
			Snippet(t.SourceText, snippetLen), Snippet(t.TranslatedText, snippetLen))
	}
	return tw.Flush()
}

// Translation renders one record in full.
func Translation(w io.Writer, format string, t internal.Translation) error {
	if strings.ToLower(format) != FormatTable {
		return Encode(w, format, "translation", t)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "When:\t%s\n", time.UnixMilli(t.Timestamp).Format(time.RFC3339))
	fmt.Fprintf(tw, "From:\t%s (%s)\n", catalog.Name(t.SourceLanguage), t.SourceLanguage)
	fmt.Fprintf(tw, "To:\t%s (%s)\n", catalog.Name(t.TargetLanguage), t.TargetLanguage)
	fmt.Fprintf(tw, "Source:\t%s\n", t.SourceText)
	fmt.Fprintf(tw, "Translation:\t%s\n", t.TranslatedText)
	return tw.Flush()
}

// Languages renders the catalog.
func Languages(w io.Writer, format string, langs []catalog.Language) error {
	if strings.ToLower(format) != FormatTable {
		return Encode(w, format, "languages", langs)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tNATIVE\tSPEECH")
	for _, l := range langs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Code, l.Name, l.NativeName, catalog.SpeechTag(l.Code))
	}
	return tw.Flush()
}

// Snippet shortens s to at most n runes, marking the cut with "...".
func Snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
