/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/verbico/internal"
	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/history"
	"github.com/valpere/verbico/internal/session"
)

var (
	sourceLang string
	targetLang string
	useLocal   bool
	speakOut   bool
	noHistory  bool
	swapLast   bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text and record it in history",
	Long: `Translate text given as arguments, or read from stdin when none are given.

With --from auto (the default) the source language is detected first.
Successful translations are added to the local history (last 10 kept).

--swap translates the most recent history entry back: its languages and
texts trade places, as with the swap button of a two-pane translator.`,
	Example: `  verbico translate --to fr "Good morning"
  echo "Hola mundo" | verbico translate --to en
  verbico translate --local --from de --to en --speak "Guten Tag"
  verbico translate --swap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var (
			h   *history.History
			err error
		)
		if noHistory {
			h, err = history.Open(ctx, history.NewMemoryStorage())
		} else {
			var closeDB func() error
			h, closeDB, err = openHistory(ctx, cfg)
			if closeDB != nil {
				defer closeDB()
			}
		}
		if err != nil {
			return err
		}

		text, source, target := "", sourceLang, targetLang
		if swapLast {
			if len(args) > 0 {
				return errors.New("--swap takes no text")
			}
			entries := h.List()
			if len(entries) == 0 {
				return errors.New("history is empty, nothing to swap")
			}
			text, source, target = swapRequest(entries[0])
		} else {
			if text, err = readText(args, cmd.InOrStdin()); err != nil {
				return err
			}
		}

		if !catalog.IsSupported(target) {
			return fmt.Errorf("unsupported target language %q", target)
		}
		if source != catalog.Auto && !catalog.IsSupported(source) {
			return fmt.Errorf("unsupported source language %q", source)
		}

		svc, err := buildService(ctx, cfg, useLocal)
		if err != nil {
			return err
		}

		rec, err := session.New(svc, h).Translate(ctx, text, source, target)
		if err != nil {
			return err
		}

		if source == catalog.Auto {
			stderrf("Detected source language: %s (%s)\n", catalog.Name(rec.SourceLanguage), rec.SourceLanguage)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rec.TranslatedText)

		if speakOut {
			synth := buildSynthesizer(cfg)
			synth.Speak(rec.TranslatedText, catalog.SpeechTag(rec.TargetLanguage))
			synth.Wait()
		}
		return nil
	},
}

// swapRequest turns a past translation into the request that translates it
// back.
func swapRequest(last internal.Translation) (text, source, target string) {
	l := session.SwapLanguages(session.Languages{
		Source:         last.SourceLanguage,
		Target:         last.TargetLanguage,
		SourceText:     last.SourceText,
		TranslatedText: last.TranslatedText,
	})
	return l.SourceText, l.Source, l.Target
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&sourceLang, "from", "f", catalog.Auto, "Source language code, or auto")
	translateCmd.Flags().StringVarP(&targetLang, "to", "t", "es", "Target language code: "+strings.Join(catalog.Codes(), ", "))
	translateCmd.Flags().BoolVar(&useLocal, "local", false, "Call the upstream API directly instead of the server")
	translateCmd.Flags().BoolVar(&speakOut, "speak", false, "Read the translation aloud")
	translateCmd.Flags().BoolVar(&noHistory, "no-history", false, "Keep the translation in memory only")
	translateCmd.Flags().BoolVar(&swapLast, "swap", false, "Translate the most recent history entry back")
	translateCmd.Flags().String("server", "", "Server base URL (overrides client.base_url)")
	translateCmd.Flags().String("provider", "", "With --local, upstream provider: gemini, openai, anthropic, ollama")

	translateCmd.MarkFlagsMutuallyExclusive("swap", "no-history")
	translateCmd.MarkFlagsMutuallyExclusive("swap", "from")
	translateCmd.MarkFlagsMutuallyExclusive("swap", "to")

	bindFlag(translateCmd, "client.base_url", "server")
	bindFlag(translateCmd, "upstream.provider", "provider")
}
