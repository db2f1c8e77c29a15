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
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/session"
	"github.com/valpere/verbico/internal/speech"
)

var (
	listenLang      string
	listenTranslate string
	listenLocal     bool
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Transcribe speech from a recognition server",
	Long: `Stream speech recognition results from the server at speech.recognition_url
until it ends the session or you press Ctrl-C. Interim results go to stderr;
the final transcript is printed to stdout.

With --translate-to the transcript is translated and recorded in history.`,
	Example: `  verbico listen --lang fr-FR
  verbico listen --lang de --translate-to en --recognition-url ws://localhost:2700/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenTranslate != "" && !catalog.IsSupported(listenTranslate) {
			return fmt.Errorf("unsupported target language %q", listenTranslate)
		}

		tag := listenLang
		if tag == "" {
			tag = cfg.Speech.Language
		}
		if tag == catalog.Auto || catalog.IsSupported(tag) {
			tag = session.VoiceInputTag(tag)
		}

		rec := buildRecognizer(cfg)
		if err := rec.SetLanguage(tag); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var (
			mu      sync.Mutex
			finals  []string
			lastErr error
		)
		rec.Start(ctx,
			func(r speech.Result) {
				if !r.IsFinal {
					stderrf("\r... %s", r.Text)
					return
				}
				stderrf("\r")
				mu.Lock()
				finals = append(finals, strings.TrimSpace(r.Text))
				mu.Unlock()
			},
			func(err error) {
				mu.Lock()
				lastErr = err
				mu.Unlock()
			},
		)

		go func() {
			<-ctx.Done()
			rec.Stop()
		}()
		rec.Wait()

		mu.Lock()
		transcript := strings.Join(finals, " ")
		err := lastErr
		mu.Unlock()

		if err != nil {
			if errors.Is(err, speech.ErrRecognitionUnsupported) {
				return fmt.Errorf("%w: set speech.recognition_url or --recognition-url", err)
			}
			return err
		}
		if transcript == "" {
			return errors.New("no speech recognized")
		}
		fmt.Fprintln(cmd.OutOrStdout(), transcript)

		if listenTranslate == "" {
			return nil
		}

		tctx := context.Background()
		svc, err := buildService(tctx, cfg, listenLocal)
		if err != nil {
			return err
		}
		h, closeDB, err := openHistory(tctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		source, _, _ := strings.Cut(rec.Language(), "-")
		if !catalog.IsSupported(source) {
			source = catalog.Auto
		}
		t, err := session.New(svc, h).Translate(tctx, transcript, source, listenTranslate)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.TranslatedText)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().StringVarP(&listenLang, "lang", "l", "", "Language code, auto, or speech tag to recognize (default speech.language)")
	listenCmd.Flags().StringVarP(&listenTranslate, "translate-to", "t", "", "Translate the transcript into this language")
	listenCmd.Flags().BoolVar(&listenLocal, "local", false, "Translate by calling the upstream API directly")
	listenCmd.Flags().String("recognition-url", "", "WebSocket URL of the recognition server")

	bindFlag(listenCmd, "speech.recognition_url", "recognition-url")
}
