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
	"github.com/spf13/cobra"

	"github.com/valpere/verbico/internal/catalog"
)

var speakLang string

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Read text aloud",
	Long: `Speak text through the local synthesizer (say on macOS, espeak-ng or
espeak elsewhere). --lang accepts a catalog code or a BCP-47 tag.`,
	Example: `  verbico speak --lang fr "Bonjour"
  verbico history show <id> -o json | jq -r .translatedText | verbico speak --lang es`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		tag := speakLang
		if tag == "" {
			tag = cfg.Speech.Language
		}
		if catalog.IsSupported(tag) {
			tag = catalog.SpeechTag(tag)
		}

		synth := buildSynthesizer(cfg)
		synth.Speak(text, tag)
		if synth.Speaking() {
			stderrf("Speaking (%s)...\n", tag)
		}
		synth.Wait()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().StringVarP(&speakLang, "lang", "l", "", "Language code or speech tag (default speech.language)")
	speakCmd.Flags().String("voice", "", "Synthesizer voice name")
	speakCmd.Flags().String("synthesizer", "", "Synthesizer binary (default: say, espeak-ng or espeak)")

	bindFlag(speakCmd, "speech.voice", "voice")
	bindFlag(speakCmd, "speech.synthesis_binary", "synthesizer")
}
