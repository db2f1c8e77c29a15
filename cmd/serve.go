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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/verbico/internal/logger"
	"github.com/valpere/verbico/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the translate and detect-language endpoints",
	Long: `Start the HTTP server:

  POST /api/translate        {text, targetLanguage, sourceLanguage}
  POST /api/detect-language  {text}
  GET  /api/languages
  GET  /healthz

Without an upstream API key, detection falls back to the character-range
heuristic and translation requests fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		t, err := buildTranslator(ctx, cfg)
		if err != nil {
			return err
		}
		d, err := buildDetector(ctx, cfg)
		if err != nil {
			return err
		}

		logger.Info("starting server",
			"module", "cmd",
			"translator", t.Name(),
			"detection", d.Strategies(),
		)
		return server.Run(ctx, server.NewRouter(t, d), cfg.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("provider", "gemini", "Upstream provider: gemini, openai, anthropic, ollama")
	serveCmd.Flags().String("backend", "generative", "Translation backend: generative or cloud")
	serveCmd.Flags().Bool("statistical", false, "Try offline statistical detection before the heuristic")

	bindFlag(serveCmd, "server.addr", "addr")
	bindFlag(serveCmd, "upstream.provider", "provider")
	bindFlag(serveCmd, "translation.backend", "backend")
	bindFlag(serveCmd, "detection.statistical", "statistical")
}
