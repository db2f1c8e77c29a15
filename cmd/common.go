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
	"io"
	"os"
	"slices"
	"strings"

	"github.com/valpere/verbico/internal/client"
	"github.com/valpere/verbico/internal/config"
	"github.com/valpere/verbico/internal/detector"
	"github.com/valpere/verbico/internal/history"
	"github.com/valpere/verbico/internal/logger"
	"github.com/valpere/verbico/internal/output"
	"github.com/valpere/verbico/internal/session"
	"github.com/valpere/verbico/internal/speech"
	"github.com/valpere/verbico/internal/store"
	"github.com/valpere/verbico/internal/translator"
	"github.com/valpere/verbico/internal/upstream"
)

// buildCompleter returns nil without error when no API key is configured, so
// detection can fall back to the heuristic.
func buildCompleter(ctx context.Context, uc upstream.Config) (upstream.Completer, error) {
	c, err := upstream.New(ctx, uc)
	if errors.Is(err, upstream.ErrMissingAPIKey) {
		logger.Debug("no upstream API key configured", "module", "cmd", "provider", uc.Provider)
		return nil, nil
	}
	return c, err
}

// buildTranslator constructs the translation backend selected in config.
func buildTranslator(ctx context.Context, c *config.Config) (translator.Service, error) {
	if c.Translation.Backend == config.BackendCloud {
		return translator.NewCloudService(translator.CloudConfig{
			Credentials: c.Translation.Credentials,
			ProjectID:   c.Translation.ProjectID,
		}), nil
	}

	completer, err := buildCompleter(ctx, c.Upstream.Translate())
	if err != nil {
		return nil, err
	}
	return translator.NewBridge(completer), nil
}

func buildDetector(ctx context.Context, c *config.Config) (*detector.Bridge, error) {
	completer, err := buildCompleter(ctx, c.Upstream.Detect())
	if err != nil {
		return nil, err
	}
	return detector.NewBridge(completer, c.Detection.Statistical), nil
}

// buildService returns the HTTP client, or the in-process bridges when local
// is set.
func buildService(ctx context.Context, c *config.Config, local bool) (session.Service, error) {
	if !local {
		return client.New(c.Client.BaseURL, c.Client.Timeout), nil
	}

	t, err := buildTranslator(ctx, c)
	if err != nil {
		return nil, err
	}
	d, err := buildDetector(ctx, c)
	if err != nil {
		return nil, err
	}
	return client.NewLocal(t, d), nil
}

func openHistory(ctx context.Context, c *config.Config) (*history.History, func() error, error) {
	db, err := store.New(c.History.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	h, err := history.Open(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return h, db.Close, nil
}

func buildSynthesizer(c *config.Config) *speech.Synthesizer {
	var engine speech.SynthesisEngine
	e, err := speech.NewCommandEngine(c.Speech.SynthesisBinary, c.Speech.Voice)
	if err != nil {
		logger.Debug("speech synthesis unavailable", "module", "cmd", "error", err)
	} else {
		logger.Debug("speech synthesis ready", "module", "cmd", "binary", e.Binary())
		engine = e
	}
	return speech.NewSynthesizer(engine)
}

func buildRecognizer(c *config.Config) *speech.Recognizer {
	var engine speech.RecognitionEngine
	if c.Speech.RecognitionURL != "" {
		engine = speech.NewWebSocketEngine(c.Speech.RecognitionURL)
	}
	return speech.NewRecognizer(engine)
}

// readText joins args, or reads stdin when there are none.
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// checkFormat rejects output formats the output package cannot render.
func checkFormat(format string) error {
	if !slices.Contains(output.Formats(), strings.ToLower(format)) {
		return fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(output.Formats(), ", "))
	}
	return nil
}

func stderrf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}
