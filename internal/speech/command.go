package speech

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/valpere/verbico/internal"
)

// baseWPM is the words-per-minute treated as rate 1.0.
const baseWPM = 175

// CommandEngine speaks through a local TTS program: macOS say, espeak-ng or
// espeak.
type CommandEngine struct {
	binary string
	voice  string
}

// NewCommandEngine uses binary, or looks one up when binary is empty.
func NewCommandEngine(binary, voice string) (*CommandEngine, error) {
	if binary == "" {
		found, err := lookupBinary()
		if err != nil {
			return nil, err
		}
		binary = found
	} else if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("%w: %s not found", internal.ErrCapability, binary)
	}
	return &CommandEngine{binary: binary, voice: voice}, nil
}

func lookupBinary() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = append([]string{"say"}, candidates...)
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: no text-to-speech program found", internal.ErrCapability)
}

func (e *CommandEngine) Binary() string {
	return e.binary
}

// Args builds the command line for u.
func (e *CommandEngine) Args(u Utterance) []string {
	wpm := strconv.Itoa(int(math.Round(baseWPM * u.Rate)))

	if filepath.Base(e.binary) == "say" {
		args := []string{"-r", wpm}
		if e.voice != "" {
			args = append(args, "-v", e.voice)
		}
		return append(args, u.Text)
	}

	voice := e.voice
	if voice == "" && u.Lang != "" {
		voice = strings.ToLower(u.Lang)
	}
	args := []string{"-s", wpm, "-p", strconv.Itoa(int(math.Round(50 * u.Pitch)))}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	return append(args, "--", u.Text)
}

func (e *CommandEngine) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.binary, e.Args(u)...)
	return cmd.Run()
}
