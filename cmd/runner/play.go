package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start running straight away.

Controls:
  Left/Right, A/D        - Change lane
  Shift+Left/Right       - Lean within the lane
  Up/W/Space             - Jump
  Down/S                 - Slide
  P                      - Pause
  R/Enter                - Restart (after game over)
  Ctrl+S                 - Save a screenshot
  Q/Ctrl+C               - Quit

Difficulty options:
  easy   - Sparse obstacles, slow speed ramp
  normal - Default settings
  hard   - Dense obstacles and enemies, fast ramp
  fixed  - No progression, speed and density stay at base

Examples:
  runner play
  runner play --difficulty easy
  runner play --seed 42
  runner play --config ./my-runner.yaml --log-file runner.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write simulation logs to this file")
}

// fileLogger opens --log-file. The terminal is in the alternate screen
// while playing, so logs never go to stderr.
func fileLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "runner")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	if err := tui.Run(settings, store, runtimeConfig(width, height), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
