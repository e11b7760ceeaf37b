package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: snake).

Controls:
  Arrows/WASD/HJKL - Turn (hold the current heading to accelerate)
  Space            - Accelerate
  Mouse            - Press to aim and accelerate, drag to re-aim
  P                - Pause
  R/Enter          - Restart (after game over)
  Ctrl+S           - Save a PNG screenshot to ~/.snake/screenshots
  Esc/B            - Back
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start and floor
  normal - As configured
  hard   - Faster start, steeper ramp
  fixed  - No speed-up while eating

Examples:
  snake play
  snake play snake_legacy
  snake play --difficulty hard --sound
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameOptions wires the shared collaborators of a terminal game. The
// returned func releases them.
func gameOptions(ctx context.Context, logger *log.Logger, store *storage.Store) (tui.Options, func()) {
	opts := tui.Options{
		Store:     store,
		Audio:     openAudio(logger),
		Logger:    logger,
		SessionID: storage.NewSessionID(),
	}
	if flagConfig != "" {
		ch, err := tui.WatchConfig(ctx, flagConfig, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		} else {
			opts.Configs = ch
		}
	}
	return opts, func() {
		if opts.Audio != nil {
			opts.Audio.Close()
		}
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "snake"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := newLogger("snake", true)
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	ctx, cancel := context.WithCancel(context.Background())
	opts, release := gameOptions(ctx, logger, store)

	_, runErr := tui.Run(game, terminalConfig(), opts)

	cancel()
	release()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
