// snake is a terminal snake game with SSH, HTTP and headless front ends.
//
// Usage:
//
//	snake list              - List available games
//	snake play [game]       - Play a game (default: snake)
//	snake menu              - Start menu to pick games interactively
//	snake serve             - Start SSH server for remote play
//	snake web               - Start the HTTP/WebSocket API
//	snake render            - Render a scripted game to PNG
//	snake scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Use a config file (reloaded on change)
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//	--sound               - Play sound effects
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - play snake in your terminal, over SSH or HTTP",
	Long: `Snake is the classic grid game: steer the snake to the food, grow,
and avoid the walls and your own tail. The game speeds up as you eat;
hold a direction (or Space) to go faster still.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Start the HTTP/WebSocket API
  render   - Render a scripted game to PNG
  scores   - View high scores

Examples:
  snake play
  snake play snake_legacy --difficulty hard
  snake menu --sound
  snake serve --ssh :2222
  snake web --addr :8080
  snake render --seed 1 --moves RRRDDD -o out.png`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		snake.SetConfigPath(flagConfig)
		snake.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a config YAML (reloaded when it changes)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagSound, "sound", false, "Play sound effects")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the root logger. Terminal games own the screen, so with
// quiet set and no --log-file logs are discarded. The returned func closes
// the log file.
func newLogger(prefix string, quiet bool) (*log.Logger, func()) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
			w = io.Discard
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, closeFn
}

// openStore opens the score database, continuing without one on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// openAudio returns a player when --sound is set. A missing audio device
// leaves the game silent.
func openAudio(logger *log.Logger) *audio.Player {
	if !flagSound {
		return nil
	}
	p := audio.NewPlayer()
	if err := p.Initialize(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return nil
	}
	return p
}
