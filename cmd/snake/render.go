package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render/canvas"
)

var (
	flagMoves      string
	flagTicks      int
	flagOutput     string
	flagImageSize  int
	flagPreset     string
	flagRenderTile int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a scripted game to PNG",
	Long: `Run a game without a timer and write the final board as PNG.

Each character of --moves is applied before one tick: U, D, L or R turns,
'.' keeps going. After the moves run out the snake keeps its heading until
--ticks ticks have been played or the game ends.

Examples:
  snake render --seed 1 --moves RRRDDD -o out.png
  snake render --seed 7 --moves UULL --ticks 40 --size 200 -o thumb.png`,
	Run: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&flagMoves, "moves", "", "Moves, one per tick: U D L R or '.'")
	f.IntVar(&flagTicks, "ticks", 0, "Ticks to play (default: one per move)")
	f.StringVarP(&flagOutput, "output", "o", "snake.png", "Output PNG path")
	f.IntVar(&flagImageSize, "size", 0, "Scale the image to fit this many pixels (0 = full size)")
	f.IntVar(&flagRenderTile, "tile", canvas.DefaultTileSize, "Pixels per board cell")
	f.StringVar(&flagPreset, "preset", "classic", "Config preset when --config is not given")
}

// move is one scripted tick: an optional turn before the step.
type move struct {
	dir  snake.Direction
	turn bool
}

// parseMoves turns a move script into per-tick moves.
func parseMoves(script string) ([]move, error) {
	moves := make([]move, 0, len(script))
	for i, r := range script {
		if r == '.' {
			moves = append(moves, move{})
			continue
		}
		d, ok := snake.ParseDirection(string(r))
		if !ok {
			return nil, fmt.Errorf("invalid move %q at position %d", r, i+1)
		}
		moves = append(moves, move{dir: d, turn: true})
	}
	return moves, nil
}

// playScript runs a loop for ticks ticks (or one per move when ticks is
// zero), stopping early when the game ends.
func playScript(cfg config.SnakeConfig, seed int64, moves []move, ticks int) *snake.Loop {
	if ticks <= 0 {
		ticks = len(moves)
	}
	loop := snake.NewLoop(snake.SettingsFromConfig(cfg), rand.New(rand.NewSource(seed)))
	loop.Start()

	for i := 0; i < ticks && !loop.GameOver(); i++ {
		if i < len(moves) && moves[i].turn {
			loop.SetDirection(moves[i].dir)
		}
		loop.Tick()
	}
	return loop
}

func runRender(_ *cobra.Command, _ []string) {
	moves, err := parseMoves(strings.TrimSpace(flagMoves))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Resolve(flagConfig, flagPreset, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loop := playScript(cfg, flagSeed, moves, flagTicks)

	img := canvas.Thumbnail(canvas.Render(loop.Frame(), cfg.Grid.Size, flagRenderTile), flagImageSize)
	if err := canvas.SavePNG(flagOutput, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	status := "running"
	if loop.GameOver() {
		status = "game over"
		if loop.Won() {
			status = "won"
		}
	}
	fmt.Printf("Wrote %s: %d ticks, score %d, length %d, %s\n",
		flagOutput, loop.Ticks(), loop.Score(), loop.Snake().Len(), status)
}
