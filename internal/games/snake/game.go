package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Package-level variables for config/difficulty, set by the CLI before
// games are created.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path used on Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Terminal layout: two HUD lines on top, then the bordered board. Each
// board cell is two columns wide so it looks square.
const (
	hudHeight = 2
	cellWidth = 2
)

// Game adapts a Loop to the fixed-rate registry.Game interface.
type Game struct {
	id         string
	title      string
	preset     string
	difficulty string // Overrides the package default when set

	cfg     config.SnakeConfig
	pending *config.SnakeConfig
	loop    *Loop
	pacer   *Pacer
	aimer   *Aimer
	rng     *rand.Rand
	frame   time.Duration
	events  []core.Event

	screenW, screenH int
	board            core.Rect // Board interior in screen cells
	tooSmall         bool
	paused           bool

	// Terminals report key repeats but no key releases, so acceleration
	// stays on while repeats keep arriving within the hold window.
	holding  bool
	holdLeft time.Duration
}

// New creates the classic game.
func New() *Game {
	return &Game{id: "snake", title: "Snake", preset: "classic"}
}

// NewLegacy creates the three-segment, faster-start variant.
func NewLegacy() *Game {
	return &Game{id: "snake_legacy", title: "Snake (Legacy)", preset: "legacy"}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_legacy", func() registry.Game {
		return NewLegacy()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// ApplyConfig queues a configuration for the next Reset.
func (g *Game) ApplyConfig(cfg config.SnakeConfig) {
	g.pending = &cfg
}

// SetDifficulty selects a difficulty preset for this game only. It takes
// effect on the next Reset.
func (g *Game) SetDifficulty(name string) {
	g.difficulty = name
}

// Config returns the configuration of the current game.
func (g *Game) Config() config.SnakeConfig {
	return g.cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.cfg = g.loadConfig()

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.frame = time.Second / time.Duration(tickRate)

	g.loop = NewLoop(SettingsFromConfig(g.cfg), g.rng)
	g.loop.SetHooks(Hooks{
		OnScore:    func(int) { g.events = append(g.events, core.EventAte) },
		OnGameOver: func(int, bool) { g.events = append(g.events, core.EventGameOver) },
	})
	g.pacer = NewPacer(2)
	g.aimer = NewAimer(g.cfg.Grid.Size, g.cfg.Input.AimThreshold)
	g.events = nil
	g.paused = false
	g.holding = false
	g.holdLeft = 0

	g.layout(cfg.ScreenW, cfg.ScreenH)
	g.loop.Start()
}

// loadConfig resolves the configuration for a new game. A queued config
// wins over the file search; broken files fall back to the preset.
func (g *Game) loadConfig() config.SnakeConfig {
	if g.pending != nil {
		cfg := *g.pending
		g.pending = nil
		if cfg.Validate() == nil {
			return cfg
		}
	}

	// The classic game searches for config files; the legacy one keeps
	// its preset unless a file is named explicitly.
	preset := g.preset
	if g.id == "snake" {
		preset = ""
	}
	difficulty := difficultyPreset
	if g.difficulty != "" {
		difficulty = g.difficulty
	}
	cfg, err := config.Resolve(configPath, preset, difficulty)
	if err != nil {
		cfg, _ = config.Preset(g.preset)
	}
	return cfg
}

// layout centres the board on the screen.
func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h
	size := g.cfg.Grid.Size
	outer := core.NewRect(0, hudHeight, w, h-hudHeight).CenterIn(size*cellWidth+2, size+2)
	g.board = core.NewRect(outer.X+1, outer.Y+1, size*cellWidth, size)
	g.tooSmall = w < outer.W || h-hudHeight < outer.H
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	if (in.Has(core.ActionRestart) || in.Has(core.ActionConfirm)) && g.loop.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(time.Second / g.frame),
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.loop.GameOver() {
		g.paused = !g.paused
		g.pacer.Reset()
	}

	if g.loop.GameOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(in)

	for n := g.pacer.Advance(g.frame, g.loop.Interval()); n > 0 && !g.loop.GameOver(); n-- {
		g.loop.Tick()
	}

	return core.StepResult{State: g.State(), Events: append([]core.Event(nil), g.events...)}
}

var actionDirections = []struct {
	action core.Action
	dir    Direction
}{
	{core.ActionUp, DirUp},
	{core.ActionDown, DirDown},
	{core.ActionLeft, DirLeft},
	{core.ActionRight, DirRight},
}

// processInput maps actions and pointer gestures onto the loop.
func (g *Game) processInput(in core.InputFrame) {
	for _, ad := range actionDirections {
		if !in.Has(ad.action) {
			continue
		}
		if ad.dir == g.loop.Snake().Direction() {
			// Pressing (or auto-repeating) the current heading accelerates.
			g.holding = true
			g.holdLeft = g.cfg.Input.HoldWindow()
		} else {
			g.loop.SetDirection(ad.dir)
			g.holding = false
		}
		break
	}

	switch {
	case in.Has(core.ActionAccelerate):
		g.holding = true
		g.holdLeft = g.cfg.Input.HoldWindow()
	case in.Has(core.ActionDecelerate):
		g.holding = false
	}

	if p := in.Pointer; p != nil {
		x, y := g.boardCoords(p.X, p.Y)
		switch p.Phase {
		case core.PointerPress:
			g.aimer.Press(g.loop, x, y)
		case core.PointerMove:
			g.aimer.Drag(g.loop, x, y)
		case core.PointerRelease:
			g.aimer.Release(g.loop)
		}
	}

	if g.holding {
		g.holdLeft -= g.frame
		if g.holdLeft <= 0 {
			g.holding = false
		}
	}
	g.loop.SetAcceleration(g.holding || g.aimer.Down())
}

// boardCoords converts a screen position to fractional board cells.
func (g *Game) boardCoords(sx, sy int) (float64, float64) {
	x := float64(sx-g.board.X)/cellWidth + 0.25
	y := float64(sy-g.board.Y) + 0.5
	return x, y
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.loop.Score(),
		GameOver: g.loop.GameOver(),
		Won:      g.loop.Won(),
		Paused:   g.paused,
	}
}

// Loop exposes the underlying session, for screenshots and tests.
func (g *Game) Loop() *Loop {
	return g.loop
}

// SettingsFromConfig converts a file configuration into loop settings.
func SettingsFromConfig(c config.SnakeConfig) Settings {
	return Settings{
		GridSize:      c.Grid.Size,
		InitialLength: c.Snake.InitialLength,
		ScorePerFood:  c.Scoring.PerFood,
		Speed: SpeedSettings{
			Base:       c.Speed.Base(),
			Decrement:  c.Speed.Decrement(),
			Floor:      c.Speed.Floor(),
			AccelRatio: c.Speed.AccelRatio,
		},
	}
}

// Resize re-centres the board for a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.layout(w, h)
}
