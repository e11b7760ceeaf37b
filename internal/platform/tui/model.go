package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/render/canvas"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options carries the optional collaborators of a game session.
type Options struct {
	Store         *storage.Store
	Audio         *audio.Player
	Logger        *log.Logger
	SessionID     string
	ScreenshotDir string

	// Configs delivers reloaded configuration files; the game picks them
	// up on its next restart.
	Configs <-chan config.SnakeConfig
}

// configMsg carries a reloaded configuration into the update loop.
type configMsg config.SnakeConfig

// configurable is implemented by games that accept live config updates.
type configurable interface {
	ApplyConfig(cfg config.SnakeConfig)
}

// resizable is implemented by games that can re-layout without a restart.
type resizable interface {
	Resize(w, h int)
}

// looped exposes the snake session behind a game, for PNG screenshots
// and score details.
type looped interface {
	Loop() *snake.Loop
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.SessionID == "" {
		opts.SessionID = storage.NewSessionID()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = defaultScreenshotDir()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".snake", "screenshots")
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForConfig(m.opts.Configs))
}

// waitForConfig blocks on the next reloaded config.
func waitForConfig(ch <-chan config.SnakeConfig) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg(cfg)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.SetPointer(p)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case configMsg:
		if c, ok := m.game.(configurable); ok {
			c.ApplyConfig(config.SnakeConfig(msg))
			m.logger.Info("config reloaded", "game", m.game.ID())
		}
		return m, waitForConfig(m.opts.Configs)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one frame of the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.gameState.GameOver &&
		(m.inputFrame.Has(core.ActionRestart) || m.inputFrame.Has(core.ActionConfirm))

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if restarting && !m.gameState.GameOver {
		m.scoreSaved = false
	}

	if m.opts.Audio != nil {
		for _, e := range result.Events {
			m.opts.Audio.Play(e)
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished game. Failures are logged and ignored.
func (m *Model) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}

	r := storage.Result{
		GameID:    m.game.ID(),
		Score:     m.gameState.Score,
		SessionID: m.opts.SessionID,
	}
	if lg, ok := m.game.(looped); ok {
		r.Length = lg.Loop().Snake().Len()
		r.Ticks = lg.Loop().Ticks()
	}
	if _, err := m.opts.Store.SaveScore(r); err != nil {
		m.logger.Warn("cannot save score", "game", r.GameID, "err", err)
		return
	}
	m.logger.Info("score saved", "game", r.GameID, "score", r.Score, "session", r.SessionID)
}

// saveScreenshot writes the current board as PNG, falling back to the text
// screen for games without a board.
func (m *Model) saveScreenshot() {
	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))

	if lg, ok := m.game.(looped); ok {
		l := lg.Loop()
		img := canvas.Render(l.Frame(), l.Settings().GridSize, canvas.DefaultTileSize)
		if err := canvas.SavePNG(base+".png", img); err != nil {
			m.logger.Warn("cannot save screenshot", "err", err)
			return
		}
		m.logger.Info("screenshot saved", "path", base+".png")
		return
	}

	m.game.Render(m.screen)
	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// BackToMenu reports whether the player left the game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config, updated by resizes.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// GameResult is how a game session ended.
type GameResult struct {
	BackToMenu bool
	Config     core.RuntimeConfig
}

// Run plays a game in the terminal until the player quits or goes back.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options, teaOpts ...tea.ProgramOption) (GameResult, error) {
	model := NewModel(game, cfg, opts)

	teaOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, teaOpts...)
	final, err := tea.NewProgram(model, teaOpts...).Run()
	if err != nil {
		return GameResult{Config: cfg}, fmt.Errorf("tui: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return GameResult{Config: cfg}, nil
	}
	return GameResult{BackToMenu: m.BackToMenu(), Config: m.Config()}, nil
}

// WatchConfig starts a config watcher for path and returns the channel of
// reloads for Options.Configs. The watcher stops with ctx.
func WatchConfig(ctx context.Context, path string, logger *log.Logger) (<-chan config.SnakeConfig, error) {
	ch := make(chan config.SnakeConfig, 1)
	w, err := config.NewWatcher(path,
		func(cfg config.SnakeConfig) {
			select {
			case ch <- cfg:
			default:
				// Replace a pending update with the newer one.
				select {
				case <-ch:
				default:
				}
				ch <- cfg
			}
		},
		func(err error) {
			if logger != nil {
				logger.Warn("config reload failed", "err", err)
			}
		},
	)
	if err != nil {
		return nil, err
	}
	go w.Run(ctx)
	return ch, nil
}

// IsQuitting reports whether the player quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}
