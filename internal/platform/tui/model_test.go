package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestModel(t *testing.T) (Model, *snake.Game, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := snake.New()
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}, Options{
		Store:         store,
		SessionID:     "11111111-2222-3333-4444-555555555555",
		ScreenshotDir: t.TempDir(),
	})
	m.Init()
	return m, g, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelKeyTurnsSnake(t *testing.T) {
	m, g, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if !m.inputFrame.Has(core.ActionUp) {
		t.Fatal("key should be queued in the input frame")
	}

	m, _ = update(t, m, TickMsg{})
	if got := g.Loop().Snake().NextDirection(); got != snake.DirUp {
		t.Errorf("next direction = %v, want up", got)
	}
	if m.inputFrame.Has(core.ActionUp) {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelMouseQueuesPointer(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.inputFrame.Pointer == nil || m.inputFrame.Pointer.Phase != core.PointerPress {
		t.Fatalf("pointer = %+v, want press", m.inputFrame.Pointer)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() || cmd == nil {
		t.Error("esc should leave for the menu")
	}
	if back.View() != "" {
		t.Error("view should be empty after leaving")
	}

	quit, _ := update(t, m, runeKey("q"))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	m, g, store := newTestModel(t)

	for i := 0; i < 2000 && !m.gameState.GameOver; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if !m.gameState.GameOver {
		t.Fatal("snake should hit the wall eventually")
	}
	if !m.scoreSaved {
		t.Error("game over should mark the score as handled")
	}

	m.gameState.Score = 30
	m.saveScore()

	entries, err := store.TopScores(g.ID(), 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Score != 30 || e.Length != 1 || e.SessionID != m.opts.SessionID {
		t.Errorf("entry = %+v", e)
	}
	if e.Ticks == 0 {
		t.Error("ticks should be recorded")
	}
}

func TestModelRestartClearsSavedFlag(t *testing.T) {
	m, _, _ := newTestModel(t)

	for i := 0; i < 2000 && !m.gameState.GameOver; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, TickMsg{})
	if m.gameState.GameOver {
		t.Fatal("r should restart the game")
	}
	if m.scoreSaved {
		t.Error("restart should allow the next score to be saved")
	}
}

func TestModelAppliesReloadedConfig(t *testing.T) {
	m, g, _ := newTestModel(t)

	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Size = 12
	ch := make(chan config.SnakeConfig)
	m.opts.Configs = ch

	_, cmd := update(t, m, configMsg(cfg))
	if cmd == nil {
		t.Error("config update should keep listening")
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 2})
	if got := g.Config().Grid.Size; got != 12 {
		t.Errorf("grid size after restart = %d, want 12", got)
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _, _ := newTestModel(t)

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(m.opts.ScreenshotDir, "snake_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("got %d screenshots, want 1", len(files))
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, g, _ := newTestModel(t)

	for i := 0; i < 30; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	ticks := g.Loop().Ticks()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.Loop().Ticks() != ticks {
		t.Error("resize should not restart the game")
	}
}
