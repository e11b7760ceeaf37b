package web

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// fastConfig is a tiny board that ends within a few milliseconds when the
// snake runs straight into the wall.
func fastConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Size = 4
	cfg.Speed.BaseMs = 5
	cfg.Speed.FloorMs = 5
	cfg.Speed.DecrementMs = 0
	return cfg
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newFastSession(t *testing.T, store *storage.Store) *Session {
	t.Helper()
	s, err := newSession(storage.NewSessionID(), "snake", fastConfig(), 1, store, nil)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish")
	}
}

func TestSessionRunsToGameOverAndSavesOnce(t *testing.T) {
	store := openTestStore(t)
	s := newFastSession(t, store)

	waitDone(t, s)

	st := s.State()
	if !st.GameOver {
		t.Fatal("state should be game over")
	}
	if st.Tick != 2 {
		t.Errorf("tick = %d, want 2", st.Tick)
	}

	entries, err := store.SessionScores(s.ID)
	if err != nil {
		t.Fatalf("SessionScores: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d saved games, want 1", len(entries))
	}
	if entries[0].GameID != "snake" || entries[0].Ticks != 2 {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestSessionControlsAfterGameOver(t *testing.T) {
	s := newFastSession(t, nil)
	waitDone(t, s)

	if err := s.SetDirection(snake.DirUp); !errors.Is(err, ErrGameOver) {
		t.Errorf("SetDirection err = %v, want ErrGameOver", err)
	}
	if err := s.SetAcceleration(true); !errors.Is(err, ErrGameOver) {
		t.Errorf("SetAcceleration err = %v, want ErrGameOver", err)
	}
}

func TestSessionRestart(t *testing.T) {
	store := openTestStore(t)
	s := newFastSession(t, store)
	waitDone(t, s)

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	waitDone(t, s)

	entries, err := store.SessionScores(s.ID)
	if err != nil {
		t.Fatalf("SessionScores: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d saved games after restart, want 2", len(entries))
	}
}

func TestSessionSubscribeReceivesGameOver(t *testing.T) {
	s, err := newSession(storage.NewSessionID(), "snake", func() config.SnakeConfig {
		cfg := fastConfig()
		cfg.Speed.BaseMs = 50
		cfg.Speed.FloorMs = 50
		return cfg
	}(), 1, nil, nil)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	defer s.Close()

	msgs, unsubscribe := s.Subscribe()
	defer unsubscribe()

	var last Message
	timeout := time.After(2 * time.Second)
	for last.Type != MessageGameOver {
		select {
		case msg := <-msgs:
			last = msg
		case <-timeout:
			t.Fatal("no game over message")
		}
	}
	if !last.State.GameOver {
		t.Error("game over message should carry a finished state")
	}
}

func TestSessionCloseReleasesSubscribers(t *testing.T) {
	s := newFastSession(t, nil)
	msgs, _ := s.Subscribe()

	s.Close()

	for range msgs {
	}
	if err := s.SetDirection(snake.DirDown); !errors.Is(err, ErrClosed) {
		t.Errorf("SetDirection after close err = %v, want ErrClosed", err)
	}
}

func TestSessionPointerAims(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	s, err := newSession(storage.NewSessionID(), "snake", cfg, 1, nil, nil)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	defer s.Close()

	if err := s.Pointer(10, 2, true); err != nil {
		t.Fatalf("Pointer: %v", err)
	}
	st := s.State()
	if !st.Accelerating {
		t.Error("press should accelerate")
	}
	s.mu.Lock()
	next := s.loop.Snake().NextDirection()
	s.mu.Unlock()
	if next != snake.DirUp {
		t.Errorf("next direction = %v, want up", next)
	}

	if err := s.Pointer(0, 0, false); err != nil {
		t.Fatalf("Pointer release: %v", err)
	}
	if s.State().Accelerating {
		t.Error("release should stop accelerating")
	}
}

func TestManagerCreateAndDelete(t *testing.T) {
	m := NewManager(nil, nil, "", "")
	defer m.Close()

	s, err := m.Create(CreateOptions{Preset: "legacy", Seed: 7})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.GameID != "snake_legacy" {
		t.Errorf("game id = %q", s.GameID)
	}
	if got := len(s.State().Segments); got != 3 {
		t.Errorf("legacy snake length = %d, want 3", got)
	}
	if _, ok := m.Get(s.ID); !ok {
		t.Error("session should be registered")
	}

	if !m.Delete(s.ID) {
		t.Error("Delete should report the session")
	}
	if m.Delete(s.ID) {
		t.Error("second Delete should report nothing")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestManagerRejectsUnknownPreset(t *testing.T) {
	m := NewManager(nil, nil, "", "")
	if _, err := m.Create(CreateOptions{Preset: "turbo"}); err == nil {
		t.Error("unknown preset should fail")
	}
	if _, err := m.Create(CreateOptions{Difficulty: "insane"}); err == nil {
		t.Error("unknown difficulty should fail")
	}
}
