// Package web serves snake sessions over HTTP and WebSocket. Every session
// owns a goroutine that ticks its loop on a timer.
package web

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ErrGameOver is returned by controls sent to a finished game.
var ErrGameOver = errors.New("web: game is over")

// ErrClosed is returned by controls sent to a deleted session.
var ErrClosed = errors.New("web: session closed")

// Message types pushed to subscribers.
const (
	MessageFrame    = "frame"
	MessageGameOver = "game_over"
)

// PointView is a board cell.
type PointView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FoodView is the food item with its display color.
type FoodView struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color int    `json:"color"`
	Hex   string `json:"hex"`
}

// StateView is the JSON form of a session.
type StateView struct {
	ID           string      `json:"id"`
	Game         string      `json:"game"`
	GridSize     int         `json:"grid_size"`
	Segments     []PointView `json:"segments"`
	Direction    string      `json:"direction"`
	Food         *FoodView   `json:"food"`
	Score        int         `json:"score"`
	Eaten        int         `json:"eaten"`
	Tick         uint64      `json:"tick"`
	Accelerating bool        `json:"accelerating"`
	GameOver     bool        `json:"game_over"`
	Won          bool        `json:"won"`
	IntervalMs   int64       `json:"interval_ms"`
}

// Message is what subscribers receive after each tick.
type Message struct {
	Type  string    `json:"type"`
	State StateView `json:"state"`
}

// Session is one running game.
type Session struct {
	ID     string
	GameID string

	store  *storage.Store
	logger *log.Logger

	lifecycle sync.Mutex // Serializes Restart and Close

	mu     sync.Mutex
	cfg    config.SnakeConfig
	rng    *rand.Rand
	loop   *snake.Loop
	aimer  *snake.Aimer
	subs   map[chan Message]struct{}
	saved  bool
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// newSession creates a session and starts ticking it.
func newSession(id, gameID string, cfg config.SnakeConfig, seed int64, store *storage.Store, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		ID:     id,
		GameID: gameID,
		store:  store,
		logger: logger,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		subs:   make(map[chan Message]struct{}),
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	s.start()
	return s, nil
}

// resetLocked replaces the loop with a fresh, started one.
func (s *Session) resetLocked() {
	s.loop = snake.NewLoop(snake.SettingsFromConfig(s.cfg), s.rng)
	s.loop.SetRenderer(snake.RendererFunc(func(snake.Frame) {
		s.publishLocked(MessageFrame)
	}))
	s.aimer = snake.NewAimer(s.cfg.Grid.Size, s.cfg.Input.AimThreshold)
	s.saved = false
	s.loop.Start()
}

// start launches the tick goroutine.
func (s *Session) start() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go s.run(ctx, done)
}

// stop cancels the tick goroutine and waits for it to exit.
func (s *Session) stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// run ticks the loop, re-arming the timer with the loop's current interval
// so speed changes apply from the next tick.
func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.mu.Lock()
	interval := s.loop.Interval()
	s.mu.Unlock()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s.mu.Lock()
		res := s.loop.Tick()
		interval = s.loop.Interval()
		if res.Ended {
			s.finishLocked()
		}
		s.mu.Unlock()

		if res.Ended {
			return
		}
		timer.Reset(interval)
	}
}

// finishLocked announces the end of a game and records it once.
func (s *Session) finishLocked() {
	s.publishLocked(MessageGameOver)
	if s.saved {
		return
	}
	s.saved = true

	s.logger.Info("game over", "session", s.ID, "score", s.loop.Score(), "won", s.loop.Won())
	if s.store == nil {
		return
	}
	_, err := s.store.SaveScore(storage.Result{
		GameID:    s.GameID,
		Score:     s.loop.Score(),
		Length:    s.loop.Snake().Len(),
		Ticks:     s.loop.Ticks(),
		SessionID: s.ID,
	})
	if err != nil {
		s.logger.Warn("cannot save score", "session", s.ID, "err", err)
	}
}

// publishLocked pushes the current state to every subscriber. Slow
// subscribers miss messages rather than stall the game.
func (s *Session) publishLocked(kind string) {
	if len(s.subs) == 0 {
		return
	}
	msg := Message{Type: kind, State: s.viewLocked()}
	for ch := range s.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (s *Session) viewLocked() StateView {
	f := s.loop.Frame()
	v := StateView{
		ID:           s.ID,
		Game:         s.GameID,
		GridSize:     s.cfg.Grid.Size,
		Segments:     make([]PointView, len(f.Segments)),
		Direction:    f.Direction.String(),
		Score:        f.Score,
		Eaten:        s.loop.Eaten(),
		Tick:         f.Tick,
		Accelerating: f.Accelerating,
		GameOver:     s.loop.GameOver(),
		Won:          s.loop.Won(),
		IntervalMs:   s.loop.Interval().Milliseconds(),
	}
	for i, p := range f.Segments {
		v.Segments[i] = PointView{X: p.X, Y: p.Y}
	}
	if f.HasFood {
		v.Food = &FoodView{
			X:     f.Food.Pos.X,
			Y:     f.Food.Pos.Y,
			Color: f.Food.Color,
			Hex:   hexColor(snake.FoodColor(f.Food)),
		}
	}
	return v
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// State returns the current state.
func (s *Session) State() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Frame returns the renderable frame and the board size.
func (s *Session) Frame() (snake.Frame, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop.Frame(), s.cfg.Grid.Size
}

// control runs fn against a live game.
func (s *Session) control(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return ErrClosed
	case s.loop.GameOver():
		return ErrGameOver
	}
	fn()
	return nil
}

// SetDirection buffers a turn. Reversals are ignored by the game.
func (s *Session) SetDirection(d snake.Direction) error {
	return s.control(func() { s.loop.SetDirection(d) })
}

// SetAcceleration toggles the accelerated interval.
func (s *Session) SetAcceleration(on bool) error {
	return s.control(func() { s.loop.SetAcceleration(on) })
}

// Pointer feeds a touch gesture in board cell coordinates: down presses or
// drags, up releases.
func (s *Session) Pointer(x, y float64, down bool) error {
	return s.control(func() {
		switch {
		case !down:
			s.aimer.Release(s.loop)
		case s.aimer.Down():
			s.aimer.Drag(s.loop, x, y)
		default:
			s.aimer.Press(s.loop, x, y)
		}
	})
}

// Restart begins a new game in the same session.
func (s *Session) Restart() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.resetLocked()
	s.mu.Unlock()

	s.start()
	return nil
}

// Subscribe registers for tick messages. The channel is closed when the
// session is closed; call the returned func to unsubscribe earlier.
func (s *Session) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, 16)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// Done is closed when the current game's goroutine exits.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Close stops the session and releases subscribers.
func (s *Session) Close() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}
