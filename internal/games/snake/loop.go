package snake

import (
	"fmt"
	"time"
)

// Status is the lifecycle stage of a Loop.
type Status int

const (
	StatusIdle    Status = iota // Reset but not started
	StatusRunning               // Ticking
	StatusOver                  // Terminal; ticks are ignored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Settings configures a game session.
type Settings struct {
	GridSize      int // Board is GridSize x GridSize
	InitialLength int // Segments at start, head included
	ScorePerFood  int
	Speed         SpeedSettings
}

// DefaultSettings returns the classic 20x20 setup.
func DefaultSettings() Settings {
	return Settings{
		GridSize:      20,
		InitialLength: 1,
		ScorePerFood:  10,
		Speed:         DefaultSpeedSettings(),
	}
}

// Validate checks that a game can be started with these settings.
func (s Settings) Validate() error {
	if s.GridSize < 2 {
		return fmt.Errorf("snake: grid size %d is too small", s.GridSize)
	}
	if s.InitialLength < 1 || s.InitialLength-1 > s.GridSize/2 {
		return fmt.Errorf("snake: initial length %d does not fit a %dx%d grid",
			s.InitialLength, s.GridSize, s.GridSize)
	}
	if s.ScorePerFood < 0 {
		return fmt.Errorf("snake: negative score per food %d", s.ScorePerFood)
	}
	if s.Speed.Base <= 0 || s.Speed.Floor <= 0 {
		return fmt.Errorf("snake: tick intervals must be positive")
	}
	if s.Speed.Decrement < 0 {
		return fmt.Errorf("snake: negative speed decrement %s", s.Speed.Decrement)
	}
	return nil
}

// Frame is what a Renderer receives after every tick that did not end the
// game.
type Frame struct {
	Segments     []Point // Head first
	Direction    Direction
	Food         Food
	HasFood      bool
	Score        int
	Accelerating bool
	Tick         uint64
}

// Renderer draws frames. It is called synchronously from Tick.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame)

// Render calls fn(f).
func (fn RendererFunc) Render(f Frame) {
	fn(f)
}

// Hooks are optional host callbacks.
type Hooks struct {
	OnScore    func(score int)                // After every food eaten
	OnGameOver func(finalScore int, won bool) // Once, when the loop ends
}

// TickResult summarizes what happened during a tick.
type TickResult struct {
	Ate   bool
	Ended bool
}

// Loop is one game session: snake, food, score and speed.
type Loop struct {
	settings Settings
	rng      Rand
	spawner  *FoodSpawner
	ramp     *SpeedRamp
	renderer Renderer
	hooks    Hooks

	snake   *State
	food    Food
	hasFood bool
	score   int
	eaten   int
	ticks   uint64
	status  Status
	won     bool
}

// NewLoop creates a session in StatusIdle. It panics on invalid settings;
// callers are expected to Validate configuration they did not build.
func NewLoop(settings Settings, rng Rand) *Loop {
	if err := settings.Validate(); err != nil {
		panic(err)
	}
	l := &Loop{
		settings: settings,
		rng:      rng,
		spawner:  NewFoodSpawner(rng, settings.GridSize),
		ramp:     NewSpeedRamp(settings.Speed),
	}
	l.Reset()
	return l
}

// SetRenderer sets the frame sink. A nil renderer disables rendering.
func (l *Loop) SetRenderer(r Renderer) {
	l.renderer = r
}

// SetHooks sets the host callbacks.
func (l *Loop) SetHooks(h Hooks) {
	l.hooks = h
}

// Reset discards the current game and prepares a new one in StatusIdle.
// The snake starts in the middle of the board heading right.
func (l *Loop) Reset() {
	center := Point{X: l.settings.GridSize / 2, Y: l.settings.GridSize / 2}
	l.snake = NewState(center, DirRight, l.settings.InitialLength)
	l.ramp.Reset()
	l.score = 0
	l.eaten = 0
	l.ticks = 0
	l.won = false
	l.status = StatusIdle
	l.food, l.hasFood = l.spawner.Spawn(l.snake.Occupies)
}

// Start begins ticking. Starting a finished game resets it first.
func (l *Loop) Start() {
	if l.status == StatusOver {
		l.Reset()
	}
	l.status = StatusRunning
	l.render()
}

// Tick advances the game by one step. It must not be called before Start;
// after the game has ended it does nothing.
func (l *Loop) Tick() TickResult {
	switch l.status {
	case StatusIdle:
		panic("snake: Tick called before Start")
	case StatusOver:
		return TickResult{Ended: true}
	}

	l.ticks++
	ate := l.hasFood && l.snake.Head() == l.food.Pos

	if ate {
		l.score += l.settings.ScorePerFood
		l.eaten++
		l.ramp.Eat()
		l.respawnFood()
		if l.hooks.OnScore != nil {
			l.hooks.OnScore(l.score)
		}
	}

	l.snake.Move(ate)

	if l.snake.CheckCollision(l.settings.GridSize) {
		l.end(false)
		return TickResult{Ate: ate, Ended: true}
	}

	if l.snake.Len() >= l.settings.GridSize*l.settings.GridSize {
		l.hasFood = false
		l.end(true)
		return TickResult{Ate: ate, Ended: true}
	}

	if !l.hasFood {
		l.food, l.hasFood = l.spawner.Spawn(l.snake.Occupies)
	}

	l.render()
	return TickResult{Ate: ate}
}

// respawnFood places new food away from the body and away from the cell
// the head is about to enter. If that cell is the only free one it is
// used anyway.
func (l *Loop) respawnFood() {
	next := l.snake.Head().Add(l.snake.NextDirection().Delta())
	l.food, l.hasFood = l.spawner.Spawn(func(p Point) bool {
		return p == next || l.snake.Occupies(p)
	})
	if !l.hasFood {
		l.food, l.hasFood = l.spawner.Spawn(l.snake.Occupies)
	}
}

func (l *Loop) end(won bool) {
	l.status = StatusOver
	l.won = won
	if l.hooks.OnGameOver != nil {
		l.hooks.OnGameOver(l.score, won)
	}
}

func (l *Loop) render() {
	if l.renderer != nil {
		l.renderer.Render(l.Frame())
	}
}

// SetDirection buffers a direction change for the next tick.
func (l *Loop) SetDirection(d Direction) {
	l.snake.SetDirection(d)
}

// SetAcceleration toggles the accelerated interval.
func (l *Loop) SetAcceleration(on bool) {
	l.snake.SetAcceleration(on)
}

// Interval is how long the driver should wait before the next Tick.
func (l *Loop) Interval() time.Duration {
	return l.ramp.Interval(l.snake.Accelerating())
}

// Frame returns the current renderable state.
func (l *Loop) Frame() Frame {
	return Frame{
		Segments:     l.snake.Segments(),
		Direction:    l.snake.Direction(),
		Food:         l.food,
		HasFood:      l.hasFood,
		Score:        l.score,
		Accelerating: l.snake.Accelerating(),
		Tick:         l.ticks,
	}
}

// Snake returns the snake state.
func (l *Loop) Snake() *State {
	return l.snake
}

// Food returns the current food and whether there is any.
func (l *Loop) Food() (Food, bool) {
	return l.food, l.hasFood
}

// Status returns the lifecycle stage.
func (l *Loop) Status() Status {
	return l.status
}

// GameOver reports whether the game has ended.
func (l *Loop) GameOver() bool {
	return l.status == StatusOver
}

// Won reports whether the game ended by filling the board.
func (l *Loop) Won() bool {
	return l.won
}

// Score returns the current (or final) score.
func (l *Loop) Score() int {
	return l.score
}

// Eaten returns how much food has been eaten this game.
func (l *Loop) Eaten() int {
	return l.eaten
}

// Ticks returns the number of ticks processed this game.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Speed exposes the speed ramp.
func (l *Loop) Speed() *SpeedRamp {
	return l.ramp
}

// Settings returns the session configuration.
func (l *Loop) Settings() Settings {
	return l.settings
}
