package snake

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Preset     string
	Score      int
	Eaten      int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        Direction
	FoodX      int
	FoodY      int
	IntervalMs int64
	Status     Status
	Won        bool
}

// Snapshot returns the current session snapshot.
func (l *Loop) Snapshot() Snapshot {
	head := l.snake.Head()
	food, ok := l.Food()
	fx, fy := -1, -1
	if ok {
		fx, fy = food.Pos.X, food.Pos.Y
	}
	return Snapshot{
		Tick:       l.ticks,
		Score:      l.score,
		Eaten:      l.eaten,
		SnakeLen:   l.snake.Len(),
		HeadX:      head.X,
		HeadY:      head.Y,
		Dir:        l.snake.Direction(),
		FoodX:      fx,
		FoodY:      fy,
		IntervalMs: l.Interval().Milliseconds(),
		Status:     l.status,
		Won:        l.won,
	}
}

// Snapshot returns the snapshot of the running game, tagged with its preset.
func (g *Game) Snapshot() Snapshot {
	s := g.loop.Snapshot()
	s.Preset = g.preset
	return s
}
