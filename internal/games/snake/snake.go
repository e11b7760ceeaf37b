// Package snake implements the classic Snake game.
//
// The simulation core is split in two: State owns the body and the
// direction buffer, Loop owns food, score and speed and advances the game
// one discrete step per Tick. Neither schedules itself; a driver (the
// terminal platform, the web server, a test) calls Loop.Tick whenever
// Loop.Interval has elapsed.
package snake

// Point is a grid cell. Valid cells lie in [0, gridSize) on both axes.
type Point struct {
	X, Y int
}

// Add returns p moved by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// In reports whether p lies on a size x size grid.
func (p Point) In(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// State is the snake itself: its segments, the committed direction, the
// direction buffered for the next move and the acceleration flag.
//
// Input handlers only ever touch the buffer and the flag; the segment list
// changes exclusively through Move.
type State struct {
	segments     []Point // Head at index 0
	direction    Direction
	next         Direction // Buffered direction, committed by Move
	accelerating bool
}

// NewState creates a snake whose head is at head and whose remaining
// length-1 segments trail behind it, opposite to dir.
func NewState(head Point, dir Direction, length int) *State {
	if length < 1 {
		length = 1
	}
	dx, dy := dir.Opposite().Delta()
	segments := make([]Point, length)
	for i := range segments {
		segments[i] = head.Add(dx*i, dy*i)
	}
	return &State{
		segments:  segments,
		direction: dir,
		next:      dir,
	}
}

// SetDirection buffers d for the next move. Reversing onto the body and
// unknown values are ignored.
func (s *State) SetDirection(d Direction) {
	if !d.Valid() || d == s.direction.Opposite() {
		return
	}
	s.next = d
}

// SetAcceleration sets the acceleration flag read by the loop.
func (s *State) SetAcceleration(on bool) {
	s.accelerating = on
}

// Move commits the buffered direction and advances the head one cell.
// The tail is dropped unless grow is set. Must be called exactly once per
// tick.
func (s *State) Move(grow bool) {
	if len(s.segments) == 0 {
		panic("snake: Move on a snake with no segments")
	}

	s.direction = s.next
	head := s.segments[0].Add(s.direction.Delta())

	if grow {
		s.segments = append(s.segments, Point{})
	}
	copy(s.segments[1:], s.segments[:len(s.segments)-1])
	s.segments[0] = head
}

// CheckCollision reports whether the head left the grid or overlaps any
// other segment.
func (s *State) CheckCollision(gridSize int) bool {
	head := s.Head()
	if !head.In(gridSize) {
		return true
	}
	for _, seg := range s.segments[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Head returns the head position.
func (s *State) Head() Point {
	return s.segments[0]
}

// Len returns the number of segments.
func (s *State) Len() int {
	return len(s.segments)
}

// Segments returns a copy of the body, head first.
func (s *State) Segments() []Point {
	out := make([]Point, len(s.segments))
	copy(out, s.segments)
	return out
}

// Occupies reports whether any segment is on p.
func (s *State) Occupies(p Point) bool {
	for _, seg := range s.segments {
		if seg == p {
			return true
		}
	}
	return false
}

// Direction returns the committed direction.
func (s *State) Direction() Direction {
	return s.direction
}

// NextDirection returns the buffered direction.
func (s *State) NextDirection() Direction {
	return s.next
}

// Accelerating returns the acceleration flag.
func (s *State) Accelerating() bool {
	return s.accelerating
}
