package snake

import (
	"reflect"
	"testing"
)

func TestNewStateTrailsBehindHead(t *testing.T) {
	s := NewState(Point{X: 10, Y: 10}, DirRight, 3)
	want := []Point{{10, 10}, {9, 10}, {8, 10}}
	if got := s.Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}

	s = NewState(Point{X: 5, Y: 5}, DirUp, 2)
	want = []Point{{5, 5}, {5, 6}}
	if got := s.Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}

	if s := NewState(Point{}, DirRight, 0); s.Len() != 1 {
		t.Errorf("zero length should clamp to 1, got %d", s.Len())
	}
}

func TestMoveWithoutGrowth(t *testing.T) {
	s := NewState(Point{X: 10, Y: 10}, DirRight, 3)
	s.Move(false)

	want := []Point{{11, 10}, {10, 10}, {9, 10}}
	if got := s.Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
}

func TestMoveWithGrowth(t *testing.T) {
	// [(10,10)] heading right onto food at (11,10).
	s := NewState(Point{X: 10, Y: 10}, DirRight, 1)
	s.Move(true)

	want := []Point{{11, 10}, {10, 10}}
	if got := s.Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
}

func TestMovePanicsWithoutSegments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s := &State{direction: DirRight, next: DirRight}
	s.Move(false)
}

func TestSetDirectionIgnoresReversal(t *testing.T) {
	s := NewState(Point{X: 10, Y: 10}, DirRight, 1)
	s.SetDirection(DirLeft)
	if s.NextDirection() != DirRight {
		t.Errorf("reversal accepted: next = %v", s.NextDirection())
	}
	s.Move(false)
	if s.Head() != (Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want (11,10)", s.Head())
	}
}

func TestSetDirectionLastWriteWins(t *testing.T) {
	s := NewState(Point{X: 10, Y: 10}, DirRight, 3)
	s.SetDirection(DirUp)
	s.SetDirection(DirDown)
	s.Move(false)
	if s.Direction() != DirDown || s.Head() != (Point{X: 10, Y: 11}) {
		t.Errorf("direction = %v head = %v, want down (10,11)", s.Direction(), s.Head())
	}

	// Reversal is judged against the committed direction, not the buffer.
	s.SetDirection(DirLeft)
	s.SetDirection(DirUp)
	if s.NextDirection() != DirLeft {
		t.Errorf("next = %v, want left", s.NextDirection())
	}
}

func TestSetDirectionIgnoresInvalid(t *testing.T) {
	s := NewState(Point{}, DirDown, 1)
	s.SetDirection(Direction(42))
	if s.NextDirection() != DirDown {
		t.Errorf("next = %v, want down", s.NextDirection())
	}
}

func TestCheckCollision(t *testing.T) {
	tests := []struct {
		name string
		segs []Point
		want bool
	}{
		{"inside", []Point{{0, 0}}, false},
		{"corner", []Point{{19, 19}}, false},
		{"left wall", []Point{{-1, 5}}, true},
		{"right wall", []Point{{20, 5}}, true},
		{"top wall", []Point{{5, -1}}, true},
		{"bottom wall", []Point{{5, 20}}, true},
		{"self", []Point{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {5, 5}}, true},
		{"near self", []Point{{5, 5}, {5, 6}, {6, 6}, {6, 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{segments: tt.segs}
			if got := s.CheckCollision(20); got != tt.want {
				t.Errorf("CheckCollision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentsReturnsCopy(t *testing.T) {
	s := NewState(Point{X: 3, Y: 3}, DirRight, 2)
	segs := s.Segments()
	segs[0] = Point{X: 99, Y: 99}
	if s.Head() != (Point{X: 3, Y: 3}) {
		t.Error("Segments leaked internal storage")
	}
	if !s.Occupies(Point{X: 2, Y: 3}) || s.Occupies(Point{X: 4, Y: 3}) {
		t.Error("Occupies mismatch")
	}
}

func TestAcceleration(t *testing.T) {
	s := NewState(Point{}, DirRight, 1)
	if s.Accelerating() {
		t.Error("new snake should not accelerate")
	}
	s.SetAcceleration(true)
	if !s.Accelerating() {
		t.Error("SetAcceleration(true) not applied")
	}
}
