package snake

import "math"

// DirectionFromOffset picks a direction from a pointer offset relative to
// the board centre. Y grows downward. The plane is split into four 90°
// sectors centred on the axes, each closed on its counter-clockwise edge:
// [-45°,45°) right, [45°,135°) down, [-135°,-45°) up, the rest left.
// A zero offset yields DirRight.
func DirectionFromOffset(dx, dy float64) Direction {
	switch {
	case dx == 0 && dy == 0:
		return DirRight
	case dx > 0 && dy >= -dx && dy < dx:
		return DirRight
	case dy > 0 && dx <= dy && dx > -dy:
		return DirDown
	case dy < 0 && dx >= dy && dx < -dy:
		return DirUp
	default:
		return DirLeft
	}
}

// Aimer steers a Loop from pointer gestures. A press aims and accelerates,
// a drag re-aims once the pointer travels farther than Threshold from where
// it last aimed, and a release stops accelerating.
type Aimer struct {
	CenterX, CenterY float64
	Threshold        float64

	lastX, lastY float64
	down         bool
}

// NewAimer returns an aimer centred on a gridSize board, measured in cells.
func NewAimer(gridSize int, threshold float64) *Aimer {
	c := float64(gridSize) / 2
	return &Aimer{CenterX: c, CenterY: c, Threshold: threshold}
}

// Press starts a gesture at (x, y).
func (a *Aimer) Press(l *Loop, x, y float64) {
	a.down = true
	a.lastX, a.lastY = x, y
	l.SetDirection(DirectionFromOffset(x-a.CenterX, y-a.CenterY))
	l.SetAcceleration(true)
}

// Drag moves an active gesture. It reports whether the direction was
// re-aimed.
func (a *Aimer) Drag(l *Loop, x, y float64) bool {
	if !a.down {
		return false
	}
	if math.Hypot(x-a.lastX, y-a.lastY) <= a.Threshold {
		return false
	}
	a.lastX, a.lastY = x, y
	l.SetDirection(DirectionFromOffset(x-a.CenterX, y-a.CenterY))
	return true
}

// Release ends the gesture.
func (a *Aimer) Release(l *Loop) {
	a.down = false
	l.SetAcceleration(false)
}

// Down reports whether a gesture is in progress.
func (a *Aimer) Down() bool {
	return a.down
}
