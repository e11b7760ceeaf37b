package snake

import "time"

// Pacer converts fixed-rate frames into variable-interval game ticks.
// Elapsed time accumulates and is drained one interval per tick; the
// backlog is capped so a stalled host does not replay a burst of moves.
type Pacer struct {
	acc     time.Duration
	backlog int
}

// NewPacer returns a pacer allowing at most backlog pending ticks.
func NewPacer(backlog int) *Pacer {
	if backlog < 1 {
		backlog = 1
	}
	return &Pacer{backlog: backlog}
}

// Advance adds elapsed time and returns how many ticks of the given
// interval are due.
func (p *Pacer) Advance(elapsed, interval time.Duration) int {
	if interval <= 0 {
		return 0
	}
	p.acc += elapsed
	if limit := interval * time.Duration(p.backlog); p.acc > limit {
		p.acc = limit
	}
	n := int(p.acc / interval)
	p.acc -= time.Duration(n) * interval
	return n
}

// Reset drops any accumulated time.
func (p *Pacer) Reset() {
	p.acc = 0
}
