package snake

import (
	"testing"
	"time"
)

func TestPacerAccumulates(t *testing.T) {
	p := NewPacer(2)
	frame := 16 * time.Millisecond
	interval := 200 * time.Millisecond

	total := 0
	for i := 0; i < 12; i++ {
		total += p.Advance(frame, interval)
	}
	if total != 0 {
		t.Fatalf("ticked after 192ms: %d", total)
	}
	if n := p.Advance(frame, interval); n != 1 {
		t.Errorf("13th frame ticks = %d, want 1", n)
	}
}

func TestPacerCapsBacklog(t *testing.T) {
	p := NewPacer(2)
	if n := p.Advance(time.Second, 100*time.Millisecond); n != 2 {
		t.Errorf("ticks = %d, want capped 2", n)
	}
	if n := p.Advance(0, 100*time.Millisecond); n != 0 {
		t.Errorf("leftover ticks = %d, want 0", n)
	}
}

func TestPacerReset(t *testing.T) {
	p := NewPacer(1)
	p.Advance(90*time.Millisecond, 100*time.Millisecond)
	p.Reset()
	if n := p.Advance(20*time.Millisecond, 100*time.Millisecond); n != 0 {
		t.Errorf("ticks after reset = %d, want 0", n)
	}
	if n := p.Advance(time.Second, 0); n != 0 {
		t.Errorf("zero interval ticks = %d", n)
	}
}
