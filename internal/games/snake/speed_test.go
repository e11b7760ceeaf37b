package snake

import (
	"testing"
	"time"
)

func TestSpeedRampDefaults(t *testing.T) {
	r := NewSpeedRamp(DefaultSpeedSettings())
	if r.Base() != 200*time.Millisecond {
		t.Errorf("base = %v, want 200ms", r.Base())
	}
	if r.Accelerated() != 134*time.Millisecond {
		t.Errorf("accelerated = %v, want 134ms", r.Accelerated())
	}
	if r.Interval(false) != r.Base() || r.Interval(true) != r.Accelerated() {
		t.Error("Interval does not select base/accelerated")
	}
}

func TestSpeedRampEat(t *testing.T) {
	r := NewSpeedRamp(DefaultSpeedSettings())
	r.Eat()
	if r.Base() != 195*time.Millisecond {
		t.Errorf("base after one food = %v, want 195ms", r.Base())
	}
	if r.Accelerated() != 130*time.Millisecond {
		t.Errorf("accelerated after one food = %v, want 130ms", r.Accelerated())
	}
}

func TestSpeedRampFloor(t *testing.T) {
	r := NewSpeedRamp(DefaultSpeedSettings())
	for i := 0; i < 30; i++ {
		r.Eat()
	}
	if r.Base() != 50*time.Millisecond {
		t.Fatalf("base after 30 food = %v, want 50ms", r.Base())
	}
	if r.Accelerated() != 34*time.Millisecond {
		t.Errorf("accelerated at floor = %v, want 34ms", r.Accelerated())
	}

	r.Eat()
	if r.Base() != 50*time.Millisecond {
		t.Errorf("base dropped below floor: %v", r.Base())
	}
}

func TestSpeedRampNeverOvershootsFloor(t *testing.T) {
	r := NewSpeedRamp(SpeedSettings{
		Base:       60 * time.Millisecond,
		Decrement:  25 * time.Millisecond,
		Floor:      50 * time.Millisecond,
		AccelRatio: 1.5,
	})
	r.Eat()
	if r.Base() != 50*time.Millisecond {
		t.Errorf("base = %v, want clamped 50ms", r.Base())
	}
}

func TestSpeedRampReset(t *testing.T) {
	r := NewSpeedRamp(DefaultSpeedSettings())
	r.Eat()
	r.Eat()
	r.Reset()
	if r.Base() != 200*time.Millisecond || r.Accelerated() != 134*time.Millisecond {
		t.Errorf("after reset base=%v accel=%v", r.Base(), r.Accelerated())
	}
}

func TestSpeedRampClampsSettings(t *testing.T) {
	r := NewSpeedRamp(SpeedSettings{
		Base:       100 * time.Millisecond,
		Floor:      150 * time.Millisecond,
		AccelRatio: 0.5,
	})
	if r.Accelerated() != 100*time.Millisecond {
		t.Errorf("ratio below 1 should clamp to 1, accelerated = %v", r.Accelerated())
	}
	if r.Settings().Floor != 100*time.Millisecond {
		t.Errorf("floor above base should clamp, got %v", r.Settings().Floor)
	}
}
