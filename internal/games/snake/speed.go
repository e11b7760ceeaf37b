package snake

import (
	"math"
	"time"
)

// SpeedSettings configures the tick interval ramp.
type SpeedSettings struct {
	Base      time.Duration // Interval at game start
	Decrement time.Duration // Subtracted from the base interval per food
	Floor     time.Duration // Base interval never drops below this
	// AccelRatio divides the base interval while accelerating.
	// The accelerated interval is always ceil(base / AccelRatio), rounded
	// up to the millisecond, and is recomputed whenever the base changes.
	AccelRatio float64
}

// DefaultSpeedSettings mirrors the browser version: 200ms, -5ms per food
// down to 50ms, 1.5x while accelerating.
func DefaultSpeedSettings() SpeedSettings {
	return SpeedSettings{
		Base:       200 * time.Millisecond,
		Decrement:  5 * time.Millisecond,
		Floor:      50 * time.Millisecond,
		AccelRatio: 1.5,
	}
}

// SpeedRamp tracks the current base and accelerated intervals.
type SpeedRamp struct {
	settings    SpeedSettings
	base        time.Duration
	accelerated time.Duration
}

// NewSpeedRamp creates a ramp at its starting interval.
func NewSpeedRamp(s SpeedSettings) *SpeedRamp {
	if s.AccelRatio < 1 {
		s.AccelRatio = 1
	}
	if s.Floor > s.Base {
		s.Floor = s.Base
	}
	r := &SpeedRamp{settings: s}
	r.Reset()
	return r
}

// Reset returns the ramp to its starting interval.
func (r *SpeedRamp) Reset() {
	r.base = r.settings.Base
	r.accelerated = accelerate(r.base, r.settings.AccelRatio)
}

// Eat applies one food worth of speed-up.
func (r *SpeedRamp) Eat() {
	if r.base > r.settings.Floor {
		r.base = max(r.base-r.settings.Decrement, r.settings.Floor)
		r.accelerated = accelerate(r.base, r.settings.AccelRatio)
	}
}

// Base returns the interval used when not accelerating.
func (r *SpeedRamp) Base() time.Duration {
	return r.base
}

// Accelerated returns the interval used while accelerating.
func (r *SpeedRamp) Accelerated() time.Duration {
	return r.accelerated
}

// Interval returns the active interval for the given acceleration state.
func (r *SpeedRamp) Interval(accelerating bool) time.Duration {
	if accelerating {
		return r.accelerated
	}
	return r.base
}

// Settings returns the ramp configuration.
func (r *SpeedRamp) Settings() SpeedSettings {
	return r.settings
}

func accelerate(base time.Duration, ratio float64) time.Duration {
	ms := math.Ceil(float64(base.Milliseconds()) / ratio)
	return time.Duration(ms) * time.Millisecond
}
