// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"fmt"
	"time"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Snake      BodyConfig       `yaml:"snake"`
	Speed      SpeedConfig      `yaml:"speed"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board.
type GridConfig struct {
	Size int `yaml:"size"` // Cells per side
}

// BodyConfig defines the snake at spawn.
type BodyConfig struct {
	InitialLength int `yaml:"initial_length"`
}

// SpeedConfig defines tick timing in milliseconds.
type SpeedConfig struct {
	BaseMs      int     `yaml:"base_ms"`      // Interval at game start
	DecrementMs int     `yaml:"decrement_ms"` // Removed per food eaten
	FloorMs     int     `yaml:"floor_ms"`     // Ramp stops here
	AccelRatio  float64 `yaml:"accel_ratio"`  // Accelerated interval = ceil(base / ratio)
}

// ScoringConfig defines points.
type ScoringConfig struct {
	PerFood int `yaml:"per_food"`
}

// InputConfig tunes input handling in drivers.
type InputConfig struct {
	HoldWindowMs int     `yaml:"hold_window_ms"` // Key repeats within this keep acceleration on
	AimThreshold float64 `yaml:"aim_threshold"`  // Pointer travel, in cells, before re-aiming
}

// DifficultyConfig selects a difficulty preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Base returns the starting tick interval.
func (s SpeedConfig) Base() time.Duration { return time.Duration(s.BaseMs) * time.Millisecond }

// Decrement returns the per-food speed-up.
func (s SpeedConfig) Decrement() time.Duration {
	return time.Duration(s.DecrementMs) * time.Millisecond
}

// Floor returns the fastest ramped interval.
func (s SpeedConfig) Floor() time.Duration { return time.Duration(s.FloorMs) * time.Millisecond }

// HoldWindow returns the acceleration hold window.
func (i InputConfig) HoldWindow() time.Duration {
	return time.Duration(i.HoldWindowMs) * time.Millisecond
}

// Validate reports the first invalid field.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.Size < 2:
		return fmt.Errorf("config: grid.size must be at least 2, got %d", c.Grid.Size)
	case c.Snake.InitialLength < 1:
		return fmt.Errorf("config: snake.initial_length must be positive, got %d", c.Snake.InitialLength)
	case c.Snake.InitialLength-1 > c.Grid.Size/2:
		return fmt.Errorf("config: snake.initial_length %d does not fit grid.size %d",
			c.Snake.InitialLength, c.Grid.Size)
	case c.Speed.BaseMs <= 0:
		return fmt.Errorf("config: speed.base_ms must be positive, got %d", c.Speed.BaseMs)
	case c.Speed.FloorMs <= 0:
		return fmt.Errorf("config: speed.floor_ms must be positive, got %d", c.Speed.FloorMs)
	case c.Speed.DecrementMs < 0:
		return fmt.Errorf("config: speed.decrement_ms must not be negative, got %d", c.Speed.DecrementMs)
	case c.Speed.AccelRatio < 1:
		return fmt.Errorf("config: speed.accel_ratio must be at least 1, got %g", c.Speed.AccelRatio)
	case c.Scoring.PerFood < 0:
		return fmt.Errorf("config: scoring.per_food must not be negative, got %d", c.Scoring.PerFood)
	case c.Input.HoldWindowMs < 0:
		return fmt.Errorf("config: input.hold_window_ms must not be negative, got %d", c.Input.HoldWindowMs)
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParseDifficulty(string(c.Difficulty.Preset)); err != nil {
			return err
		}
	}
	return nil
}
