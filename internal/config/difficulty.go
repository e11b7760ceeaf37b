package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. An empty name means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the speed settings for a difficulty preset.
// Normal leaves the configuration untouched.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Speed.BaseMs = cfg.Speed.BaseMs * 5 / 4
		cfg.Speed.FloorMs = cfg.Speed.FloorMs * 3 / 2
	case DifficultyHard:
		cfg.Speed.BaseMs = cfg.Speed.BaseMs * 3 / 4
		cfg.Speed.DecrementMs *= 2
	case DifficultyFixed:
		cfg.Speed.DecrementMs = 0
	}

	if cfg.Speed.FloorMs > cfg.Speed.BaseMs {
		cfg.Speed.FloorMs = cfg.Speed.BaseMs
	}
}
