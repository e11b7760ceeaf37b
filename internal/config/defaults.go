package config

import (
	_ "embed"
	"fmt"
	"sort"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the classic configuration: a 20x20 board, a
// one-segment snake and a 200ms tick that loses 5ms per food down to 50ms.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:  GridConfig{Size: 20},
		Snake: BodyConfig{InitialLength: 1},
		Speed: SpeedConfig{
			BaseMs:      200,
			DecrementMs: 5,
			FloorMs:     50,
			AccelRatio:  1.5,
		},
		Scoring: ScoringConfig{PerFood: 10},
		Input: InputConfig{
			HoldWindowMs: 250,
			AimThreshold: 1,
		},
		Difficulty: DifficultyConfig{Preset: DifficultyNormal},
	}
}

// LegacyConfig is the earlier variant: a three-segment snake on a faster
// 150ms start.
func LegacyConfig() SnakeConfig {
	cfg := DefaultSnakeConfig()
	cfg.Snake.InitialLength = 3
	cfg.Speed.BaseMs = 150
	return cfg
}

var presets = map[string]func() SnakeConfig{
	"classic": DefaultSnakeConfig,
	"legacy":  LegacyConfig,
}

// Preset returns a named configuration preset.
func Preset(name string) (SnakeConfig, error) {
	f, ok := presets[name]
	if !ok {
		return SnakeConfig{}, fmt.Errorf("config: unknown preset %q", name)
	}
	return f(), nil
}

// PresetNames lists preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
