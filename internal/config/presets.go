package config

import "sort"

var Presets = map[string]*Config{
	"unit": {
		Radius: 1, Velocity: 1, FrameIntervalMs: 200, RepeatDelayMs: 1000,
	},
	"large": {
		Radius: 3, Velocity: 2, FrameIntervalMs: 200, RepeatDelayMs: 1000,
	},
	"fast": {
		Radius: 1, Velocity: 4, FrameIntervalMs: 100, RepeatDelayMs: 500,
	},
	"slow": {
		Radius: 1, Velocity: 0.25, FrameIntervalMs: 200, RepeatDelayMs: 1000,
	},
	"smooth": {
		Radius: 2, Velocity: 1, FrameIntervalMs: 40, RepeatDelayMs: 1000,
	},
	"loop": {
		Radius: 1, Velocity: 1, FrameIntervalMs: 200, RepeatDelayMs: 1000, Repeat: true,
	},
}

// GetPreset returns a copy of the named preset filled with defaults for
// fields the preset leaves unset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Radius = p.Radius
	cfg.Velocity = p.Velocity
	cfg.FrameIntervalMs = p.FrameIntervalMs
	cfg.RepeatDelayMs = p.RepeatDelayMs
	cfg.Repeat = p.Repeat
	if p.Theme != "" {
		cfg.Theme = p.Theme
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
