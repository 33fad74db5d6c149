package tween

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Preset names a stock duration.
type Preset int

const (
	// NoPreset marks an explicit duration.
	NoPreset Preset = iota
	PresetSlow
	PresetNormal
	PresetFast
)

var presets = map[Preset]time.Duration{
	PresetSlow:   900 * time.Millisecond,
	PresetNormal: 500 * time.Millisecond,
	PresetFast:   300 * time.Millisecond,
}

var presetNames = map[string]Preset{
	"slow":   PresetSlow,
	"normal": PresetNormal,
	"fast":   PresetFast,
}

func (p Preset) String() string {
	for name, preset := range presetNames {
		if preset == p {
			return name
		}
	}
	return "none"
}

// Duration is either a preset or an explicit length. The zero value is unset
// and resolves to the configured default.
type Duration struct {
	preset Preset
	d      time.Duration
	set    bool
}

var (
	Slow   = Duration{preset: PresetSlow, set: true}
	Normal = Duration{preset: PresetNormal, set: true}
	Fast   = Duration{preset: PresetFast, set: true}
)

// Of returns an explicit duration.
func Of(d time.Duration) Duration {
	return Duration{d: d, set: true}
}

// Millis returns an explicit duration of ms milliseconds.
func Millis(ms int) Duration {
	return Of(time.Duration(ms) * time.Millisecond)
}

// IsSet reports whether d holds a value.
func (d Duration) IsSet() bool { return d.set }

// Preset returns the preset d names, or NoPreset.
func (d Duration) Preset() Preset { return d.preset }

// Resolve returns the length d stands for.
func (d Duration) Resolve() time.Duration {
	if d.preset != NoPreset {
		return presets[d.preset]
	}
	return d.d
}

func (d Duration) String() string {
	if d.preset != NoPreset {
		return d.preset.String()
	}
	return d.d.String()
}

// ParseDuration reads a preset name ("slow", "normal", "fast"), a bare
// number of milliseconds, or a time.ParseDuration string.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if p, ok := presetNames[strings.ToLower(s)]; ok {
		return Duration{preset: p, set: true}, nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return Of(time.Duration(ms * float64(time.Millisecond))), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, fmt.Errorf("tween: invalid duration %q", s)
	}
	return Of(d), nil
}

// UnmarshalYAML accepts the forms ParseDuration does, and plain numbers.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
