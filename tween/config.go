package tween

import (
	"fmt"

	"github.com/matt-g-everett/ledtween/easing"
)

// Config describes a tween. Zero fields take their value from Defaults.
type Config struct {
	// Easing names a curve in the registry.
	Easing string `yaml:"easing"`
	// EasingFunc, when set, is used instead of Easing.
	EasingFunc easing.Func `yaml:"-"`
	Duration   Duration    `yaml:"duration"`

	// OnFrame receives the eased value on every tick.
	OnFrame func(value float64) `yaml:"-"`
	OnEnd   func()              `yaml:"-"`
	// OnBeforeEnd runs after the final frame. Returning false keeps the
	// tween on its final frame; it is asked again on the next tick.
	OnBeforeEnd func() bool `yaml:"-"`
	OnStart     func()      `yaml:"-"`
	OnPause     func()      `yaml:"-"`
	OnResume    func()      `yaml:"-"`
	OnReverse   func()      `yaml:"-"`
	OnStop      func()      `yaml:"-"`
}

// Defaults is the base every configuration is merged over.
var Defaults = Config{
	Easing:   "linear",
	Duration: Normal,
	OnFrame:  func(float64) {},
}

// merge returns c with every set field of over applied on top.
func (c Config) merge(over Config) Config {
	if over.Easing != "" {
		c.Easing = over.Easing
	}
	if over.EasingFunc != nil {
		c.EasingFunc = over.EasingFunc
	}
	if over.Duration.IsSet() {
		c.Duration = over.Duration
	}
	if over.OnFrame != nil {
		c.OnFrame = over.OnFrame
	}
	if over.OnEnd != nil {
		c.OnEnd = over.OnEnd
	}
	if over.OnBeforeEnd != nil {
		c.OnBeforeEnd = over.OnBeforeEnd
	}
	if over.OnStart != nil {
		c.OnStart = over.OnStart
	}
	if over.OnPause != nil {
		c.OnPause = over.OnPause
	}
	if over.OnResume != nil {
		c.OnResume = over.OnResume
	}
	if over.OnReverse != nil {
		c.OnReverse = over.OnReverse
	}
	if over.OnStop != nil {
		c.OnStop = over.OnStop
	}
	return c
}

// resolveEasing picks the curve for c from r.
func resolveEasing(r *easing.Registry, c Config) (*easing.Curve, error) {
	if c.EasingFunc != nil {
		return easing.Custom(c.EasingFunc), nil
	}
	curve, err := r.Resolve(c.Easing)
	if err != nil {
		return nil, fmt.Errorf("tween: %w", err)
	}
	return curve, nil
}
