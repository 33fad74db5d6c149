package stream

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledtween/clock"
	"github.com/matt-g-everett/ledtween/loop"
	"github.com/matt-g-everett/ledtween/scheduler"
	"github.com/matt-g-everett/ledtween/tween"
	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the ledtween service.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientId"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	HTTP struct {
		Listen string `yaml:"listen"`
	} `yaml:"http"`

	Strip struct {
		Pixels int `yaml:"pixels"`
	} `yaml:"strip"`

	Scheduler struct {
		Source  string `yaml:"source"`
		Clock   string `yaml:"clock"`
		FPS     int    `yaml:"fps"`
		Refresh int    `yaml:"refresh"`
		ShowFPS bool   `yaml:"showFps"`
	} `yaml:"scheduler"`

	Tween struct {
		Easing   string         `yaml:"easing"`
		Duration tween.Duration `yaml:"duration"`
		Delay    tween.Duration `yaml:"delay"`
		Loop     bool           `yaml:"loop"`
	} `yaml:"tween"`

	Animation struct {
		Kind       string        `yaml:"kind"`
		From       string        `yaml:"from"`
		To         string        `yaml:"to"`
		Gradient   GradientTable `yaml:"gradient"`
		Trail      int           `yaml:"trail"`
		Particles  int           `yaml:"particles"`
		Seed       int64         `yaml:"seed"`
		Transition int           `yaml:"transition"`
	} `yaml:"animation"`
}

// DefaultConfig returns the configuration used for keys a file leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledtween"
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Control = "home/xmastree/control"
	c.Strip.Pixels = 500
	c.Scheduler.Source = scheduler.AnimationFrame.String()
	c.Scheduler.Clock = "system"
	c.Scheduler.FPS = scheduler.DefaultFixedFPS
	c.Scheduler.Refresh = loop.DefaultRefreshRate
	c.Tween.Easing = "linear"
	c.Tween.Duration = tween.Normal
	c.Animation.Kind = "fade"
	c.Animation.From = "#000005"
	c.Animation.To = "#808080"
	c.Animation.Particles = 60
	c.Animation.Seed = 1
	c.Animation.Transition = 60
	return c
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	c := DefaultConfig()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the values a file may get wrong.
func (c Config) Validate() error {
	if c.Strip.Pixels <= 0 || c.Strip.Pixels > 0xffff {
		return fmt.Errorf("strip.pixels %d out of range", c.Strip.Pixels)
	}
	if _, err := c.TickSource(); err != nil {
		return err
	}
	if _, err := c.Clock(); err != nil {
		return fmt.Errorf("scheduler.clock: %w", err)
	}
	if !validAnimationKind(c.Animation.Kind) {
		return fmt.Errorf("unknown animation kind %q", c.Animation.Kind)
	}
	return nil
}

func validAnimationKind(kind string) bool {
	switch kind {
	case "fade", "gradient", "twinkle":
		return true
	}
	return false
}

// TickSource returns the scheduler source named by scheduler.source.
func (c Config) TickSource() (scheduler.TickSource, error) {
	switch c.Scheduler.Source {
	case "", scheduler.AnimationFrame.String():
		return scheduler.AnimationFrame, nil
	case scheduler.FixedInterval.String():
		return scheduler.FixedInterval, nil
	}
	return 0, fmt.Errorf("unknown scheduler source %q", c.Scheduler.Source)
}

// Clock returns the time source named by scheduler.clock.
func (c Config) Clock() (clock.Clock, error) {
	return clock.Named(c.Scheduler.Clock)
}

// Apply configures s from the scheduler section.
func (c Config) Apply(s *scheduler.Scheduler) {
	src, _ := c.TickSource()
	if src == scheduler.FixedInterval {
		s.UseFixedInterval()
	} else {
		s.UseAnimationFrame()
	}
	s.SetFixedFPS(c.Scheduler.FPS)
}

// BuildAnimation creates the animation described by the animation section.
func (c Config) BuildAnimation() (Animation, error) {
	a := c.Animation
	switch a.Kind {
	case "gradient":
		gradient := a.Gradient
		if len(gradient) == 0 {
			gradient = RainbowGradient
		}
		return NewGradientTrail(c.Strip.Pixels, gradient, a.Trail), nil
	}

	from, err := colorful.Hex(a.From)
	if err != nil {
		return nil, fmt.Errorf("animation.from: %w", err)
	}
	to, err := colorful.Hex(a.To)
	if err != nil {
		return nil, fmt.Errorf("animation.to: %w", err)
	}

	switch a.Kind {
	case "fade":
		return NewFade(c.Strip.Pixels, from, to), nil
	case "twinkle":
		r := rand.New(rand.NewSource(a.Seed))
		return NewTwinkle(r, c.Strip.Pixels, a.Particles, to, from), nil
	}
	return nil, fmt.Errorf("unknown animation kind %q", a.Kind)
}

// TweenConfig returns the tween section as a tween configuration drawing
// frames with frame.
func (c Config) TweenConfig(frame func(float64)) tween.Config {
	return tween.Config{
		Easing:   c.Tween.Easing,
		Duration: c.Tween.Duration,
		OnFrame:  frame,
	}
}
