package config

import (
	"errors"
	"math"
	"os"
	"time"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/physics"
	"github.com/san-kum/cycloid/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRadius        = 1.0
	DefaultVelocity      = 1.0
	DefaultIntervalMs    = 200
	DefaultRepeatDelayMs = 1000
	DefaultTheme         = "classic"
)

type Config struct {
	Radius          float64 `yaml:"radius"`
	Velocity        float64 `yaml:"velocity"`
	FrameIntervalMs int     `yaml:"frame_interval_ms"`
	RepeatDelayMs   int     `yaml:"repeat_delay_ms"`
	Repeat          bool    `yaml:"repeat"`
	CurveSamples    int     `yaml:"curve_samples"`
	MaxFrames       int     `yaml:"max_frames"`
	Theme           string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Radius:          DefaultRadius,
		Velocity:        DefaultVelocity,
		FrameIntervalMs: DefaultIntervalMs,
		RepeatDelayMs:   DefaultRepeatDelayMs,
		Repeat:          false,
		CurveSamples:    physics.DefaultCurveSamples,
		MaxFrames:       sim.DefaultMaxFrames,
		Theme:           DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return Merge(path, DefaultConfig())
}

// Merge reads path over a copy of base. Fields missing from the file keep
// the value from base.
func Merge(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every out-of-range field.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Timing().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.CurveSamples < 2 {
		errs = append(errs, &dynamo.ParameterError{Name: "curve_samples", Value: float64(c.CurveSamples), Wrapped: dynamo.ErrParameterBounds})
	}
	if c.MaxFrames < 2 {
		errs = append(errs, &dynamo.ParameterError{Name: "max_frames", Value: float64(c.MaxFrames), Wrapped: dynamo.ErrParameterBounds})
	}
	return errors.Join(errs...)
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{Radius: c.Radius, Velocity: c.Velocity}
}

func (c *Config) Timing() sim.Timing {
	return sim.Timing{
		FrameInterval: time.Duration(c.FrameIntervalMs) * time.Millisecond,
		RepeatDelay:   time.Duration(c.RepeatDelayMs) * time.Millisecond,
		Repeat:        c.Repeat,
	}
}

// Plan validates the configuration and derives its frame plan.
func (c *Config) Plan() (*sim.Plan, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return sim.NewPlan(c.Params(), c.Timing())
}

// XRange is the horizontal extent of the plot: [-a, ceil(2πa + a)].
func (c *Config) XRange() (float64, float64) {
	return -c.Radius, math.Ceil(2*math.Pi*c.Radius + c.Radius)
}
