package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the viewer configuration, loaded from a YAML file.
// Every field has a sensible default so a missing file is not an error
// unless the user asked for one explicitly.
type Config struct {
	Window   Window `yaml:"window"`
	Model    Model  `yaml:"model"`
	Sim      Sim    `yaml:"sim"`
	LogLevel string `yaml:"log_level"`
}

type Window struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
}

type Model struct {
	// Asset is the path of the model file to load. Empty means
	// "go straight to the procedural model".
	Asset string `yaml:"asset"`
	// SpinDegPerSec is the rotation rate stamped on placed copies.
	SpinDegPerSec float32 `yaml:"spin_deg_per_sec"`
}

// Sim configures the simulated XR driver.
type Sim struct {
	// Supported toggles the whole AR capability, to exercise the
	// preview-only fallback.
	Supported *bool `yaml:"supported"`
	// HitTest is "supported" or "unsupported".
	HitTest string `yaml:"hit_test"`
	// LatencyFrames is how many frames a hit-test source request
	// takes to resolve.
	LatencyFrames int `yaml:"latency_frames"`
	// Surfaces are the horizontal rectangles the driver detects.
	Surfaces []Surface `yaml:"surfaces"`
}

type Surface struct {
	Center [3]float32 `yaml:"center"`
	Width  float32    `yaml:"width"`
	Depth  float32    `yaml:"depth"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "arview",
		},
		Model: Model{
			SpinDegPerSec: 45,
		},
		Sim: Sim{
			HitTest:       "supported",
			LatencyFrames: 2,
			Surfaces: []Surface{
				{Center: [3]float32{0, 0, 0}, Width: 20, Depth: 20},
			},
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config over the defaults. An empty path returns the
// defaults; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Sim.HitTest != "supported" && c.Sim.HitTest != "unsupported" {
		return fmt.Errorf("sim.hit_test must be \"supported\" or \"unsupported\", got %q", c.Sim.HitTest)
	}
	if c.Sim.LatencyFrames < 0 {
		return fmt.Errorf("sim.latency_frames must not be negative")
	}
	for i, s := range c.Sim.Surfaces {
		if s.Width <= 0 || s.Depth <= 0 {
			return fmt.Errorf("surface %d: width and depth must be positive", i)
		}
	}
	return nil
}

// SimSupported resolves the optional toggle, defaulting to true.
func (c *Config) SimSupported() bool {
	if c.Sim.Supported == nil {
		return true
	}
	return *c.Sim.Supported
}
