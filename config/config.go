// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Level     LevelConfig     `yaml:"level"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Vision    VisionConfig    `yaml:"vision"`
	Noise     NoiseConfig     `yaml:"noise"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// LevelConfig holds level generation parameters.
type LevelConfig struct {
	Size     int     `yaml:"size"`      // grid cells per side
	WallProb float64 `yaml:"wall_prob"` // per-cell wall probability
	Objects  int     `yaml:"objects"`   // toggleable noise objects to place
}

// PhysicsConfig holds stepping parameters. DT is the fixed simulated
// timestep; observation sequences are only reproducible with a fixed DT.
type PhysicsConfig struct {
	DT        float64 `yaml:"dt"`
	MoveSpeed float64 `yaml:"move_speed"` // world units per second
}

// VisionConfig holds field-of-view mesh parameters.
type VisionConfig struct {
	Rays       int     `yaml:"rays"`
	FOVDegrees float64 `yaml:"fov_degrees"`
	Range      float64 `yaml:"range"` // world units
}

// NoiseConfig holds noise source parameters.
type NoiseConfig struct {
	Radius       float64 `yaml:"radius"`        // hearing radius in world units
	ActiveRadius float64 `yaml:"active_radius"` // feature radius exported to observations
	ToggleRange  float64 `yaml:"toggle_range"`  // player interaction range
	PushRadius   float64 `yaml:"push_radius"`   // agent-object contact radius
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEverySteps int `yaml:"log_every_steps"` // step-event log cadence (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32 // Physics.DT as float32
	FOVRadians float32 // Vision.FOVDegrees in radians
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Level.Size <= 0 {
		return fmt.Errorf("level.size must be positive, got %d", c.Level.Size)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Vision.Rays < 3 {
		return fmt.Errorf("vision.rays must be at least 3, got %d", c.Vision.Rays)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.FOVRadians = float32(c.Vision.FOVDegrees * math.Pi / 180)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
