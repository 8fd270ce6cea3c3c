// Package config holds the startup constants of a simulation run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultParticles = 5000
	DefaultBoundary  = 500.0
	DefaultSpeed     = 5.0
	DefaultDt        = 0.1
	DefaultPollMs    = 16
	DefaultRadius    = 2
	DefaultSteps     = 1000
)

// Config is one runnable parameter set. The interactive loop uses the
// defaults untouched; files and flags exist for the measurement commands.
type Config struct {
	Particles int     `yaml:"particles"`
	Boundary  float32 `yaml:"boundary"`
	Speed     float32 `yaml:"speed"`
	Dt        float32 `yaml:"dt"`
	Seed      int64   `yaml:"seed"`
	PollMs    int     `yaml:"poll_ms"`
	Radius    int     `yaml:"radius"`
	Steps     int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles: DefaultParticles,
		Boundary:  DefaultBoundary,
		Speed:     DefaultSpeed,
		Dt:        DefaultDt,
		PollMs:    DefaultPollMs,
		Radius:    DefaultRadius,
		Steps:     DefaultSteps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects parameter sets the simulation cannot be built from.
func (c *Config) Validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf("particles must be positive, got %d", c.Particles)
	}
	if c.Boundary <= 0 {
		return fmt.Errorf("boundary must be positive, got %f", c.Boundary)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.PollMs <= 0 {
		return fmt.Errorf("poll_ms must be positive, got %d", c.PollMs)
	}
	return nil
}
