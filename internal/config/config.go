// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads ggtutorial settings from a YAML file and the
// environment.
//
// Settings are layered: Default, then the YAML file, then GGT_*
// environment variables. Command-line flags are applied on top by the
// command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable that config reads.
const EnvPrefix = "GGT_"

// Config is the complete ggtutorial configuration.
type Config struct {
	Dataset Dataset `yaml:"dataset"`
	Plot    Plot    `yaml:"plot"`
}

// Dataset mirrors longitudinal.Params.
type Dataset struct {
	N               int     `yaml:"n" env:"N"`
	MaxObs          int     `yaml:"max_obs" env:"MAX_OBS"`
	Beta0           float64 `yaml:"beta0" env:"BETA0"`
	Beta1           float64 `yaml:"beta1" env:"BETA1"`
	Autocorrelation float64 `yaml:"autocorrelation" env:"AUTOCORRELATION"`
	Sigma           float64 `yaml:"sigma" env:"SIGMA"`
	Tau0            float64 `yaml:"tau0" env:"TAU0"`
	Tau1            float64 `yaml:"tau1" env:"TAU1"`
	Tau01           float64 `yaml:"tau01" env:"TAU01"`
	GroupTrials     int     `yaml:"group_trials" env:"GROUP_TRIALS"`
	GroupProb       float64 `yaml:"group_prob" env:"GROUP_PROB"`
	Seed            uint64  `yaml:"seed" env:"SEED"`

	// Workers is the number of goroutines used to simulate
	// individuals. 1 simulates sequentially; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" env:"WORKERS"`
}

// Plot controls chart output.
type Plot struct {
	// Width and Height are in SVG pixels. PNG output uses the same
	// numbers as points.
	Width  int `yaml:"width" env:"PLOT_WIDTH"`
	Height int `yaml:"height" env:"PLOT_HEIGHT"`

	// OutDir is where the plot command writes files when it
	// renders more than one chart.
	OutDir string `yaml:"out_dir" env:"PLOT_OUT_DIR"`

	// Kinds and Formats select which charts to render.
	Kinds   []string `yaml:"kinds" env:"PLOT_KINDS" envSeparator:","`
	Formats []string `yaml:"formats" env:"PLOT_FORMATS" envSeparator:","`

	// Thumbnail also writes a half-size copy of PNG charts.
	Thumbnail bool `yaml:"thumbnail" env:"PLOT_THUMBNAIL"`
}

// Default returns the tutorial's default configuration.
func Default() *Config {
	p := longitudinal.DefaultParams()
	return &Config{
		Dataset: Dataset{
			N:               p.N,
			MaxObs:          p.MaxObs,
			Beta0:           p.Beta0,
			Beta1:           p.Beta1,
			Autocorrelation: p.Autocorrelation,
			Sigma:           p.Sigma,
			Tau0:            p.Tau0,
			Tau1:            p.Tau1,
			Tau01:           p.Tau01,
			GroupTrials:     p.GroupTrials,
			GroupProb:       p.GroupProb,
			Seed:            p.Seed,
			Workers:         1,
		},
		Plot: Plot{
			Width:   500,
			Height:  350,
			OutDir:  "plots",
			Kinds:   []string{"points", "spaghetti", "facet", "trend", "loess", "mean"},
			Formats: []string{"svg"},
		},
	}
}

// Load returns the configuration from path layered over Default and
// under the environment. If path is "", only the environment is
// applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv overlays GGT_* environment variables onto cfg. Variables
// that are not set leave cfg unchanged.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the dataset parameters and plot settings.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Dataset.Workers < 0 {
		return fmt.Errorf("workers = %d, must not be negative", c.Dataset.Workers)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("plot size %dx%d must be positive", c.Plot.Width, c.Plot.Height)
	}
	var errs []error
	for _, f := range c.Plot.Formats {
		switch f {
		case "svg", "png", "html":
		default:
			errs = append(errs, fmt.Errorf("unknown plot format %q", f))
		}
	}
	return errors.Join(errs...)
}

// Params returns the dataset settings as generator parameters.
func (c *Config) Params() longitudinal.Params {
	d := c.Dataset
	return longitudinal.Params{
		N:               d.N,
		MaxObs:          d.MaxObs,
		Beta0:           d.Beta0,
		Beta1:           d.Beta1,
		Autocorrelation: d.Autocorrelation,
		Sigma:           d.Sigma,
		Tau0:            d.Tau0,
		Tau1:            d.Tau1,
		Tau01:           d.Tau01,
		GroupTrials:     d.GroupTrials,
		GroupProb:       d.GroupProb,
		Seed:            d.Seed,
	}
}
