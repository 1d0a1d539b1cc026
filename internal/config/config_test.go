// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ggtutorial.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultMatchesParams(t *testing.T) {
	require.Equal(t, longitudinal.DefaultParams(), Default().Params())
	require.NoError(t, Default().Validate())
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dataset:
  n: 50
  max_obs: 12
  autocorrelation: -0.2
  seed: 7
plot:
  width: 800
  formats: [svg, png]
  thumbnail: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.Params()
	require.Equal(t, 50, p.N)
	require.Equal(t, 12, p.MaxObs)
	require.Equal(t, -0.2, p.Autocorrelation)
	require.Equal(t, uint64(7), p.Seed)
	// Unset keys keep their defaults.
	require.Equal(t, 1.5, p.Sigma)
	require.Equal(t, 350, cfg.Plot.Height)

	require.Equal(t, 800, cfg.Plot.Width)
	require.Equal(t, []string{"svg", "png"}, cfg.Plot.Formats)
	require.True(t, cfg.Plot.Thumbnail)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dataset:\n  n: 50\n  seed: 7\n")
	t.Setenv("GGT_N", "75")
	t.Setenv("GGT_PLOT_KINDS", "points,trend")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 75, cfg.Dataset.N)
	require.Equal(t, uint64(7), cfg.Dataset.Seed)
	require.Equal(t, []string{"points", "trend"}, cfg.Plot.Kinds)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "dataset: [1, 2"))
	require.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "dataset:\n  autocorrelation: 1\n"))
	require.True(t, errors.Is(err, longitudinal.ErrInvalidParameter), "got %v", err)

	_, err = Load(writeConfig(t, "plot:\n  formats: [gif]\n"))
	require.ErrorContains(t, err, `unknown plot format "gif"`)

	t.Setenv("GGT_SEED", "not-a-number")
	_, err = Load("")
	require.ErrorContains(t, err, "parse env:")
}
