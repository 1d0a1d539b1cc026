// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aclements/ggtutorial/internal/config"
	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"
)

var errTerminal = errors.New("refusing to write binary output to a terminal")

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// createOutput opens path for writing. "" and "-" mean the command's
// standard output. If binary is set and standard output is a
// terminal, createOutput fails with errTerminal.
func createOutput(cmd *cobra.Command, path string, binary bool) (io.WriteCloser, error) {
	if path != "" && path != "-" {
		return os.Create(path)
	}
	w := cmd.OutOrStdout()
	if f, ok := w.(*os.File); ok && binary && terminal.IsTerminal(int(f.Fd())) {
		return nil, errTerminal
	}
	return nopCloser{w}, nil
}

// addDatasetFlags registers flags that override the most commonly
// varied dataset settings.
func addDatasetFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Int("n", 0, "number of individuals")
	fs.Int("max-obs", 0, "maximum observations per individual")
	fs.Uint64("seed", 0, "random seed")
	fs.Float64("autocorrelation", 0, "AR(1) coefficient of the residuals")
	fs.Float64("sigma", 0, "marginal residual standard deviation")
	fs.Int("workers", 0, "simulation goroutines (0 means GOMAXPROCS)")
}

// applyDatasetFlags copies the dataset flags that were set on the
// command line into cfg and revalidates it.
func applyDatasetFlags(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	d := &cfg.Dataset
	var err error
	if fs.Changed("n") {
		d.N, err = fs.GetInt("n")
	}
	if err == nil && fs.Changed("max-obs") {
		d.MaxObs, err = fs.GetInt("max-obs")
	}
	if err == nil && fs.Changed("seed") {
		d.Seed, err = fs.GetUint64("seed")
	}
	if err == nil && fs.Changed("autocorrelation") {
		d.Autocorrelation, err = fs.GetFloat64("autocorrelation")
	}
	if err == nil && fs.Changed("sigma") {
		d.Sigma, err = fs.GetFloat64("sigma")
	}
	if err == nil && fs.Changed("workers") {
		d.Workers, err = fs.GetInt("workers")
	}
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// datasetConfig loads the configuration and applies dataset flags.
func datasetConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyDatasetFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// generate simulates the dataset described by cfg.
func generate(ctx context.Context, cfg *config.Config) (*longitudinal.Dataset, error) {
	p := cfg.Params()
	start := time.Now()
	var d *longitudinal.Dataset
	var err error
	if cfg.Dataset.Workers == 1 {
		d, err = longitudinal.GenerateDataset(p)
	} else {
		d, err = longitudinal.GenerateParallel(ctx, p, cfg.Dataset.Workers)
	}
	if err != nil {
		return nil, fmt.Errorf("generate dataset: %w", err)
	}
	logger.Debug("generated dataset",
		zap.Int("n", p.N),
		zap.Uint64("seed", p.Seed),
		zap.Int("workers", cfg.Dataset.Workers),
		zap.Int("rows", len(d.Observations)),
		zap.Duration("elapsed", time.Since(start)))
	return d, nil
}
