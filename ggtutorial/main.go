// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ggtutorial generates synthetic longitudinal data and plots
// it with the grammar of graphics.
//
// The dataset is a panel of simulated individuals, each observed
// between 4 and max_obs times, whose outcomes follow a log-time trend
// with correlated random intercepts and slopes and AR(1) residuals
// (see package longitudinal). Subcommands print the dataset, render a
// sequence of tutorial charts from it, plot item response theory
// curves, and check the residual variance by simulation.
//
// Settings come from the defaults, then the file named by --config,
// then GGT_* environment variables, then flags.
package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/aclements/ggtutorial/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

// logger is replaced in PersistentPreRunE.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ggtutorial:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		cpuProfile string
		memProfile string
		stopCPU    func()
	)
	root := &cobra.Command{
		Use:   "ggtutorial",
		Short: "Synthetic longitudinal data and grammar-of-graphics tutorials",
		Long: `ggtutorial simulates a panel of repeated measurements with random
intercepts, random slopes and autocorrelated errors, and renders the
tutorial charts from it as SVG, PNG or HTML.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			logger = l.With(zap.String("run", uuid.NewString()))

			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return err
				}
				stopCPU = func() {
					pprof.StopCPUProfile()
					f.Close()
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if stopCPU != nil {
				stopCPU()
			}
			if memProfile != "" {
				runtime.GC()
				f, err := os.Create(memProfile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					return err
				}
			}
			_ = logger.Sync()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "read settings from YAML `file`")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&cpuProfile, "cpuprofile", "", "write CPU profile to `file`")
	pf.StringVar(&memProfile, "memprofile", "", "write heap profile to `file`")

	root.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newPlotCmd(),
		newIRTCmd(),
		newSimulateCmd(),
		newWatchCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ggtutorial version %s\n", version)
		},
	}
}

// loadConfig loads the configuration named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", zap.String("path", path), zap.Any("dataset", cfg.Dataset))
	return cfg, nil
}
