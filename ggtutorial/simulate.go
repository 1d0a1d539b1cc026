// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/aclements/ggtutorial/internal/config"
	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// A sweepResult is the residual check for one autocorrelation.
type sweepResult struct {
	Autocorrelation float64
	Residuals       longitudinal.ResidualSummary
}

func newSimulateCmd() *cobra.Command {
	var (
		phis []float64
		svg  string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Check residual variance and autocorrelation by simulation",
		Long: `simulate generates the dataset with no random effects for each
autocorrelation in --phi and reports the empirical residual standard
deviation and lag-1 autocorrelation. The standard deviation should
match sigma for every autocorrelation, and the lag-1 autocorrelation
should match the autocorrelation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := datasetConfig(cmd)
			if err != nil {
				return err
			}
			sr := newStatusReporter(cmd.OutOrStdout())
			results, err := sweep(cmd.Context(), cfg, phis, sr)
			sr.Stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			table.Fprint(w, sweepTable(results, cfg.Dataset.Sigma))
			if svg == "" {
				return nil
			}
			out, err := createOutput(cmd, svg, false)
			if err != nil {
				return err
			}
			if err := plotSweep(results).WriteSVG(out, cfg.Plot.Width, cfg.Plot.Height); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	f := cmd.Flags()
	f.Float64SliceVar(&phis, "phi", []float64{-0.8, -0.4, 0, 0.4, 0.8, 0.95}, "autocorrelations to simulate")
	f.StringVar(&svg, "svg", "", "also plot lag-1 autocorrelation against the target to `file`")
	addDatasetFlags(cmd)
	return cmd
}

// sweep simulates cfg's dataset once per autocorrelation with the
// random effects switched off.
func sweep(ctx context.Context, cfg *config.Config, phis []float64, sr *statusReporter) ([]sweepResult, error) {
	var results []sweepResult
	for i, phi := range phis {
		sr.Progress(fmt.Sprintf("autocorrelation %v (%d/%d)", phi, i+1, len(phis)), float64(i)/float64(len(phis)))

		c := *cfg
		c.Dataset.Autocorrelation = phi
		c.Dataset.Tau0, c.Dataset.Tau1 = 0, 0
		if err := c.Validate(); err != nil {
			return nil, err
		}
		d, err := generate(ctx, &c)
		if err != nil {
			return nil, err
		}
		rs := longitudinal.ResidualStats(d)
		logger.Debug("simulated",
			zap.Float64("autocorrelation", phi),
			zap.Float64("sd", rs.StdDev),
			zap.Float64("lag1", rs.Lag1))
		results = append(results, sweepResult{phi, rs})
	}
	sr.Progress("done", 1)
	return results, nil
}

func sweepTable(results []sweepResult, sigma float64) *table.Table {
	n := len(results)
	phis := make([]float64, n)
	counts := make([]int, n)
	sds, lag1s := make([]float64, n), make([]float64, n)
	for i, r := range results {
		phis[i], counts[i] = r.Autocorrelation, r.Residuals.N
		sds[i], lag1s[i] = r.Residuals.StdDev, r.Residuals.Lag1
	}
	return new(table.Builder).
		Add("autocorrelation", phis).
		Add("residuals", counts).
		Add("sd", sds).
		AddConst("sigma", sigma).
		Add("lag-1", lag1s).
		Done()
}

// plotSweep plots the recovered lag-1 autocorrelation against the
// simulated one with a least squares line.
func plotSweep(results []sweepResult) *gg.Plot {
	plot := gg.NewPlot(sweepTable(results, 0))
	plot.Add(gg.LayerPoints{X: "autocorrelation", Y: "lag-1"})
	plot.Save()
	plot.Stat(ggstat.LeastSquares{X: "autocorrelation", Y: "lag-1"})
	plot.Add(gg.LayerLines{X: "autocorrelation", Y: "lag-1"})
	plot.Restore()
	plot.Add(gg.Title("Recovered residual autocorrelation"))
	return plot
}
