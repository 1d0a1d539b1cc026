// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newIRTCmd() *cobra.Command {
	var (
		output string
		lo, hi float64
		points int
	)
	cmd := &cobra.Command{
		Use:   "irt [curves|heatmap...]",
		Short: "Render item response theory charts",
		Long: `irt plots the characteristic and information curves of three
example items (curves) and the probability of a correct response over
ability and difficulty (heatmap) as SVG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			kinds := args
			if len(kinds) == 0 {
				kinds = irtKinds
			}
			if output != "" && len(kinds) != 1 {
				return fmt.Errorf("-o needs exactly one chart kind")
			}
			if !(lo < hi) || points < 2 {
				return fmt.Errorf("ability range [%v, %v] with %d points is empty", lo, hi, points)
			}
			if output == "" {
				if err := os.MkdirAll(cfg.Plot.OutDir, 0777); err != nil {
					return err
				}
			}

			for _, kind := range kinds {
				p, err := plotIRT(kind, tutorialItems, lo, hi, points)
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = filepath.Join(cfg.Plot.OutDir, "irt-"+kind+".svg")
				}
				w, err := createOutput(cmd, path, false)
				if err != nil {
					return err
				}
				if err := p.WriteSVG(w, cfg.Plot.Width, cfg.Plot.Height); err != nil {
					w.Close()
					return err
				}
				if err := w.Close(); err != nil {
					return err
				}
				logger.Info("wrote chart", zap.String("path", path))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "write the chart to `file` (\"-\" for stdout)")
	f.Float64Var(&lo, "min", -4, "lowest ability")
	f.Float64Var(&hi, "max", 4, "highest ability")
	f.IntVar(&points, "points", 81, "abilities sampled across the range")
	return cmd
}
