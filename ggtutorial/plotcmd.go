// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/aclements/ggtutorial/internal/config"
	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPlotCmd() *cobra.Command {
	var (
		output  string
		formats []string
	)
	cmd := &cobra.Command{
		Use:   "plot [kind...]",
		Short: "Render tutorial charts of the dataset",
		Long: fmt.Sprintf(`plot renders charts of the synthetic dataset. Kinds are
%v; with no arguments, the kinds from the configuration
are rendered. Formats are svg (go-gg), png (gonum/plot) and html
(go-echarts); kinds a format cannot draw are skipped.

Charts are written to the plot output directory as KIND.FORMAT. With
-o, a single chart in a single format is written to that file, or to
stdout for "-".`, chartKinds),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := datasetConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Plot.Formats = formats
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			kinds := cfg.Plot.Kinds
			if len(args) > 0 {
				kinds = args
			}
			for _, k := range kinds {
				if !slices.Contains(chartKinds, k) {
					return fmt.Errorf("unknown chart %q", k)
				}
			}

			d, err := generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if output != "" {
				if len(kinds) != 1 || len(cfg.Plot.Formats) != 1 {
					return fmt.Errorf("-o needs exactly one chart kind and format")
				}
				return writeChart(cmd, output, kinds[0], cfg.Plot.Formats[0], d.Observations, cfg.Plot)
			}
			return plotAll(cmd.Context(), cfg, kinds, d.Observations)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "write the chart to `file` (\"-\" for stdout)")
	f.StringSliceVar(&formats, "format", nil, "output `formats` (svg, png, html)")
	addDatasetFlags(cmd)
	return cmd
}

// plotAll renders every kind in every configured format into the
// configured output directory.
func plotAll(ctx context.Context, cfg *config.Config, kinds []string, obs []longitudinal.Observation) error {
	pc := cfg.Plot
	if err := os.MkdirAll(pc.OutDir, 0777); err != nil {
		return err
	}
	for _, kind := range kinds {
		for _, format := range pc.Formats {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderChart(kind, format, obs, pc)
			if errors.Is(err, errNoRendering) {
				logger.Info("skipping chart", zap.String("kind", kind), zap.String("format", format))
				continue
			} else if err != nil {
				return fmt.Errorf("%s.%s: %w", kind, format, err)
			}
			path := filepath.Join(pc.OutDir, kind+"."+format)
			if err := os.WriteFile(path, data, 0666); err != nil {
				return err
			}
			logger.Info("wrote chart", zap.String("path", path), zap.Int("bytes", len(data)))

			if format == "png" && pc.Thumbnail {
				var buf bytes.Buffer
				if err := writeThumbnail(&buf, data); err != nil {
					return fmt.Errorf("%s thumbnail: %w", kind, err)
				}
				path := filepath.Join(pc.OutDir, kind+"-thumb.png")
				if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
					return err
				}
				logger.Info("wrote chart", zap.String("path", path), zap.Int("bytes", buf.Len()))
			}
		}
	}
	return nil
}

// writeChart renders one chart to path.
func writeChart(cmd *cobra.Command, path, kind, format string, obs []longitudinal.Observation, pc config.Plot) error {
	data, err := renderChart(kind, format, obs, pc)
	if err != nil {
		return err
	}
	w, err := createOutput(cmd, path, format == "png")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// renderChart renders chart kind of obs in format.
func renderChart(kind, format string, obs []longitudinal.Observation, pc config.Plot) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "svg":
		p, err := plotDataset(kind, obs)
		if err != nil {
			return nil, err
		}
		if err := p.WriteSVG(&buf, pc.Width, pc.Height); err != nil {
			return nil, err
		}
	case "png":
		p, err := pngDataset(kind, obs)
		if err != nil {
			return nil, err
		}
		if err := writePNG(&buf, p, pc.Width, pc.Height); err != nil {
			return nil, err
		}
	case "html":
		r, err := htmlDataset(kind, obs, pc.Width, pc.Height)
		if err != nil {
			return nil, err
		}
		if err := r.Render(&buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown plot format %q", format)
	}
	return buf.Bytes(), nil
}
