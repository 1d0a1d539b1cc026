// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"

	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// errNoRendering is returned for chart kinds that a renderer does not
// implement.
var errNoRendering = errors.New("no rendering for this format")

// byGroup splits obs by group, returning the sorted group labels.
func byGroup(obs []longitudinal.Observation) ([]string, map[string][]longitudinal.Observation) {
	m := make(map[string][]longitudinal.Observation)
	for _, o := range obs {
		m[o.Group] = append(m[o.Group], o)
	}
	groups := make([]string, 0, len(m))
	for g := range m {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups, m
}

// byIndividual splits obs into runs of the same individual. obs must
// be grouped by individual.
func byIndividual(obs []longitudinal.Observation) [][]longitudinal.Observation {
	var runs [][]longitudinal.Observation
	for i := 0; i < len(obs); {
		j := i + 1
		for j < len(obs) && obs[j].ID == obs[i].ID {
			j++
		}
		runs = append(runs, obs[i:j])
		i = j
	}
	return runs
}

func observationXYs(obs []longitudinal.Observation) plotter.XYs {
	xys := make(plotter.XYs, len(obs))
	for i, o := range obs {
		xys[i].X, xys[i].Y = float64(o.Time), o.Outcome
	}
	return xys
}

// pngDataset builds chart kind of obs with gonum/plot.
func pngDataset(kind string, obs []longitudinal.Observation) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "time"
	p.Y.Label.Text = "outcome"
	groups, split := byGroup(obs)

	switch kind {
	default:
		return nil, fmt.Errorf("chart %q: %w", kind, errNoRendering)

	case "points":
		p.Title.Text = "Outcome by time"
		for i, g := range groups {
			s, err := plotter.NewScatter(observationXYs(split[g]))
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = plotutil.Color(i)
			s.GlyphStyle.Radius = vg.Points(1.5)
			p.Add(s)
			p.Legend.Add(g, s)
		}

	case "spaghetti":
		p.Title.Text = "Individual trajectories"
		for i, g := range groups {
			for j, run := range byIndividual(split[g]) {
				l, err := plotter.NewLine(observationXYs(run))
				if err != nil {
					return nil, err
				}
				l.LineStyle.Color = plotutil.Color(i)
				l.LineStyle.Width = vg.Points(0.5)
				p.Add(l)
				if j == 0 {
					p.Legend.Add(g, l)
				}
			}
		}

	case "trend":
		p.Title.Text = "Log-time trend by group"
		for i, g := range groups {
			s, err := plotter.NewScatter(observationXYs(split[g]))
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = plotutil.Color(i)
			s.GlyphStyle.Radius = vg.Points(1)
			p.Add(s)

			tr := longitudinal.FitTrend(split[g])
			var ts []float64
			for _, o := range split[g] {
				ts = append(ts, float64(o.Time))
			}
			lo, hi := stats.Bounds(ts)
			xs := vec.Linspace(lo, hi, 50)
			fit := make(plotter.XYs, len(xs))
			for k, x := range xs {
				fit[k].X, fit[k].Y = x, tr.At(x)
			}
			l, err := plotter.NewLine(fit)
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = plotutil.Color(i)
			l.LineStyle.Width = vg.Points(2)
			p.Add(l)
			p.Legend.Add(g, l)
		}

	case "mean":
		p.Title.Text = "Mean outcome with range"
		sums := longitudinal.Summarize(obs)
		band := make(plotter.XYs, 0, 2*len(sums))
		mean := make(plotter.XYs, len(sums))
		for i, s := range sums {
			band = append(band, plotter.XY{X: float64(s.Time), Y: s.Max})
			mean[i] = plotter.XY{X: float64(s.Time), Y: s.Mean}
		}
		for i := len(sums) - 1; i >= 0; i-- {
			band = append(band, plotter.XY{X: float64(sums[i].Time), Y: sums[i].Min})
		}
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return nil, err
		}
		poly.Color = plotutil.Color(0)
		poly.LineStyle.Width = 0
		p.Add(poly)
		l, err := plotter.NewLine(mean)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add("mean", l)
		p.Legend.Add("range", poly)
	}
	return p, nil
}

// writePNG renders p as a width × height point PNG.
func writePNG(w io.Writer, p *plot.Plot, width, height int) error {
	wt, err := p.WriterTo(vg.Points(float64(width)), vg.Points(float64(height)), "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// writeThumbnail decodes the PNG in src and writes it scaled down by
// a factor of 2.
func writeThumbnail(w io.Writer, src []byte) error {
	img, err := png.Decode(bytes.NewReader(src))
	if err != nil {
		return err
	}
	sb := img.Bounds()
	dw, dh := max(1, sb.Dx()/2), max(1, sb.Dy()/2)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, sb, draw.Over, nil)
	return png.Encode(w, dst)
}
