// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// htmlRenderer is the part of a go-echarts chart that writeHTML needs.
type htmlRenderer interface {
	Render(w io.Writer) error
}

// htmlDataset builds an interactive chart of kind from obs.
func htmlDataset(kind string, obs []longitudinal.Observation, width, height int) (htmlRenderer, error) {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "ggtutorial " + kind,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "time", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "outcome"}),
	}
	groups, split := byGroup(obs)

	switch kind {
	case "points":
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(append(global, charts.WithTitleOpts(opts.Title{Title: "Outcome by time"}))...)
		for _, g := range groups {
			data := make([]opts.ScatterData, len(split[g]))
			for i, o := range split[g] {
				data[i] = opts.ScatterData{Value: []interface{}{o.Time, o.Outcome}}
			}
			scatter.AddSeries(g, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
		}
		return scatter, nil

	case "trend":
		line := charts.NewLine()
		line.SetGlobalOptions(append(global, charts.WithTitleOpts(opts.Title{Title: "Log-time trend by group"}))...)
		for _, g := range groups {
			tr := longitudinal.FitTrend(split[g])
			ts := make([]float64, len(split[g]))
			for i, o := range split[g] {
				ts[i] = float64(o.Time)
			}
			lo, hi := stats.Bounds(ts)
			var data []opts.LineData
			for _, t := range vec.Linspace(lo, hi, 50) {
				data = append(data, opts.LineData{Value: []interface{}{t, tr.At(t)}})
			}
			line.AddSeries(g, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}))
		}
		return line, nil

	case "mean":
		line := charts.NewLine()
		line.SetGlobalOptions(append(global, charts.WithTitleOpts(opts.Title{Title: "Mean outcome with range"}))...)
		sums := longitudinal.Summarize(obs)
		var mean, lo, hi []opts.LineData
		for _, s := range sums {
			mean = append(mean, opts.LineData{Value: []interface{}{s.Time, s.Mean}})
			lo = append(lo, opts.LineData{Value: []interface{}{s.Time, s.Min}})
			hi = append(hi, opts.LineData{Value: []interface{}{s.Time, s.Max}})
		}
		line.AddSeries("min", lo).AddSeries("mean", mean).AddSeries("max", hi)
		return line, nil
	}
	return nil, fmt.Errorf("chart %q: %w", kind, errNoRendering)
}
