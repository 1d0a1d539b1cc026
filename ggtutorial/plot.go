// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// chartKinds lists the dataset charts in tutorial order.
var chartKinds = []string{"points", "spaghetti", "facet", "trend", "loess", "mean"}

// plotDataset builds the chart kind of obs.
func plotDataset(kind string, obs []longitudinal.Observation) (*gg.Plot, error) {
	plot := gg.NewPlot(observationsToTable(obs))

	switch kind {
	default:
		return nil, fmt.Errorf("unknown chart %q", kind)

	case "points":
		plot.Add(gg.LayerPoints{X: "time", Y: "outcome", Color: "group"})
		plot.Add(gg.Title("Outcome by time"))

	case "spaghetti":
		plotTrajectories(plot)
		plot.Add(gg.Title("Individual trajectories"))

	case "facet":
		plot.Add(gg.FacetWrap{Col: "group"})
		plotTrajectories(plot)
		plot.Add(gg.Title("Individual trajectories by group"))

	case "trend":
		plot.Add(gg.LayerPoints{X: "time", Y: "outcome", Color: "group"})
		plot.Save()
		plot.GroupBy("group")
		plot.Stat(logTrend{X: "time", Y: "outcome"})
		plot.Add(gg.LayerLines{X: "time", Y: "outcome", Color: "group"})
		plot.Restore()
		plot.Add(gg.Title("Log-time trend by group"))

	case "loess":
		plot.Add(gg.LayerPoints{X: "time", Y: "outcome", Color: "group"})
		plot.Save()
		plot.Stat(ggstat.LOESS{X: "time", Y: "outcome", Domain: ggstat.DomainData{Widen: 1}})
		plot.Add(gg.LayerLines{X: "time", Y: "outcome"})
		plot.Restore()
		plot.Add(gg.Title("LOESS smooth"))

	case "mean":
		// Average at each time, keeping the extremes for a band.
		plot.Stat(ggstat.Agg("time")(ggstat.AggMean("outcome"), ggstat.AggMin("outcome"), ggstat.AggMax("outcome")))
		plot.Add(gg.LayerArea{
			X:     "time",
			Upper: "max outcome",
			Lower: "min outcome",
			Fill:  plot.Const(color.Gray{192}),
		})
		plot.Add(gg.LayerLines{X: "time", Y: "mean outcome"})
		plot.Add(gg.Title("Mean outcome with range"))
	}
	return plot, nil
}

// plotTrajectories draws one line per individual, colored by group,
// with a hover tooltip naming the individual.
func plotTrajectories(plot *gg.Plot) {
	plot.Save()
	plot.GroupBy("id")
	plot.Add(gg.LayerLines{X: "time", Y: "outcome", Color: "group"})
	plot.Restore()

	plot.Stat(tooltip{"outcome"})
	plot.Add(gg.LayerTooltips{X: "time", Y: "outcome", Label: "tooltip"})
}

// logTrend fits Y = a + b·log(X) to each group and samples the fit at
// N points spanning the group's X values. Constant columns are kept.
type logTrend struct {
	X, Y string
	N    int
}

func (s logTrend) F(g table.Grouping) table.Grouping {
	n := s.N
	if n <= 0 {
		n = 100
	}
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		var xs, ys []float64
		slice.Convert(&xs, t.MustColumn(s.X))
		slice.Convert(&ys, t.MustColumn(s.Y))
		nt := new(table.Builder)
		if len(xs) < 2 {
			nt.Add(s.X, []float64{}).Add(s.Y, []float64{})
		} else {
			r := fit.PolynomialRegression(vec.Map(math.Log, xs), ys, nil, 1)
			lo, hi := stats.Bounds(xs)
			eval := vec.Linspace(lo, hi, n)
			nt.Add(s.X, eval).Add(s.Y, vec.Map(func(x float64) float64 {
				return r.F(math.Log(x))
			}, eval))
		}
		for _, col := range t.Columns() {
			if nt.Has(col) {
				continue
			}
			if cv, ok := t.Const(col); ok {
				nt.AddConst(col, cv)
			}
		}
		return nt.Done()
	})
}

type tooltip struct {
	Y string
}

func (t tooltip) F(g table.Grouping) table.Grouping {
	return table.MapCols(g,
		func(id []int, y []float64, tooltip []string) {
			for i := range id {
				tooltip[i] = fmt.Sprintf("#%d %.2f", id[i], y[i])
			}
		}, "id", t.Y)("tooltip")
}
