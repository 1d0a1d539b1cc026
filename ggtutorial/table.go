// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/aclements/ggtutorial/irt"
	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-gg/table"
)

// observationsToTable returns obs as a table with columns id, group,
// time and outcome. Time is a float64 column so that it shares an X
// scale with fitted curves.
func observationsToTable(obs []longitudinal.Observation) *table.Table {
	ids := make([]int, len(obs))
	groups := make([]string, len(obs))
	times := make([]float64, len(obs))
	outcomes := make([]float64, len(obs))
	for i, o := range obs {
		ids[i] = o.ID
		groups[i] = o.Group
		times[i] = float64(o.Time)
		outcomes[i] = o.Outcome
	}

	return new(table.Builder).
		Add("id", ids).
		Add("group", groups).
		Add("time", times).
		Add("outcome", outcomes).
		Done()
}

// individualsToTable returns the random effects of d next to their
// per-individual least squares estimates.
func individualsToTable(d *longitudinal.Dataset, fits []longitudinal.IndividualFit) *table.Table {
	n := len(d.Individuals)
	ids := make([]int, n)
	groups := make([]string, n)
	nobs := make([]int, n)
	u0, u1 := make([]float64, n), make([]float64, n)
	a, b := make([]float64, n), make([]float64, n)
	for i, ind := range d.Individuals {
		ids[i], groups[i], nobs[i] = ind.ID, ind.Group, ind.NumObs
		u0[i], u1[i] = ind.Intercept, ind.Slope
		a[i], b[i] = fits[i].Intercept, fits[i].Slope
	}
	return new(table.Builder).
		Add("id", ids).
		Add("group", groups).
		Add("observations", nobs).
		Add("u0", u0).
		Add("u1", u1).
		Add("fitted intercept", a).
		Add("fitted slope", b).
		Done()
}

// summaryToTable returns per-time summaries as a table.
func summaryToTable(sums []longitudinal.TimeSummary) *table.Table {
	n := len(sums)
	times := make([]int, n)
	counts := make([]int, n)
	means, sds := make([]float64, n), make([]float64, n)
	mins, maxs := make([]float64, n), make([]float64, n)
	for i, s := range sums {
		times[i], counts[i] = s.Time, s.N
		means[i], sds[i] = s.Mean, s.StdDev
		mins[i], maxs[i] = s.Min, s.Max
	}
	return new(table.Builder).
		Add("time", times).
		Add("count", counts).
		Add("mean", means).
		Add("sd", sds).
		Add("min", mins).
		Add("max", maxs).
		Done()
}

// curvesToTable returns IRT curve samples with one row per item,
// ability and measure.
func curvesToTable(pts []irt.CurvePoint) table.Grouping {
	items := make([]string, len(pts))
	thetas := make([]float64, len(pts))
	probs, infos := make([]float64, len(pts)), make([]float64, len(pts))
	for i, pt := range pts {
		items[i] = "item " + strconv.Itoa(pt.Item+1)
		thetas[i], probs[i], infos[i] = pt.Theta, pt.Prob, pt.Info
	}
	t := new(table.Builder).
		Add("item", items).
		Add("ability", thetas).
		Add("probability", probs).
		Add("information", infos).
		Done()
	return table.Unpivot(t, "measure", "value", "probability", "information")
}

// surfaceToTable returns a probability surface as a table.
func surfaceToTable(cells []irt.Cell) *table.Table {
	thetas := make([]float64, len(cells))
	bs := make([]float64, len(cells))
	probs := make([]float64, len(cells))
	for i, c := range cells {
		thetas[i], bs[i], probs[i] = c.Theta, c.Difficulty, c.Prob
	}
	return new(table.Builder).
		Add("ability", thetas).
		Add("difficulty", bs).
		Add("probability", probs).
		Done()
}

// writeCSV writes obs as CSV with a header row.
func writeCSV(w io.Writer, obs []longitudinal.Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "group", "time", "outcome"}); err != nil {
		return err
	}
	for _, o := range obs {
		rec := []string{
			strconv.Itoa(o.ID),
			o.Group,
			strconv.Itoa(o.Time),
			strconv.FormatFloat(o.Outcome, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
