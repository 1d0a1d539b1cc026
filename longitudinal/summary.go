// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longitudinal

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// A TimeSummary describes the outcomes observed at one time index.
type TimeSummary struct {
	Time     int
	N        int
	Mean     float64
	StdDev   float64 // NaN if N < 2
	Min, Max float64
}

// Summarize returns one TimeSummary per distinct time index in obs,
// in ascending time order.
func Summarize(obs []Observation) []TimeSummary {
	byTime := make(map[int][]float64)
	for _, o := range obs {
		byTime[o.Time] = append(byTime[o.Time], o.Outcome)
	}
	times := make([]int, 0, len(byTime))
	for t := range byTime {
		times = append(times, t)
	}
	sort.Ints(times)

	out := make([]TimeSummary, len(times))
	for i, t := range times {
		s := stats.Sample{Xs: byTime[t]}
		sd := math.NaN()
		if len(s.Xs) > 1 {
			sd = s.StdDev()
		}
		min, max := s.Bounds()
		out[i] = TimeSummary{t, len(s.Xs), s.Mean(), sd, min, max}
	}
	return out
}

// A Trend is the population line outcome = Intercept + Slope·log(time).
type Trend struct {
	Intercept, Slope float64
}

// At evaluates the trend at time t.
func (tr Trend) At(t float64) float64 {
	return tr.Intercept + tr.Slope*math.Log(t)
}

// FitTrend fits a single least squares line of outcome on log(time)
// to all of obs, ignoring individuals. With no random-effect
// variance, it estimates (β₀, β₁).
func FitTrend(obs []Observation) Trend {
	xs := make([]float64, len(obs))
	ys := make([]float64, len(obs))
	for i, o := range obs {
		xs[i] = math.Log(float64(o.Time))
		ys[i] = o.Outcome
	}
	r := fit.PolynomialRegression(xs, ys, nil, 1)
	return Trend{r.Coefficients[0], r.Coefficients[1]}
}

// ResidualSummary describes the residual process of a dataset.
type ResidualSummary struct {
	// N is the number of residuals.
	N int
	// Mean and StdDev are pooled over all residuals.
	Mean, StdDev float64
	// Lag1 is the correlation between consecutive residuals of the
	// same individual, pooled over individuals.
	Lag1 float64
}

// ResidualStats summarizes d.Residuals().
func ResidualStats(d *Dataset) ResidualSummary {
	res := d.Residuals()
	var prev, next []float64
	for i := 1; i < len(res); i++ {
		if d.Observations[i].ID == d.Observations[i-1].ID {
			prev = append(prev, res[i-1])
			next = append(next, res[i])
		}
	}
	lag1 := math.NaN()
	if len(prev) > 1 {
		lag1 = stat.Correlation(prev, next, nil)
	}
	return ResidualSummary{
		N:      len(res),
		Mean:   stats.Mean(res),
		StdDev: stats.StdDev(res),
		Lag1:   lag1,
	}
}
