// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package irt

import "gonum.org/v1/gonum/floats"

// Grid returns n evenly spaced values from lo to hi inclusive.
func Grid(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// A Cell is one point of a probability surface.
type Cell struct {
	Theta, Difficulty, Prob float64
}

// Surface evaluates the probability of a correct response over the
// plane of abilities × difficulties, taking the other parameters from
// item. The result is in row-major order by difficulty.
func Surface(item Item, thetas, difficulties []float64) []Cell {
	cells := make([]Cell, 0, len(thetas)*len(difficulties))
	for _, b := range difficulties {
		it := item
		it.B = b
		for _, th := range thetas {
			cells = append(cells, Cell{th, b, it.Prob(th)})
		}
	}
	return cells
}

// A CurvePoint is one sample of an item's characteristic and
// information curves.
type CurvePoint struct {
	Item       int
	Theta      float64
	Prob, Info float64
}

// Curves samples each item's characteristic and information curves
// at thetas.
func Curves(items []Item, thetas []float64) []CurvePoint {
	pts := make([]CurvePoint, 0, len(items)*len(thetas))
	for i, it := range items {
		for _, th := range thetas {
			pts = append(pts, CurvePoint{i, th, it.Prob(th), it.Info(th)})
		}
	}
	return pts
}
