// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/aclements/ggtutorial/irt"
	"github.com/aclements/go-gg/gg"
)

// tutorialItems are the items plotted by the irt command: a Rasch
// item, a discriminating item and a guessable item.
var tutorialItems = []irt.Item{
	irt.Rasch(0),
	{A: 2.5, B: -1, C: 0, D: 1},
	{A: 1.2, B: 1, C: 0.25, D: 0.95},
}

var irtKinds = []string{"curves", "heatmap"}

// plotIRT builds the item response chart kind over abilities in
// [lo, hi].
func plotIRT(kind string, items []irt.Item, lo, hi float64, n int) (*gg.Plot, error) {
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	thetas := irt.Grid(lo, hi, n)

	switch kind {
	case "curves":
		plot := gg.NewPlot(curvesToTable(irt.Curves(items, thetas)))
		plot.Add(gg.FacetY{Col: "measure", SplitYScales: true})
		plot.Add(gg.LayerLines{X: "ability", Y: "value", Color: "item"})
		plot.Add(gg.Title("Item characteristic and information curves"))
		return plot, nil

	case "heatmap":
		if len(items) == 0 {
			return nil, fmt.Errorf("heatmap needs an item")
		}
		// Difficulty spans the same range as ability.
		cells := irt.Surface(items[0], thetas, thetas)
		plot := gg.NewPlot(surfaceToTable(cells))
		plot.Add(gg.LayerTiles{X: "ability", Y: "difficulty", Fill: "probability"})
		plot.Add(gg.Title("Probability of a correct response"))
		return plot, nil
	}
	return nil, fmt.Errorf("unknown chart %q", kind)
}
