// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longitudinal

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestAR1(t *testing.T) {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(1, 2)}
	for _, phi := range []float64{0, 0.5, -0.5} {
		const n, sigma = 200000, 2.0
		e := make([]float64, n)
		ar1(e, phi, sigma, norm)
		if sd := stats.StdDev(e); math.Abs(sd-sigma)/sigma > 0.03 {
			t.Errorf("phi=%v: sd %v, want %v", phi, sd, sigma)
		}
	}

	// Zero-length series are fine.
	ar1(nil, 0.3, 1, norm)
}

func TestSummarize(t *testing.T) {
	obs := []Observation{
		{1, "A", 1, 1}, {1, "A", 2, 4},
		{2, "B", 1, 3}, {2, "B", 3, 10},
		{3, "B", 1, 5},
	}
	got := Summarize(obs)
	if len(got) != 3 {
		t.Fatalf("got %d summaries, want 3", len(got))
	}
	s := got[0]
	if s.Time != 1 || s.N != 3 || s.Mean != 3 || s.StdDev != 2 || s.Min != 1 || s.Max != 5 {
		t.Errorf("time 1: got %+v", s)
	}
	if got[1].Time != 2 || got[1].N != 1 || !math.IsNaN(got[1].StdDev) {
		t.Errorf("time 2: got %+v", got[1])
	}
	if got[2].Time != 3 || got[2].Mean != 10 {
		t.Errorf("time 3: got %+v", got[2])
	}
}

func TestSummarizeCounts(t *testing.T) {
	p := DefaultParams()
	obs, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, s := range Summarize(obs) {
		total += s.N
		if s.Time == 1 && s.N != p.N {
			t.Errorf("time 1 has %d observations, want %d", s.N, p.N)
		}
	}
	if total != len(obs) {
		t.Errorf("summaries cover %d observations, want %d", total, len(obs))
	}
}

func TestFitTrend(t *testing.T) {
	p := DefaultParams()
	p.Sigma, p.Tau0, p.Tau1 = 0, 0, 0
	obs, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	tr := FitTrend(obs)
	if math.Abs(tr.Intercept-p.Beta0) > 1e-9 || math.Abs(tr.Slope-p.Beta1) > 1e-9 {
		t.Errorf("got trend %+v, want (%v, %v)", tr, p.Beta0, p.Beta1)
	}
	if got, want := tr.At(math.E), p.Beta0+p.Beta1; math.Abs(got-want) > 1e-9 {
		t.Errorf("At(e) = %v, want %v", got, want)
	}
}

func TestFitIndividuals(t *testing.T) {
	p := DefaultParams()
	p.Sigma = 0
	d, err := GenerateDataset(p)
	if err != nil {
		t.Fatal(err)
	}
	fits, err := FitIndividuals(d.Observations)
	if err != nil {
		t.Fatal(err)
	}
	if len(fits) != p.N {
		t.Fatalf("got %d fits, want %d", len(fits), p.N)
	}
	for i, f := range fits {
		ind := d.Individuals[i]
		if f.ID != ind.ID || f.Group != ind.Group {
			t.Fatalf("fit %d is for %d/%s, want %d/%s", i, f.ID, f.Group, ind.ID, ind.Group)
		}
		if math.Abs(f.Intercept-(p.Beta0+ind.Intercept)) > 1e-6 {
			t.Errorf("individual %d: intercept %v, want %v", f.ID, f.Intercept, p.Beta0+ind.Intercept)
		}
		if math.Abs(f.Slope-(p.Beta1+ind.Slope)) > 1e-6 {
			t.Errorf("individual %d: slope %v, want %v", f.ID, f.Slope, p.Beta1+ind.Slope)
		}
	}
}
