// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package longitudinal simulates panel data for plotting examples.
//
// Each simulated individual is observed between MinObs and
// Params.MaxObs times. Its outcome grows with log(time) along a
// population trend that is shifted by a per-individual random
// intercept and random slope, plus autocorrelated residual error:
//
//	y[t] = (β₀ + u₀) + (β₁ + u₁)·log(t) + e[t]
//
// where (u₀, u₁) is bivariate normal and e is a stationary AR(1)
// process with marginal standard deviation σ.
//
// Every individual draws from its own random stream derived from
// Params.Seed and its id, so the output depends only on Params and
// not on the order or concurrency with which individuals are
// simulated.
package longitudinal

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// An Observation is one row of a simulated panel.
type Observation struct {
	// ID identifies the individual, in [1, N].
	ID int
	// Group is the individual's group label.
	Group string
	// Time is the observation index. Within an individual, times
	// start at 1 and strictly increase.
	Time int
	// Outcome is the simulated response.
	Outcome float64
}

// An Individual records the draws that are shared by all of one
// individual's observations.
type Individual struct {
	ID    int
	Group string

	// Intercept and Slope are the random effects u₀ and u₁.
	Intercept, Slope float64

	// NumObs is the number of observations of this individual.
	NumObs int
}

// A Dataset is a simulated panel together with the parameters and
// random effects that produced it.
type Dataset struct {
	Params      Params
	Individuals []Individual

	// Observations are grouped by individual in id order and
	// sorted by time within each individual.
	Observations []Observation
}

// Generate simulates a panel and returns its observations.
func Generate(p Params) ([]Observation, error) {
	d, err := GenerateDataset(p)
	if err != nil {
		return nil, err
	}
	return d.Observations, nil
}

// GenerateDataset is like Generate, but also returns the
// per-individual random effects.
func GenerateDataset(p Params) (*Dataset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	l := p.effectsFactor()
	inds := make([]Individual, p.N)
	rows := make([][]Observation, p.N)
	for i := range inds {
		inds[i], rows[i] = simulate(p, l, i+1)
	}
	return assemble(p, inds, rows), nil
}

// GenerateParallel is like GenerateDataset, but simulates individuals
// on up to workers goroutines. If workers <= 0, it uses GOMAXPROCS.
// The result is identical to GenerateDataset's for the same p.
//
// If ctx is cancelled before all individuals are simulated,
// GenerateParallel returns ctx.Err().
func GenerateParallel(ctx context.Context, p Params, workers int) (*Dataset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	l := p.effectsFactor()
	inds := make([]Individual, p.N)
	rows := make([][]Observation, p.N)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			inds[i], rows[i] = simulate(p, l, i+1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return assemble(p, inds, rows), nil
}

func assemble(p Params, inds []Individual, rows [][]Observation) *Dataset {
	total := 0
	for _, r := range rows {
		total += len(r)
	}
	obs := make([]Observation, 0, total)
	for _, r := range rows {
		obs = append(obs, r...)
	}
	return &Dataset{Params: p, Individuals: inds, Observations: obs}
}

// stream returns the random source of individual id.
func stream(seed uint64, id int) rand.Source {
	return rand.NewPCG(seed, uint64(id))
}

// simulate draws everything for individual id. The order of draws
// from the individual's stream is fixed: observation count, group,
// time indices, random effects, residuals.
func simulate(p Params, l *mat.TriDense, id int) (Individual, []Observation) {
	src := stream(p.Seed, id)
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	n := int(math.Round(distuv.Uniform{Min: MinObs, Max: float64(p.MaxObs), Src: src}.Rand()))
	group := groupLabel(drawGroup(p, src))
	times := timeIndices(n, p.MaxObs, src)
	u0, u1 := randomEffects(l, norm)

	e := make([]float64, n)
	ar1(e, p.Autocorrelation, p.Sigma, norm)

	ind := Individual{ID: id, Group: group, Intercept: u0, Slope: u1, NumObs: n}
	obs := make([]Observation, n)
	for j, t := range times {
		obs[j] = Observation{
			ID:      id,
			Group:   group,
			Time:    t,
			Outcome: (p.Beta0 + u0) + (p.Beta1+u1)*math.Log(float64(t)) + e[j],
		}
	}
	return ind, obs
}

// drawGroup returns a Binomial(GroupTrials, GroupProb) count.
func drawGroup(p Params, src rand.Source) int {
	switch p.GroupProb {
	case 0:
		return 0
	case 1:
		return p.GroupTrials
	}
	b := distuv.Binomial{N: float64(p.GroupTrials), P: p.GroupProb, Src: src}
	return int(b.Rand())
}

// timeIndices returns 1 followed by n-1 distinct indices from
// [2, maxObs], in ascending order.
func timeIndices(n, maxObs int, src rand.Source) []int {
	times := make([]int, n)
	times[0] = 1
	rest := times[1:]
	sampleuv.WithoutReplacement(rest, maxObs-1, src)
	for i := range rest {
		rest[i] += 2
	}
	sort.Ints(rest)
	return times
}

// Residuals returns the residual e of each observation of d, in the
// same order as d.Observations.
func (d *Dataset) Residuals() []float64 {
	p := d.Params
	res := make([]float64, len(d.Observations))
	for i, o := range d.Observations {
		ind := d.Individuals[o.ID-1]
		fixed := (p.Beta0 + ind.Intercept) + (p.Beta1+ind.Slope)*math.Log(float64(o.Time))
		res[i] = o.Outcome - fixed
	}
	return res
}

// Covariance returns the covariance matrix of the random effects
// (u0, u1) that d was drawn from.
func (d *Dataset) Covariance() *mat.SymDense {
	return d.Params.Covariance()
}
