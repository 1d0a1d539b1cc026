// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longitudinal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// linearLeastSquares computes the least squares fit for the function
//
//	f(x) = Β₀terms₀(x) + Β₁terms₁(x) + ...
//
// to the data (xs[i], ys[i]). It returns the parameters Β₀, Β₁, ...
// that minimize the sum of the squares of the residuals of f:
//
//	∑ (ys[i] - f(xs[i]))²
//
// The function f is specified by one Go function for each linear
// term. Each term function is passed a slice of x values in xs and
// must fill termOut with the value of the term for each value in xs.
func linearLeastSquares(xs, ys []float64, terms ...func(xs, termOut []float64)) ([]float64, error) {
	// The optimal parameters are found by solving for Β̂ in the
	// normal equations:
	//
	//    (𝐗ᵀ𝐗)Β̂ = 𝐗ᵀ𝐲

	if len(xs) != len(ys) {
		panic("len(xs) != len(ys)")
	}

	xTVals := make([]float64, len(terms)*len(xs))
	for i, term := range terms {
		term(xs, xTVals[i*len(xs):i*len(xs)+len(xs)])
	}
	XT := mat.NewDense(len(terms), len(xs), xTVals)
	X := XT.T()

	y := mat.NewVecDense(len(ys), ys)

	var lhs mat.Dense
	lhs.Mul(XT, X)

	var rhs mat.VecDense
	rhs.MulVec(XT, y)

	var B mat.VecDense
	if err := B.SolveVec(&lhs, &rhs); err != nil {
		return nil, err
	}
	return B.RawVector().Data, nil
}

// An IndividualFit is the least squares line of one individual's
// outcomes on log(time).
type IndividualFit struct {
	ID               int
	Group            string
	Intercept, Slope float64
}

// FitIndividuals fits outcome = a + b·log(time) separately to each
// individual in obs, which must be grouped by individual as
// Generate returns them. The fitted a and b estimate β₀+u₀ and β₁+u₁.
func FitIndividuals(obs []Observation) ([]IndividualFit, error) {
	var fits []IndividualFit
	for start := 0; start < len(obs); {
		end := start + 1
		for end < len(obs) && obs[end].ID == obs[start].ID {
			end++
		}
		run := obs[start:end]
		xs := make([]float64, len(run))
		ys := make([]float64, len(run))
		for i, o := range run {
			xs[i] = math.Log(float64(o.Time))
			ys[i] = o.Outcome
		}
		params, err := linearLeastSquares(xs, ys, constTerm, identTerm)
		if err != nil {
			return nil, fmt.Errorf("fitting individual %d: %w", run[0].ID, err)
		}
		fits = append(fits, IndividualFit{run[0].ID, run[0].Group, params[0], params[1]})
		start = end
	}
	return fits, nil
}

func constTerm(xs, termOut []float64) {
	for i := range termOut {
		termOut[i] = 1
	}
}

func identTerm(xs, termOut []float64) {
	copy(termOut, xs)
}
