// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longitudinal

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Covariance returns the covariance matrix of the random intercept
// and random slope,
//
//	diag(tau) · [[1, tau01], [tau01, 1]] · diag(tau)
func (p Params) Covariance() *mat.SymDense {
	c := p.Tau01 * p.Tau0 * p.Tau1
	return mat.NewSymDense(2, []float64{
		p.Tau0 * p.Tau0, c,
		c, p.Tau1 * p.Tau1,
	})
}

// effectsFactor returns L such that L·Lᵀ is p.Covariance(). It is
// built directly from the 2×2 correlation Cholesky factor, so it is
// well defined even when the covariance is singular (a zero tau or
// |tau01| = 1), where a numerical Cholesky would fail.
func (p Params) effectsFactor() *mat.TriDense {
	return mat.NewTriDense(2, mat.Lower, []float64{
		p.Tau0, 0,
		p.Tau1 * p.Tau01, p.Tau1 * math.Sqrt(1-p.Tau01*p.Tau01),
	})
}

// randomEffects draws one (intercept, slope) pair from a zero-mean
// bivariate normal whose covariance has Cholesky factor l.
func randomEffects(l *mat.TriDense, norm distuv.Normal) (u0, u1 float64) {
	z := mat.NewVecDense(2, []float64{norm.Rand(), norm.Rand()})
	var u mat.VecDense
	u.MulVec(l, z)
	return u.AtVec(0), u.AtVec(1)
}
