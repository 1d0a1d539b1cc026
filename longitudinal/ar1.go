// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longitudinal

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ar1 fills e with a stationary AR(1) process
//
//	e[t] = phi·e[t-1] + z[t],  z[t] ~ N(0, 1)
//
// and then rescales it by sigma·sqrt(1-phi²). The process is started
// from its stationary distribution N(0, 1/(1-phi²)), so after
// rescaling every element has marginal standard deviation sigma no
// matter what phi is.
func ar1(e []float64, phi, sigma float64, norm distuv.Normal) {
	if len(e) == 0 {
		return
	}
	k := math.Sqrt(1 - phi*phi)
	e[0] = norm.Rand() / k
	for t := 1; t < len(e); t++ {
		e[t] = phi*e[t-1] + norm.Rand()
	}
	scale := sigma * k
	for t := range e {
		e[t] *= scale
	}
}
