// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longitudinal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidParameter is wrapped by every error that Params.Validate
// returns. Use errors.Is to test for it.
var ErrInvalidParameter = errors.New("invalid parameter")

// MinObs is the minimum number of observations of every individual.
const MinObs = 4

// Params configures a simulated panel.
type Params struct {
	// N is the number of individuals. It must be at least 1.
	N int

	// MaxObs is the largest number of observations of any
	// individual and the largest time index. It must be at least
	// MinObs+1.
	MaxObs int

	// Beta0 and Beta1 are the population intercept and the
	// population slope on log(time).
	Beta0, Beta1 float64

	// Autocorrelation is the AR(1) coefficient of the residuals. It
	// must be in (-1, 1).
	Autocorrelation float64

	// Sigma is the marginal standard deviation of the residuals.
	Sigma float64

	// Tau0 and Tau1 are the standard deviations of the random
	// intercept and the random slope. Tau01 is their correlation.
	Tau0, Tau1, Tau01 float64

	// GroupTrials and GroupProb parameterize the binomial draw
	// that picks each individual's group. There are GroupTrials+1
	// group labels.
	GroupTrials int
	GroupProb   float64

	// Seed determines every random draw.
	Seed uint64
}

// DefaultParams returns the parameters used throughout the
// tutorials.
func DefaultParams() Params {
	return Params{
		N:               200,
		MaxObs:          10,
		Beta0:           1.0,
		Beta1:           6.0,
		Autocorrelation: 0.4,
		Sigma:           1.5,
		Tau0:            2.5,
		Tau1:            2.0,
		Tau01:           0.3,
		GroupTrials:     3,
		GroupProb:       0.5,
		Seed:            42,
	}
}

// Validate reports the first out-of-range field of p.
func (p Params) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
	}
	switch {
	case p.N < 1:
		return bad("n = %d, must be at least 1", p.N)
	case p.MaxObs < MinObs+1:
		return bad("max obs = %d, must be at least %d", p.MaxObs, MinObs+1)
	case !(p.Autocorrelation > -1 && p.Autocorrelation < 1):
		return bad("autocorrelation = %v, must be in (-1, 1)", p.Autocorrelation)
	case !finite(p.Beta0) || !finite(p.Beta1):
		return bad("betas = (%v, %v), must be finite", p.Beta0, p.Beta1)
	case !nonNegative(p.Sigma):
		return bad("sigma = %v, must be finite and non-negative", p.Sigma)
	case !nonNegative(p.Tau0) || !nonNegative(p.Tau1):
		return bad("taus = (%v, %v), must be finite and non-negative", p.Tau0, p.Tau1)
	case !(p.Tau01 >= -1 && p.Tau01 <= 1):
		return bad("tau01 = %v, must be in [-1, 1]", p.Tau01)
	case p.GroupTrials < 1:
		return bad("group trials = %d, must be at least 1", p.GroupTrials)
	case !(p.GroupProb >= 0 && p.GroupProb <= 1):
		return bad("group prob = %v, must be in [0, 1]", p.GroupProb)
	}
	return nil
}

// Groups returns the group labels in order. An individual's label is
// Groups()[k] where k is its binomial draw.
func (p Params) Groups() []string {
	labels := make([]string, p.GroupTrials+1)
	for i := range labels {
		labels[i] = groupLabel(i)
	}
	return labels
}

func groupLabel(k int) string {
	if k < 26 {
		return string(rune('A' + k))
	}
	return "G" + strconv.Itoa(k)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 1)
}
