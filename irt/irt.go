// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package irt computes item response theory probability curves and
// surfaces.
//
// An Item follows the four-parameter logistic model: the probability
// that a respondent with ability θ answers correctly is
//
//	P(θ) = C + (D - C) / (1 + exp(-A(θ - B)))
//
// The one-, two- and three-parameter models are the special cases
// C = 0, D = 1 and A = 1 (1PL); C = 0, D = 1 (2PL); and D = 1 (3PL).
package irt

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidItem is wrapped by the errors that Item.Validate returns.
var ErrInvalidItem = errors.New("invalid item")

// An Item is a four-parameter logistic test item.
type Item struct {
	// A is the discrimination: the slope at the inflection point
	// is A(D-C)/4.
	A float64
	// B is the difficulty: the ability at the inflection point.
	B float64
	// C is the lower asymptote (guessing).
	C float64
	// D is the upper asymptote (slipping).
	D float64
}

// Rasch returns a one-parameter item with difficulty b.
func Rasch(b float64) Item {
	return Item{A: 1, B: b, C: 0, D: 1}
}

// Validate checks that A > 0 and 0 <= C < D <= 1.
func (it Item) Validate() error {
	if !(it.A > 0) || math.IsInf(it.A, 1) {
		return fmt.Errorf("%w: discrimination %v must be positive", ErrInvalidItem, it.A)
	}
	if math.IsNaN(it.B) || math.IsInf(it.B, 0) {
		return fmt.Errorf("%w: difficulty %v must be finite", ErrInvalidItem, it.B)
	}
	if !(0 <= it.C && it.C < it.D && it.D <= 1) {
		return fmt.Errorf("%w: asymptotes (%v, %v) must satisfy 0 <= C < D <= 1", ErrInvalidItem, it.C, it.D)
	}
	return nil
}

func (it Item) logistic(theta float64) float64 {
	return 1 / (1 + math.Exp(-it.A*(theta-it.B)))
}

// Prob returns the probability of a correct response at ability
// theta.
func (it Item) Prob(theta float64) float64 {
	return it.C + (it.D-it.C)*it.logistic(theta)
}

// Info returns the Fisher information of the item at ability theta,
//
//	P'(θ)² / (P(θ)(1 - P(θ)))
func (it Item) Info(theta float64) float64 {
	l := it.logistic(theta)
	p := it.C + (it.D-it.C)*l
	q := 1 - p
	if p <= 0 || q <= 0 {
		return 0
	}
	dp := it.A * (it.D - it.C) * l * (1 - l)
	return dp * dp / (p * q)
}

// TestCharacteristic returns the expected number of correct
// responses to items at ability theta.
func TestCharacteristic(items []Item, theta float64) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.Prob(theta)
	}
	return sum
}

// TestInformation returns the total information of items at ability
// theta.
func TestInformation(items []Item, theta float64) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.Info(theta)
	}
	return sum
}
