// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// constants
const (
	sq2by3 = utl.SQ2 / utl.SQ3 // √(2/3)
	sq3by2 = utl.SQ3 / utl.SQ2 // √(3/2)
)

// Im is the second order identity tensor in Mandel's basis
var Im = [6]float64{1, 1, 1, 0, 0, 0}

// Psd is the symmetric-deviatoric projector in Mandel's basis
var Psd = [6][6]float64{
	{2.0 / 3.0, -1.0 / 3.0, -1.0 / 3.0, 0, 0, 0},
	{-1.0 / 3.0, 2.0 / 3.0, -1.0 / 3.0, 0, 0, 0},
	{-1.0 / 3.0, -1.0 / 3.0, 2.0 / 3.0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 1, 0},
	{0, 0, 0, 0, 0, 1},
}

// calcP returns the mean pressure p = -tr(σ)/3 of a Mandel vector with 4 or 6 components
func calcP(σ []float64) float64 {
	return -(σ[0] + σ[1] + σ[2]) / 3.0
}

// calcQ returns the deviatoric stress q = √(3/2)·|dev(σ)| of a Mandel vector with 4 or 6 components
func calcQ(σ []float64) float64 {
	p := calcP(σ)
	var ss float64
	for i := 0; i < len(σ); i++ {
		s := σ[i] + p*Im[i]
		ss += s * s
	}
	return math.Sqrt(1.5 * ss)
}
