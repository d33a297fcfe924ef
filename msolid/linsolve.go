// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// mat3 and mat4 are the Jacobians of the local Newton iterations
type (
	mat3 [3][3]float64
	mat4 [4][4]float64
)

// SINGULAR is the derivative magnitude below which a scalar Newton update is considered singular
const SINGULAR = 1e-300

// solve solves J・x = b
func (J mat4) solve(b [4]float64) (x [4]float64, ok bool) {
	a := make([]float64, 0, 16)
	for i := range J {
		a = append(a, J[i][:]...)
	}
	ok = solveLU(4, a, b[:], x[:])
	return
}

// solve solves J・x = b
func (J mat3) solve(b [3]float64) (x [3]float64, ok bool) {
	a := make([]float64, 0, 9)
	for i := range J {
		a = append(a, J[i][:]...)
	}
	ok = solveLU(3, a, b[:], x[:])
	return
}

// solveLU solves the n×n system a・x = b (a in row-major order) by LU factorisation
//  Note: ill-conditioned systems are accepted; singular systems and non-finite solutions are not
func solveLU(n int, a, b, x []float64) (ok bool) {
	var lu mat.LU
	lu.Factorize(mat.NewDense(n, n, a))
	err := lu.SolveVecTo(mat.NewVecDense(n, x), false, mat.NewVecDense(n, b))
	if err != nil {
		c, isCond := err.(mat.Condition)
		if !isCond || math.IsInf(float64(c), 1) || math.IsNaN(float64(c)) {
			return false
		}
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
