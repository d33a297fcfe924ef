// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_linsolve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linsolve01")

	// 4x4 with zero on the first diagonal entry
	J4 := mat4{
		{0, 2, 0, 1},
		{1, 0, 0, 0},
		{0, 0, 3, 0},
		{0, 1, 0, 4},
	}
	x4, ok := J4.solve([4]float64{8, 1, 9, 18})
	if !ok {
		tst.Errorf("4x4 system must be solved\n")
		return
	}
	chk.Array(tst, "x4", 1e-14, x4[:], []float64{1, 2, 3, 4})
	chk.Float64(tst, "J4 unchanged", 1e-17, J4[1][0], 1)

	// 3x3
	J3 := mat3{
		{2, 1, 0},
		{1, 3, 1},
		{0, 1, 4},
	}
	x3, ok := J3.solve([3]float64{1, 0, 7})
	if !ok {
		tst.Errorf("3x3 system must be solved\n")
		return
	}
	chk.Array(tst, "x3", 1e-14, x3[:], []float64{1, -1, 2})

	// singular
	S3 := mat3{
		{1, 2, 3},
		{2, 4, 6},
		{0, 0, 1},
	}
	if _, ok = S3.solve([3]float64{1, 2, 3}); ok {
		tst.Errorf("singular 3x3 system must be reported\n")
	}
	var Z4 mat4
	if _, ok = Z4.solve([4]float64{1, 0, 0, 0}); ok {
		tst.Errorf("zero 4x4 system must be reported\n")
	}
}
