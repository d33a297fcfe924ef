// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Mmatch computes M=q/p and qy0 from c and φ corresponding to the strength that would
// be modelled by the Mohr-Coulomb model matching one of the following cones:
//  typ == 0 : compression cone (outer)
//      == 1 : extension cone (inner)
//      == 2 : plane-strain
func Mmatch(c, φ float64, typ int) (M, qy0 float64, err error) {
	φr := φ * math.Pi / 180.0
	si := math.Sin(φr)
	co := math.Cos(φr)
	var ξ float64
	switch typ {
	case 0: // compression cone (outer)
		M = 6.0 * si / (3.0 - si)
		ξ = 6.0 * co / (3.0 - si)
	case 1: // extension cone (inner)
		M = 6.0 * si / (3.0 + si)
		ξ = 6.0 * co / (3.0 + si)
	case 2: // plane-strain
		t := si / co
		d := math.Sqrt(3.0 + 4.0*t*t)
		M = 3.0 * t / d
		ξ = 3.0 / d
	default:
		return 0, 0, chk.Err("typ=%d is invalid", typ)
	}
	qy0 = ξ * c
	return
}

// Eigenprojectors computes the Mandel eigenprojectors for given eigenvectors
//  n -- eigenvectors (columns)
func Eigenprojectors(P *[3][6]float64, n *mat.Dense) {
	for k := 0; k < 3; k++ {
		n0, n1, n2 := n.At(0, k), n.At(1, k), n.At(2, k)
		P[k][0] = n0 * n0
		P[k][1] = n1 * n1
		P[k][2] = n2 * n2
		P[k][3] = n0 * n1 * utl.SQ2
		P[k][4] = n1 * n2 * utl.SQ2
		P[k][5] = n2 * n0 * utl.SQ2
	}
}

// PrincipalSplit computes the principal values of a Mandel tensor σ and splits it
// into positive (tensile) and negative (compressive) parts such that σ = σp + σn
func PrincipalSplit(σ [6]float64) (σp, σn [6]float64, λ [3]float64, err error) {
	sym := mat.NewSymDense(3, []float64{
		σ[0], σ[3] / utl.SQ2, σ[5] / utl.SQ2,
		σ[3] / utl.SQ2, σ[1], σ[4] / utl.SQ2,
		σ[5] / utl.SQ2, σ[4] / utl.SQ2, σ[2],
	})
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		err = chk.Err("cannot compute eigenvalues of σ=%v", σ)
		return
	}
	eig.Values(λ[:])
	var n mat.Dense
	eig.VectorsTo(&n)
	var P [3][6]float64
	Eigenprojectors(&P, &n)
	for k := 0; k < 3; k++ {
		if λ[k] > 0 {
			for i := 0; i < 6; i++ {
				σp[i] += λ[k] * P[k][i]
			}
		} else {
			for i := 0; i < 6; i++ {
				σn[i] += λ[k] * P[k][i]
			}
		}
	}
	return
}

// CompressionWeight returns α = Σ<σi>₋² / Σσi² computed from principal values
//  Note: returns 0 for zero stress
func CompressionWeight(λ [3]float64) (α float64) {
	var num, den float64
	for _, l := range λ {
		den += l * l
		if l < 0 {
			num += l * l
		}
	}
	if den > 0 {
		α = num / den
	}
	return
}
