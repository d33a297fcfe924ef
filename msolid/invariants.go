// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// RHOMIN is the deviatoric radius below which the Lode angle is undefined
const RHOMIN = 1e-14

// Invariants computes the Haigh-Westergaard coordinates of a Mandel tensor σ
//  σV -- volumetric stress = tr(σ)/3
//  ρ  -- deviatoric radius = |dev(σ)|
//  θ  -- Lode angle ∈ [0, π/3]; θ=0 is the tensile meridian
//  n  -- unit deviatoric direction (zero if ρ < RHOMIN)
func Invariants(σ [6]float64) (σV, ρ, θ float64, n [6]float64) {
	σV = (σ[0] + σ[1] + σ[2]) / 3.0
	var s [6]float64
	for i := 0; i < 6; i++ {
		s[i] = σ[i] - σV*Im[i]
		ρ += s[i] * s[i]
	}
	ρ = math.Sqrt(ρ)
	if ρ < RHOMIN {
		ρ = 0
		return
	}
	for i := 0; i < 6; i++ {
		n[i] = s[i] / ρ
	}
	θ = lodeAngle(n)
	return
}

// lodeAngle computes θ from the unit deviatoric direction n: cos(3θ) = 3√6 det(n)
func lodeAngle(n [6]float64) float64 {
	a := n[3] / utl.SQ2
	b := n[4] / utl.SQ2
	c := n[5] / utl.SQ2
	det := n[0]*(n[1]*n[2]-b*b) - a*(a*n[2]-b*c) + c*(a*b-n[1]*c)
	c3θ := 3.0 * utl.SQ6 * det
	if c3θ > 1 {
		c3θ = 1
	}
	if c3θ < -1 {
		c3θ = -1
	}
	return math.Acos(c3θ) / 3.0
}

// Reconstruct computes σ := σV I + ρ n
func Reconstruct(σ *[6]float64, σV, ρ float64, n [6]float64) {
	for i := 0; i < 6; i++ {
		σ[i] = σV*Im[i] + ρ*n[i]
	}
}

// PrincipalInvariants returns the principal values (σ1 >= σ2 >= σ3) for given invariants
func PrincipalInvariants(σV, ρ, θ float64) (σ1, σ2, σ3 float64) {
	c := sq2by3 * ρ
	σ1 = σV + c*math.Cos(θ)
	σ2 = σV + c*math.Cos(θ-2.0*math.Pi/3.0)
	σ3 = σV + c*math.Cos(θ+2.0*math.Pi/3.0)
	return
}

// Invariants1D returns the invariants of a uniaxial stress state
func Invariants1D(σ float64) (σV, ρ, θ float64) {
	σV = σ / 3.0
	ρ = sq2by3 * math.Abs(σ)
	if σ < 0 {
		θ = math.Pi / 3.0
	}
	return
}
