// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "math"

// uniaxial holds the mapping of a uniaxial stress onto the invariants
//  σV = σ/3, ρ = √(2/3)|σ| and θ = 0 (tension) or π/3 (compression)
type uniaxial struct {
	s float64 // sign of σ
	c float64 // dρ/dσ = s √(2/3)
	θ float64 // Lode angle
}

// newUniaxial returns the mapping for the sign of σ
func newUniaxial(σ float64) (u uniaxial) {
	u.s = 1
	if σ < 0 {
		u.s, u.θ = -1, math.Pi/3.0
	}
	u.c = u.s * sq2by3
	return
}

// flow returns m1 = ∂g/∂σ11 for uniaxial stress and its derivatives w.r.t σ and κ
func (u uniaxial) flow(d flowDerivs) (m1, m1σ, m1κ float64) {
	m1 = d.gσ/3.0 + u.c*d.gρ
	m1σ = d.gσσ/9.0 + 2.0*u.c*d.gσρ/3.0 + u.c*u.c*d.gρρ
	m1κ = d.gσκ/3.0 + u.c*d.gρκ
	return
}

// regularReturn1D finds (σ, κ, Δλ) on the yield surface for a uniaxial trial stress
func (o *ConcreteDPM2) regularReturn1D(σtr, κ0 float64) (σ, κ, Δλ, mnorm float64, ok bool) {

	// initial values
	σ, κ = σtr, κ0
	u := newUniaxial(σtr)
	E := o.E

	// iterations
	var J mat3
	for it := 0; it < o.NewtonIt; it++ {

		// residual
		σV, ρ := σ/3.0, u.s*sq2by3*σ
		d := o.potentialDerivs(σV, ρ, κ)
		m1, m1σ, m1κ := u.flow(d)
		k, kσ, kρ, kκ := o.kappaRate(σV, u.θ, d)
		R0 := σ - σtr + E*Δλ*m1
		R1 := κ - κ0 - Δλ*k
		R2 := o.yieldValue(σV, ρ, u.θ, κ)

		// check convergence
		if math.Abs(R2) < o.YieldTol && math.Abs(R0)/o.Fc < o.YieldTol && math.Abs(R1) < o.YieldTol {
			mnorm = d.flowNorm()
			ok = true
			return
		}

		// Jacobian
		fσ, fρ, fκ := o.yieldDerivs(σV, ρ, u.θ, κ)
		J[0] = [3]float64{1.0 + E*Δλ*m1σ, E * Δλ * m1κ, E * m1}
		J[1] = [3]float64{-Δλ * (kσ/3.0 + u.c*kρ), 1.0 - Δλ*kκ, -k}
		J[2] = [3]float64{fσ/3.0 + u.c*fρ, fκ, 0}

		// update
		δ, solved := J.solve([3]float64{-R0, -R1, -R2})
		if !solved {
			return
		}
		σ += δ[0]
		κ += δ[1]
		Δλ += δ[2]
		if κ < κ0 {
			κ = κ0
		}
		if Δλ < 0 {
			Δλ = 0
		}
		if u.s*σ < 0 || math.IsNaN(σ) || math.IsNaN(κ) {
			return
		}
	}
	return
}

// plasticReturn1D corrects the uniaxial trial stress σtr, sub-dividing the increment σtr - σold
// when the local iterations fail
//  Δλ -- increment of plastic multiplier
//  εp -- Σ Δλ |m| = norm of the increment of plastic strains
func (o *ConcreteDPM2) plasticReturn1D(σold, σtr, κ0 float64) (σ, κ, Δλ, εp float64, loading bool, ok bool) {
	nsub := 1
	for k := 0; k <= o.MaxSub; k++ {
		σ, κ, Δλ, εp, loading, ok = σold, κ0, 0, 0, false, true
		m := float64(nsub)
		for j := 0; j < nsub; j++ {
			σj := σtr
			if nsub > 1 {
				σj = σ + (σtr-σold)/m
			}
			σV, ρ, θ := Invariants1D(σj)
			if o.yieldValue(σV, ρ, θ, κ) <= o.YieldTol {
				σ = σj
				continue
			}
			σn, κn, Δλn, mn, okn := o.regularReturn1D(σj, κ)
			if !okn {
				ok = false
				break
			}
			σ, κ, Δλ, εp, loading = σn, κn, Δλ+Δλn, εp+Δλn*mn, true
		}
		if ok {
			return
		}
		nsub *= 2
	}
	return
}
