// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "math"

// ReturnType is the regime selected by the return mapping of one increment
type ReturnType int

const (
	ReturnElastic ReturnType = iota
	ReturnRegular
	ReturnVertexTension
	ReturnVertexCompression
)

// String returns the name of the return type
func (o ReturnType) String() string {
	switch o {
	case ReturnElastic:
		return "elastic"
	case ReturnRegular:
		return "regular"
	case ReturnVertexTension:
		return "vertex-tension"
	case ReturnVertexCompression:
		return "vertex-compression"
	}
	return "unknown"
}

// regularReturn finds (σV, ρ, κ, Δλ) on the yield surface for a trial point (σVtr, ρtr, θ)
// using Newton's method with the analytical Jacobian
//  Note: θ is kept constant; ok == false means that Newton's method failed
func (o *ConcreteDPM2) regularReturn(σVtr, ρtr, θ, κ0 float64) (σV, ρ, κ, Δλ float64, it int, ok bool) {

	// initial values
	σV, ρ, κ = σVtr, ρtr, κ0
	K, G := o.K, o.G

	// iterations
	var R [4]float64
	var J mat4
	for it = 0; it < o.NewtonIt; it++ {

		// residual
		d := o.potentialDerivs(σV, ρ, κ)
		k, kσ, kρ, kκ := o.kappaRate(σV, θ, d)
		f := o.yieldValue(σV, ρ, θ, κ)
		R[0] = σV - σVtr + K*Δλ*d.gσ
		R[1] = ρ - ρtr + 2.0*G*Δλ*d.gρ
		R[2] = κ - κ0 - Δλ*k
		R[3] = f

		// check convergence
		if math.Abs(R[3]) < o.YieldTol && math.Abs(R[0])/o.Fc < o.YieldTol &&
			math.Abs(R[1])/o.Fc < o.YieldTol && math.Abs(R[2]) < o.YieldTol {
			ok = true
			return
		}

		// Jacobian
		fσ, fρ, fκ := o.yieldDerivs(σV, ρ, θ, κ)
		J[0] = [4]float64{1.0 + K*Δλ*d.gσσ, K * Δλ * d.gσρ, K * Δλ * d.gσκ, K * d.gσ}
		J[1] = [4]float64{2.0 * G * Δλ * d.gσρ, 1.0 + 2.0*G*Δλ*d.gρρ, 2.0 * G * Δλ * d.gρκ, 2.0 * G * d.gρ}
		J[2] = [4]float64{-Δλ * kσ, -Δλ * kρ, 1.0 - Δλ*kκ, -k}
		J[3] = [4]float64{fσ, fρ, fκ, 0}

		// update
		δ, solved := J.solve([4]float64{-R[0], -R[1], -R[2], -R[3]})
		if !solved {
			return
		}
		σV += δ[0]
		ρ += δ[1]
		κ += δ[2]
		Δλ += δ[3]
		if κ < κ0 {
			κ = κ0
		}
		if Δλ < 0 {
			Δλ = 0
		}
		if ρ < 0 || math.IsNaN(σV) || math.IsNaN(ρ) || math.IsNaN(κ) {
			return
		}
	}
	return
}

// plasticStep performs the elastic prediction and the plastic correction of one trial effective stress
//  Δλ -- increment of plastic multiplier (zero for vertex returns)
//  ok -- false if neither the vertex nor the regular return succeeded
func (o *ConcreteDPM2) plasticStep(σtr [6]float64, κ0 float64) (σ [6]float64, κ, Δλ float64, rt ReturnType, ok bool) {

	// trial state
	σVtr, ρtr, θ, n := Invariants(σtr)
	if o.yieldValue(σVtr, ρtr, θ, κ0) <= o.YieldTol {
		return σtr, κ0, 0, ReturnElastic, true
	}

	// vertex return
	rt = o.checkForVertexCase(σVtr, ρtr, κ0)
	if rt != ReturnRegular {
		σV, κv, okv := o.vertexReturn(σVtr, ρtr, κ0, rt)
		if okv && o.checkForVertexCase(σVtr, ρtr, κv) == rt {
			for i := 0; i < 6; i++ {
				σ[i] = σV * Im[i]
			}
			return σ, κv, 0, rt, true
		}
	}

	// regular return
	rt = ReturnRegular
	if ρtr == 0 {
		return
	}
	σV, ρ, κ, Δλ, _, ok := o.regularReturn(σVtr, ρtr, θ, κ0)
	if !ok {
		return
	}
	Reconstruct(&σ, σV, ρ, n)
	return
}

// plasticReturn corrects the trial effective stress σtr, sub-dividing the increment σtr - σold
// when the local iterations fail
func (o *ConcreteDPM2) plasticReturn(σold, σtr [6]float64, κ0 float64) (σ [6]float64, κ, Δλ float64, rt ReturnType, nsub int, ok bool) {
	var Δσtr [6]float64
	for i := 0; i < 6; i++ {
		Δσtr[i] = σtr[i] - σold[i]
	}
	nsub = 1
	for k := 0; k <= o.MaxSub; k++ {
		σ, κ, Δλ, rt = σold, κ0, 0, ReturnElastic
		ok = true
		m := float64(nsub)
		for j := 0; j < nsub; j++ {
			σj := σtr
			if nsub > 1 {
				for i := 0; i < 6; i++ {
					σj[i] = σ[i] + Δσtr[i]/m
				}
			}
			σn, κn, Δλn, rtn, okn := o.plasticStep(σj, κ)
			if !okn {
				ok = false
				break
			}
			σ, κ, Δλ = σn, κn, Δλ+Δλn
			if rtn != ReturnElastic {
				rt = rtn
			}
		}
		if ok {
			return
		}
		nsub *= 2
	}
	return
}
