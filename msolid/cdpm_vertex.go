// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// apexStress computes the volumetric stress at the apex of the yield surface (ρ = 0)
//  The apex x = σV/fc is the real root of (1-q1)² x⁴ + m0 q1² q2 x - q1² q2² = 0
//  ok == false means that there is no apex on the requested side
func (o *ConcreteDPM2) apexStress(κ float64, tension bool) (σV float64, ok bool) {
	q1, _ := o.hardeningOne(κ)
	q2, _ := o.hardeningTwo(κ)
	a := (1.0 - q1) * (1.0 - q1)
	b := o.M0 * q1 * q1 * q2
	c := q1 * q1 * q2 * q2

	// quartic degenerates into a linear equation
	if a < 1e-14 {
		if tension {
			return c / b * o.Fc, true
		}
		return
	}

	// depressed quartic x⁴ + p x - q = 0 (Ferrari), resolvent cubic m³ + q m - p²/8 = 0 (Cardano)
	p, q := b/a, c/a
	B := -p * p / 8.0
	disc := B*B/4.0 + q*q*q/27.0
	if disc < 0 {
		return
	}
	sd := math.Sqrt(disc)
	m := math.Cbrt(-B/2.0+sd) + math.Cbrt(-B/2.0-sd)
	if m <= 0 {
		return
	}
	rad := utl.SQ2*p/math.Sqrt(m) - 2.0*m
	if rad < 0 {
		return
	}
	x := -math.Sqrt(2.0 * m)
	if tension {
		x += math.Sqrt(rad)
	} else {
		x -= math.Sqrt(rad)
	}
	return x / 2.0 * o.Fc, true
}

// checkForVertexCase decides whether the trial point (σVtr, ρtr) must be returned to the apex
//  Note: the trial point must lie beyond the apex on its own side of the hydrostatic axis
func (o *ConcreteDPM2) checkForVertexCase(σVtr, ρtr, κ float64) ReturnType {
	tension := σVtr > 0
	σa, ok := o.apexStress(κ, tension)
	if !ok {
		return ReturnRegular
	}
	rt := ReturnVertexCompression
	if tension {
		if σVtr <= σa {
			return ReturnRegular
		}
		rt = ReturnVertexTension
	} else if σVtr >= σa {
		return ReturnRegular
	}
	if ρtr < 1e-10*o.Fc {
		return rt
	}
	d := o.potentialDerivs(σa, 0, κ)
	if d.gσ == 0 {
		return ReturnRegular
	}
	Rpot := 2.0 * o.G * d.gρ / (o.K * d.gσ)
	if ρtr-Rpot*(σVtr-σa) <= 0 {
		return rt
	}
	return ReturnRegular
}

// vertexReturn finds the apex stress σV (ρ = 0) and the hardening variable κ reached
// by the return from the trial point (σVtr, ρtr)
//  κ(σV) = κ0 + N/xh(σV) with N = √((σVtr-σV)²/(3K²) + ρtr²/(4G²)) being the norm of
//  the plastic strain increment
func (o *ConcreteDPM2) vertexReturn(σVtr, ρtr, κ0 float64, rt ReturnType) (σV, κ float64, ok bool) {
	σV, ok = o.apexStress(κ0, rt == ReturnVertexTension)
	if !ok {
		return
	}
	ok = false
	K2, G2 := 3.0*o.K*o.K, 4.0*o.G*o.G
	for it := 0; it < o.NewtonIt; it++ {
		Δσ := σVtr - σV
		N := math.Sqrt(Δσ*Δσ/K2 + ρtr*ρtr/G2)
		xh, dxh := o.ductility(σV)
		κ = κ0 + N/xh
		F := o.yieldValue(σV, 0, 0, κ)
		if math.Abs(F) < o.YieldTol {
			ok = true
			return
		}
		var dN float64
		if N > 0 {
			dN = -Δσ / (K2 * N)
		}
		dκ := dN/xh - N*dxh/(xh*xh)
		fσ, _, fκ := o.yieldDerivs(σV, 0, 0, κ)
		dF := fσ + fκ*dκ
		if math.Abs(dF) < SINGULAR {
			return
		}
		σV -= F / dF
		if math.IsNaN(σV) {
			return
		}
	}
	return
}
