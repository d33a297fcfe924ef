// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// rfun computes the elliptic deviatoric function r(θ); r(0) = 1/e and r(π/3) = 1
func (o *ConcreteDPM2) rfun(θ float64) float64 {
	e := o.Ecc
	c := math.Cos(θ)
	a := 1.0 - e*e
	num := 4.0*a*c*c + (2.0*e-1.0)*(2.0*e-1.0)
	den := 2.0*a*c + (2.0*e-1.0)*math.Sqrt(4.0*a*c*c+5.0*e*e-4.0*e)
	return num / den
}

// hardeningOne computes qh1 and dqh1/dκ (pre-peak branch)
func (o *ConcreteDPM2) hardeningOne(κ float64) (q1, dq1 float64) {
	if κ >= 1 {
		return 1, 0
	}
	κ2, κ3 := κ*κ, κ*κ*κ
	q1 = o.Qh0 + (1.0-o.Qh0)*(κ3-3.0*κ2+3.0*κ) - o.Hp*(κ3-3.0*κ2+2.0*κ)
	dq1 = (1.0-o.Qh0)*(3.0*κ2-6.0*κ+3.0) - o.Hp*(3.0*κ2-6.0*κ+2.0)
	return
}

// hardeningTwo computes qh2 and dqh2/dκ (post-peak branch)
func (o *ConcreteDPM2) hardeningTwo(κ float64) (q2, dq2 float64) {
	if κ < 1 {
		return 1, 0
	}
	return 1.0 + o.Hp*(κ-1.0), o.Hp
}

// yieldValue computes the yield function f(σV, ρ, θ, κ)
func (o *ConcreteDPM2) yieldValue(σV, ρ, θ, κ float64) float64 {
	q1, _ := o.hardeningOne(κ)
	q2, _ := o.hardeningTwo(κ)
	fc := o.Fc
	B := σV/fc + ρ/(utl.SQ6*fc)
	A := (1.0-q1)*B*B + sq3by2*ρ/fc
	return A*A + o.M0*q1*q1*q2*(ρ*o.rfun(θ)/(utl.SQ6*fc)+σV/fc) - q1*q1*q2*q2
}

// yieldDerivs computes ∂f/∂σV, ∂f/∂ρ and ∂f/∂κ
func (o *ConcreteDPM2) yieldDerivs(σV, ρ, θ, κ float64) (fσ, fρ, fκ float64) {
	q1, dq1 := o.hardeningOne(κ)
	q2, dq2 := o.hardeningTwo(κ)
	fc := o.Fc
	r := o.rfun(θ)
	B := σV/fc + ρ/(utl.SQ6*fc)
	A := (1.0-q1)*B*B + sq3by2*ρ/fc
	Aσ := 2.0 * (1.0 - q1) * B / fc
	Aρ := 2.0*(1.0-q1)*B/(utl.SQ6*fc) + sq3by2/fc
	Aκ := -dq1 * B * B
	P := ρ*r/(utl.SQ6*fc) + σV/fc
	fσ = 2.0*A*Aσ + o.M0*q1*q1*q2/fc
	fρ = 2.0*A*Aρ + o.M0*q1*q1*q2*r/(utl.SQ6*fc)
	fκ = 2.0*A*Aκ + o.M0*(2.0*q1*dq1*q2+q1*q1*dq2)*P - 2.0*q1*dq1*q2*q2 - 2.0*q1*q1*q2*dq2
	return
}

// flowDerivs holds the derivatives of the plastic potential g(σV, ρ, κ)
type flowDerivs struct {
	gσ, gρ        float64 // first derivatives
	gσσ, gσρ, gρρ float64 // second derivatives w.r.t invariants
	gσκ, gρκ      float64 // mixed derivatives w.r.t κ
}

// potentialDerivs computes the derivatives of the plastic potential
func (o *ConcreteDPM2) potentialDerivs(σV, ρ, κ float64) (d flowDerivs) {

	// hardening
	q1, dq1 := o.hardeningOne(κ)
	q2, dq2 := o.hardeningTwo(κ)
	fc, ft := o.Fc, o.Ft

	// volumetric part: mQ = Ag Bg fc exp((σV - q2 ft/3)/(Bg fc))
	Ag := 3.0*ft*q2/fc + o.M0/2.0
	dAg := 3.0 * ft * dq2 / fc
	N := q2 / 3.0 * (1.0 + ft/fc)
	dN := dq2 / 3.0 * (1.0 + ft/fc)
	D := math.Log(Ag) - math.Log(2.0*o.Df-1.0) - math.Log(3.0*q2+o.M0/2.0) + math.Log(o.Df+1.0)
	dD := dAg/Ag - 3.0*dq2/(3.0*q2+o.M0/2.0)
	Bg := N / D
	dBg := (dN*D - N*dD) / (D * D)
	X := (σV - q2*ft/3.0) / (Bg * fc)
	ex := math.Exp(X)
	dmQ := Ag * ex
	dXκ := -dq2*ft/(3.0*Bg*fc) - X*dBg/Bg
	dmQκ := dAg*ex + Ag*ex*dXκ

	// deviatoric part
	B := σV/fc + ρ/(utl.SQ6*fc)
	A := (1.0-q1)*B*B + sq3by2*ρ/fc
	Aσ := 2.0 * (1.0 - q1) * B / fc
	Aρ := 2.0*(1.0-q1)*B/(utl.SQ6*fc) + sq3by2/fc
	Aκ := -dq1 * B * B
	Aσκ := -2.0 * dq1 * B / fc
	Aρκ := -2.0 * dq1 * B / (utl.SQ6 * fc)

	// derivatives
	d.gσ = 2.0*A*Aσ + q1*q1*dmQ/fc
	d.gρ = 2.0*A*Aρ + q1*q1*o.M0/(utl.SQ6*fc)
	d.gσσ = 2.0*Aσ*Aσ + 2.0*A*2.0*(1.0-q1)/(fc*fc) + q1*q1*dmQ/(Bg*fc*fc)
	d.gσρ = 2.0*Aσ*Aρ + 2.0*A*2.0*(1.0-q1)/(utl.SQ6*fc*fc)
	d.gρρ = 2.0*Aρ*Aρ + 2.0*A*(1.0-q1)/(3.0*fc*fc)
	d.gσκ = 2.0*Aκ*Aσ + 2.0*A*Aσκ + 2.0*q1*dq1*dmQ/fc + q1*q1*dmQκ/fc
	d.gρκ = 2.0*Aκ*Aρ + 2.0*A*Aρκ + 2.0*q1*dq1*o.M0/(utl.SQ6*fc)
	return
}

// flowNorm returns |m| = |∂g/∂σ| = √(gσ²/3 + gρ²)
func (d flowDerivs) flowNorm() float64 {
	return math.Sqrt(d.gσ*d.gσ/3.0 + d.gρ*d.gρ)
}

// ductility computes the ductility measure xh(σV) and its derivative
func (o *ConcreteDPM2) ductility(σV float64) (xh, dxh float64) {
	R := -σV/o.Fc - 1.0/3.0
	if R >= 0 {
		ex := math.Exp(-R / o.Ch)
		xh = o.Ah - (o.Ah-o.Bh)*ex
		dxh = -(o.Ah - o.Bh) / o.Ch * ex / o.Fc
		return
	}
	ex := math.Exp(R / o.Fh)
	xh = o.Eh*ex + o.Dh
	dxh = -o.Eh / o.Fh * ex / o.Fc
	return
}

// kappaRate computes k = dκ/dΔλ = |m|(2cosθ)²/xh and its derivatives
func (o *ConcreteDPM2) kappaRate(σV, θ float64, d flowDerivs) (k, kσ, kρ, kκ float64) {
	nm := d.flowNorm()
	xh, dxh := o.ductility(σV)
	c := 2.0 * math.Cos(θ)
	c *= c
	k = nm * c / xh
	if nm == 0 {
		return
	}
	dnσ := (d.gσ*d.gσσ/3.0 + d.gρ*d.gσρ) / nm
	dnρ := (d.gσ*d.gσρ/3.0 + d.gρ*d.gρρ) / nm
	dnκ := (d.gσ*d.gσκ/3.0 + d.gρ*d.gρκ) / nm
	kσ = c*dnσ/xh - k*dxh/xh
	kρ = c * dnρ / xh
	kκ = c * dnκ / xh
	return
}
