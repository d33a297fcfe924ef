// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// damage solver constants
const (
	DAMAGE_RTOL  = 1e-8 // tolerance on |R/ft| of the exponential softening laws
	DAMAGE_MAXIT = 200  // maximum number of iterations of the exponential softening laws
)

// damageInput holds the effective quantities that drive the damage evaluator
type damageInput struct {
	σV, ρ, θ float64 // invariants of the new effective stress
	α        float64 // compression weight
	εp       float64 // norm of the increment of plastic strains
	κp       float64 // new plastic hardening variable
	dt       float64 // time increment
}

// equivalentStrain computes ε̃ from the invariants of the effective stress
func (o *ConcreteDPM2) equivalentStrain(σV, ρ, θ float64) float64 {
	fc, e0 := o.Fc, o.E0
	P := ρ*o.rfun(θ)/(utl.SQ6*fc) + σV/fc
	a := e0 * o.M0 / 2.0 * P
	return a + math.Sqrt(a*a+1.5*e0*e0*ρ*ρ/(fc*fc))
}

// ductilityDamage computes the ductility measure xs of the damage histories
func (o *ConcreteDPM2) ductilityDamage(σV, ρ float64) float64 {
	if σV >= 0 {
		return 1
	}
	ρ = math.Max(ρ, 1e-10*o.Fc)
	Rs := -utl.SQ6 * σV / ρ
	return 1.0 + (o.As-1.0)*Rs
}

// computeDamage updates the damage and rate records for the new effective stress
//  grew -- one of the damage variables increased
func (o *ConcreteDPM2) computeDamage(old DamageState, oldRate RateState, in damageInput, stp *Step) (d DamageState, rate RateState, grew bool, err error) {

	// equivalent strain
	d, rate = old, oldRate
	d.Alpha = in.α
	d.EqStrain = o.equivalentStrain(in.σV, in.ρ, in.θ)
	Δεq := d.EqStrain - old.EqStrain

	// rate factor: frozen after the onset of damage
	if old.OmegaT == 0 && old.OmegaC == 0 {
		rate.Factor = o.rateFactor(oldRate.Factor, Δεq, in.α, in.dt)
		if in.dt > 0 {
			rate.EqStrRate = Δεq / in.dt
		}
	}
	αr := rate.Factor

	// scaled measures and histories
	d.EqStrT = old.EqStrT + Δεq/αr
	d.EqStrC = old.EqStrC + in.α*Δεq/αr
	d.KappaDT = math.Max(old.KappaDT, d.EqStrT)
	d.KappaDC = math.Max(old.KappaDC, d.EqStrC)
	e0 := o.E0
	onsetT := d.KappaDT > old.KappaDT && d.KappaDT > e0*(1.0-o.YieldTol)
	onsetC := d.KappaDC > old.KappaDC && d.KappaDC > e0*(1.0-o.YieldTol)
	if !onsetT && !onsetC {
		return
	}

	// characteristic length
	if d.Le <= 0 {
		d.Le, err = o.le(stp)
		if err != nil {
			return
		}
	}

	// ductility and confinement
	xs := o.ductilityDamage(in.σV, in.ρ)
	q2, _ := o.hardeningTwo(in.κp)
	ρ := math.Max(in.ρ, 1e-10*o.Fc)
	βc := o.Ft * q2 * sq2by3 / (ρ * math.Sqrt(1.0+2.0*o.Df*o.Df))

	// tension
	if onsetT {
		Δεp := in.εp * onsetFraction(e0, old.KappaDT, d.KappaDT)
		d.KappaT1 = old.KappaT1 + Δεp/(xs*αr)
		d.KappaT2 = old.KappaT2 + (d.KappaDT-old.KappaDT)/xs
		ω, e := o.tensionDamage(d.KappaDT, d.KappaT1, d.KappaT2, d.Le, o.effectiveWf(αr))
		if e != nil {
			err = chk.Err("cdpm2: cannot compute tension damage\n%v", e)
			return
		}
		if ω > d.OmegaT {
			d.OmegaT = ω
			grew = true
		}
	}

	// compression
	if onsetC && !o.Iso {
		Δεp := in.εp * onsetFraction(e0, old.KappaDC, d.KappaDC)
		d.KappaC1 = old.KappaC1 + in.α*βc*Δεp/(xs*αr)
		d.KappaC2 = old.KappaC2 + (d.KappaDC-old.KappaDC)/xs
		ω, e := o.compressionDamage(d.KappaDC, d.KappaC1, d.KappaC2)
		if e != nil {
			err = chk.Err("cdpm2: cannot compute compression damage\n%v", e)
			return
		}
		if ω > d.OmegaC {
			d.OmegaC = ω
			grew = true
		}
	}
	if o.Iso {
		d.OmegaC = d.OmegaT
	}
	return
}

// onsetFraction returns the fraction of the increment of a history from κold to κnew
// that lies beyond the threshold e0
func onsetFraction(e0, κold, κnew float64) float64 {
	if κold >= e0 || κnew <= κold {
		return 1
	}
	return math.Max(0, 1.0-(e0-κold)/(κnew-κold))
}

// tensionDamage computes ωt for the tension history κ and the two-stage variables κ1 and κ2
//  the crack opening is w = le (κ1 + ω κ2)
func (o *ConcreteDPM2) tensionDamage(κ, κ1, κ2, le, wf float64) (ω float64, err error) {
	if κ <= o.E0*(1.0-o.YieldTol) {
		return 0, nil
	}
	E, ft := o.E, o.Ft
	switch o.Styp {
	case LinearSoftening:
		ω = linearBranch(E*κ, ft, ft/wf, le, κ1, κ2)
		if le*(κ1+ω*κ2) >= wf {
			ω = OMEGAMAX
		}
	case BilinearSoftening:
		wf1, ft1 := o.Wf1, o.Ft1
		ω = linearBranch(E*κ, ft, (ft-ft1)/wf1, le, κ1, κ2)
		if le*(κ1+ω*κ2) > wf1 {
			ω = linearBranch(E*κ, ft1*wf/(wf-wf1), ft1/(wf-wf1), le, κ1, κ2)
			if le*(κ1+ω*κ2) >= wf {
				ω = OMEGAMAX
			}
		}
	default:
		ω, err = expDamage(E*κ, ft, le/wf, κ1, κ2)
	}
	return clampDamage(ω), err
}

// compressionDamage computes ωc for the compression history κ and the two-stage variables κ1 and κ2
func (o *ConcreteDPM2) compressionDamage(κ, κ1, κ2 float64) (ω float64, err error) {
	if κ <= o.E0*(1.0-o.YieldTol) {
		return 0, nil
	}
	ω, err = expDamage(o.E*κ, o.Ft, 1.0/o.Efc, κ1, κ2)
	return clampDamage(ω), err
}

// linearBranch solves (1-ω) Eκ = a - b le (κ1 + ω κ2) for ω
func linearBranch(Eκ, a, b, le, κ1, κ2 float64) float64 {
	den := Eκ - b*le*κ2
	if den <= 0 {
		return OMEGAMAX
	}
	return (Eκ - a + b*le*κ1) / den
}

// expDamage solves R(ω) = (1-ω) Eκ - ft exp(-c (κ1 + ω κ2)) = 0 for ω ∈ [0, 1)
//  Note: Newton's method safeguarded by bisection; R(0) >= 0 > R(1)
func expDamage(Eκ, ft, c, κ1, κ2 float64) (ω float64, err error) {
	res := func(w float64) (R, dR float64) {
		ex := ft * math.Exp(-c*(κ1+w*κ2))
		return (1.0-w)*Eκ - ex, -Eκ + c*κ2*ex
	}
	lo, hi := 0.0, 1.0
	if R, _ := res(lo); R <= 0 {
		return 0, nil
	}
	ω = 1
	for it := 0; it < DAMAGE_MAXIT; it++ {
		R, dR := res(ω)
		if math.Abs(R/ft) < DAMAGE_RTOL {
			return
		}
		if R > 0 {
			lo = ω
		} else {
			hi = ω
		}
		next := ω - R/dR
		if dR == 0 || math.IsNaN(next) || next <= lo || next >= hi {
			next = (lo + hi) / 2.0
		}
		ω = next
	}
	return ω, chk.Err("exponential softening did not converge. ω=%g", ω)
}

// clampDamage keeps ω within [0, OMEGAMAX]
func clampDamage(ω float64) float64 {
	if ω < 0 || math.IsNaN(ω) {
		return 0
	}
	if ω > OMEGAMAX {
		return OMEGAMAX
	}
	return ω
}

// nominalStress computes σ = (1-ωt) σ̄t + (1-ωc) σ̄c where σ̄t and σ̄c are the tensile and
// compressive parts of the effective stress σb
func (o *ConcreteDPM2) nominalStress(σ *[6]float64, σb [6]float64, d *DamageState) (err error) {
	if d == nil || (d.OmegaT == 0 && d.OmegaC == 0) {
		*σ = σb
		return
	}
	if o.Iso || d.OmegaT == d.OmegaC {
		for i := 0; i < 6; i++ {
			σ[i] = (1.0 - d.OmegaT) * σb[i]
		}
		return
	}
	σp, σn, _, err := PrincipalSplit(σb)
	if err != nil {
		return
	}
	for i := 0; i < 6; i++ {
		σ[i] = (1.0-d.OmegaT)*σp[i] + (1.0-d.OmegaC)*σn[i]
	}
	return
}

// nominalStress1D computes the uniaxial nominal stress
func (o *ConcreteDPM2) nominalStress1D(σb float64, d *DamageState) float64 {
	if d == nil {
		return σb
	}
	if σb >= 0 || o.Iso {
		return (1.0 - d.OmegaT) * σb
	}
	return (1.0 - d.OmegaC) * σb
}
