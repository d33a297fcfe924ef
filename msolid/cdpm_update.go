// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
)

// Update updates stresses for given strains
//  ε  -- total strains at the end of the increment
//  Δε -- increment of strains
//  Note: s is modified only if the update succeeds
func (o *ConcreteDPM2) Update(s *State, ε, Δε []float64, stp *Step) (err error) {

	// check
	if o.Nsig < 4 || len(Δε) != o.Nsig || len(s.Sig) != o.Nsig || s.Plast == nil {
		chk.Panic("cdpm2: Update requires a state allocated by InitIntVars with nsig=%d >= 4; use Update1D for uniaxial stress", o.Nsig)
	}

	// zero increment: nothing changes, including the tags of the last increment
	if zeroIncrement(Δε) {
		copy(s.Eps, ε)
		return
	}

	// old values
	σold := pad6(s.Sig)
	σbOld := pad6(s.SigEff)
	κ0 := s.Plast.Kappa

	// trial effective stress
	var Δσ, σtr [6]float64
	o.stiff(&Δσ, pad6(Δε))
	for i := 0; i < 6; i++ {
		σtr[i] = σbOld[i] + Δσ[i]
	}

	// plastic correction
	σb, κ, Δλ, rt, nsub, ok := o.plasticReturn(σbOld, σtr, κ0)
	if !ok {
		eid, ipid := stepIds(stp)
		return fmt.Errorf("cdpm2: eid=%d ipid=%d: return mapping failed after %d sub-steps (σtr=%v κ0=%g): %w", eid, ipid, nsub, σtr[:o.Nsig], κ0, ErrNotConverged)
	}

	// increment of plastic strains
	var Δεp [6]float64
	var εpnorm float64
	if rt != ReturnElastic {
		var Δεe [6]float64
		var Δσb [6]float64
		for i := 0; i < 6; i++ {
			Δσb[i] = σb[i] - σbOld[i]
		}
		o.compliance(&Δεe, Δσb)
		Δε6 := pad6(Δε)
		for i := 0; i < o.Nsig; i++ {
			Δεp[i] = Δε6[i] - Δεe[i]
			εpnorm += Δεp[i] * Δεp[i]
		}
		εpnorm = math.Sqrt(εpnorm)
	}

	// damage
	var dmg DamageState
	var rate RateState
	var grew bool
	if s.Dmg != nil {
		σV, ρ, θ, _ := Invariants(σb)
		_, _, λ, e := PrincipalSplit(σb)
		if e != nil {
			eid, ipid := stepIds(stp)
			return chk.Err("cdpm2: eid=%d ipid=%d: %v", eid, ipid, e)
		}
		in := damageInput{σV: σV, ρ: ρ, θ: θ, α: CompressionWeight(λ), εp: εpnorm, κp: κ, dt: o.dt(stp)}
		dmg, rate, grew, err = o.computeDamage(*s.Dmg, o.rateRecord(s), in, stp)
		if err != nil {
			eid, ipid := stepIds(stp)
			return chk.Err("cdpm2: eid=%d ipid=%d: %v", eid, ipid, err)
		}
	}

	// nominal stress
	var σ [6]float64
	var pd *DamageState
	if s.Dmg != nil {
		pd = &dmg
	}
	err = o.nominalStress(&σ, σb, pd)
	if err != nil {
		return
	}

	// set state
	for i := 0; i < o.Nsig; i++ {
		s.Sig[i] = σ[i]
		s.SigEff[i] = σb[i]
		s.Eps[i] = ε[i]
		s.Plast.Eps[i] += Δεp[i]
	}
	s.Plast.Kappa = κ
	s.Plast.Dlam = Δλ
	s.Plast.Loading = rt != ReturnElastic
	s.Plast.Apex = rt == ReturnVertexTension || rt == ReturnVertexCompression
	if s.Dmg != nil {
		*s.Dmg = dmg
	}
	if s.Rate != nil {
		*s.Rate = rate
	}
	o.updateWork(s.Work, σold, σ, σb, Δε, o.workLength(s, stp))
	s.Flag = o.flag(rt, grew, s)
	return
}

// Update1D updates the uniaxial stress for given strains
func (o *ConcreteDPM2) Update1D(s *State, ε, Δε float64, stp *Step) (err error) {

	// check
	if len(s.Sig) != 1 || s.Plast == nil {
		chk.Panic("cdpm2: Update1D requires a state allocated by InitIntVars1D")
	}

	// zero increment
	if Δε == 0 {
		s.Eps[0] = ε
		return
	}

	// trial effective stress and plastic correction
	σold, σbOld, κ0 := s.Sig[0], s.SigEff[0], s.Plast.Kappa
	σtr := σbOld + o.E*Δε
	σb, κ, Δλ, εpnorm, loading, ok := o.plasticReturn1D(σbOld, σtr, κ0)
	if !ok {
		eid, ipid := stepIds(stp)
		return fmt.Errorf("cdpm2: eid=%d ipid=%d: uniaxial return mapping failed (σtr=%g κ0=%g): %w", eid, ipid, σtr, κ0, ErrNotConverged)
	}
	var Δεp float64
	if loading {
		Δεp = Δε - (σb-σbOld)/o.E
	}

	// damage
	var dmg DamageState
	var rate RateState
	var grew bool
	if s.Dmg != nil {
		σV, ρ, θ := Invariants1D(σb)
		var α float64
		if σb < 0 {
			α = 1
		}
		in := damageInput{σV: σV, ρ: ρ, θ: θ, α: α, εp: εpnorm, κp: κ, dt: o.dt(stp)}
		dmg, rate, grew, err = o.computeDamage(*s.Dmg, o.rateRecord(s), in, stp)
		if err != nil {
			eid, ipid := stepIds(stp)
			return chk.Err("cdpm2: eid=%d ipid=%d: %v", eid, ipid, err)
		}
	}

	// set state
	var pd *DamageState
	if s.Dmg != nil {
		*s.Dmg = dmg
		pd = s.Dmg
	}
	if s.Rate != nil {
		*s.Rate = rate
	}
	s.SigEff[0] = σb
	s.Sig[0] = o.nominalStress1D(σb, pd)
	s.Eps[0] = ε
	s.Plast.Eps[0] += Δεp
	s.Plast.Kappa = κ
	s.Plast.Dlam = Δλ
	s.Plast.Loading = loading
	s.Plast.Apex = false
	o.updateWork1D(s.Work, σold, s.Sig[0], σb, Δε, o.workLength(s, stp))
	rt := ReturnElastic
	if loading {
		rt = ReturnRegular
	}
	s.Flag = o.flag(rt, grew, s)
	return
}

// rateRecord returns a copy of the rate record; unit factor if rate effects are off
func (o *ConcreteDPM2) rateRecord(s *State) RateState {
	if s.Rate == nil {
		return RateState{Factor: 1}
	}
	return *s.Rate
}

// workLength returns the length used to scale the dissipation tolerance
func (o *ConcreteDPM2) workLength(s *State, stp *Step) float64 {
	if s.Dmg != nil && s.Dmg.Le > 0 {
		return s.Dmg.Le
	}
	l, err := o.le(stp)
	if err != nil {
		return 0
	}
	return l
}

// flag returns the discrete state after an update
func (o *ConcreteDPM2) flag(rt ReturnType, grew bool, s *State) Flag {
	switch rt {
	case ReturnVertexTension:
		if grew {
			return VertexTensionDamage
		}
		return VertexTension
	case ReturnVertexCompression:
		if grew {
			return VertexCompressionDamage
		}
		return VertexCompression
	case ReturnRegular:
		if grew {
			return PlasticDamage
		}
		return Plastic
	}
	if grew {
		return Damage
	}
	if s.Omega() > 0 || s.Plast.Kappa > 0 {
		return Unloading
	}
	return Elastic
}

// zeroIncrement tells whether all components of Δε are zero
func zeroIncrement(Δε []float64) bool {
	for _, v := range Δε {
		if v != 0 {
			return false
		}
	}
	return true
}

// stepIds returns the element and integration point ids for messages
func stepIds(stp *Step) (eid, ipid int) {
	if stp == nil {
		return -1, -1
	}
	return stp.Eid, stp.Ipid
}
