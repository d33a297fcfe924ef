// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// softening laws for tension
const (
	LinearSoftening      = 0
	BilinearSoftening    = 1
	ExponentialSoftening = 2
)

// rate effect recipes
const (
	RateOff           = 0 // no rate effects
	RateStrengthGfSq  = 1 // strength and fracture energy (squared)
	RateStrengthGfLin = 2 // strength and fracture energy (linear)
	RateStrength      = 3 // strength with constant fracture energy
)

// OMEGAMAX is the largest damage value
const OMEGAMAX = 0.999999

// ConcreteDPM2 implements the damage-plasticity model for concrete CDPM2
//  Grassl, Xenos, Nyström, Rempling and Gylltoft (2013) A damage-plasticity
//  approach to modelling the failure of concrete. Int J Solids Struct 50:3805-3816
type ConcreteDPM2 struct {
	SmallElasticity

	// strength
	Fc   float64 // compressive strength
	Ft   float64 // tensile strength
	Ecc  float64 // eccentricity of deviatoric section
	Qh0  float64 // initial hardening (kinit)
	Hp   float64 // hardening modulus after peak
	Df   float64 // dilation factor of plastic potential
	Ah   float64 // ductility measure: A
	Bh   float64 // ductility measure: B
	Ch   float64 // ductility measure: C
	Dh   float64 // ductility measure: D
	As   float64 // damage ductility (softening in compression)
	Wf   float64 // crack opening of tension softening
	Wf1  float64 // crack opening at knee of bilinear softening
	Ft1  float64 // stress at knee of bilinear softening
	Efc  float64 // compressive softening strain
	Styp int     // tension softening law

	// control
	YieldTol   float64 // tolerance of local Newton iterations
	NewtonIt   int     // maximum number of Newton iterations
	MaxSub     int     // maximum number of halvings of the plastic increment
	Pert       float64 // strain perturbation for consistent tangent
	RateFlag   int     // rate effect recipe
	DeltaT     float64 // time increment overriding the step one if > 0
	Helem      float64 // characteristic length overriding the step one if > 0
	Iso        bool    // single isotropic damage variable
	WithDamage bool    // damage is active

	// derived
	M0 float64 // friction parameter
	E0 float64 // strain at tensile strength = ft/E
	Eh float64 // ductility measure: E
	Fh float64 // ductility measure: F
}

// add model to factory
func init() {
	allocators["cdpm2"] = func() Model { return new(ConcreteDPM2) }
}

// Init initialises model
func (o *ConcreteDPM2) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// elasticity
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}

	// defaults
	o.Fc, o.Ft, o.Ecc, o.Qh0, o.Hp, o.Df = 30, 3, 0.525, 0.3, 0.01, 0.85
	o.Ah, o.Bh, o.Ch, o.Dh, o.As = 8e-2, 3e-3, 2, 1e-6, 15
	o.Wf, o.Efc, o.Styp = 0.1, 1e-4, ExponentialSoftening
	o.YieldTol, o.NewtonIt, o.MaxSub, o.Pert = 1e-6, 100, 10, 1e-8
	o.WithDamage = true
	wf1, ft1 := -1.0, -1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "fc":
			o.Fc = p.V
		case "ft":
			o.Ft = p.V
		case "ecc":
			o.Ecc = p.V
		case "kinit":
			o.Qh0 = p.V
		case "ahard":
			o.Ah = p.V
		case "bhard":
			o.Bh = p.V
		case "chard":
			o.Ch = p.V
		case "dhard":
			o.Dh = p.V
		case "hp":
			o.Hp = p.V
		case "dilation":
			o.Df = p.V
		case "asoft":
			o.As = p.V
		case "wf":
			o.Wf = p.V
		case "wf1":
			wf1 = p.V
		case "ft1":
			ft1 = p.V
		case "efc":
			o.Efc = p.V
		case "stype":
			o.Styp = int(p.V)
		case "yieldtol":
			o.YieldTol = p.V
		case "newtoniter":
			o.NewtonIt = int(p.V)
		case "maxsub":
			o.MaxSub = int(p.V)
		case "pert":
			o.Pert = p.V
		case "rateflag":
			o.RateFlag = int(p.V)
		case "deltat":
			o.DeltaT = p.V
		case "helem":
			o.Helem = p.V
		case "isoflag":
			o.Iso = p.V > 0
		case "damage":
			o.WithDamage = p.V > 0
		case "E", "nu", "K", "G", "rho":
		default:
			return chk.Err("cdpm2: parameter named %q is incorrect\n", p.N)
		}
	}
	o.Wf1, o.Ft1 = 0.15*o.Wf, 0.3*o.Ft
	if wf1 >= 0 {
		o.Wf1 = wf1
	}
	if ft1 >= 0 {
		o.Ft1 = ft1
	}

	// check
	err = o.check()
	if err != nil {
		return
	}

	// derived
	e := o.Ecc
	o.M0 = 3.0 * (o.Fc*o.Fc - o.Ft*o.Ft) / (o.Fc * o.Ft) * e / (e + 1.0)
	o.E0 = o.Ft / o.E
	o.Eh = o.Bh - o.Dh
	o.Fh = (o.Bh - o.Dh) * o.Ch / (o.Ah - o.Bh)
	return
}

// check checks parameters
func (o *ConcreteDPM2) check() error {
	switch {
	case o.Fc <= 0 || o.Ft <= 0:
		return chk.Err("cdpm2: strengths must be positive. fc=%g ft=%g", o.Fc, o.Ft)
	case o.Ft >= o.Fc:
		return chk.Err("cdpm2: ft=%g must be smaller than fc=%g", o.Ft, o.Fc)
	case o.Ecc <= 0.5 || o.Ecc > 1:
		return chk.Err("cdpm2: eccentricity must be in (0.5, 1]. ecc=%g", o.Ecc)
	case o.Qh0 <= 0 || o.Qh0 > 1:
		return chk.Err("cdpm2: kinit must be in (0, 1]. kinit=%g", o.Qh0)
	case o.Hp < 0:
		return chk.Err("cdpm2: hp=%g must not be negative", o.Hp)
	case o.Df <= 0.5:
		return chk.Err("cdpm2: dilation=%g must be greater than 0.5", o.Df)
	case !(o.Ah > o.Bh && o.Bh > o.Dh && o.Dh > 0) || o.Ch <= 0:
		return chk.Err("cdpm2: ductility coefficients must satisfy ahard > bhard > dhard > 0 and chard > 0. ahard=%g bhard=%g chard=%g dhard=%g", o.Ah, o.Bh, o.Ch, o.Dh)
	case o.As < 1:
		return chk.Err("cdpm2: asoft=%g must not be smaller than 1", o.As)
	case o.Wf <= 0:
		return chk.Err("cdpm2: wf=%g must be positive", o.Wf)
	case o.Efc <= 0:
		return chk.Err("cdpm2: efc=%g must be positive", o.Efc)
	case o.Styp < LinearSoftening || o.Styp > ExponentialSoftening:
		return chk.Err("cdpm2: stype=%d is invalid; options are 0 (linear), 1 (bilinear) and 2 (exponential)", o.Styp)
	case o.Styp == BilinearSoftening && !(o.Wf1 > 0 && o.Wf1 < o.Wf && o.Ft1 > 0 && o.Ft1 < o.Ft):
		return chk.Err("cdpm2: bilinear softening requires 0 < wf1 < wf and 0 < ft1 < ft. wf1=%g ft1=%g", o.Wf1, o.Ft1)
	case o.YieldTol <= 0:
		return chk.Err("cdpm2: yieldtol=%g must be positive", o.YieldTol)
	case o.NewtonIt <= 0:
		return chk.Err("cdpm2: newtoniter=%d must be positive", o.NewtonIt)
	case o.MaxSub < 0:
		return chk.Err("cdpm2: maxsub=%d must not be negative", o.MaxSub)
	case o.Pert <= 0:
		return chk.Err("cdpm2: pert=%g must be positive", o.Pert)
	case o.RateFlag < RateOff || o.RateFlag > RateStrength:
		return chk.Err("cdpm2: rateflag=%d is invalid", o.RateFlag)
	case o.DeltaT < 0 || o.Helem < 0:
		return chk.Err("cdpm2: deltat=%g and helem=%g must not be negative", o.DeltaT, o.Helem)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o ConcreteDPM2) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 30000},
		&dbf.P{N: "nu", V: 0.2},
		&dbf.P{N: "fc", V: 30},
		&dbf.P{N: "ft", V: 3},
		&dbf.P{N: "ecc", V: 0.525},
		&dbf.P{N: "kinit", V: 0.3},
		&dbf.P{N: "ahard", V: 8e-2},
		&dbf.P{N: "bhard", V: 3e-3},
		&dbf.P{N: "chard", V: 2},
		&dbf.P{N: "dhard", V: 1e-6},
		&dbf.P{N: "hp", V: 0.01},
		&dbf.P{N: "dilation", V: 0.85},
		&dbf.P{N: "asoft", V: 15},
		&dbf.P{N: "wf", V: 0.1},
		&dbf.P{N: "efc", V: 1e-4},
		&dbf.P{N: "stype", V: 2},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o ConcreteDPM2) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, true, o.WithDamage, o.RateFlag != RateOff)
	copy(s.Sig, σ)
	copy(s.SigEff, σ)
	σ6 := pad6(σ)
	if f := o.trialYield(σ6, 0); f > o.YieldTol {
		err = chk.Err("cdpm2: initial stress σ=%v is outside the initial yield surface. f=%g", σ, f)
		return
	}
	if s.Dmg != nil {
		σV, ρ, θ, _ := Invariants(σ6)
		s.Dmg.EqStrain = o.equivalentStrain(σV, ρ, θ)
	}
	return
}

// InitIntVars1D initialises internal (secondary) variables for 1D analyses
func (o ConcreteDPM2) InitIntVars1D() (s *State, err error) {
	s = NewState(1, true, o.WithDamage, o.RateFlag != RateOff)
	return
}

// trialYield evaluates the yield function at an effective stress
func (o ConcreteDPM2) trialYield(σ [6]float64, κ float64) float64 {
	σV, ρ, θ, _ := Invariants(σ)
	return o.yieldValue(σV, ρ, θ, κ)
}

// le returns the characteristic length to be used at damage onset
func (o ConcreteDPM2) le(stp *Step) (l float64, err error) {
	l = o.Helem
	if l <= 0 && stp != nil {
		l = stp.Le
	}
	if l <= 0 || math.IsNaN(l) {
		err = chk.Err("cdpm2: characteristic length is not available; set helem or Step.Le")
	}
	return
}

// dt returns the time increment used by rate effects
func (o ConcreteDPM2) dt(stp *Step) float64 {
	if o.DeltaT > 0 {
		return o.DeltaT
	}
	if stp != nil {
		return stp.Dt
	}
	return 0
}
