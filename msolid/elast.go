// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SmallElasticity implements linear/non-linear elasticity for small strain analyses
type SmallElasticity struct {
	E    float64 // Young modulus
	Nu   float64 // Poisson's coefficient
	K    float64 // Bulk modulus
	G    float64 // Shear modulus
	Nsig int     // number of stress components
}

// Init initialises this structure
func (o *SmallElasticity) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	if pstress {
		return chk.Err("plane-stress analyses are not available")
	}
	o.Nsig = 2 * ndim
	if ndim == 1 {
		o.Nsig = 1
	}
	var hasE, hasNu, hasK, hasG bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		}
	}
	switch {
	case hasE && hasNu:
		o.K, o.G = Calc_K_from_Enu(o.E, o.Nu), Calc_G_from_Enu(o.E, o.Nu)
	case hasK && hasG:
		o.E, o.Nu = Calc_E_from_KG(o.K, o.G), Calc_nu_from_KG(o.K, o.G)
	case hasE || hasNu || hasK || hasG:
		return chk.Err("elasticity: either {E,nu} or {K,G} must be given")
	default:
		o.E, o.Nu = 30000, 0.2
		o.K, o.G = Calc_K_from_Enu(o.E, o.Nu), Calc_G_from_Enu(o.E, o.Nu)
	}
	if o.E <= 0 || o.K <= 0 || o.G <= 0 {
		return chk.Err("elasticity: E=%g, K=%g and G=%g must be positive", o.E, o.K, o.G)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o SmallElasticity) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 30000},
		&dbf.P{N: "nu", V: 0.2},
	}
}

// CalcD computes the elastic stiffness D (nsig x nsig)
func (o SmallElasticity) CalcD(D [][]float64) {
	a := o.K - 2.0*o.G/3.0
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = a * Im[i] * Im[j]
		}
		D[i][i] += 2.0 * o.G
	}
}

// stiff computes σ := De・ε using 6 Mandel components
func (o SmallElasticity) stiff(σ *[6]float64, ε [6]float64) {
	trε := ε[0] + ε[1] + ε[2]
	for i := 0; i < 6; i++ {
		σ[i] = o.K*trε*Im[i] + 2.0*o.G*(ε[i]-trε*Im[i]/3.0)
	}
}

// compliance computes ε := De⁻¹・σ using 6 Mandel components
func (o SmallElasticity) compliance(ε *[6]float64, σ [6]float64) {
	trσ := σ[0] + σ[1] + σ[2]
	for i := 0; i < 6; i++ {
		ε[i] = trσ*Im[i]/(9.0*o.K) + (σ[i]-trσ*Im[i]/3.0)/(2.0*o.G)
	}
}

// LinElast implements linear elasticity as a stand-alone model
type LinElast struct {
	SmallElasticity
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "E", "nu", "K", "G", "rho":
		default:
			return chk.Err("lin-elast: parameter named %q is incorrect\n", p.N)
		}
	}
	return o.SmallElasticity.Init(ndim, pstress, prms)
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, false, false, false)
	copy(s.Sig, σ)
	copy(s.SigEff, σ)
	return
}

// InitIntVars1D initialises internal (secondary) variables for 1D analyses
func (o LinElast) InitIntVars1D() (s *State, err error) {
	s = NewState(1, false, false, false)
	return
}

// Update updates stresses for given strains
func (o *LinElast) Update(s *State, ε, Δε []float64, stp *Step) (err error) {
	σold := pad6(s.Sig)
	var Δσ [6]float64
	o.stiff(&Δσ, pad6(Δε))
	for i := 0; i < o.Nsig; i++ {
		s.SigEff[i] += Δσ[i]
		s.Sig[i] = s.SigEff[i]
	}
	copy(s.Eps, ε)
	s.Work.W += stressWork(σold[:o.Nsig], s.Sig, Δε)
	return
}

// CalcD computes D = dσ_new/dε_new; all responses coincide
func (o *LinElast) CalcD(D [][]float64, prev, s *State, mode Response, stp *Step) (err error) {
	o.SmallElasticity.CalcD(D)
	return
}

// Update1D updates the uniaxial stress for given strains
func (o *LinElast) Update1D(s *State, ε, Δε float64, stp *Step) (err error) {
	σold := s.Sig[0]
	s.SigEff[0] += o.E * Δε
	s.Sig[0] = s.SigEff[0]
	s.Eps[0] = ε
	s.Work.W += 0.5 * (σold + s.Sig[0]) * Δε
	return
}

// CalcD1D returns the Young modulus
func (o *LinElast) CalcD1D(prev, s *State, mode Response, stp *Step) (float64, error) {
	return o.E, nil
}

// Calc_K_from_Enu returns the bulk modulus for given E and ν
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_G_from_Enu returns the shear modulus for given E and ν
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// Calc_E_from_KG returns the Young modulus for given K and G
func Calc_E_from_KG(K, G float64) float64 { return 9.0 * K * G / (3.0*K + G) }

// Calc_nu_from_KG returns the Poisson coefficient for given K and G
func Calc_nu_from_KG(K, G float64) float64 { return (3.0*K - 2.0*G) / (6.0*K + 2.0*G) }

// pad6 copies a Mandel vector with 4 or 6 components into 6 components
func pad6(a []float64) (b [6]float64) {
	copy(b[:], a)
	return
}
