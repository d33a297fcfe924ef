// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// DruckerPrager implements Drucker-Prager plasticity model
//  The hardening variable α0 is stored in State.Plast.Kappa
type DruckerPrager struct {
	SmallElasticity
	M   float64 // slope of fc line
	Mb  float64 // slope of fc line of plastic potential
	Qy0 float64 // initial qy
	H   float64 // hardening variable
}

// add model to factory
func init() {
	allocators["dp"] = func() Model { return new(DruckerPrager) }
}

// Init initialises model
func (o *DruckerPrager) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// parse parameters
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}
	var c, φ float64
	var typ int
	for _, p := range prms {
		switch p.N {
		case "M":
			o.M = p.V
		case "Mb":
			o.Mb = p.V
		case "qy0":
			o.Qy0 = p.V
		case "H":
			o.H = p.V
		case "c":
			c = p.V
		case "phi":
			φ = p.V
		case "typ":
			typ = int(p.V)
		case "E", "nu", "G", "K", "rho":
		default:
			return chk.Err("dp: parameter named %q is incorrect\n", p.N)
		}
	}

	// compute M from φ
	//  typ == 0 : compression cone (outer)
	//      == 1 : extension cone (inner)
	//      == 2 : plane-strain
	if φ > 0 {
		o.M, o.Qy0, err = Mmatch(c, φ, typ)
		if err != nil {
			return
		}
		o.Mb = o.M
	}
	if o.M < 0 || o.Mb < 0 || o.Qy0 < 0 {
		return chk.Err("dp: M=%g, Mb=%g and qy0=%g must not be negative", o.M, o.Mb, o.Qy0)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o DruckerPrager) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "M", V: 1},
		&dbf.P{N: "Mb", V: 1},
		&dbf.P{N: "qy0", V: 0.5},
		&dbf.P{N: "H", V: 0},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o DruckerPrager) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, true, false, false)
	copy(s.Sig, σ)
	copy(s.SigEff, σ)
	if f := o.YieldFunc(s); f > 0 {
		err = chk.Err("dp: initial stress σ=%v is outside the yield surface. f=%g", σ, f)
	}
	return
}

// Update updates stresses for given strains
func (o *DruckerPrager) Update(s *State, ε, Δε []float64, stp *Step) (err error) {

	// set flags
	s.Plast.Loading = false // => not elastoplastic
	s.Plast.Apex = false    // => not return-to-apex
	s.Plast.Dlam = 0        // Δγ := 0
	s.Flag = Elastic
	if s.Plast.Kappa > 0 {
		s.Flag = Unloading
	}

	// accessors
	σ := s.Sig
	σold := pad6(σ)
	α0 := &s.Plast.Kappa

	// copy of α0 at beginning of step
	α0ini := *α0

	// trial stress
	var ten [6]float64
	var devΔε_i float64
	trΔε := Δε[0] + Δε[1] + Δε[2]
	for i := 0; i < o.Nsig; i++ {
		devΔε_i = Δε[i] - trΔε*Im[i]/3.0
		ten[i] = σ[i] + o.K*trΔε*Im[i] + 2.0*o.G*devΔε_i // ten := σtr
	}
	ptr, qtr := calcP(ten[:o.Nsig]), calcQ(ten[:o.Nsig])

	// trial yield function
	ftr := qtr - o.M*ptr - o.Qy0 - o.H*(*α0)

	// elastic update
	if ftr <= 0.0 {
		copy(σ, ten[:o.Nsig]) // σ := ten = σtr
		o.finish(s, σold, ε, Δε)
		return
	}

	// elastoplastic update
	var str_i float64
	hp := 3.0*o.G + o.K*o.M*o.Mb + o.H
	s.Plast.Dlam = ftr / hp
	*α0 += s.Plast.Dlam
	pnew := ptr + s.Plast.Dlam*o.K*o.Mb
	m := 1.0 - s.Plast.Dlam*3.0*o.G/qtr
	for i := 0; i < o.Nsig; i++ {
		str_i = ten[i] + ptr*Im[i]
		σ[i] = m*str_i - pnew*Im[i]
	}
	s.Plast.Loading = true
	s.Flag = Plastic

	// check for apex singularity
	acone := qtr - s.Plast.Dlam*3.0*o.G
	if acone < 0 {
		den := 3.0*o.K*o.M + o.H
		if den <= 0 {
			eid, ipid := stepIds(stp)
			return chk.Err("dp: eid=%d ipid=%d: return to apex requires 3KM + H > 0", eid, ipid)
		}
		s.Plast.Dlam = (-o.M*ptr - o.Qy0 - o.H*α0ini) / den
		*α0 = α0ini + s.Plast.Dlam
		pnew = ptr + s.Plast.Dlam*3.0*o.K
		for i := 0; i < o.Nsig; i++ {
			σ[i] = -pnew * Im[i]
		}
		s.Plast.Apex = true
		s.Flag = VertexTension
	}
	o.finish(s, σold, ε, Δε)
	return
}

// finish sets strains, plastic strains and work after the stress update
func (o *DruckerPrager) finish(s *State, σold [6]float64, ε, Δε []float64) {
	var Δσ, Δεe [6]float64
	for i := 0; i < o.Nsig; i++ {
		Δσ[i] = s.Sig[i] - σold[i]
	}
	o.compliance(&Δεe, Δσ)
	for i := 0; i < o.Nsig; i++ {
		if s.Plast.Loading {
			s.Plast.Eps[i] += Δε[i] - Δεe[i]
		}
		s.Eps[i] = ε[i]
	}
	copy(s.SigEff, s.Sig)
	s.Work.W += stressWork(σold[:o.Nsig], s.Sig, Δε)
	var εe [6]float64
	σ := pad6(s.Sig)
	o.compliance(&εe, σ)
	var We float64
	for i := 0; i < o.Nsig; i++ {
		We += 0.5 * σ[i] * εe[i]
	}
	s.Work.Diss = s.Work.W - We
}

// CalcD computes D = dσ_new/dε_new consistent with Update
func (o *DruckerPrager) CalcD(D [][]float64, prev, s *State, mode Response, stp *Step) (err error) {

	// elastic
	o.SmallElasticity.CalcD(D)
	if mode == ElasticD || mode == SecantD || !s.Plast.Loading {
		return
	}
	if mode != ConsistentD {
		return chk.Err("dp: stiffness mode %d is not available", mode)
	}

	// return to apex
	if s.Plast.Apex {
		a1 := o.K * o.H / (3.0*o.K*o.M + o.H)
		for i := 0; i < o.Nsig; i++ {
			for j := 0; j < o.Nsig; j++ {
				D[i][j] = a1 * Im[i] * Im[j]
			}
		}
		return
	}

	// elastoplastic => consistent stiffness
	var ten [6]float64
	σ := s.Sig
	Δγ := s.Plast.Dlam
	p, q := calcP(σ), calcQ(σ)
	qtr := q + Δγ*3.0*o.G
	m := 1.0 - Δγ*3.0*o.G/qtr
	nstr := sq2by3 * qtr // norm(str)
	for i := 0; i < o.Nsig; i++ {
		ten[i] = (σ[i] + p*Im[i]) / (m * nstr) // ten := unit(str) = snew / (m * nstr)
	}
	hp := 3.0*o.G + o.K*o.M*o.Mb + o.H
	a1 := o.K - o.K*o.K*o.Mb*o.M/hp
	a2 := -2.0 * o.G * o.K * o.Mb * sq3by2 / hp
	b1 := -utl.SQ6 * o.G * o.M * o.K / hp
	b2 := 6.0 * o.G * o.G * (Δγ/qtr - 1.0/hp)
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = 2.0*o.G*m*Psd[i][j] +
				a1*Im[i]*Im[j] +
				a2*Im[i]*ten[j] +
				b1*ten[i]*Im[j] +
				b2*ten[i]*ten[j]
		}
	}
	return
}

// YieldFunc computes the yield function value
func (o DruckerPrager) YieldFunc(s *State) float64 {
	p, q := calcP(s.Sig), calcQ(s.Sig)
	return q - o.M*p - o.Qy0 - o.H*s.Plast.Kappa
}
