// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/chk"

// CalcD computes D = dσ_new/dε_new
//  prev -- committed state at the beginning of the increment (needed by ConsistentD)
//  s    -- updated (trial) state
//  Note: the consistent tangent is computed by central differences of Update starting
//        from prev; the secant stiffness is returned if a perturbed update fails
func (o *ConcreteDPM2) CalcD(D [][]float64, prev, s *State, mode Response, stp *Step) (err error) {
	o.SmallElasticity.CalcD(D)
	switch mode {
	case ElasticD:
		return
	case SecantD:
		o.scaleD(D, 1.0-s.Omega())
		return
	case ConsistentD:
		if prev == nil {
			return chk.Err("cdpm2: consistent stiffness requires the previous state")
		}
		if !o.perturbD(D, prev, s, stp) {
			o.SmallElasticity.CalcD(D)
			o.scaleD(D, 1.0-s.Omega())
		}
		return
	}
	return chk.Err("cdpm2: stiffness mode %d is not available", mode)
}

// CalcD1D computes D = dσ_new/dε_new for uniaxial stress
func (o *ConcreteDPM2) CalcD1D(prev, s *State, mode Response, stp *Step) (float64, error) {
	switch mode {
	case ElasticD:
		return o.E, nil
	case SecantD:
		return (1.0 - o.omega1D(s)) * o.E, nil
	case ConsistentD:
		if prev == nil {
			return 0, chk.Err("cdpm2: consistent stiffness requires the previous state")
		}
		h := o.Pert
		Δε := s.Eps[0] - prev.Eps[0]
		a, b := prev.GetCopy(), prev.GetCopy()
		if o.Update1D(a, s.Eps[0]+h, Δε+h, stp) != nil || o.Update1D(b, s.Eps[0]-h, Δε-h, stp) != nil {
			return (1.0 - o.omega1D(s)) * o.E, nil
		}
		return (a.Sig[0] - b.Sig[0]) / (2.0 * h), nil
	}
	return 0, chk.Err("cdpm2: stiffness mode %d is not available", mode)
}

// perturbD computes the columns of D by central differences of Update
func (o *ConcreteDPM2) perturbD(D [][]float64, prev, s *State, stp *Step) (ok bool) {
	h := o.Pert
	n := o.Nsig
	ε := make([]float64, n)
	Δε := make([]float64, n)
	a, b := prev.GetCopy(), prev.GetCopy()
	for j := 0; j < n; j++ {
		a.Set(prev)
		b.Set(prev)
		for i := 0; i < n; i++ {
			ε[i] = s.Eps[i]
			Δε[i] = s.Eps[i] - prev.Eps[i]
		}
		ε[j] += h
		Δε[j] += h
		if o.Update(a, ε, Δε, stp) != nil {
			return false
		}
		ε[j] -= 2.0 * h
		Δε[j] -= 2.0 * h
		if o.Update(b, ε, Δε, stp) != nil {
			return false
		}
		for i := 0; i < n; i++ {
			D[i][j] = (a.Sig[i] - b.Sig[i]) / (2.0 * h)
		}
	}
	return true
}

// scaleD multiplies D by c
func (o *ConcreteDPM2) scaleD(D [][]float64, c float64) {
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] *= c
		}
	}
}

// omega1D returns the damage acting on the uniaxial stress
func (o *ConcreteDPM2) omega1D(s *State) float64 {
	if s.Dmg == nil {
		return 0
	}
	if s.SigEff[0] < 0 && !o.Iso {
		return s.Dmg.OmegaC
	}
	return s.Dmg.OmegaT
}
