// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Driver runs simulations with constitutive models for solids along strain paths
type Driver struct {

	// input
	nsig  int   // number of stress components
	model Model // solid model
	small Small // model for 2D/3D analyses (nil in 1D)
	oned  OneD  // model for uniaxial stress (nil in 2D/3D)

	// settings
	Silent   bool     // do not show messages
	MaxHalve int      // maximum number of halvings of the strain increment
	Mode     Response // stiffness mode checked by TstD
	TolD     float64  // relative tolerance to check consistent matrix
	HpertD   float64  // strain perturbation to check consistent matrix
	VerD     bool     // verbose check of D
	Eid      int      // element id passed to models
	Ipid     int      // integration point id passed to models

	// check D matrix
	TstD *testing.T // if != nil, do check consistent matrix

	// restart
	Resume   *State                        // if != nil, committed state to start from
	StartInc int                           // number of increments already performed by Resume
	OnCommit func(inc int, s *State) error // if != nil, called after each committed increment

	// results
	Res   []*State    // committed states after each increment
	Eps   [][]float64 // strains after each increment
	D     [][]float64 // last stiffness matrix
	Nhalv int         // number of halvings performed
}

// Init initialises driver by allocating and initialising a model
func (o *Driver) Init(simfnk, modelname string, ndim int, pstress bool, prms dbf.Params) (err error) {
	model, _ := GetModel(simfnk, "solid", modelname, true)
	if model == nil {
		return chk.Err("cannot allocate model %q", modelname)
	}
	err = model.Init(ndim, pstress, prms)
	if err != nil {
		return
	}
	return o.InitWithModel(ndim, model)
}

// InitWithModel initialises driver with an initialised model
func (o *Driver) InitWithModel(ndim int, model Model) (err error) {
	o.model = model
	o.small, o.oned = nil, nil
	if ndim == 1 {
		m, ok := model.(OneD)
		if !ok {
			return chk.Err("model cannot be used in uniaxial stress analyses")
		}
		o.oned, o.nsig = m, 1
	} else {
		m, ok := model.(Small)
		if !ok {
			return chk.Err("model cannot be used in small strain analyses")
		}
		o.small, o.nsig = m, 2*ndim
	}
	o.MaxHalve = 8
	o.Mode = ConsistentD
	o.TolD = 1e-5
	o.HpertD = 1e-7
	o.VerD = chk.Verbose
	o.D = utl.Alloc(o.nsig, o.nsig)
	return
}

// Model returns the model used by this driver
func (o Driver) Model() Model {
	return o.model
}

// Run runs simulation
func (o *Driver) Run(pth *Path) (err error) {

	// check
	if pth.Size() < 2 {
		return chk.Err("path must have at least two key points")
	}
	if len(pth.Eps[0]) != o.nsig {
		return chk.Err("path has %d strain components but model requires %d", len(pth.Eps[0]), o.nsig)
	}

	// first state
	var s *State
	switch {
	case o.Resume != nil:
		if len(o.Resume.Sig) != o.nsig {
			return chk.Err("cannot resume from state with %d stress components; model requires %d", len(o.Resume.Sig), o.nsig)
		}
		s = o.Resume.GetCopy()
	case o.oned != nil:
		s, err = o.oned.InitIntVars1D()
	default:
		s, err = o.model.InitIntVars(make([]float64, o.nsig))
	}
	if err != nil {
		return
	}
	sta := NewStatus(s)
	o.Res = []*State{s.GetCopy()}
	o.Eps = [][]float64{append([]float64{}, s.Eps...)}
	o.Nhalv = 0
	stp := Step{Eid: o.Eid, Ipid: o.Ipid, Dt: pth.Dt, Le: pth.Le}
	if o.StartInc < 0 || o.StartInc > (pth.Size()-1)*pth.Nincs {
		return chk.Err("cannot start at increment %d of path with %d increments", o.StartInc, (pth.Size()-1)*pth.Nincs)
	}

	// loop over key points
	ε := append([]float64{}, s.Eps...)
	Δε := make([]float64, o.nsig)
	n := 0
	for k := 1; k < pth.Size(); k++ {
		m := float64(pth.Nincs)
		for inc := 0; inc < pth.Nincs; inc++ {
			n++
			if n <= o.StartInc {
				continue
			}
			for i := 0; i < o.nsig; i++ {
				Δε[i] = (pth.Eps[k][i] - pth.Eps[k-1][i]) / m
			}
			err = o.advance(sta, ε, Δε, stp, 0)
			if err != nil {
				if !o.Silent {
					io.Pfred("driver: failed at key point %d, increment %d: %v\n", k, inc, err)
				}
				return
			}
			copy(ε, sta.Cur.Eps)
			o.Res = append(o.Res, sta.Cur.GetCopy())
			o.Eps = append(o.Eps, append([]float64{}, ε...))
			if o.OnCommit != nil {
				err = o.OnCommit(n, sta.Cur)
				if err != nil {
					return
				}
			}
		}
	}
	if !o.Silent {
		io.Pf("driver: %d increments; %d halvings\n", len(o.Res)-1, o.Nhalv)
	}
	return
}

// advance updates the status with the strain increment Δε starting from ε0,
// halving the increment if the local iterations do not converge
func (o *Driver) advance(sta *Status, ε0, Δε []float64, stp Step, level int) (err error) {

	// trial update
	ε := make([]float64, o.nsig)
	for i := 0; i < o.nsig; i++ {
		ε[i] = ε0[i] + Δε[i]
	}
	sta.InitTemp()
	stpT := stp
	stpT.Dt = stp.Dt / math.Pow(2, float64(level))
	err = o.update(sta.Tmp, ε, Δε, &stpT)
	if err == nil {
		if o.TstD != nil {
			o.checkD(sta.Cur, sta.Tmp, ε, Δε, &stpT)
		}
		sta.Commit()
		return
	}
	sta.Rollback()

	// halve increment
	if !errors.Is(err, ErrNotConverged) || level >= o.MaxHalve {
		return
	}
	o.Nhalv++
	if !o.Silent {
		io.Pfyel("driver: halving strain increment (level %d)\n", level+1)
	}
	half := make([]float64, o.nsig)
	for i := 0; i < o.nsig; i++ {
		half[i] = Δε[i] / 2.0
	}
	err = o.advance(sta, ε0, half, stp, level+1)
	if err != nil {
		return
	}
	return o.advance(sta, sta.Cur.Eps, half, stp, level+1)
}

// update calls the model update
func (o *Driver) update(s *State, ε, Δε []float64, stp *Step) error {
	if o.oned != nil {
		return o.oned.Update1D(s, ε[0], Δε[0], stp)
	}
	return o.small.Update(s, ε, Δε, stp)
}

// calcD calls the model stiffness
func (o *Driver) calcD(prev, s *State, stp *Step) (err error) {
	if o.oned != nil {
		o.D[0][0], err = o.oned.CalcD1D(prev, s, o.Mode, stp)
		return
	}
	return o.small.CalcD(o.D, prev, s, o.Mode, stp)
}

// checkD compares D with the derivatives of the stress obtained by finite differences
func (o *Driver) checkD(prev, s *State, ε, Δε []float64, stp *Step) {
	err := o.calcD(prev, s, stp)
	if err != nil {
		o.TstD.Errorf("CalcD failed: %v\n", err)
		return
	}
	h := o.HpertD
	tmp := prev.GetCopy()
	εt := make([]float64, o.nsig)
	Δεt := make([]float64, o.nsig)
	σ := func(j int, δ float64) []float64 {
		copy(εt, ε)
		copy(Δεt, Δε)
		εt[j] += δ
		Δεt[j] += δ
		tmp.Set(prev)
		if e := o.update(tmp, εt, Δεt, stp); e != nil {
			o.TstD.Errorf("update for numerical D failed: %v\n", e)
		}
		return append([]float64{}, tmp.Sig...)
	}
	for j := 0; j < o.nsig; j++ {
		σp, σm := σ(j, h), σ(j, -h)
		for i := 0; i < o.nsig; i++ {
			dnum := (σp[i] - σm[i]) / (2.0 * h)
			tol := o.TolD * math.Max(1, math.Abs(o.D[i][j]))
			chk.AnaNum(o.TstD, io.Sf("D%d%d", i, j), tol, o.D[i][j], dnum, o.VerD)
		}
	}
}
