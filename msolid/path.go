// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Path holds strain paths
//  Note: shear components are tensorial (not engineering); they are converted to Mandel's basis
type Path struct {

	// input
	Ex    []float64 `json:"ex"`    // εxx at key points
	Ey    []float64 `json:"ey"`    // εyy at key points
	Ez    []float64 `json:"ez"`    // εzz at key points
	Exy   []float64 `json:"exy"`   // εxy at key points
	Eyz   []float64 `json:"eyz"`   // εyz at key points
	Ezx   []float64 `json:"ezx"`   // εzx at key points
	Nincs int       `json:"nincs"` // number of increments between key points
	Dt    float64   `json:"dt"`    // time increment
	Le    float64   `json:"le"`    // characteristic length

	// derived
	Ndim int         `json:"-"` // space dimension; 1 means uniaxial stress
	Eps  [][]float64 `json:"-"` // [npoints][nsig] strains (Mandel) at key points
}

// Size returns the number of key points
func (o Path) Size() int {
	return len(o.Eps)
}

// ReadFile reads a file; a failure of io.ReadFile is returned as an error
func ReadFile(fn string) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, chk.Err("%v", r)
		}
	}()
	b = io.ReadFile(fn)
	return
}

// ReadJson reads json file
func (o *Path) ReadJson(ndim int, fn string) (err error) {
	b, err := ReadFile(fn)
	if err != nil {
		return chk.Err("cannot read path file %q\n%v", fn, err)
	}
	err = json.Unmarshal(b, o)
	if err != nil {
		return chk.Err("cannot unmarshal path file %q\n%v", fn, err)
	}
	return o.init(ndim)
}

// init checks the input and computes the key points
func (o *Path) init(ndim int) (err error) {
	o.Ndim = ndim
	if o.Nincs < 1 {
		o.Nincs = 1
	}
	if o.Dt < 0 || o.Le < 0 {
		return chk.Err("path: dt=%g and le=%g must not be negative", o.Dt, o.Le)
	}
	np := len(o.Ex)
	if np < 2 {
		return chk.Err("path: at least two key points are required; %d is incorrect", np)
	}
	nsig := 2 * ndim
	if ndim == 1 {
		nsig = 1
	}
	comps := [][]float64{o.Ex, o.Ey, o.Ez, o.Exy, o.Eyz, o.Ezx}
	for k, c := range comps {
		if len(c) == 0 {
			continue
		}
		if k >= nsig {
			return chk.Err("path: component %d is not available with ndim=%d", k, ndim)
		}
		if len(c) != np {
			return chk.Err("path: all components must have the same number of key points. %d != %d", len(c), np)
		}
	}
	o.Eps = utl.Alloc(np, nsig)
	for i := 0; i < np; i++ {
		for k := 0; k < nsig; k++ {
			if len(comps[k]) == 0 {
				continue
			}
			o.Eps[i][k] = comps[k][i]
			if k > 2 {
				o.Eps[i][k] *= utl.SQ2
			}
		}
	}
	return
}

// SetUniaxial sets a path with εxx going from zero to each value in exx (other strains are zero)
func (o *Path) SetUniaxial(ndim, nincs int, exx ...float64) (err error) {
	o.Ex = append([]float64{0}, exx...)
	o.Ey, o.Ez, o.Exy, o.Eyz, o.Ezx = nil, nil, nil, nil, nil
	o.Nincs = nincs
	return o.init(ndim)
}

// SetHydrostatic sets a path with equal normal strains εxx = εyy = εzz = ev/3
func (o *Path) SetHydrostatic(ndim, nincs int, ev ...float64) (err error) {
	if ndim == 1 {
		return chk.Err("path: hydrostatic paths require ndim >= 2")
	}
	o.Ex = []float64{0}
	for _, v := range ev {
		o.Ex = append(o.Ex, v/3.0)
	}
	o.Ey = append([]float64{}, o.Ex...)
	o.Ez = append([]float64{}, o.Ex...)
	o.Exy, o.Eyz, o.Ezx = nil, nil, nil
	o.Nincs = nincs
	return o.init(ndim)
}

// SetCyclic sets a uniaxial path with ncycles of loading to amp and unloading to zero,
// the amplitude growing by mult after each cycle
func (o *Path) SetCyclic(ndim, nincs, ncycles int, amp, mult float64) (err error) {
	if ncycles < 1 {
		return chk.Err("path: number of cycles must be positive")
	}
	exx := make([]float64, 0, 2*ncycles)
	for i := 0; i < ncycles; i++ {
		exx = append(exx, amp, 0)
		amp *= mult
	}
	return o.SetUniaxial(ndim, nincs, exx...)
}
