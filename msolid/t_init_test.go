// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// cdpmPrms returns the parameters of a normal strength concrete
func cdpmPrms(extra ...*dbf.P) dbf.Params {
	prms := []*dbf.P{
		&dbf.P{N: "E", V: 30000},
		&dbf.P{N: "nu", V: 0.2},
		&dbf.P{N: "fc", V: 30},
		&dbf.P{N: "ft", V: 3},
		&dbf.P{N: "wf", V: 0.1},
		&dbf.P{N: "helem", V: 10},
	}
	return append(prms, extra...)
}

// newCdpm allocates and initialises a CDPM2 model
func newCdpm(tst *testing.T, ndim int, extra ...*dbf.P) *ConcreteDPM2 {
	mdl, err := New("cdpm2")
	if err != nil {
		tst.Fatalf("New failed: %v\n", err)
	}
	err = mdl.Init(ndim, false, cdpmPrms(extra...))
	if err != nil {
		tst.Fatalf("Init failed: %v\n", err)
	}
	return mdl.(*ConcreteDPM2)
}

// sameFloats checks that two slices are bit-for-bit identical
func sameFloats(tst *testing.T, msg string, a, b []float64) {
	if len(a) != len(b) {
		tst.Errorf("%s: lengths differ: %d != %d\n", msg, len(a), len(b))
		return
	}
	for i := range a {
		if a[i] != b[i] {
			tst.Errorf("%s: component %d differs: %v != %v\n", msg, i, a[i], b[i])
		}
	}
}

// sameHistory checks that the history of two states is identical
func sameHistory(tst *testing.T, msg string, a, b *State) {
	sameFloats(tst, msg+": sig", a.Sig, b.Sig)
	sameFloats(tst, msg+": sigeff", a.SigEff, b.SigEff)
	sameFloats(tst, msg+": eps", a.Eps, b.Eps)
	if a.Flag != b.Flag {
		tst.Errorf("%s: flag differs: %v != %v\n", msg, a.Flag, b.Flag)
	}
	if *a.Work != *b.Work {
		tst.Errorf("%s: work differs: %+v != %+v\n", msg, *a.Work, *b.Work)
	}
	if a.Plast != nil {
		sameFloats(tst, msg+": epsp", a.Plast.Eps, b.Plast.Eps)
		if a.Plast.Kappa != b.Plast.Kappa {
			tst.Errorf("%s: kappa differs: %v != %v\n", msg, a.Plast.Kappa, b.Plast.Kappa)
		}
		if a.Plast.Dlam != b.Plast.Dlam || a.Plast.Loading != b.Plast.Loading || a.Plast.Apex != b.Plast.Apex {
			tst.Errorf("%s: last plastic increment differs: Δλ=%v,%v loading=%v,%v apex=%v,%v\n", msg,
				a.Plast.Dlam, b.Plast.Dlam, a.Plast.Loading, b.Plast.Loading, a.Plast.Apex, b.Plast.Apex)
		}
	}
	if a.Dmg != nil && *a.Dmg != *b.Dmg {
		tst.Errorf("%s: damage differs:\n%+v\n%+v\n", msg, *a.Dmg, *b.Dmg)
	}
	if a.Rate != nil && *a.Rate != *b.Rate {
		tst.Errorf("%s: rate record differs: %+v != %+v\n", msg, *a.Rate, *b.Rate)
	}
}
