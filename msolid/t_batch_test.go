// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// uniaxialStrains returns npoints strain vectors with εxx = exx * (i+1) / npoints
func uniaxialStrains(npoints, nsig int, exx float64) (ε [][]float64) {
	ε = make([][]float64, npoints)
	for i := 0; i < npoints; i++ {
		ε[i] = make([]float64, nsig)
		ε[i][0] = exx * float64(i+1) / float64(npoints)
	}
	return
}

func Test_batch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch01")

	// batch and single-point results must coincide
	o := newCdpm(tst, 3)
	npoints := 16
	bat, err := NewBatch(o, npoints)
	if err != nil {
		tst.Errorf("NewBatch failed: %v\n", err)
		return
	}
	bat.Silent = true
	bat.Limit = 4
	nincs := 10
	ε := uniaxialStrains(npoints, 6, 0)
	Δε := uniaxialStrains(npoints, 6, 2e-5)
	ref := make([]*State, npoints)
	for i := 0; i < npoints; i++ {
		ref[i], _ = o.InitIntVars(make([]float64, 6))
	}
	for inc := 0; inc < nincs; inc++ {
		for i := 0; i < npoints; i++ {
			ε[i][0] += Δε[i][0]
			err = o.Update(ref[i], ε[i], Δε[i], &Step{Eid: i})
			if err != nil {
				tst.Errorf("Update failed: %v\n", err)
				return
			}
		}
		err = bat.Run(context.Background(), ε, Δε)
		if err != nil {
			tst.Errorf("Run failed: %v\n", err)
			return
		}
	}
	for i := 0; i < npoints; i++ {
		sameHistory(tst, io.Sf("point %d", i), bat.Points[i].Cur, ref[i])
		sameHistory(tst, io.Sf("point %d (trial)", i), bat.Points[i].Tmp, ref[i])
	}
	io.Pforan("σxx(last) = %v\n", bat.Points[npoints-1].Cur.Sig[0])
	if bat.Points[npoints-1].Cur.Plast.Kappa <= 0 {
		tst.Errorf("last point must be plastic\n")
	}
}

func Test_batch02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch02. rollback")

	o := newCdpm(tst, 3, &dbf.P{N: "newtoniter", V: 1}, &dbf.P{N: "maxsub", V: 0})
	npoints := 8
	bat, err := NewBatch(o, npoints)
	if err != nil {
		tst.Errorf("NewBatch failed: %v\n", err)
		return
	}
	bat.Silent = true

	// one point fails
	ε := uniaxialStrains(npoints, 6, 1e-5)
	ε[5][0] = 3e-4
	err = bat.Run(context.Background(), ε, ε)
	if !errors.Is(err, ErrNotConverged) {
		tst.Errorf("Run must fail with ErrNotConverged. err=%v\n", err)
	}
	zero, _ := o.InitIntVars(make([]float64, 6))
	for i, sta := range bat.Points {
		sameHistory(tst, io.Sf("point %d", i), sta.Cur, zero)
		sameHistory(tst, io.Sf("point %d (trial)", i), sta.Tmp, zero)
	}

	// cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ε[5][0] = 1e-5
	err = bat.Run(ctx, ε, ε)
	if !errors.Is(err, context.Canceled) {
		tst.Errorf("Run must fail with context.Canceled. err=%v\n", err)
	}
	for i, sta := range bat.Points {
		sameHistory(tst, io.Sf("point %d", i), sta.Cur, zero)
	}

	// wrong sizes
	if bat.Run(context.Background(), ε[:2], ε) == nil {
		tst.Errorf("Run with wrong number of strains should have failed\n")
	}
	bat.Steps = make([]Step, 3)
	if bat.Run(context.Background(), ε, ε) == nil {
		tst.Errorf("Run with wrong number of steps should have failed\n")
	}

	// steps
	bat.Steps = make([]Step, npoints)
	err = bat.Run(context.Background(), ε, ε)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Float64(tst, "σxx", 1e-12, bat.Points[7].Cur.Sig[0], (o.K+4.0*o.G/3.0)*1e-5)

	// models without small strain version
	if _, err = NewBatch(new(fakeModel), 2); err == nil {
		tst.Errorf("NewBatch with model without Update should have failed\n")
	}
}

// fakeModel implements Model only
type fakeModel struct{}

func (o *fakeModel) Init(ndim int, pstress bool, prms dbf.Params) error { return nil }
func (o *fakeModel) GetPrms() dbf.Params { return nil }
func (o *fakeModel) InitIntVars(σ []float64) (*State, error) { return NewState(len(σ), false, false, false), nil }
