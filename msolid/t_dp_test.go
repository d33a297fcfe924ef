// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func Test_dp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dp01")

	// allocate driver
	ndim, pstress := 2, false
	var drv Driver
	err := drv.Init("test", "dp", ndim, pstress, []*dbf.P{
		&dbf.P{N: "E", V: 1500},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "M", V: 0.5},
		&dbf.P{N: "Mb", V: 0.5},
		&dbf.P{N: "qy0", V: 0.5},
		&dbf.P{N: "H", V: 0},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.Silent = true
	drv.TstD = tst
	drv.TolD = 1e-5

	// model
	dp := drv.Model().(*DruckerPrager)
	chk.Float64(tst, "K", 1e-12, dp.K, 1000)
	chk.Float64(tst, "G", 1e-12, dp.G, 600)

	// path: compression and shear
	pth := Path{
		Ex:    []float64{0, -2e-3, -4e-3},
		Ey:    []float64{0, -0.5e-3, -1e-3},
		Exy:   []float64{0, 1e-3, 2e-3},
		Nincs: 10,
	}
	err = pth.init(ndim)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// run
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// check
	chk.Int(tst, "number of results", len(drv.Res), 21)
	nplast := 0
	for i, s := range drv.Res {
		if s.Plast.Loading {
			nplast++
			chk.Float64(tst, io.Sf("f @ %d", i), 1e-10, dp.YieldFunc(s), 0)
			if s.Flag != Plastic {
				tst.Errorf("flag at %d must be plastic; %v is incorrect\n", i, s.Flag)
			}
		} else if dp.YieldFunc(s) > 0 {
			tst.Errorf("elastic state at %d must lie inside the yield surface\n", i)
		}
	}
	io.Pforan("number of plastic increments = %d\n", nplast)
	if nplast < 10 {
		tst.Errorf("path must have plastic increments\n")
	}
	last := drv.Res[len(drv.Res)-1]
	if last.Work.Diss <= 0 {
		tst.Errorf("dissipated work must be positive. diss=%g\n", last.Work.Diss)
	}
}

func Test_dp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dp02. return to apex")

	var drv Driver
	err := drv.Init("test", "dp", 3, false, []*dbf.P{
		&dbf.P{N: "E", V: 1500},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "M", V: 0.5},
		&dbf.P{N: "Mb", V: 0.5},
		&dbf.P{N: "qy0", V: 0.1},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.Silent = true
	drv.TstD = tst
	dp := drv.Model().(*DruckerPrager)

	var pth Path
	err = pth.SetHydrostatic(3, 2, 1e-3)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	s := drv.Res[len(drv.Res)-1]
	io.Pforan("σ = %v\n", s.Sig)
	chk.String(tst, s.Flag.String(), "vertex-tension")
	if !s.Plast.Apex {
		tst.Errorf("apex flag must be set\n")
	}
	p := -dp.Qy0 / dp.M
	chk.Array(tst, "σ", 1e-12, s.Sig, []float64{-p, -p, -p, 0, 0, 0})
	chk.Float64(tst, "f", 1e-12, dp.YieldFunc(s), 0)
}

func Test_dp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dp03. Mohr-Coulomb match")

	mdl, _ := New("dp")
	err := mdl.Init(3, false, []*dbf.P{
		&dbf.P{N: "c", V: 10},
		&dbf.P{N: "phi", V: 30},
		&dbf.P{N: "typ", V: 0},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	dp := mdl.(*DruckerPrager)
	si := math.Sin(math.Pi / 6.0)
	co := math.Cos(math.Pi / 6.0)
	chk.Float64(tst, "M", 1e-14, dp.M, 6.0*si/(3.0-si))
	chk.Float64(tst, "Mb", 1e-15, dp.Mb, dp.M)
	chk.Float64(tst, "qy0", 1e-12, dp.Qy0, 10*6.0*co/(3.0-si))

	// errors
	if mdl.Init(3, false, []*dbf.P{&dbf.P{N: "c", V: 1}, &dbf.P{N: "phi", V: 30}, &dbf.P{N: "typ", V: 5}}) == nil {
		tst.Errorf("Init with invalid cone should have failed\n")
	}
	if mdl.Init(3, false, []*dbf.P{&dbf.P{N: "fc", V: 30}}) == nil {
		tst.Errorf("Init with unknown parameter should have failed\n")
	}
	if _, err = dp.InitIntVars([]float64{0, 0, 0, 100, 0, 0}); err == nil {
		tst.Errorf("InitIntVars with stress outside the yield surface should have failed\n")
	}
}

func Test_linelast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast01")

	prms := []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.25},
	}

	// 1D
	var drv Driver
	err := drv.Init("test", "lin-elast", 1, false, prms)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.Silent = true
	drv.TstD = tst
	var pth Path
	err = pth.SetCyclic(1, 4, 2, 1e-3, 2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	for i, s := range drv.Res {
		chk.Float64(tst, io.Sf("σ @ %d", i), 1e-12, s.Sig[0], 1000*drv.Eps[i][0])
	}
	chk.Float64(tst, "work after closed cycles", 1e-15, drv.Res[len(drv.Res)-1].Work.W, 0)

	// 3D
	err = drv.Init("test", "lin-elast", 3, false, prms)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.Silent = true
	drv.TstD = tst
	err = pth.SetHydrostatic(3, 2, -3e-3)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	s := drv.Res[len(drv.Res)-1]
	K := Calc_K_from_Enu(1000, 0.25)
	chk.Array(tst, "σ", 1e-12, s.Sig, []float64{-3e-3 * K, -3e-3 * K, -3e-3 * K, 0, 0, 0})
	chk.Float64(tst, "work", 1e-15, s.Work.W, 0.5*3e-3*3e-3*K)

	// errors
	if drv.Init("test", "lin-elast", 3, false, []*dbf.P{&dbf.P{N: "E", V: 1000}}) == nil {
		tst.Errorf("Init with E only should have failed\n")
	}
	if drv.Init("test", "unknown", 3, false, prms) == nil {
		tst.Errorf("Init with unknown model should have failed\n")
	}
	if drv.Init("test", "dp", 1, false, prms) == nil {
		tst.Errorf("Init of model without uniaxial version should have failed\n")
	}
}
