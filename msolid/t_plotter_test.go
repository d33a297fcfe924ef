// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_plot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot01")

	// results
	o := newCdpm(tst, 1)
	var pth Path
	err := pth.SetCyclic(1, 10, 2, 2e-4, 2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv := runPath(tst, 1, o, &pth)

	// plot
	dir := tst.TempDir()
	var plr Plotter
	plr.SetFig(dir, "cdpm-1d.json", "png")
	plr.Lbl = "cdpm2"
	keys := append(PlotSet1, "sv,rho", "i,diss")
	err = plr.Plot(keys, drv.Res, drv.Eps)
	if err != nil {
		tst.Errorf("Plot failed: %v\n", err)
		return
	}
	chk.Int(tst, "number of files", len(plr.Files), len(keys))
	chk.String(tst, plr.Files[0], filepath.Join(dir, "cdpm-1d_exx_sxx.png"))
	for _, fn := range plr.Files {
		io.Pforan("file = %v\n", fn)
		info, e := os.Stat(fn)
		if e != nil {
			tst.Errorf("cannot find file %q: %v\n", fn, e)
			continue
		}
		if info.Size() == 0 {
			tst.Errorf("file %q is empty\n", fn)
		}
	}

	// errors
	if plr.Plot([]string{"exx"}, drv.Res, drv.Eps) == nil {
		tst.Errorf("Plot with incomplete key should have failed\n")
	}
	if plr.Plot([]string{"exx,unknown"}, drv.Res, drv.Eps) == nil {
		tst.Errorf("Plot with unknown quantity should have failed\n")
	}
	if plr.Plot(PlotSet1, drv.Res, drv.Eps[1:]) == nil {
		tst.Errorf("Plot with inconsistent results should have failed\n")
	}
}

func Test_plot02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot02. quantities")

	s := NewState(6, true, true, false)
	copy(s.Sig, []float64{1, 2, 3, 0, 0, 0})
	ε := []float64{1e-3, 2e-3, 3e-3, 0, 0, 0}
	s.Dmg.OmegaT, s.Dmg.OmegaC, s.Dmg.Alpha = 0.4, 0.2, 0.5
	s.Plast.Kappa = 1.5
	s.Work.W, s.Work.Diss = 7, 5
	for name, correct := range map[string]float64{
		"i":      3,
		"exx":    1e-3,
		"eyy":    2e-3,
		"ezz":    3e-3,
		"ev":     6e-3,
		"sxx":    1,
		"syy":    2,
		"szz":    3,
		"sv":     2,
		"omega":  0.3,
		"omegat": 0.4,
		"omegac": 0.2,
		"kappa":  1.5,
		"work":   7,
		"diss":   5,
	} {
		v, err := quantity(name, 3, s, ε)
		if err != nil {
			tst.Errorf("quantity %q failed: %v\n", name, err)
			continue
		}
		chk.Float64(tst, name, 1e-15, v, correct)
	}

	// 1D
	s = NewState(1, true, false, false)
	s.Sig[0] = -3
	v, _ := quantity("rho", 0, s, []float64{-1e-4})
	chk.Float64(tst, "rho 1D", 1e-15, v, 3*0.816496580927726)
	v, _ = quantity("syy", 0, s, []float64{-1e-4})
	chk.Float64(tst, "syy 1D", 1e-15, v, 0)
	v, _ = quantity("omegat", 0, s, []float64{-1e-4})
	chk.Float64(tst, "omegat without damage", 1e-15, v, 0)
}
