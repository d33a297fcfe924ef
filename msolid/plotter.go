// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// constants
var (
	PlotSet1 = []string{"exx,sxx", "exx,omega", "exx,kappa"}
	PlotSet2 = []string{"exx,sxx", "sv,rho", "i,omegat", "i,omegac"}
	PlotSet3 = []string{"ev,sv", "exx,sxx", "i,kappa", "i,diss"}
)

// labels of quantities
var plotLabels = map[string]string{
	"i":      "increment",
	"exx":    "εxx",
	"eyy":    "εyy",
	"ezz":    "εzz",
	"ev":     "εv",
	"sxx":    "σxx",
	"syy":    "σyy",
	"szz":    "σzz",
	"sv":     "σV",
	"rho":    "ρ",
	"omega":  "ω",
	"omegat": "ωt",
	"omegac": "ωc",
	"kappa":  "κp",
	"work":   "W",
	"diss":   "dissipated work",
}

// Plotter plots results of the Driver using gonum/plot
type Plotter struct {
	SaveDir string    // directory to put figures
	SaveFnk string    // filename key of figures
	Ext     string    // file extension: png, svg or pdf
	Width   vg.Length // width of each figure
	Height  vg.Length // height of each figure
	Lbl     string    // curve label; no legend if empty
	Files   []string  // files written by the last call to Plot
}

// SetFig sets figure space for plotting
func (o *Plotter) SetFig(savedir, savefnk, ext string) {
	o.SaveDir = savedir
	o.SaveFnk = io.FnKey(savefnk)
	o.Ext = ext
	if o.Ext == "" {
		o.Ext = "png"
	}
	if o.Width == 0 {
		o.Width = 4 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 3 * vg.Inch
	}
}

// Plot saves one figure per key; e.g. keys = {"exx,sxx", "i,omega"}
func (o *Plotter) Plot(keys []string, res []*State, eps [][]float64) (err error) {
	if len(res) < 1 || len(res) != len(eps) {
		return chk.Err("plotter: number of states (%d) and strains (%d) must be equal and positive", len(res), len(eps))
	}
	if o.Ext == "" || o.Width == 0 || o.Height == 0 {
		o.SetFig(o.SaveDir, o.SaveFnk, o.Ext)
	}
	o.Files = nil
	for _, key := range keys {
		names := strings.Split(key, ",")
		if len(names) != 2 {
			return chk.Err("plotter: key %q must have the form \"x,y\"", key)
		}
		pts := make(plotter.XYs, len(res))
		for i := range res {
			pts[i].X, err = quantity(names[0], i, res[i], eps[i])
			if err != nil {
				return
			}
			pts[i].Y, err = quantity(names[1], i, res[i], eps[i])
			if err != nil {
				return
			}
		}
		p := plot.New()
		p.X.Label.Text = plotLabels[names[0]]
		p.Y.Label.Text = plotLabels[names[1]]
		p.Add(plotter.NewGrid())
		l, e := plotter.NewLine(pts)
		if e != nil {
			return chk.Err("plotter: cannot draw %q\n%v", key, e)
		}
		p.Add(l)
		if o.Lbl != "" {
			p.Legend.Add(o.Lbl, l)
		}
		fn := filepath.Join(o.SaveDir, io.Sf("%s_%s_%s.%s", o.SaveFnk, names[0], names[1], o.Ext))
		err = p.Save(o.Width, o.Height, fn)
		if err != nil {
			return chk.Err("plotter: cannot save %q\n%v", fn, err)
		}
		o.Files = append(o.Files, fn)
	}
	return
}

// quantity extracts a named quantity from a state
func quantity(name string, idx int, s *State, ε []float64) (v float64, err error) {
	at := func(a []float64, i int) float64 {
		if i < len(a) {
			return a[i]
		}
		return 0
	}
	switch name {
	case "i":
		return float64(idx), nil
	case "exx":
		return at(ε, 0), nil
	case "eyy":
		return at(ε, 1), nil
	case "ezz":
		return at(ε, 2), nil
	case "ev":
		return at(ε, 0) + at(ε, 1) + at(ε, 2), nil
	case "sxx":
		return at(s.Sig, 0), nil
	case "syy":
		return at(s.Sig, 1), nil
	case "szz":
		return at(s.Sig, 2), nil
	case "sv", "rho":
		σV, ρ, _, _ := Invariants(pad6(s.Sig))
		if len(s.Sig) == 1 {
			σV, ρ, _ = Invariants1D(s.Sig[0])
		}
		if name == "sv" {
			return σV, nil
		}
		return ρ, nil
	case "omega":
		return s.Omega(), nil
	case "omegat":
		if s.Dmg != nil {
			v = s.Dmg.OmegaT
		}
		return
	case "omegac":
		if s.Dmg != nil {
			v = s.Dmg.OmegaC
		}
		return
	case "kappa":
		return s.Kappa(), nil
	case "work":
		return s.Work.W, nil
	case "diss":
		return s.Work.Diss, nil
	}
	return 0, chk.Err("plotter: quantity %q is not available", name)
}
