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

// softeningLaw returns the tensile stress of the softening law at crack opening w
func softeningLaw(o *ConcreteDPM2, w float64) float64 {
	switch o.Styp {
	case LinearSoftening:
		return math.Max(0, o.Ft*(1.0-w/o.Wf))
	case BilinearSoftening:
		if w <= o.Wf1 {
			return o.Ft - (o.Ft-o.Ft1)*w/o.Wf1
		}
		return math.Max(0, o.Ft1*(o.Wf-w)/(o.Wf-o.Wf1))
	}
	return o.Ft * math.Exp(-w/o.Wf)
}

func Test_cdpm14(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cdpm14. softening laws")

	for _, stype := range []int{LinearSoftening, BilinearSoftening, ExponentialSoftening} {

		// model
		o := newCdpm(tst, 1, &dbf.P{N: "stype", V: float64(stype)})
		chk.Int(tst, "stype", o.Styp, stype)
		wmax := 1.2 * o.Wf
		if stype == ExponentialSoftening {
			wmax = 3.0 * o.Wf
		}

		// uniaxial tension
		s, _ := o.InitIntVars1D()
		Δε := 2e-5
		var ε, w, σ float64
		var nlaw, nbefore, nafter int
		var σknee, σafter float64
		failed := false
		for inc := 0; inc < 10000 && w <= wmax; inc++ {
			prev := s.GetCopy()
			ε += Δε
			err := o.Update1D(s, ε, Δε, &Step{})
			if err != nil {
				tst.Errorf("stype=%d: Update1D failed at increment %d: %v\n", stype, inc, err)
				return
			}
			checkHistory(tst, []*State{prev, s})
			d := s.Dmg
			w = d.Le * (d.KappaT1 + d.OmegaT*d.KappaT2)
			σ = s.Sig[0]

			// stress on the softening curve while damage grows
			if d.KappaDT > prev.Dmg.KappaDT && d.OmegaT > 0 && d.OmegaT < OMEGAMAX {
				nlaw++
				law := softeningLaw(o, w)
				if math.Abs(σ-law) > 1e-6*o.Ft && !failed {
					tst.Errorf("stype=%d: stress %g at w=%g must be on the softening curve (%g)\n", stype, σ, w, law)
					failed = true
				}
				if w <= o.Wf1 {
					nbefore++
					σknee = σ
				} else {
					if nafter == 0 {
						σafter = σ
					}
					nafter++
				}
			}
		}
		io.Pforan("stype=%d: w=%g σ=%g ωt=%g; %d increments on the curve\n", stype, w, σ, s.Dmg.OmegaT, nlaw)
		if w <= wmax {
			tst.Errorf("stype=%d: crack opening did not reach %g\n", stype, wmax)
			continue
		}
		if nlaw < 10 {
			tst.Errorf("stype=%d: too few increments on the softening curve: %d\n", stype, nlaw)
		}

		// fully open crack
		if stype != ExponentialSoftening {
			chk.Float64(tst, "ωt (open crack)", 1e-15, s.Dmg.OmegaT, OMEGAMAX)
			if σ > 1e-5*o.Ft {
				tst.Errorf("stype=%d: stress %g must vanish after w > wf\n", stype, σ)
			}
		}

		// knee of the bilinear law
		if stype == BilinearSoftening {
			if nbefore == 0 || nafter == 0 {
				tst.Errorf("both branches must be reached. before=%d after=%d\n", nbefore, nafter)
				continue
			}
			io.Pforan("knee: σ(w <= wf1)=%g  σ(w > wf1)=%g  ft1=%g\n", σknee, σafter, o.Ft1)
			if σknee < o.Ft1-1e-6*o.Ft {
				tst.Errorf("stress before the knee %g must not be smaller than ft1=%g\n", σknee, o.Ft1)
			}
			if σafter > o.Ft1+1e-6*o.Ft {
				tst.Errorf("stress after the knee %g must not be greater than ft1=%g\n", σafter, o.Ft1)
			}
		}
	}
}

func Test_cdpm15(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cdpm15. isotropic damage and plasticity only")

	// isotropic damage: tension then compression
	o := newCdpm(tst, 3, &dbf.P{N: "isoflag", V: 1})
	pth := Path{Ex: []float64{0, 3e-4, -3e-4}, Nincs: 30}
	err := pth.init(3)
	if err != nil {
		tst.Errorf("init failed: %v\n", err)
		return
	}
	drv := runPath(tst, 3, o, &pth)
	checkHistory(tst, drv.Res)
	ndmgc := 0
	for i, s := range drv.Res {
		d := s.Dmg
		if d.OmegaC != d.OmegaT {
			tst.Errorf("isotropic damage at %d: ωc=%g must equal ωt=%g\n", i, d.OmegaC, d.OmegaT)
		}
		for k := 0; k < o.Nsig; k++ {
			if math.Abs(s.Sig[k]-(1.0-d.OmegaT)*s.SigEff[k]) > 1e-12*(1.0+math.Abs(s.SigEff[k])) {
				tst.Errorf("isotropic damage at %d: σ=%v must be (1-ω)σ̄ with σ̄=%v\n", i, s.Sig, s.SigEff)
				break
			}
		}
		if d.OmegaT > 0 && s.SigEff[0] < 0 {
			ndmgc++
		}
	}
	last := drv.Res[len(drv.Res)-1]
	io.Pforan("isotropic: ω=%g σ=%v\n", last.Dmg.OmegaT, last.Sig)
	if ndmgc == 0 {
		tst.Errorf("tension damage must act on compressive stresses\n")
	}

	// plasticity only
	for ndim, εmax := range map[int]float64{1: 1e-3, 3: 3e-4} {
		o = newCdpm(tst, ndim, &dbf.P{N: "damage", V: 0})
		if o.WithDamage {
			tst.Errorf("damage must be switched off\n")
			return
		}
		err = pth.SetUniaxial(ndim, 40, εmax)
		if err != nil {
			tst.Errorf("SetUniaxial failed: %v\n", err)
			return
		}
		drv = runPath(tst, ndim, o, &pth)
		checkHistory(tst, drv.Res)
		for i, s := range drv.Res {
			if s.Dmg != nil {
				tst.Errorf("ndim=%d: damage record must not be allocated\n", ndim)
				return
			}
			sameFloats(tst, io.Sf("ndim=%d: σ = σ̄ at %d", ndim, i), s.Sig, s.SigEff)
			switch s.Flag {
			case Elastic, Unloading, Plastic, VertexTension, VertexCompression:
			default:
				tst.Errorf("ndim=%d: flag %v at %d must not indicate damage\n", ndim, s.Flag, i)
			}
			if ndim == 1 && i > 0 && s.Sig[0] < drv.Res[i-1].Sig[0]-1e-4 {
				tst.Errorf("ndim=%d: stress must not soften without damage: %g < %g at %d\n", ndim, s.Sig[0], drv.Res[i-1].Sig[0], i)
			}
		}
		last = drv.Res[len(drv.Res)-1]
		io.Pforan("ndim=%d: σxx=%g κp=%g\n", ndim, last.Sig[0], last.Plast.Kappa)
		if last.Plast.Kappa <= 0 {
			tst.Errorf("ndim=%d: path must be plastic\n", ndim)
		}
		if last.Omega() != 0 {
			tst.Errorf("ndim=%d: damage must be zero\n", ndim)
		}
	}
}
