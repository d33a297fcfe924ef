// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"github.com/tianhaichen/oofem-1/msolid"
)

// checkCmd returns the command initialising a material and printing its constants
func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <material>",
		Short: "Initialise a material and print its constants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mdb, err := a.readMats()
			if err != nil {
				return
			}
			mdl, err := a.model(mdb, args[0])
			if err != nil {
				return
			}
			mat := mdb.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "material %q: model %q, ndim = %d\n%s", mat.Name, mat.Model, a.cfg.Ndim, constants(mdl))
			return
		},
	}
}

// constants returns a table with the constants of a model
func constants(mdl msolid.Model) (l string) {
	row := func(key string, val interface{}) {
		l += io.Sf("  %-10s = %v\n", key, val)
	}
	elast := func(o msolid.SmallElasticity) {
		row("E", o.E)
		row("nu", o.Nu)
		row("K", o.K)
		row("G", o.G)
		row("nsig", o.Nsig)
	}
	switch o := mdl.(type) {
	case *msolid.ConcreteDPM2:
		elast(o.SmallElasticity)
		row("fc", o.Fc)
		row("ft", o.Ft)
		row("ecc", o.Ecc)
		row("m0", o.M0)
		row("e0", o.E0)
		row("wf", o.Wf)
		row("softening", softeningName(o.Styp))
		row("rateflag", o.RateFlag)
		row("helem", o.Helem)
		row("damage", o.WithDamage)
		row("isoflag", o.Iso)
	case *msolid.DruckerPrager:
		elast(o.SmallElasticity)
		row("M", o.M)
		row("Mb", o.Mb)
		row("qy0", o.Qy0)
		row("H", o.H)
	case *msolid.LinElast:
		elast(o.SmallElasticity)
	default:
		for _, p := range mdl.GetPrms() {
			row(p.N, p.V)
		}
	}
	return
}

// softeningName returns the name of a tension softening law
func softeningName(styp int) string {
	switch styp {
	case msolid.LinearSoftening:
		return "linear"
	case msolid.BilinearSoftening:
		return "bilinear"
	case msolid.ExponentialSoftening:
		return "exponential"
	}
	return "unknown"
}
