// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	goio "io"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"github.com/tianhaichen/oofem-1/ckpt"
	"github.com/tianhaichen/oofem-1/msolid"
)

// runCmd returns the command running one point along a strain path
func (a *app) runCmd() *cobra.Command {
	var pathfn, label string
	cmd := &cobra.Command{
		Use:   "run <material>",
		Short: "Run one integration point along a strain path",
		Long: `Run drives one integration point of a material along the strain path
given in a JSON (.pat) file and prints the committed states.

Example:
  cdpm run C30 --matfile examples/cdpm2/concrete.mat --ndim 1 --path examples/cdpm2/tension.pat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			matname := args[0]
			mdb, err := a.readMats()
			if err != nil {
				return
			}
			mdl, err := a.model(mdb, matname)
			if err != nil {
				return
			}
			var pth msolid.Path
			err = pth.ReadJson(a.cfg.Ndim, pathfn)
			if err != nil {
				return
			}
			store, err := a.openStore()
			if err != nil {
				return
			}
			defer store.Close()
			if label == "" {
				label = matname
			}
			runid := ""
			if store != nil {
				runid, err = store.NewRun(cmd.Context(), ckpt.Run{
					Label:    label,
					Matfile:  filepath.Join(a.cfg.Matdir, a.cfg.Matfn),
					Material: matname,
					Pathfile: pathfn,
					Ndim:     a.cfg.Ndim,
				})
				if err != nil {
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "run = %s\n", runid)
			}
			return a.simulate(cmd.Context(), cmd.OutOrStdout(), mdl, &pth, store, runid, label, nil, 0)
		},
	}
	cmd.Flags().StringVar(&pathfn, "path", "", "strain path file (.pat)")
	cmd.Flags().StringVar(&label, "label", "", "label of run (default: material name)")
	cmd.MarkFlagRequired("path")
	return cmd
}

// simulate runs the driver, saving checkpoints if store != nil, and prints the results
//  resume -- committed state to start from; nil means the initial state
//  start  -- number of increments already performed by resume
func (a *app) simulate(ctx context.Context, w goio.Writer, mdl msolid.Model, pth *msolid.Path, store *ckpt.Store, runid, label string, resume *msolid.State, start int) (err error) {

	// driver
	var drv msolid.Driver
	err = drv.InitWithModel(a.cfg.Ndim, mdl)
	if err != nil {
		return
	}
	drv.Silent = a.cfg.Silent
	drv.MaxHalve = a.cfg.MaxHalve
	drv.Resume, drv.StartInc = resume, start
	if store != nil {
		drv.OnCommit = func(inc int, s *msolid.State) error {
			return store.Save(ctx, runid, drv.Eid, drv.Ipid, inc, &msolid.Status{Cur: s, Tmp: s})
		}
	}

	// run
	err = drv.Run(pth)
	fmt.Fprint(w, resultsTable(drv.Res, drv.Eps, start))
	if err != nil {
		return chk.Err("simulation failed after %d increments\n%v", start+len(drv.Res)-1, err)
	}
	io.Pf("%d increments; %d halvings\n", len(drv.Res)-1, drv.Nhalv)

	// figures
	if a.cfg.Plotdir == "" {
		return
	}
	var plr msolid.Plotter
	plr.SetFig(a.cfg.Plotdir, label, a.cfg.Plotext)
	plr.Lbl = label
	keys := msolid.PlotSet1
	if a.cfg.Ndim > 1 {
		keys = msolid.PlotSet2
	}
	err = plr.Plot(keys, drv.Res, drv.Eps)
	if err != nil {
		return
	}
	for _, fn := range plr.Files {
		fmt.Fprintf(w, "file <%s> written\n", fn)
	}
	return
}

// resultsTable returns a table with the main quantities of each state
func resultsTable(res []*msolid.State, eps [][]float64, start int) (l string) {
	l = io.Sf("%6s%14s%14s%12s%12s%12s  %s\n", "inc", "exx", "sxx", "omega", "kappa", "diss", "flag")
	for i, s := range res {
		l += io.Sf("%6d%14.6e%14.6e%12.6f%12.6f%12.4e  %v\n", start+i, eps[i][0], s.Sig[0], s.Omega(), s.Kappa(), s.Work.Diss, s.Flag)
	}
	return
}
