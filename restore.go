// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cobra"
	"github.com/tianhaichen/oofem-1/ckpt"
	"github.com/tianhaichen/oofem-1/msolid"
)

// restoreCmd returns the command resuming a run from its last checkpoint
func (a *app) restoreCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "restore [run-id]",
		Short: "Resume a checkpointed run",
		Long: `Restore reads the last committed record of a run from the checkpoint
database (--store) and continues the simulation along the run's strain path.
With --list, the runs in the database are printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if a.cfg.Store == "" {
				return chk.Err("restore requires a checkpoint database (--store)")
			}
			store, err := a.openStore()
			if err != nil {
				return
			}
			defer store.Close()
			ctx, w := cmd.Context(), cmd.OutOrStdout()

			// list runs
			if list || len(args) == 0 {
				runs, e := store.Runs(ctx)
				if e != nil {
					return e
				}
				fmt.Fprintf(w, "%-38s%-16s%-16s%6s  %s\n", "id", "label", "material", "ndim", "created")
				for _, r := range runs {
					fmt.Fprintf(w, "%-38s%-16s%-16s%6d  %s\n", r.Id, r.Label, r.Material, r.Ndim, r.Created.Format("2006-01-02 15:04:05"))
				}
				return
			}

			// run data
			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return
			}
			a.cfg.Ndim = run.Ndim
			a.cfg.Matdir, a.cfg.Matfn = splitMatfile(run.Matfile)
			mdb, err := a.readMats()
			if err != nil {
				return
			}
			mdl, err := a.model(mdb, run.Material)
			if err != nil {
				return
			}
			var pth msolid.Path
			err = pth.ReadJson(run.Ndim, run.Pathfile)
			if err != nil {
				return
			}

			// last committed record
			s, err := initState(mdl, run.Ndim)
			if err != nil {
				return
			}
			sta := msolid.NewStatus(s)
			step, err := store.Load(ctx, run.Id, 0, 0, sta)
			var resume *msolid.State
			switch {
			case err == nil:
				resume = sta.Cur
			case errors.Is(err, ckpt.ErrNotFound):
				step, err = 0, nil
			default:
				return
			}
			fmt.Fprintf(w, "run = %s; restarting after increment %d\n", run.Id, step)
			return a.simulate(ctx, w, mdl, &pth, store, run.Id, run.Label, resume, step)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list runs")
	return cmd
}

// initState allocates the initial state of a model
func initState(mdl msolid.Model, ndim int) (*msolid.State, error) {
	if ndim == 1 {
		m, ok := mdl.(msolid.OneD)
		if !ok {
			return nil, chk.Err("model cannot be used in uniaxial stress analyses")
		}
		return m.InitIntVars1D()
	}
	return mdl.InitIntVars(make([]float64, 2*ndim))
}
