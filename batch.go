// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"
	"github.com/tianhaichen/oofem-1/msolid"
)

// batchCmd returns the command running many points concurrently
func (a *app) batchCmd() *cobra.Command {
	var pathfn string
	var npoints int
	var jitter float64
	cmd := &cobra.Command{
		Use:   "batch <material>",
		Short: "Run many integration points concurrently",
		Long: `Batch runs npoints integration points of one material along scaled copies
of a strain path. Point i follows the path multiplied by
1 + jitter (2 i / (npoints - 1) - 1). All points are updated concurrently
at each increment; the increment is halved for all points if any of them
does not converge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if a.cfg.Ndim < 2 {
				return chk.Err("batch runs require ndim = 2 or 3")
			}
			if npoints < 1 {
				return chk.Err("number of points must be positive; %d is incorrect", npoints)
			}
			mdb, err := a.readMats()
			if err != nil {
				return
			}
			mdl, err := a.model(mdb, args[0])
			if err != nil {
				return
			}
			var pth msolid.Path
			err = pth.ReadJson(a.cfg.Ndim, pathfn)
			if err != nil {
				return
			}
			bat, err := msolid.NewBatch(mdl, npoints)
			if err != nil {
				return
			}
			bat.Limit = a.cfg.Workers
			bat.Silent = a.cfg.Silent
			bat.Steps = make([]msolid.Step, npoints)
			for i := range bat.Steps {
				bat.Steps[i] = msolid.Step{Eid: i, Dt: pth.Dt, Le: pth.Le}
			}
			tic := time.Now()
			nhalv, err := a.runBatch(cmd.Context(), bat, &pth, scales(npoints, jitter))
			if err != nil {
				return
			}
			io.Pf("batch: %d points; %d halvings; %v\n", npoints, nhalv, time.Since(tic))
			fmt.Fprint(cmd.OutOrStdout(), batchTable(bat))
			return
		},
	}
	cmd.Flags().StringVar(&pathfn, "path", "", "strain path file (.pat)")
	cmd.Flags().IntVar(&npoints, "points", 16, "number of points")
	cmd.Flags().Float64Var(&jitter, "jitter", 0.2, "relative spread of the strain paths")
	cmd.MarkFlagRequired("path")
	return cmd
}

// scales returns the factors multiplying the strain path of each point
func scales(npoints int, jitter float64) []float64 {
	if npoints == 1 {
		return []float64{1}
	}
	return utl.LinSpace(1-jitter, 1+jitter, npoints)
}

// runBatch runs all increments of a path
func (a *app) runBatch(ctx context.Context, bat *msolid.Batch, pth *msolid.Path, sc []float64) (nhalv int, err error) {
	n, nsig := len(bat.Points), len(pth.Eps[0])
	Δε := utl.Alloc(n, nsig)
	for k := 1; k < pth.Size(); k++ {
		m := float64(pth.Nincs)
		for inc := 0; inc < pth.Nincs; inc++ {
			for p := 0; p < n; p++ {
				for i := 0; i < nsig; i++ {
					Δε[p][i] = sc[p] * (pth.Eps[k][i] - pth.Eps[k-1][i]) / m
				}
			}
			err = advanceBatch(ctx, bat, Δε, 0, a.cfg.MaxHalve, &nhalv)
			if err != nil {
				return nhalv, chk.Err("batch failed at key point %d, increment %d\n%v", k, inc, err)
			}
		}
	}
	return
}

// advanceBatch applies Δε to all points, halving the increment on ErrNotConverged
func advanceBatch(ctx context.Context, bat *msolid.Batch, Δε [][]float64, level, maxhalve int, nhalv *int) (err error) {
	ε := make([][]float64, len(Δε))
	for p, sta := range bat.Points {
		ε[p] = make([]float64, len(Δε[p]))
		for i := range ε[p] {
			ε[p][i] = sta.Cur.Eps[i] + Δε[p][i]
		}
	}
	err = bat.Run(ctx, ε, Δε)
	if err == nil || !errors.Is(err, msolid.ErrNotConverged) || level >= maxhalve {
		return
	}
	*nhalv++
	half := utl.Alloc(len(Δε), len(Δε[0]))
	for p := range Δε {
		for i := range Δε[p] {
			half[p][i] = Δε[p][i] / 2.0
		}
	}
	if err = advanceBatch(ctx, bat, half, level+1, maxhalve, nhalv); err != nil {
		return
	}
	return advanceBatch(ctx, bat, half, level+1, maxhalve, nhalv)
}

// batchTable returns a table with the final state of each point
func batchTable(bat *msolid.Batch) (l string) {
	l = io.Sf("%6s%14s%14s%12s%12s  %s\n", "point", "exx", "sxx", "omega", "kappa", "flag")
	for p, sta := range bat.Points {
		s := sta.Cur
		l += io.Sf("%6d%14.6e%14.6e%12.6f%12.6f  %v\n", p, s.Eps[0], s.Sig[0], s.Omega(), s.Kappa(), s.Flag)
	}
	return
}
