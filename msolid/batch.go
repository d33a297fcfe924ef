// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"runtime"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/sync/errgroup"
)

// Batch updates many integration points of the same model concurrently
//  Note: the model must be initialised and must not be modified while Run is running
type Batch struct {
	Model  Small     // solid model shared by all points
	Points []*Status // status of each point
	Steps  []Step    // step data of each point; may be nil
	Limit  int       // maximum number of goroutines; <= 0 means GOMAXPROCS
	Silent bool      // do not show messages
}

// NewBatch returns a new batch with npoints points initialised with zero stresses
func NewBatch(model Model, npoints int) (o *Batch, err error) {
	small, ok := model.(Small)
	if !ok {
		return nil, chk.Err("model cannot be used in small strain analyses")
	}
	o = &Batch{Model: small, Points: make([]*Status, npoints)}
	for i := 0; i < npoints; i++ {
		var s *State
		s, err = model.InitIntVars(make([]float64, nsigOf(model)))
		if err != nil {
			return nil, err
		}
		o.Points[i] = NewStatus(s)
	}
	return
}

// Run updates all points with the strains ε and increments Δε
//  All trial records are committed if every point succeeded; otherwise all
//  of them are rolled back and the first error is returned
func (o *Batch) Run(ctx context.Context, ε, Δε [][]float64) (err error) {

	// check
	n := len(o.Points)
	if len(ε) != n || len(Δε) != n {
		return chk.Err("batch: number of strain vectors (%d, %d) must be equal to the number of points (%d)", len(ε), len(Δε), n)
	}
	if o.Steps != nil && len(o.Steps) != n {
		return chk.Err("batch: number of steps (%d) must be equal to the number of points (%d)", len(o.Steps), n)
	}

	// run
	g, gctx := errgroup.WithContext(ctx)
	limit := o.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stp := &Step{Eid: i}
			if o.Steps != nil {
				stp = &o.Steps[i]
			}
			sta := o.Points[i]
			sta.InitTemp()
			return o.Model.Update(sta.Tmp, ε[i], Δε[i], stp)
		})
	}
	err = g.Wait()

	// commit or rollback
	for _, sta := range o.Points {
		if err == nil {
			sta.Commit()
		} else {
			sta.Rollback()
		}
	}
	if err != nil && !o.Silent {
		io.Pfred("batch: step failed: %v\n", err)
	}
	return
}

// nsigOf returns the number of stress components used by a model
func nsigOf(model Model) int {
	type nsiger interface {
		nsig() int
	}
	if m, ok := model.(nsiger); ok {
		return m.nsig()
	}
	return 6
}

// nsig returns the number of stress components
func (o SmallElasticity) nsig() int {
	return o.Nsig
}
