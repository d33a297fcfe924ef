// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements constitutive models for solids
/*
 *  Small strains, strain driven:
 *
 *     σ_(n+1) = σ_(n) + Δσ(history, Δε)     Update
 *     D = dσ_(n+1)/dε_(n+1)                 CalcD (elastic, secant or consistent)
 *
 *  every update writes only to the trial record of one point; the caller
 *  commits (or rolls back) after the global step has converged.
 */
package msolid

import (
	"errors"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// ErrNotConverged is reported when the local return mapping does not converge.
// Callers are expected to sub-divide the strain increment and try again
var ErrNotConverged = errors.New("local return mapping did not converge")

// Response selects the kind of stiffness returned by CalcD
type Response int

const (
	ElasticD    Response = iota // elastic stiffness
	SecantD                     // (1-ω) De
	ConsistentD                 // dσ_new/dε_new consistent with Update
)

// String returns the name of the response mode
func (o Response) String() string {
	switch o {
	case ElasticD:
		return "elastic"
	case SecantD:
		return "secant"
	case ConsistentD:
		return "consistent"
	}
	return "unknown"
}

// Step holds data about the current time step and the element geometry
type Step struct {
	Eid  int     // element id (for messages)
	Ipid int     // integration point id (for messages)
	Dt   float64 // time increment
	Le   float64 // characteristic length of element
}

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	InitIntVars(σ []float64) (*State, error)            // initialises AND allocates internal (secondary) variables
}

// Small defines rate type solid models for small strain analyses
type Small interface {
	Update(s *State, ε, Δε []float64, stp *Step) error                   // updates stresses for given strains
	CalcD(D [][]float64, prev, s *State, mode Response, stp *Step) error // computes D = dσ_new/dε_new
}

// OneD specialises Model to 1D (uniaxial stress)
type OneD interface {
	InitIntVars1D() (*State, error)                                    // initialises AND allocates internal (secondary) variables
	Update1D(s *State, ε, Δε float64, stp *Step) error                 // update state
	CalcD1D(prev, s *State, mode Response, stp *Step) (float64, error) // computes D = dσ_new/dε_new
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// GetModel returns (existent or new) solid model
//  simfnk    -- unique simulation filename key
//  matname   -- name of material
//  modelname -- model name
//  getnew    -- force a new allocation; i.e. do not use any model found in database
//  Note: returns nil on errors
func GetModel(simfnk, matname, modelname string, getnew bool) (model Model, existent bool) {

	// get new model, regardless whether it exists in database or not
	if getnew {
		allocator, ok := allocators[modelname]
		if !ok {
			return nil, false
		}
		return allocator(), false
	}

	// search database
	key := simfnk + matname
	_modelsLock.Lock()
	defer _modelsLock.Unlock()
	if model, ok := _models[key]; ok {
		return model, true
	}

	// if not found, get new
	allocator, ok := allocators[modelname]
	if !ok {
		return nil, false
	}
	model = allocator()
	_models[key] = model
	return model, false
}

// LogModels prints the names of the allocated models
func LogModels() (l []string) {
	_modelsLock.Lock()
	defer _modelsLock.Unlock()
	for key := range _models {
		l = append(l, key)
	}
	return
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}

// _models holds pre-allocated solid models
var (
	_models     = map[string]Model{}
	_modelsLock sync.Mutex
)
