// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.mat) JSON files
package inp

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/tianhaichen/oofem-1/msolid"
)

// Material holds material data
type Material struct {
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material; only "solid" is available
	Model string     `json:"model"` // name of model; e.g. "cdpm2", "dp", "lin-elast"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Materials MatsData `json:"materials"` // all materials

	// derived
	Solids map[string]*Material // subset with materials/models: solids
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// read file
	b, err := msolid.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file %q\n%v", fn, err)
	}

	// decode
	mdb = new(MatDb)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q\n%v", fn, err)
	}

	// subsets
	mdb.Solids = make(map[string]*Material)
	for _, m := range mdb.Materials {
		if m.Name == "" {
			return nil, chk.Err("all materials in %q must have a name", fn)
		}
		if _, ok := mdb.Solids[m.Name]; ok {
			return nil, chk.Err("material %q is defined more than once in %q", m.Name, fn)
		}
		switch m.Type {
		case "solid", "":
			mdb.Solids[m.Name] = m
		default:
			return nil, chk.Err("material type %q is incorrect; the only option is \"solid\"", m.Type)
		}
		if _, err = msolid.New(m.Model); err != nil {
			return nil, chk.Err("material %q: %v", m.Name, err)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// Names returns the sorted names of all materials
func (o MatDb) Names() (l []string) {
	for _, mat := range o.Materials {
		l = append(l, mat.Name)
	}
	sort.Strings(l)
	return
}

// GetModel returns an initialised solid model for a material
//  simfnk  -- unique simulation filename key; models are shared per simfnk and material
//  matname -- name of material
//  getnew  -- force a new allocation; e.g. for another ndim
func GetModel(mdb *MatDb, simfnk, matname string, ndim int, pstress, getnew bool) (mdl msolid.Model, err error) {
	mat := mdb.Get(matname)
	if mat == nil {
		return nil, chk.Err("cannot find material %q in database", matname)
	}
	mdl, existent := msolid.GetModel(simfnk, matname, mat.Model, getnew)
	if mdl == nil {
		return nil, chk.Err("cannot allocate model %q for material %q", mat.Model, matname)
	}
	if existent {
		return
	}
	err = mdl.Init(ndim, pstress, mat.Prms)
	if err != nil {
		return nil, chk.Err("cannot initialise model %q for material %q\n%v", mat.Model, matname, err)
	}
	return
}

// String prints one material
func (o *Material) String() string {
	l := io.Sf("    {\n      \"name\"  : %q,\n      \"type\"  : %q,\n      \"model\" : %q,\n      \"extra\" : %q,\n      \"prms\"  : [", o.Name, o.Type, o.Model, o.Extra)
	for i, p := range o.Prms {
		if i > 0 {
			l += ","
		}
		l += io.Sf("\n        {\"n\":%q, \"v\":%g}", p.N, p.V)
	}
	return l + "\n      ]\n    }"
}

// String prints materials
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", m)
	}
	l += "\n  ]"
	return l
}

// String outputs all materials
func (o MatDb) String() string {
	return io.Sf("{\n%v\n}", o.Materials)
}
