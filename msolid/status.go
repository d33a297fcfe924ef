// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/cpmech/gosl/chk"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// Status holds the committed and trial records of one integration point
type Status struct {
	Cur *State // committed record
	Tmp *State // trial record
}

// NewStatus returns a new status with both records set to s
func NewStatus(s *State) *Status {
	return &Status{Cur: s, Tmp: s.GetCopy()}
}

// InitTemp starts a new increment: trial := committed
func (o *Status) InitTemp() {
	o.Tmp.Set(o.Cur)
}

// Commit accepts the trial record: committed := trial
func (o *Status) Commit() {
	o.Cur.Set(o.Tmp)
}

// Rollback discards the trial record
func (o *Status) Rollback() {
	o.Tmp.Set(o.Cur)
}

// Encode writes the committed record
func (o *Status) Encode(enc Encoder) (err error) {
	err = enc.Encode(o.Cur)
	if err != nil {
		return chk.Err("cannot encode committed state\n%v", err)
	}
	return
}

// Decode reads the committed record and resets the trial record
//  Note: the status must have been allocated by the same model
func (o *Status) Decode(dec Decoder) (err error) {
	var s State
	err = dec.Decode(&s)
	if err != nil {
		return chk.Err("cannot decode committed state\n%v", err)
	}
	if len(s.Sig) != len(o.Cur.Sig) {
		return chk.Err("cannot restore state with %d stress components into state with %d components", len(s.Sig), len(o.Cur.Sig))
	}
	restoreState(o.Cur, &s)
	o.Tmp.Set(o.Cur)
	return
}

// restoreState copies a decoded state into a pre-allocated one
//  Note: missing slices or sub-records in src mean zero values
func restoreState(dst, src *State) {
	zeroize := func(a []float64) {
		for i := range a {
			a[i] = 0
		}
	}
	zeroize(dst.Sig)
	zeroize(dst.SigEff)
	zeroize(dst.Eps)
	copy(dst.Sig, src.Sig)
	copy(dst.SigEff, src.SigEff)
	copy(dst.Eps, src.Eps)
	dst.Flag = src.Flag
	*dst.Work = WorkState{}
	if src.Work != nil {
		*dst.Work = *src.Work
	}
	if dst.Plast != nil {
		eps := dst.Plast.Eps
		zeroize(eps)
		*dst.Plast = PlastState{Eps: eps}
		if src.Plast != nil {
			copy(eps, src.Plast.Eps)
			dst.Plast.Kappa = src.Plast.Kappa
			dst.Plast.Dlam = src.Plast.Dlam
			dst.Plast.Loading = src.Plast.Loading
			dst.Plast.Apex = src.Plast.Apex
		}
	}
	if dst.Dmg != nil {
		*dst.Dmg = DamageState{}
		if src.Dmg != nil {
			*dst.Dmg = *src.Dmg
		}
	}
	if dst.Rate != nil {
		*dst.Rate = RateState{Factor: 1}
		if src.Rate != nil {
			*dst.Rate = *src.Rate
		}
	}
}
