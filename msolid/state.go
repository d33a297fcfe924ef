// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// Flag is the discrete state of an integration point after an increment
type Flag int

const (
	Elastic Flag = iota
	Unloading
	Plastic
	Damage
	PlasticDamage
	VertexCompression
	VertexTension
	VertexCompressionDamage
	VertexTensionDamage
)

var flagNames = []string{
	"elastic", "unloading", "plastic", "damage", "plastic-damage",
	"vertex-compression", "vertex-tension", "vertex-compression-damage", "vertex-tension-damage",
}

// String returns the name of this flag
func (o Flag) String() string {
	if o < 0 || int(o) >= len(flagNames) {
		return "unknown"
	}
	return flagNames[o]
}

// PlastState holds the plasticity history
type PlastState struct {
	Eps     []float64 // εp: plastic strains [nsig]
	Kappa   float64   // κp: hardening variable
	Dlam    float64   // Δλ: increment of plastic multiplier in the last update
	Loading bool      // plastic loading in the last update
	Apex    bool      // return-to-apex in the last update
}

// DamageState holds the damage history
type DamageState struct {
	EqStrain float64 // ε̃: equivalent strain (without rate effects)
	EqStrT   float64 // scaled equivalent strain for tension
	EqStrC   float64 // scaled equivalent strain for compression
	KappaDT  float64 // κdt: tension history (max of EqStrT)
	KappaDC  float64 // κdc: compression history (max of EqStrC)
	KappaT1  float64 // κ1t: plastic part of tension history
	KappaT2  float64 // κ2t: equivalent-strain part of tension history
	KappaC1  float64 // κ1c: plastic part of compression history
	KappaC2  float64 // κ2c: equivalent-strain part of compression history
	OmegaT   float64 // ωt: tension damage
	OmegaC   float64 // ωc: compression damage
	Alpha    float64 // α: compression weight of the effective stress
	Le       float64 // characteristic length fixed at damage onset
}

// RateState holds data for rate effects
type RateState struct {
	Factor    float64 // αr: rate factor (>= 1)
	EqStrRate float64 // rate of equivalent strain in the last update
}

// WorkState holds energy densities
type WorkState struct {
	W    float64 // stress work
	Diss float64 // dissipated work
}

// State holds all continuum mechanics data of one integration point
//  Note: sub-records are nil when the model does not use them
type State struct {

	// essential
	Sig    []float64 // σ: nominal Cauchy stress [nsig]
	SigEff []float64 // σ̄: effective stress [nsig]
	Eps    []float64 // ε: total strains [nsig]
	Flag   Flag      // discrete state

	// history per concern
	Plast *PlastState  // plasticity
	Dmg   *DamageState // damage
	Rate  *RateState   // rate effects
	Work  *WorkState   // energy bookkeeping
}

// NewState allocates state structure
//  plast -- with plasticity
//  dmg   -- with damage
//  rate  -- with rate effects
func NewState(nsig int, plast, dmg, rate bool) *State {

	// essential
	var state State
	state.Sig = make([]float64, nsig)
	state.SigEff = make([]float64, nsig)
	state.Eps = make([]float64, nsig)
	state.Work = new(WorkState)

	// plasticity
	if plast {
		state.Plast = &PlastState{Eps: make([]float64, nsig)}
	}

	// damage
	if dmg {
		state.Dmg = new(DamageState)
	}

	// rate effects
	if rate {
		state.Rate = &RateState{Factor: 1}
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {

	// essential
	copy(o.Sig, other.Sig)
	copy(o.SigEff, other.SigEff)
	copy(o.Eps, other.Eps)
	o.Flag = other.Flag
	*o.Work = *other.Work

	// plasticity
	if o.Plast != nil {
		copy(o.Plast.Eps, other.Plast.Eps)
		o.Plast.Kappa = other.Plast.Kappa
		o.Plast.Dlam = other.Plast.Dlam
		o.Plast.Loading = other.Plast.Loading
		o.Plast.Apex = other.Plast.Apex
	}

	// damage
	if o.Dmg != nil {
		*o.Dmg = *other.Dmg
	}

	// rate effects
	if o.Rate != nil {
		*o.Rate = *other.Rate
	}
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), o.Plast != nil, o.Dmg != nil, o.Rate != nil)
	other.Set(o)
	return other
}

// Omega returns the effective (combined) damage
func (o *State) Omega() float64 {
	if o.Dmg == nil {
		return 0
	}
	return (1.0-o.Dmg.Alpha)*o.Dmg.OmegaT + o.Dmg.Alpha*o.Dmg.OmegaC
}

// Kappa returns the plastic hardening variable
func (o *State) Kappa() float64 {
	if o.Plast == nil {
		return 0
	}
	return o.Plast.Kappa
}

// stressWork returns ½(σold + σnew)・Δε
func stressWork(σold, σnew, Δε []float64) (w float64) {
	for i := 0; i < len(Δε); i++ {
		w += 0.5 * (σold[i] + σnew[i]) * Δε[i]
	}
	return
}
