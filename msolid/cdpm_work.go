// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// DISSTOL is the relative size of negative dissipation increments that are clamped
const DISSTOL = 1e-10

// updateWork updates the stress work and the dissipated work
//  ΔW = ½(σold + σnew)・Δε ; We = ½ σ・De⁻¹σ̄ ; Diss = W - We
func (o *ConcreteDPM2) updateWork(w *WorkState, σold, σ, σb [6]float64, Δε []float64, le float64) {
	old := *w
	w.W = old.W + stressWork(σold[:len(Δε)], σ[:len(Δε)], Δε)
	var εe [6]float64
	o.compliance(&εe, σb)
	var We float64
	for i := 0; i < 6; i++ {
		We += 0.5 * σ[i] * εe[i]
	}
	w.Diss = w.W - We
	if w.Diss < old.Diss && old.Diss-w.Diss < DISSTOL*o.fractureEnergy(le) {
		w.Diss = old.Diss
	}
}

// updateWork1D updates the stress work and the dissipated work for uniaxial stress
func (o *ConcreteDPM2) updateWork1D(w *WorkState, σold, σ, σb, Δε, le float64) {
	old := *w
	w.W = old.W + 0.5*(σold+σ)*Δε
	w.Diss = w.W - 0.5*σ*σb/o.E
	if w.Diss < old.Diss && old.Diss-w.Diss < DISSTOL*o.fractureEnergy(le) {
		w.Diss = old.Diss
	}
}

// fractureEnergy returns the energy density gf = ft wf / le; ft ε0 if le is unknown
func (o *ConcreteDPM2) fractureEnergy(le float64) float64 {
	if le > 0 {
		return o.Ft * o.Wf / le
	}
	return o.Ft * o.E0
}
