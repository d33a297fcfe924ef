// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "math"

// CEB-FIP reference values
const (
	RATE_FCM0 = 10.0  // reference compressive strength [MPa]
	RATE_ET0  = 1e-6  // reference strain rate in tension [1/s]
	RATE_EC0  = 30e-6 // reference strain rate in compression [1/s]
	RATE_KNEE = 30.0  // strain rate at the change of slope [1/s]
)

// rateFactor computes the rate factor αr >= 1 from the increment of equivalent strain Δεq
//  Note: the previous factor is returned if Δt <= 0 or Δεq == 0
func (o *ConcreteDPM2) rateFactor(prev, Δεq, α, Δt float64) float64 {
	if o.RateFlag == RateOff {
		return 1
	}
	if Δt <= 0 || Δεq == 0 {
		return prev
	}
	rate := math.Abs(Δεq) / Δt

	// tension
	δs := 1.0 / (1.0 + 8.0*o.Fc/RATE_FCM0)
	βs := math.Pow(10.0, 6.0*δs-2.0)
	rt := math.Pow(rate/RATE_ET0, δs)
	if rate > RATE_KNEE {
		rt = βs * math.Cbrt(rate/RATE_ET0)
	}

	// compression
	αs := 1.0 / (5.0 + 9.0*o.Fc/RATE_FCM0)
	γs := math.Pow(10.0, 6.156*αs-2.0)
	rc := math.Pow(rate/RATE_EC0, 1.026*αs)
	if rate > RATE_KNEE {
		rc = γs * math.Cbrt(rate/RATE_EC0)
	}

	// combined
	return math.Max(1.0, (1.0-α)*rt+α*rc)
}

// effectiveWf returns the crack opening of the softening law for the rate factor αr
func (o *ConcreteDPM2) effectiveWf(αr float64) float64 {
	switch o.RateFlag {
	case RateStrengthGfSq:
		return o.Wf * αr * αr
	case RateStrengthGfLin:
		return o.Wf * αr
	}
	return o.Wf
}
