// Package hydraulics computes frictional pressure drop in pipe flow.
// The relief-valve outlet check and the riser sizing share these
// routines so the friction-factor solve exists exactly once.
package hydraulics

import (
	"math"

	"Frostline/internal/solver"
	"Frostline/internal/units"
)

// SteelRoughnessFt is the absolute roughness of commercial steel pipe.
const SteelRoughnessFt = 0.00015

// laminarLimit is the Reynolds number below which f = 64/Re applies.
const laminarLimit = 2300.0

// Reynolds returns the Reynolds number for density lb/ft3, velocity
// ft/s, inside diameter ft and dynamic viscosity lb/(ft*s).
func Reynolds(rho, velocity, diameterFt, viscosity float64) float64 {
	if viscosity <= 0 {
		return 0
	}
	return rho * math.Abs(velocity) * diameterFt / viscosity
}

// FrictionFactor solves the Colebrook-White correlation for the Moody
// friction factor at the given Reynolds number and relative roughness
// (epsilon/D). The implicit equation is iterated as a fixed point on f,
// seeded with the Swamee-Jain explicit estimate. Laminar flow short
// circuits to 64/Re. Iteration diagnostics propagate untouched.
func FrictionFactor(re, relRough float64, cfg solver.Config) (float64, int, error) {
	if re <= 0 {
		return 0, 0, nil
	}
	if re < laminarLimit {
		return 64.0 / re, 0, nil
	}
	seed := swameeJain(re, relRough)
	next := func(f float64) float64 {
		if f <= 0 {
			f = seed
		}
		// 1/sqrt(f) = -2 log10(e/(3.7 D) + 2.51/(Re sqrt(f)))
		rhs := -2.0 * math.Log10(relRough/3.7+2.51/(re*math.Sqrt(f)))
		return 1.0 / (rhs * rhs)
	}
	return solver.FixedPoint(next, seed, cfg)
}

func swameeJain(re, relRough float64) float64 {
	d := math.Log10(relRough/3.7 + 5.74/math.Pow(re, 0.9))
	return 0.25 / (d * d)
}

// DarcyDrop returns the Darcy-Weisbach pressure drop in psi for a run
// of lengthFt through diameterFt at velocity ft/s and density lb/ft3.
func DarcyDrop(frictionFactor, lengthFt, diameterFt, rho, velocity float64) float64 {
	if diameterFt <= 0 {
		return 0
	}
	// dp = f (L/D) rho v^2 / (2 gc), lbf/ft2 -> psi
	psf := frictionFactor * (lengthFt / diameterFt) * rho * velocity * velocity / (2.0 * units.Gc)
	return psf / units.SqInPerSqFt
}

// FittingEquivalentFt converts a count of elbows and a count of valves
// on a run to an equivalent straight length, using the conventional L/D
// ratios for standard-radius elbows (30) and globe-pattern valves (150).
func FittingEquivalentFt(diameterFt float64, elbows, valves int) float64 {
	return diameterFt * (30.0*float64(elbows) + 150.0*float64(valves))
}

// Velocity returns flow velocity ft/s for a mass flow lb/min through
// areaFt2 at density lb/ft3.
func Velocity(massFlowLbMin, rho, areaFt2 float64) float64 {
	if rho <= 0 || areaFt2 <= 0 {
		return 0
	}
	return massFlowLbMin / 60.0 / (rho * areaFt2)
}
