// Package units holds the IP-unit constants and conversions shared by the
// calculators. Lengths are feet or inches as named, pressures psig/psia,
// heat in BTU, flow in lb/min unless a name says otherwise.
package units

const (
	// AtmPsi is standard atmospheric pressure.
	AtmPsi = 14.696

	// BTUPerTonHr converts tons of refrigeration to BTU/hr.
	BTUPerTonHr = 12000.0

	// BTUPerWattHr converts electrical watts to BTU/hr.
	BTUPerWattHr = 3.412

	// Gc is the gravitational conversion constant, lbm*ft/(lbf*s2).
	Gc = 32.174

	// AirDensityLbFt3 is dry air at 60 F and one atmosphere.
	AirDensityLbFt3 = 0.0764

	// AirViscosityLbFtS is dry air dynamic viscosity near ambient.
	AirViscosityLbFtS = 1.22e-5

	// AirVolumetricHeat is the sensible heat capacity of room air per
	// cubic foot, BTU/(ft3*F).
	AirVolumetricHeat = 0.019

	// Ft3PerGal converts US gallons to cubic feet.
	Ft3PerGal = 0.13368

	// SqInPerSqFt converts square inches to square feet.
	SqInPerSqFt = 144.0
)

// PsigToPsia converts gauge pressure to absolute.
func PsigToPsia(psig float64) float64 { return psig + AtmPsi }

// InToFt converts inches to feet.
func InToFt(in float64) float64 { return in / 12.0 }

// GpmToFt3PerSec converts a liquid flow in gallons per minute to ft3/s.
func GpmToFt3PerSec(gpm float64) float64 { return gpm * Ft3PerGal / 60.0 }

// BTUDayToTR converts a daily load to tons of refrigeration given the
// design fraction of the day the equipment runs.
func BTUDayToTR(btuPerDay, runFraction float64) float64 {
	if runFraction <= 0 {
		return 0
	}
	return btuPerDay / (24.0 * runFraction) / BTUPerTonHr
}
