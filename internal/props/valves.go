package props

import (
	"github.com/shopspring/decimal"

	"Frostline/internal/units"
)

// airFlowCoeff converts Kd * orifice area (in2) * relieving pressure
// (psia) to lb air/min per the ASME gas-flow relation evaluated for air
// at 60 F (C = 356, sqrt(M/T) folded in, per-hour to per-minute).
const airFlowCoeff = 1.4008

// overpressureFactor is the accumulation applied to set pressure when
// rating capacity (10 percent).
const overpressureFactor = 1.10

// ReliefValve is one manufacturer catalog entry.
type ReliefValve struct {
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	InletIn    float64         `json:"inlet_in"`
	OutletIn   float64         `json:"outlet_in"`
	OrificeIn2 float64         `json:"orifice_in2"`
	Kd         float64         `json:"kd"`
	MinSetPsig float64         `json:"min_set_psig"`
	MaxSetPsig float64         `json:"max_set_psig"`
	ListPrice  decimal.Decimal `json:"list_price"`
}

// InSetRange reports whether the valve may be set at setPsig.
func (v ReliefValve) InSetRange(setPsig float64) bool {
	return setPsig >= v.MinSetPsig && setPsig <= v.MaxSetPsig
}

// RatedAirLbMin returns the valve's rated relieving capacity in lb
// air/min at the given set pressure and built-up back pressure.
func (v ReliefValve) RatedAirLbMin(setPsig, backPsig float64) float64 {
	relieving := units.PsigToPsia(overpressureFactor * setPsig)
	return airFlowCoeff * v.Kd * v.OrificeIn2 * relieving * BackPressureFactor(setPsig, backPsig)
}

// BackPressureFactor derates capacity for built-up back pressure on a
// conventional spring valve: no penalty up to 55 percent of relieving
// pressure, then a linear fall to a 0.5 floor.
func BackPressureFactor(setPsig, backPsig float64) float64 {
	relieving := units.PsigToPsia(overpressureFactor * setPsig)
	if relieving <= 0 {
		return 1.0
	}
	ratio := units.PsigToPsia(backPsig) / relieving
	if ratio <= 0.55 {
		return 1.0
	}
	k := 1.0 - 1.143*(ratio-0.55)
	if k < 0.5 {
		return 0.5
	}
	return k
}

// ThreeWayValve is a dual-relief changeover valve catalog entry.
type ThreeWayValve struct {
	Model        string          `json:"model"`
	ConnectionIn float64         `json:"connection_in"`
	ListPrice    decimal.Decimal `json:"list_price"`
}

type valveRow struct {
	Brand      string  `csv:"brand"`
	Model      string  `csv:"model"`
	InletIn    float64 `csv:"inlet_in"`
	OutletIn   float64 `csv:"outlet_in"`
	OrificeIn2 float64 `csv:"orifice_in2"`
	Kd         float64 `csv:"kd"`
	MinSetPsig float64 `csv:"min_set_psig"`
	MaxSetPsig float64 `csv:"max_set_psig"`
	ListPrice  string  `csv:"list_price"`
}

type threeWayRow struct {
	Model        string  `csv:"model"`
	ConnectionIn float64 `csv:"connection_in"`
	ListPrice    string  `csv:"list_price"`
}

// parsePrice tolerates a blank price cell; selection then falls back to
// table order for ties.
func parsePrice(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (c *Catalog) loadValves(raw []byte) error {
	rows, err := unmarshalCSV[valveRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.valves = append(c.valves, ReliefValve{
			Brand:      r.Brand,
			Model:      r.Model,
			InletIn:    r.InletIn,
			OutletIn:   r.OutletIn,
			OrificeIn2: r.OrificeIn2,
			Kd:         r.Kd,
			MinSetPsig: r.MinSetPsig,
			MaxSetPsig: r.MaxSetPsig,
			ListPrice:  parsePrice(r.ListPrice),
		})
	}
	return nil
}

func (c *Catalog) loadThreeWays(raw []byte) error {
	rows, err := unmarshalCSV[threeWayRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.threeWays = append(c.threeWays, ThreeWayValve{
			Model:        r.Model,
			ConnectionIn: r.ConnectionIn,
			ListPrice:    parsePrice(r.ListPrice),
		})
	}
	return nil
}
