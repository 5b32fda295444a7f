// Package srv sizes safety relief valves: required relieving capacity
// from the governing code formula for the equipment class, selection of
// the smallest adequate valve from the manufacturer tables, and a
// pressure-drop check on the outlet piping. Dual-relief changeover and
// diffusion-tank sub-results are produced only when the case asks for
// them.
package srv

import (
	"fmt"
	"math"
	"strconv"

	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/hydraulics"
	"Frostline/internal/props"
	"Frostline/internal/solver"
	"Frostline/internal/units"
)

// EquipmentClass identifies which relief formula family applies.
type EquipmentClass string

const (
	VesselHorizontal        EquipmentClass = "vessel-horizontal"
	VesselVertical          EquipmentClass = "vessel-vertical"
	Accumulator             EquipmentClass = "accumulator"
	Intercooler             EquipmentClass = "intercooler"
	CompressorScrew         EquipmentClass = "compressor-screw"
	CompressorReciprocating EquipmentClass = "compressor-reciprocating"
	EvaporativeCondenser    EquipmentClass = "evaporative-condenser"
	ShellAndTube            EquipmentClass = "shell-and-tube"
	PlateExchanger          EquipmentClass = "plate"
	TwoStageOilCooling      EquipmentClass = "two-stage-oil-cooling"
)

// CodeEdition identifies the governing code text.
type CodeEdition string

const (
	IIAR2_2014A  CodeEdition = "IIAR2-2014-AddendumA"
	ASHRAE15_94  CodeEdition = "ASHRAE15-1994"
	CMC1118_2010 CodeEdition = "CMC-1118.0-2010"
)

// OutletRun describes the discharge piping downstream of the valve.
type OutletRun struct {
	LengthFt float64 `json:"length_ft"`
	Elbows   int     `json:"elbows"`
	Valves   int     `json:"valves"`
	// Nominal overrides the pipe size; empty uses the selected valve's
	// outlet connection at schedule 40.
	Nominal string `json:"nominal,omitempty"`
}

type Input struct {
	Class       EquipmentClass `json:"class"`
	Edition     CodeEdition    `json:"edition"`
	Refrigerant string         `json:"refrigerant"`

	SetPsig  float64 `json:"set_psig"`
	BackPsig float64 `json:"back_psig"`

	// Vessel geometry (vessel classes).
	DiameterFt float64 `json:"diameter_ft,omitempty"`
	LengthFt   float64 `json:"length_ft,omitempty"`
	Insulated  bool    `json:"insulated,omitempty"`

	// Compressor duty (compressor classes).
	DisplacementCFM float64 `json:"displacement_cfm,omitempty"`
	SuctionTempF    float64 `json:"suction_temp_f,omitempty"`

	// Heat exchanger surface (exchanger classes).
	HeatAreaFt2 float64 `json:"heat_area_ft2,omitempty"`

	// Oil cooling duty (two-stage oil cooling).
	OilHeatBTUHr float64 `json:"oil_heat_btu_hr,omitempty"`

	// Brand restricts valve selection to one manufacturer table.
	Brand string `json:"brand,omitempty"`

	Outlet *OutletRun `json:"outlet,omitempty"`

	// DualRelief asks for a three-way changeover valve pick.
	DualRelief bool `json:"dual_relief,omitempty"`
	// TankDiffusion asks for diffusion-tank sizing (ammonia only).
	TankDiffusion bool `json:"tank_diffusion,omitempty"`
	// DiffusionMinutes is the design discharge duration; 0 -> 15.
	DiffusionMinutes float64 `json:"diffusion_minutes,omitempty"`

	// BackPressureFraction caps outlet drop as a fraction of set
	// pressure; 0 -> 0.10.
	BackPressureFraction float64 `json:"backpressure_fraction,omitempty"`

	Solver solver.Config `json:"-"`
}

// OutletCheck reports the discharge-pipe pressure-drop solve.
type OutletCheck struct {
	Nominal        string  `json:"nominal"`
	VelocityFtS    float64 `json:"velocity_ft_s"`
	Reynolds       float64 `json:"reynolds"`
	FrictionFactor float64 `json:"friction_factor"`
	Iterations     int     `json:"iterations"`
	DropPsi        float64 `json:"drop_psi"`
	AllowablePsi   float64 `json:"allowable_psi"`
	OK             bool    `json:"ok"`
}

// DiffusionTank is the water-tank sizing sub-result.
type DiffusionTank struct {
	DischargeLb  float64 `json:"discharge_lb"`
	WaterGallons float64 `json:"water_gallons"`
	TankFt3      float64 `json:"tank_ft3"`
}

type Result struct {
	RequiredAirLbMin float64 `json:"required_air_lb_min"`
	FormulaRef       string  `json:"formula_ref"`

	Valve          *props.ReliefValve `json:"valve,omitempty"`
	RatedAirLbMin  float64            `json:"rated_air_lb_min,omitempty"`
	CandidateCount int                `json:"candidate_count"`

	Outlet   *OutletCheck         `json:"outlet,omitempty"`
	ThreeWay *props.ThreeWayValve `json:"three_way,omitempty"`
	Tank     *DiffusionTank       `json:"tank,omitempty"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// formula computes required capacity in lb air/min and returns the code
// clause it implements.
type formula func(in Input, r *props.Refrigerant) (float64, string, error)

type formulaKey struct {
	class   EquipmentClass
	edition CodeEdition
}

// formulas is the fixed (class x edition) dispatch table. Supporting a
// new pairing is a new entry here, never a fallback branch.
var formulas = map[formulaKey]formula{
	{VesselHorizontal, IIAR2_2014A}:  vesselRelief("IIAR2", "IIAR 2-2014 A 15.2.7", true),
	{VesselVertical, IIAR2_2014A}:    vesselRelief("IIAR2", "IIAR 2-2014 A 15.2.7", true),
	{Accumulator, IIAR2_2014A}:       vesselRelief("IIAR2", "IIAR 2-2014 A 15.2.7", true),
	{Intercooler, IIAR2_2014A}:       vesselRelief("IIAR2", "IIAR 2-2014 A 15.2.7", true),
	{VesselHorizontal, ASHRAE15_94}:  vesselRelief("ASHRAE15", "ASHRAE 15-1994 9.7.5", false),
	{VesselVertical, ASHRAE15_94}:    vesselRelief("ASHRAE15", "ASHRAE 15-1994 9.7.5", false),
	{Accumulator, ASHRAE15_94}:       vesselRelief("ASHRAE15", "ASHRAE 15-1994 9.7.5", false),
	{Intercooler, ASHRAE15_94}:       vesselRelief("ASHRAE15", "ASHRAE 15-1994 9.7.5", false),
	{VesselHorizontal, CMC1118_2010}: vesselRelief("CMC", "CMC 2010 1118.0", false),
	{VesselVertical, CMC1118_2010}:   vesselRelief("CMC", "CMC 2010 1118.0", false),

	{CompressorScrew, IIAR2_2014A}:          compressorRelief(1.10, "IIAR 2-2014 A 15.2.9"),
	{CompressorScrew, ASHRAE15_94}:          compressorRelief(1.10, "ASHRAE 15-1994 9.8"),
	{CompressorReciprocating, IIAR2_2014A}:  compressorRelief(1.0, "IIAR 2-2014 A 15.2.9"),
	{CompressorReciprocating, ASHRAE15_94}:  compressorRelief(1.0, "ASHRAE 15-1994 9.8"),
	{CompressorReciprocating, CMC1118_2010}: compressorRelief(1.0, "CMC 2010 1119.0"),

	{EvaporativeCondenser, IIAR2_2014A}:  exchangerRelief(6000, "IIAR 2-2014 A 15.3.2"),
	{EvaporativeCondenser, CMC1118_2010}: exchangerRelief(6000, "CMC 2010 1118.0"),
	{ShellAndTube, IIAR2_2014A}:          exchangerRelief(3000, "IIAR 2-2014 A 15.3.2"),
	{ShellAndTube, ASHRAE15_94}:          exchangerRelief(3000, "ASHRAE 15-1994 9.7.5"),
	{PlateExchanger, IIAR2_2014A}:        exchangerRelief(4500, "IIAR 2-2014 A 15.3.2"),

	{TwoStageOilCooling, IIAR2_2014A}: twoStageOil,
}

// Size runs the full relief sizing for one case.
func Size(in Input, cat *props.Catalog) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}
	if in.BackPressureFraction == 0 {
		in.BackPressureFraction = 0.10
	}
	if in.DiffusionMinutes == 0 {
		in.DiffusionMinutes = 15
	}

	ref, err := cat.Refrigerant(in.Refrigerant)
	if err != nil {
		return Result{}, err
	}
	f, ok := formulas[formulaKey{in.Class, in.Edition}]
	if !ok {
		return Result{}, &calcerr.UnsupportedConfigError{Class: string(in.Class), Edition: string(in.Edition)}
	}

	var res Result
	res.RequiredAirLbMin, res.FormulaRef, err = f(in, ref)
	if err != nil {
		return Result{}, err
	}

	valve, rated, n := SelectValve(cat.Valves(), in.Brand, in.SetPsig, in.BackPsig, res.RequiredAirLbMin)
	res.CandidateCount = n
	if valve == nil {
		res.Flags.Add(compliance.Error, res.FormulaRef,
			fmt.Sprintf("no cataloged valve meets %.2f lb air/min at %.0f psig set", res.RequiredAirLbMin, in.SetPsig))
		res.Notes = "Required capacity computed; no adequate valve in catalog."
		return res, nil
	}
	res.Valve = valve
	res.RatedAirLbMin = rated

	if in.Outlet != nil {
		oc, err := checkOutlet(in, *valve, rated, cat)
		if err != nil {
			return Result{}, err
		}
		res.Outlet = &oc
		if !oc.OK {
			res.Flags.Add(compliance.Warning, "IIAR 2-2014 A 15.5",
				fmt.Sprintf("outlet drop %.2f psi exceeds %.2f psi allowance", oc.DropPsi, oc.AllowablePsi))
		}
	}

	if in.DualRelief {
		tw := pickThreeWay(cat.ThreeWayValves(), valve.InletIn)
		if tw == nil {
			res.Flags.Add(compliance.Warning, "IIAR 2-2014 A 15.4",
				fmt.Sprintf("no three-way valve with %.2f in connection in catalog", valve.InletIn))
		} else {
			res.ThreeWay = tw
		}
	}

	if in.TankDiffusion {
		tank, err := sizeTank(in, ref, res.RequiredAirLbMin)
		if err != nil {
			return Result{}, err
		}
		res.Tank = &tank
	}

	res.Notes = fmt.Sprintf("Sized per %s; %s %s selected.", res.FormulaRef, valve.Brand, valve.Model)
	return res, nil
}

// vesselRelief builds the C = f D L formula. The IIAR-2 Addendum A
// insulation credit quarters f when the vessel is insulated.
func vesselRelief(family, ref string, insulationCredit bool) formula {
	return func(in Input, r *props.Refrigerant) (float64, string, error) {
		if in.DiameterFt <= 0 || in.LengthFt <= 0 {
			return 0, "", calcerr.Invalid("diameter_ft/length_ft", "vessel relief needs positive diameter and length")
		}
		f, ok := r.VesselReliefF(family)
		if !ok {
			return 0, "", &calcerr.UnsupportedConfigError{Class: r.Name, Edition: ref}
		}
		if insulationCredit && in.Insulated {
			f *= 0.25
		}
		return f * in.DiameterFt * in.LengthFt, ref, nil
	}
}

// compressorRelief sizes from swept displacement at suction density;
// screw machines carry an oil-side allowance on top.
func compressorRelief(oilAllowance float64, ref string) formula {
	return func(in Input, r *props.Refrigerant) (float64, string, error) {
		if in.DisplacementCFM <= 0 {
			return 0, "", calcerr.Invalid("displacement_cfm", "compressor relief needs positive displacement")
		}
		rhoV, err := r.VaporDensityLbFt3(in.SuctionTempF)
		if err != nil {
			return 0, "", err
		}
		refrigLbMin := in.DisplacementCFM * rhoV * oilAllowance
		return refrigLbMin * r.AirEquivFactor, ref, nil
	}
}

// exchangerRelief sizes from exposed heat-transfer surface at the code
// fire flux, vaporizing at the relieving condition.
func exchangerRelief(fluxBTUHrFt2 float64, ref string) formula {
	return func(in Input, r *props.Refrigerant) (float64, string, error) {
		if in.HeatAreaFt2 <= 0 {
			return 0, "", calcerr.Invalid("heat_area_ft2", "exchanger relief needs positive heat-transfer area")
		}
		hfg, err := relievingLatentHeat(in, r)
		if err != nil {
			return 0, "", err
		}
		refrigLbMin := fluxBTUHrFt2 * in.HeatAreaFt2 / hfg / 60.0
		return refrigLbMin * r.AirEquivFactor, ref, nil
	}
}

// twoStageOil is the dedicated two-stage oil-cooling relief equation:
// the full oil-side heat rejection vaporizes refrigerant at the
// relieving condition.
func twoStageOil(in Input, r *props.Refrigerant) (float64, string, error) {
	if in.OilHeatBTUHr <= 0 {
		return 0, "", calcerr.Invalid("oil_heat_btu_hr", "oil-cooling relief needs positive heat rejection")
	}
	hfg, err := relievingLatentHeat(in, r)
	if err != nil {
		return 0, "", err
	}
	refrigLbMin := in.OilHeatBTUHr / hfg / 60.0
	return refrigLbMin * r.AirEquivFactor, "IIAR 2-2014 A 15.2.10", nil
}

// relievingLatentHeat evaluates hfg at the saturation temperature
// matching the relieving pressure (set plus 10 percent accumulation).
func relievingLatentHeat(in Input, r *props.Refrigerant) (float64, error) {
	relieving := units.PsigToPsia(1.10 * in.SetPsig)
	tSat, err := r.SatTempF(relieving)
	if err != nil {
		return 0, err
	}
	return r.LatentHeatBTULb(tSat)
}

// SelectValve returns the smallest-capacity valve whose rated capacity
// at (set, back) meets requiredAir, boundary inclusive. Brand filters
// when non-empty. Capacity ties break on lower list price, then table
// order. The count of eligible candidates is returned for diagnostics.
func SelectValve(valves []props.ReliefValve, brand string, setPsig, backPsig, requiredAir float64) (*props.ReliefValve, float64, int) {
	var best *props.ReliefValve
	var bestRated float64
	n := 0
	for i := range valves {
		v := &valves[i]
		if brand != "" && v.Brand != brand {
			continue
		}
		if !v.InSetRange(setPsig) {
			continue
		}
		rated := v.RatedAirLbMin(setPsig, backPsig)
		if rated < requiredAir {
			continue
		}
		n++
		switch {
		case best == nil:
			best, bestRated = v, rated
		case rated < bestRated:
			best, bestRated = v, rated
		case rated == bestRated && v.ListPrice.IsPositive() && best.ListPrice.IsPositive() &&
			v.ListPrice.LessThan(best.ListPrice):
			best, bestRated = v, rated
		}
	}
	return best, bestRated, n
}

// checkOutlet runs the Darcy-Weisbach drop of rated air flow through
// the discharge run and compares it to the back-pressure allowance.
func checkOutlet(in Input, valve props.ReliefValve, ratedAir float64, cat *props.Catalog) (OutletCheck, error) {
	nominal := in.Outlet.Nominal
	if nominal == "" {
		nominal = strconv.FormatFloat(valve.OutletIn, 'f', -1, 64)
	}
	pipe, err := cat.Pipe(nominal, "40")
	if err != nil {
		return OutletCheck{}, err
	}

	var oc OutletCheck
	oc.Nominal = nominal
	oc.VelocityFtS = hydraulics.Velocity(ratedAir, units.AirDensityLbFt3, pipe.FlowAreaFt2())
	oc.Reynolds = hydraulics.Reynolds(units.AirDensityLbFt3, oc.VelocityFtS, pipe.IDFt(), units.AirViscosityLbFtS)
	relRough := hydraulics.SteelRoughnessFt / pipe.IDFt()
	f, iters, err := hydraulics.FrictionFactor(oc.Reynolds, relRough, in.Solver)
	if err != nil {
		return OutletCheck{}, err
	}
	oc.FrictionFactor = f
	oc.Iterations = iters

	runFt := in.Outlet.LengthFt + hydraulics.FittingEquivalentFt(pipe.IDFt(), in.Outlet.Elbows, in.Outlet.Valves)
	oc.DropPsi = hydraulics.DarcyDrop(f, runFt, pipe.IDFt(), units.AirDensityLbFt3, oc.VelocityFtS)
	oc.AllowablePsi = in.BackPressureFraction * in.SetPsig
	oc.OK = oc.DropPsi <= oc.AllowablePsi
	return oc, nil
}

func pickThreeWay(table []props.ThreeWayValve, inletIn float64) *props.ThreeWayValve {
	var best *props.ThreeWayValve
	for i := range table {
		tw := &table[i]
		if tw.ConnectionIn < inletIn {
			continue
		}
		if best == nil || tw.ConnectionIn < best.ConnectionIn {
			best = tw
		}
	}
	return best
}

// sizeTank holds one gallon of water per pound of ammonia discharged
// over the design duration, with 20 percent vapor space on the vessel.
func sizeTank(in Input, r *props.Refrigerant, requiredAir float64) (DiffusionTank, error) {
	if r.Name != "R-717" {
		return DiffusionTank{}, &calcerr.UnsupportedConfigError{Class: "tank-diffusion " + r.Name, Edition: string(in.Edition)}
	}
	refrigLbMin := requiredAir / r.AirEquivFactor
	discharge := refrigLbMin * in.DiffusionMinutes
	gallons := discharge
	return DiffusionTank{
		DischargeLb:  discharge,
		WaterGallons: gallons,
		TankFt3:      math.Ceil(gallons*units.Ft3PerGal*1.20*100) / 100,
	}, nil
}

func validate(in Input) error {
	if in.Class == "" {
		return calcerr.Invalid("class", "required")
	}
	if in.Edition == "" {
		return calcerr.Invalid("edition", "required")
	}
	if in.Refrigerant == "" {
		return calcerr.Invalid("refrigerant", "required")
	}
	if in.SetPsig <= 0 {
		return calcerr.Invalid("set_psig", "set pressure must be positive")
	}
	if in.BackPsig < 0 {
		return calcerr.Invalid("back_psig", "negative back pressure")
	}
	if in.Outlet != nil && in.Outlet.LengthFt < 0 {
		return calcerr.Invalid("outlet.length_ft", "negative run length")
	}
	return nil
}
