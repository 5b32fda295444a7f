// Package riser sizes vertical suction risers: the smallest pipe whose
// vapor velocity stays inside the oil-return band, the frictional
// pressure drop up the riser, and the saturated-suction temperature
// penalty that drop imposes.
package riser

import (
	"fmt"

	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/hydraulics"
	"Frostline/internal/props"
	"Frostline/internal/solver"
	"Frostline/internal/units"
)

// SystemType selects the default velocity band and gates the liquid
// reserve sub-result.
type SystemType string

const (
	Recirculated    SystemType = "recirculated"
	DirectExpansion SystemType = "direct-expansion"
)

type Input struct {
	Refrigerant   string     `json:"refrigerant"`
	SatTempF      float64    `json:"sat_temp_f"`
	MassFlowLbMin float64    `json:"mass_flow_lb_min"`
	System        SystemType `json:"system"`

	// Candidates lists nominal sizes to try in ascending order; empty
	// walks the full schedule ladder.
	Candidates []string `json:"candidates,omitempty"`
	Schedule   string   `json:"schedule"` // "" -> 40

	LengthFt float64 `json:"length_ft"`

	// LiquidFlowGPM sizes the liquid column reserve on recirculated
	// systems; ignored for direct expansion.
	LiquidFlowGPM float64 `json:"liquid_flow_gpm,omitempty"`

	// Velocity band overrides, ft/min; 0 selects the system default.
	FloorFPM   float64 `json:"floor_fpm,omitempty"`
	CeilingFPM float64 `json:"ceiling_fpm,omitempty"`

	Solver solver.Config `json:"-"`
}

// Candidate is one evaluated pipe size.
type Candidate struct {
	Nominal     string  `json:"nominal"`
	VelocityFPM float64 `json:"velocity_fpm"`
	InBand      bool    `json:"in_band"`
}

type Result struct {
	Nominal     string  `json:"nominal"`
	VelocityFPM float64 `json:"velocity_fpm"`
	FloorFPM    float64 `json:"floor_fpm"`
	CeilingFPM  float64 `json:"ceiling_fpm"`

	Candidates []Candidate `json:"candidates"`

	Reynolds       float64 `json:"reynolds"`
	FrictionFactor float64 `json:"friction_factor"`
	DropPsi        float64 `json:"drop_psi"`
	DTPenaltyF     float64 `json:"dt_penalty_f"`

	// ReserveSec is present only on recirculated systems with a stated
	// liquid flow.
	ReserveSec *float64 `json:"reserve_sec,omitempty"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Size picks the riser and quantifies its suction-side cost.
func Size(in Input, cat *props.Catalog) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}
	if in.Schedule == "" {
		in.Schedule = "40"
	}
	floor, ceiling := in.FloorFPM, in.CeilingFPM
	if floor == 0 {
		if in.System == DirectExpansion {
			floor = 900
		} else {
			floor = 1200
		}
	}
	if ceiling == 0 {
		ceiling = 4500
	}

	ref, err := cat.Refrigerant(in.Refrigerant)
	if err != nil {
		return Result{}, err
	}
	rhoV, err := ref.VaporDensityLbFt3(in.SatTempF)
	if err != nil {
		return Result{}, err
	}

	ladder, err := candidatePipes(in, cat)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.FloorFPM, res.CeilingFPM = floor, ceiling

	var chosen *props.PipeSize
	for i := range ladder {
		p := ladder[i]
		vfpm := hydraulics.Velocity(in.MassFlowLbMin, rhoV, p.FlowAreaFt2()) * 60.0
		inBand := vfpm >= floor && vfpm <= ceiling
		res.Candidates = append(res.Candidates, Candidate{Nominal: p.Nominal, VelocityFPM: vfpm, InBand: inBand})
		if inBand && chosen == nil {
			chosen = &ladder[i]
			res.Nominal, res.VelocityFPM = p.Nominal, vfpm
		}
	}
	if chosen == nil {
		// Nothing lands in the band: report the smallest candidate and
		// say so rather than fail.
		chosen = &ladder[0]
		res.Nominal = chosen.Nominal
		res.VelocityFPM = res.Candidates[0].VelocityFPM
		res.Flags.Add(compliance.Warning, "ASHRAE suction riser",
			fmt.Sprintf("no candidate inside %g-%g ft/min; %s at %.0f ft/min reported", floor, ceiling, res.Nominal, res.VelocityFPM))
	}

	// Friction drop up the riser and the suction temperature it costs.
	vFtS := res.VelocityFPM / 60.0
	res.Reynolds = hydraulics.Reynolds(rhoV, vFtS, chosen.IDFt(), ref.VaporViscosityLbFtS)
	f, _, err := hydraulics.FrictionFactor(res.Reynolds, hydraulics.SteelRoughnessFt/chosen.IDFt(), in.Solver)
	if err != nil {
		return Result{}, err
	}
	res.FrictionFactor = f
	res.DropPsi = hydraulics.DarcyDrop(f, in.LengthFt, chosen.IDFt(), rhoV, vFtS)

	dpdt, err := ref.DPdTPsiPerF(in.SatTempF)
	if err != nil {
		return Result{}, err
	}
	if dpdt > 0 {
		res.DTPenaltyF = res.DropPsi / dpdt
	}
	if res.DTPenaltyF > 2.0 {
		res.Flags.Add(compliance.Warning, "ASHRAE suction riser",
			fmt.Sprintf("suction penalty %.2f F exceeds 2 F design practice", res.DTPenaltyF))
	}

	if in.System == Recirculated && in.LiquidFlowGPM > 0 {
		sec := reserveSeconds(*chosen, in.LengthFt, in.LiquidFlowGPM)
		res.ReserveSec = &sec
	}

	res.Notes = "Smallest riser inside the oil-return velocity band; penalty from saturation-slope conversion."
	return res, nil
}

func candidatePipes(in Input, cat *props.Catalog) ([]props.PipeSize, error) {
	if len(in.Candidates) == 0 {
		return cat.PipeLadder(in.Schedule)
	}
	out := make([]props.PipeSize, 0, len(in.Candidates))
	for _, nominal := range in.Candidates {
		p, err := cat.Pipe(nominal, in.Schedule)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// reserveSeconds is how long the riser volume sustains liquid feed at
// the stated pump rate.
func reserveSeconds(p props.PipeSize, lengthFt, gpm float64) float64 {
	volFt3 := p.FlowAreaFt2() * lengthFt
	qFt3S := units.GpmToFt3PerSec(gpm)
	if qFt3S <= 0 {
		return 0
	}
	return volFt3 / qFt3S
}

func validate(in Input) error {
	if in.Refrigerant == "" {
		return calcerr.Invalid("refrigerant", "required")
	}
	if in.MassFlowLbMin <= 0 {
		return calcerr.Invalid("mass_flow_lb_min", "mass flow must be positive")
	}
	if in.LengthFt <= 0 {
		return calcerr.Invalid("length_ft", "riser length must be positive")
	}
	if in.System != "" && in.System != Recirculated && in.System != DirectExpansion {
		return calcerr.Invalidf("system", "unknown system type %q", in.System)
	}
	if in.FloorFPM < 0 || in.CeilingFPM < 0 || (in.CeilingFPM > 0 && in.FloorFPM > in.CeilingFPM) {
		return calcerr.Invalid("floor_fpm/ceiling_fpm", "velocity band inverted or negative")
	}
	if in.LiquidFlowGPM < 0 {
		return calcerr.Invalid("liquid_flow_gpm", "negative liquid flow")
	}
	return nil
}
