// Package underfloor sizes the heating loop that keeps the subgrade
// under a freezer floor from frost heave: heat input, loop length, and
// glycol circulation flow.
package underfloor

import (
	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
)

// glycolHeatBTUHrGpmF is the heat carried by 40 percent propylene
// glycol, BTU/hr per gpm per degree F (485 for water).
const glycolHeatBTUHrGpmF = 425.0

type Input struct {
	AreaFt2 float64 `json:"area_ft2"`
	// FluxBTUHrFt2 is the warming duty per square foot; 0 -> 8.
	FluxBTUHrFt2 float64 `json:"flux_btu_hr_ft2"`
	// PipeSpacingIn is the loop pitch in the slab; 0 -> 12.
	PipeSpacingIn float64 `json:"pipe_spacing_in"`
	SupplyTempF   float64 `json:"supply_temp_f"`
	ReturnTempF   float64 `json:"return_temp_f"`
}

type Result struct {
	HeatBTUHr    float64 `json:"heat_btu_hr"`
	LoopLengthFt float64 `json:"loop_length_ft"`
	GlycolGPM    float64 `json:"glycol_gpm"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Calculate sizes the underfloor warming system.
func Calculate(in Input) (Result, error) {
	if in.AreaFt2 <= 0 {
		return Result{}, calcerr.Invalid("area_ft2", "floor area must be positive")
	}
	if in.FluxBTUHrFt2 == 0 {
		in.FluxBTUHrFt2 = 8.0
	}
	if in.PipeSpacingIn == 0 {
		in.PipeSpacingIn = 12.0
	}
	if in.FluxBTUHrFt2 < 0 || in.PipeSpacingIn < 0 {
		return Result{}, calcerr.Invalid("flux_btu_hr_ft2/pipe_spacing_in", "negative")
	}
	dT := in.SupplyTempF - in.ReturnTempF
	if dT <= 0 {
		return Result{}, calcerr.Invalid("supply_temp_f", "supply must exceed return temperature")
	}

	var res Result
	res.HeatBTUHr = in.FluxBTUHrFt2 * in.AreaFt2
	res.LoopLengthFt = in.AreaFt2 * 12.0 / in.PipeSpacingIn
	res.GlycolGPM = res.HeatBTUHr / (glycolHeatBTUHrGpmF * dT)
	if dT > 20 {
		res.Flags.Add(compliance.Warning, "underfloor warming",
			"glycol temperature drop above 20 F risks cold spots at loop ends")
	}
	res.Notes = "Warming duty at loop pitch with 40 percent glycol circulation."
	return res, nil
}
