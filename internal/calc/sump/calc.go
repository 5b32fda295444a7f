// Package sump sizes the liquid sump of a recirculator vessel from
// pump flow, retention time, and a surge allowance.
package sump

import (
	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/units"
)

type Input struct {
	PumpFlowGPM float64 `json:"pump_flow_gpm"`
	// RetentionMinutes of pump flow held in the sump; 0 -> 5.
	RetentionMinutes float64 `json:"retention_minutes"`
	// SurgeFraction added on top for evaporator return surge; 0 -> 0.25.
	SurgeFraction float64 `json:"surge_fraction"`
}

type Result struct {
	WorkingGallons float64 `json:"working_gallons"`
	SurgeGallons   float64 `json:"surge_gallons"`
	TotalGallons   float64 `json:"total_gallons"`
	TotalFt3       float64 `json:"total_ft3"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Calculate sizes the sump volume.
func Calculate(in Input) (Result, error) {
	if in.PumpFlowGPM <= 0 {
		return Result{}, calcerr.Invalid("pump_flow_gpm", "pump flow must be positive")
	}
	if in.RetentionMinutes == 0 {
		in.RetentionMinutes = 5.0
	}
	if in.SurgeFraction == 0 {
		in.SurgeFraction = 0.25
	}
	if in.RetentionMinutes < 0 || in.SurgeFraction < 0 {
		return Result{}, calcerr.Invalid("retention_minutes/surge_fraction", "negative")
	}

	var res Result
	res.WorkingGallons = in.PumpFlowGPM * in.RetentionMinutes
	res.SurgeGallons = res.WorkingGallons * in.SurgeFraction
	res.TotalGallons = res.WorkingGallons + res.SurgeGallons
	res.TotalFt3 = res.TotalGallons * units.Ft3PerGal
	res.Notes = "Pump retention volume plus surge allowance."
	return res, nil
}
