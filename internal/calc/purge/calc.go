// Package purge sizes a nitrogen purge for a pipe run: internal volume,
// nitrogen required at the exchange count, and blow time at the purge
// flow.
package purge

import (
	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/props"
)

type Input struct {
	Nominal  string  `json:"nominal"`
	Schedule string  `json:"schedule"` // "" -> 40
	LengthFt float64 `json:"length_ft"`
	// ExchangeCount is how many internal volumes to sweep; 0 -> 3.
	ExchangeCount float64 `json:"exchange_count"`
	PurgeFlowCFM  float64 `json:"purge_flow_cfm"`
}

type Result struct {
	InternalFt3   float64 `json:"internal_ft3"`
	NitrogenFt3   float64 `json:"nitrogen_ft3"`
	MinutesAtFlow float64 `json:"minutes_at_flow,omitempty"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Calculate sizes the purge.
func Calculate(in Input, cat *props.Catalog) (Result, error) {
	if in.Nominal == "" {
		return Result{}, calcerr.Invalid("nominal", "required")
	}
	if in.LengthFt <= 0 {
		return Result{}, calcerr.Invalid("length_ft", "run length must be positive")
	}
	if in.ExchangeCount == 0 {
		in.ExchangeCount = 3.0
	}
	if in.ExchangeCount < 0 || in.PurgeFlowCFM < 0 {
		return Result{}, calcerr.Invalid("exchange_count/purge_flow_cfm", "negative")
	}
	if in.Schedule == "" {
		in.Schedule = "40"
	}
	pipe, err := cat.Pipe(in.Nominal, in.Schedule)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.InternalFt3 = pipe.InternalVolumeFt3PerFt() * in.LengthFt
	res.NitrogenFt3 = res.InternalFt3 * in.ExchangeCount
	if in.PurgeFlowCFM > 0 {
		res.MinutesAtFlow = res.NitrogenFt3 / in.PurgeFlowCFM
	}
	res.Notes = "Sweep volume at the stated exchange count."
	return res, nil
}
