// Package support sizes pipe supports for a run: loaded weight per
// foot, recommended span, stand selection from the capacity table, and
// the slope drop across the run.
package support

import (
	"fmt"
	"math"

	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/props"
)

type Input struct {
	Nominal  string `json:"nominal"`
	Schedule string `json:"schedule"` // "" -> 40

	// Liquid-full runs weigh in at the refrigerant liquid density when
	// Refrigerant and TempF are given; otherwise water. Vapor runs
	// carry no contents weight.
	LiquidFull  bool    `json:"liquid_full"`
	Refrigerant string  `json:"refrigerant,omitempty"`
	TempF       float64 `json:"temp_f,omitempty"`

	InsulationLbFt float64 `json:"insulation_lb_ft"`
	RunLengthFt    float64 `json:"run_length_ft"`
	// SlopeInPer10Ft is the drainage pitch; 0 is a level run.
	SlopeInPer10Ft float64 `json:"slope_in_per_10ft"`
}

type Result struct {
	MetalLbFt    float64 `json:"metal_lb_ft"`
	ContentsLbFt float64 `json:"contents_lb_ft"`
	TotalLbFt    float64 `json:"total_lb_ft"`

	SpanFt         float64      `json:"span_ft"`
	SupportCount   int          `json:"support_count"`
	LoadPerStandLb float64      `json:"load_per_stand_lb"`
	Stand          *props.Stand `json:"stand,omitempty"`

	SlopeDropIn float64 `json:"slope_drop_in"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Calculate sizes the supports for one run.
func Calculate(in Input, cat *props.Catalog) (Result, error) {
	if in.Nominal == "" {
		return Result{}, calcerr.Invalid("nominal", "required")
	}
	if in.RunLengthFt <= 0 {
		return Result{}, calcerr.Invalid("run_length_ft", "run length must be positive")
	}
	if in.Schedule == "" {
		in.Schedule = "40"
	}
	pipe, err := cat.Pipe(in.Nominal, in.Schedule)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.MetalLbFt = pipe.MetalWeightLbFt()
	if in.LiquidFull {
		density := 62.4
		if in.Refrigerant != "" {
			ref, err := cat.Refrigerant(in.Refrigerant)
			if err != nil {
				return Result{}, err
			}
			density, err = ref.LiquidDensityLbFt3(in.TempF)
			if err != nil {
				return Result{}, err
			}
		}
		res.ContentsLbFt = density * pipe.InternalVolumeFt3PerFt()
	}
	res.TotalLbFt = res.MetalLbFt + res.ContentsLbFt + in.InsulationLbFt

	res.SpanFt, err = cat.RecommendedSpanFt(in.Nominal)
	if err != nil {
		return Result{}, err
	}
	res.SupportCount = int(math.Ceil(in.RunLengthFt/res.SpanFt)) + 1
	res.LoadPerStandLb = res.TotalLbFt * res.SpanFt

	for i, s := range cat.Stands() {
		if s.MaxLoadLb >= res.LoadPerStandLb {
			stand := cat.Stands()[i]
			res.Stand = &stand
			break
		}
	}
	if res.Stand == nil {
		res.Flags.Add(compliance.Warning, "support stands",
			fmt.Sprintf("no stand rated for %.0f lb per support", res.LoadPerStandLb))
	}

	res.SlopeDropIn = in.SlopeInPer10Ft * in.RunLengthFt / 10.0
	res.Notes = "Loaded weight at recommended span; smallest adequate stand."
	return res, nil
}
