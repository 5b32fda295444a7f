// Package roomload sums the refrigeration load of a cold-storage room:
// envelope transmission, air-change infiltration, doorway exchange,
// internal gains, and product pull-down, aggregated to a daily total
// and tons of refrigeration.
package roomload

import (
	"fmt"
	"math"

	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/props"
	"Frostline/internal/units"
)

// Surface is one envelope assembly (wall, roof or floor section).
type Surface struct {
	Name    string  `json:"name"`
	UFactor float64 `json:"u_factor"` // BTU/(hr*ft2*F)
	AreaFt2 float64 `json:"area_ft2"`
	// AdjacentTempF is the design temperature on the far side of this
	// assembly; adjacent spaces need not sit at ambient.
	AdjacentTempF float64 `json:"adjacent_temp_f"`
}

// Door is one doorway, loaded independently of envelope infiltration.
type Door struct {
	Type            string  `json:"type"`
	AreaFt2         float64 `json:"area_ft2"`
	OpenHoursPerDay float64 `json:"open_hours_per_day"`
}

// Product is one line of the daily product schedule.
type Product struct {
	Name          string  `json:"name"`
	MassLbPerDay  float64 `json:"mass_lb_per_day"`
	CpAboveBTULbF float64 `json:"cp_above_btu_lb_f"`
	CpBelowBTULbF float64 `json:"cp_below_btu_lb_f"`
	LatentBTULb   float64 `json:"latent_btu_lb"`
	FreezePointF  float64 `json:"freeze_point_f"`
	EnteringTempF float64 `json:"entering_temp_f"`
	FinalTempF    float64 `json:"final_temp_f"`
}

type Input struct {
	LengthFt     float64 `json:"length_ft"`
	WidthFt      float64 `json:"width_ft"`
	HeightFt     float64 `json:"height_ft"`
	InsideTempF  float64 `json:"inside_temp_f"`
	OutsideTempF float64 `json:"outside_temp_f"`

	Surfaces []Surface `json:"surfaces"`
	Doors    []Door    `json:"doors"`
	Products []Product `json:"products"`

	LightingWattsFt2    float64 `json:"lighting_watts_ft2"`
	LightingHoursPerDay float64 `json:"lighting_hours_per_day"`
	OccupantCount       float64 `json:"occupant_count"`
	OccupantHoursPerDay float64 `json:"occupant_hours_per_day"`
	MotorHP             float64 `json:"motor_hp"`
	MotorLoadFactor     float64 `json:"motor_load_factor"` // 0 -> 1.0
	MotorHoursPerDay    float64 `json:"motor_hours_per_day"`

	// RunFraction is the design fraction of the day the equipment runs;
	// 0 selects the 0.75 default.
	RunFraction float64 `json:"run_fraction"`
	// SafetyFactor is applied to the connected total; 0 selects the
	// 0.10 default.
	SafetyFactor float64 `json:"safety_factor"`
}

type Result struct {
	TransmissionBTUDay float64 `json:"transmission_btu_day"`
	InfiltrationBTUDay float64 `json:"infiltration_btu_day"`
	DoorBTUDay         float64 `json:"door_btu_day"`
	InternalBTUDay     float64 `json:"internal_btu_day"`
	ProductBTUDay      float64 `json:"product_btu_day"`

	AirChangesPerDay float64 `json:"air_changes_per_day"`
	VolumeFt3        float64 `json:"volume_ft3"`

	SubtotalBTUDay float64 `json:"subtotal_btu_day"`
	SafetyFactor   float64 `json:"safety_factor"`
	TotalBTUDay    float64 `json:"total_btu_day"`
	RunFraction    float64 `json:"run_fraction"`
	Tons           float64 `json:"tons"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Calculate sums the daily room load. Zero-sized surfaces, doors and
// product lines contribute zero rather than failing.
func Calculate(in Input, cat *props.Catalog) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}
	if in.RunFraction == 0 {
		in.RunFraction = 0.75
	}
	if in.SafetyFactor == 0 {
		in.SafetyFactor = 0.10
	}
	if in.MotorLoadFactor == 0 {
		in.MotorLoadFactor = 1.0
	}

	var res Result
	res.RunFraction = in.RunFraction
	res.SafetyFactor = in.SafetyFactor
	res.VolumeFt3 = in.LengthFt * in.WidthFt * in.HeightFt

	// Transmission: Q = U A dT, per assembly, over 24 h. Each surface
	// sees its own warm-side temperature.
	for _, s := range in.Surfaces {
		dT := s.AdjacentTempF - in.InsideTempF
		q := s.UFactor * s.AreaFt2 * dT * 24.0
		if q < 0 {
			res.Flags.Add(compliance.Info, "transmission",
				fmt.Sprintf("surface %q is colder than the room (dT %.1f F); credit taken", s.Name, dT))
		}
		res.TransmissionBTUDay += q
	}

	// Envelope infiltration from the air-change correlation; the
	// exponent pair splits at an inside design temperature of 32 F.
	if res.VolumeFt3 > 0 {
		var n float64
		if in.InsideTempF < 32.0 {
			n = 596.21 * math.Pow(res.VolumeFt3, -0.548)
		} else {
			n = 817.5 * math.Pow(res.VolumeFt3, -0.5551)
		}
		q, err := cat.AirChangeHeatBTUFt3(in.InsideTempF, in.OutsideTempF)
		if err != nil {
			return Result{}, err
		}
		res.AirChangesPerDay = n
		res.InfiltrationBTUDay = n * res.VolumeFt3 * q
	}

	// Doorway exchange is load on top of envelope infiltration: open
	// doors and envelope leakage are distinct paths.
	for _, d := range in.Doors {
		if d.AreaFt2 == 0 || d.OpenHoursPerDay == 0 {
			continue
		}
		door, err := cat.Door(d.Type)
		if err != nil {
			return Result{}, err
		}
		cfh := d.AreaFt2 * door.ExchangeCfmFt2 * 60.0
		dT := in.OutsideTempF - in.InsideTempF
		res.DoorBTUDay += cfh * dT * units.AirVolumetricHeat * d.OpenHoursPerDay
	}

	// Internal gains.
	floorArea := in.LengthFt * in.WidthFt
	lighting := in.LightingWattsFt2 * floorArea * units.BTUPerWattHr * in.LightingHoursPerDay
	occupantHeat := 1295.0 - 11.5*in.InsideTempF // BTU/hr per person in a cold room
	if occupantHeat < 0 {
		occupantHeat = 0
	}
	occupancy := in.OccupantCount * occupantHeat * in.OccupantHoursPerDay
	motors := in.MotorHP * motorHeatBTUHpHr(in.MotorHP) * in.MotorLoadFactor * in.MotorHoursPerDay
	res.InternalBTUDay = lighting + occupancy + motors

	// Product pull-down: three independently gated terms per line.
	for _, p := range in.Products {
		res.ProductBTUDay += productHeat(p)
	}

	res.SubtotalBTUDay = res.TransmissionBTUDay + res.InfiltrationBTUDay +
		res.DoorBTUDay + res.InternalBTUDay + res.ProductBTUDay
	res.TotalBTUDay = res.SubtotalBTUDay * (1.0 + in.SafetyFactor)
	res.Tons = units.BTUDayToTR(res.TotalBTUDay, in.RunFraction)
	res.Notes = "Daily box load with air-change infiltration and gated product pull-down."
	return res, nil
}

// productHeat evaluates the sensible-above, latent, and sensible-below
// terms, each included only when the entering/final temperatures make
// that transition happen.
func productHeat(p Product) float64 {
	if p.MassLbPerDay == 0 {
		return 0
	}
	var q float64
	if dAbove := p.EnteringTempF - math.Max(p.FreezePointF, p.FinalTempF); dAbove > 0 {
		q += p.MassLbPerDay * p.CpAboveBTULbF * dAbove
	}
	if p.EnteringTempF >= p.FreezePointF && p.FinalTempF < p.FreezePointF {
		q += p.MassLbPerDay * p.LatentBTULb
	}
	if dBelow := math.Min(p.FreezePointF, p.EnteringTempF) - p.FinalTempF; dBelow > 0 {
		q += p.MassLbPerDay * p.CpBelowBTULbF * dBelow
	}
	return q
}

// motorHeatBTUHpHr returns heat rejected to the space per horsepower
// hour; small motors reject proportionally more.
func motorHeatBTUHpHr(hp float64) float64 {
	switch {
	case hp <= 0.5:
		return 4250.0
	case hp <= 3.0:
		return 3700.0
	default:
		return 2950.0
	}
}

func validate(in Input) error {
	if in.LengthFt < 0 || in.WidthFt < 0 || in.HeightFt < 0 {
		return calcerr.Invalid("dimensions", "negative room dimension")
	}
	if in.InsideTempF >= in.OutsideTempF {
		return calcerr.Invalidf("inside_temp_f", "must be below outside design %.1f F for a cooled room", in.OutsideTempF)
	}
	for _, s := range in.Surfaces {
		if s.AreaFt2 < 0 || s.UFactor < 0 {
			return calcerr.Invalidf("surfaces", "surface %q has a negative area or U-factor", s.Name)
		}
	}
	for i, d := range in.Doors {
		if d.AreaFt2 < 0 {
			return calcerr.Invalidf("doors", "door %d has negative area", i)
		}
		if d.OpenHoursPerDay < 0 || d.OpenHoursPerDay > 24 {
			return calcerr.Invalidf("doors", "door %d open hours outside [0,24]", i)
		}
	}
	for _, p := range in.Products {
		if p.MassLbPerDay < 0 {
			return calcerr.Invalidf("products", "product %q has negative mass", p.Name)
		}
		if p.FinalTempF > p.EnteringTempF {
			return calcerr.Invalidf("products", "product %q final temperature exceeds entering", p.Name)
		}
		if p.CpAboveBTULbF < 0 || p.CpBelowBTULbF < 0 || p.LatentBTULb < 0 {
			return calcerr.Invalidf("products", "product %q has a negative heat property", p.Name)
		}
	}
	if in.LightingWattsFt2 < 0 || in.OccupantCount < 0 || in.MotorHP < 0 {
		return calcerr.Invalid("internal_loads", "negative internal load")
	}
	if badHours(in.LightingHoursPerDay) || badHours(in.OccupantHoursPerDay) || badHours(in.MotorHoursPerDay) {
		return calcerr.Invalid("internal_loads", "hours per day outside [0,24]")
	}
	if in.RunFraction < 0 || in.RunFraction > 1 {
		return calcerr.Invalid("run_fraction", "outside (0,1]")
	}
	if in.SafetyFactor < 0 || in.SafetyFactor > 1 {
		return calcerr.Invalid("safety_factor", "outside [0,1]")
	}
	return nil
}

func badHours(h float64) bool { return h < 0 || h > 24 }
