package props

import (
	"math"

	"Frostline/internal/units"
)

// PipeSize is one row of the IPS dimension table.
type PipeSize struct {
	Nominal  string  `json:"nominal"`
	Schedule string  `json:"schedule"`
	ODIn     float64 `json:"od_in"`
	WallIn   float64 `json:"wall_in"`
}

// IDIn returns the inside diameter in inches.
func (p PipeSize) IDIn() float64 { return p.ODIn - 2.0*p.WallIn }

// IDFt returns the inside diameter in feet.
func (p PipeSize) IDFt() float64 { return units.InToFt(p.IDIn()) }

// FlowAreaFt2 returns the internal flow area.
func (p PipeSize) FlowAreaFt2() float64 {
	d := p.IDFt()
	return math.Pi * d * d / 4.0
}

// MetalWeightLbFt returns the carbon-steel weight per foot using the
// plain-end weight relation 10.69 (D - t) t.
func (p PipeSize) MetalWeightLbFt() float64 {
	return 10.69 * (p.ODIn - p.WallIn) * p.WallIn
}

// InternalVolumeFt3PerFt returns the contained volume per foot of run.
func (p PipeSize) InternalVolumeFt3PerFt() float64 { return p.FlowAreaFt2() }

// WaterWeightLbFt returns the weight of water filling one foot of pipe.
func (p PipeSize) WaterWeightLbFt() float64 { return 62.4 * p.InternalVolumeFt3PerFt() }

type pipeRow struct {
	Nominal  string  `csv:"nominal"`
	Schedule string  `csv:"schedule"`
	ODIn     float64 `csv:"od_in"`
	WallIn   float64 `csv:"wall_in"`
}

func (c *Catalog) loadPipes(raw []byte) error {
	rows, err := unmarshalCSV[pipeRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		p := PipeSize{Nominal: r.Nominal, Schedule: r.Schedule, ODIn: r.ODIn, WallIn: r.WallIn}
		c.pipes[pipeKey(p.Nominal, p.Schedule)] = p
		c.ladder[p.Schedule] = append(c.ladder[p.Schedule], p)
	}
	return nil
}
