package props

import (
	"fmt"
	"sort"

	"Frostline/internal/calcerr"
)

// DoorType characterizes doorway air exchange while the door stands
// open: cfm of interchange per square foot of opening.
type DoorType struct {
	Name           string  `json:"name"`
	ExchangeCfmFt2 float64 `json:"exchange_cfm_ft2"`
	Description    string  `json:"description"`
}

type doorRow struct {
	Name           string  `csv:"door_type"`
	ExchangeCfmFt2 float64 `csv:"exchange_cfm_ft2"`
	Description    string  `csv:"description"`
}

func (c *Catalog) loadDoors(raw []byte) error {
	rows, err := unmarshalCSV[doorRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.doors[r.Name] = DoorType{Name: r.Name, ExchangeCfmFt2: r.ExchangeCfmFt2, Description: r.Description}
	}
	return nil
}

// airChangeGrid holds heat removed per cubic foot of infiltrated air,
// BTU/ft3, on a (storage temperature x ambient temperature) grid.
type airChangeGrid struct {
	storageT []float64
	ambientT []float64
	// btu[i][j] pairs storageT[i] with ambientT[j].
	btu [][]float64
}

type airChangeRow struct {
	StorageF float64 `csv:"storage_f"`
	AmbientF float64 `csv:"ambient_f"`
	BTUFt3   float64 `csv:"btu_ft3"`
}

func (c *Catalog) loadAirChange(raw []byte) error {
	rows, err := unmarshalCSV[airChangeRow](raw)
	if err != nil {
		return err
	}
	cells := make(map[[2]float64]float64, len(rows))
	sSet := map[float64]bool{}
	aSet := map[float64]bool{}
	for _, r := range rows {
		cells[[2]float64{r.StorageF, r.AmbientF}] = r.BTUFt3
		sSet[r.StorageF] = true
		aSet[r.AmbientF] = true
	}
	g := &c.air
	for s := range sSet {
		g.storageT = append(g.storageT, s)
	}
	for a := range aSet {
		g.ambientT = append(g.ambientT, a)
	}
	sort.Float64s(g.storageT)
	sort.Float64s(g.ambientT)
	g.btu = make([][]float64, len(g.storageT))
	for i, s := range g.storageT {
		g.btu[i] = make([]float64, len(g.ambientT))
		for j, a := range g.ambientT {
			v, ok := cells[[2]float64{s, a}]
			if !ok {
				return fmt.Errorf("air-change grid missing cell storage %.0f / ambient %.0f", s, a)
			}
			g.btu[i][j] = v
		}
	}
	return nil
}

func (g *airChangeGrid) validate() error {
	if len(g.storageT) < 2 || len(g.ambientT) < 2 {
		return fmt.Errorf("air-change grid needs at least a 2x2 table")
	}
	return nil
}

// AirChangeHeatBTUFt3 bilinearly interpolates the heat content removed
// per cubic foot of exchanged air between storage and ambient
// conditions. Conditions outside the grid are a lookup miss, not an
// extrapolation.
func (c *Catalog) AirChangeHeatBTUFt3(storageF, ambientF float64) (float64, error) {
	g := &c.air
	si, sf, err := bracket(g.storageT, storageF, "air-change storage temp")
	if err != nil {
		return 0, err
	}
	ai, af, err := bracket(g.ambientT, ambientF, "air-change ambient temp")
	if err != nil {
		return 0, err
	}
	lo := g.btu[si][ai] + af*(g.btu[si][ai+1]-g.btu[si][ai])
	hi := g.btu[si+1][ai] + af*(g.btu[si+1][ai+1]-g.btu[si+1][ai])
	return lo + sf*(hi-lo), nil
}

// bracket finds the interval index and fraction for x within a sorted
// axis; the top endpoint maps to the last interval with fraction 1.
func bracket(axis []float64, x float64, what string) (int, float64, error) {
	n := len(axis)
	if x < axis[0] || x > axis[n-1] {
		return 0, 0, calcerr.Miss(what, fmt.Sprintf("%.1f F", x))
	}
	if x == axis[n-1] {
		return n - 2, 1.0, nil
	}
	i := sort.SearchFloat64s(axis, x)
	if i > 0 && axis[i] != x {
		i--
	}
	if i >= n-1 {
		i = n - 2
	}
	frac := (x - axis[i]) / (axis[i+1] - axis[i])
	return i, frac, nil
}
