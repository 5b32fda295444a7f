package props

import (
	"fmt"

	"Frostline/internal/calcerr"
)

type stressPoint struct {
	tempF float64
	psi   float64
}

type materialRow struct {
	Material     string  `csv:"material"`
	TempF        float64 `csv:"temp_f"`
	AllowablePsi float64 `csv:"allowable_psi"`
}

func (c *Catalog) loadMaterials(raw []byte) error {
	rows, err := unmarshalCSV[materialRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.materials[r.Material] = append(c.materials[r.Material], stressPoint{tempF: r.TempF, psi: r.AllowablePsi})
	}
	return nil
}

// AllowableStress returns the material allowable stress at the design
// temperature, linearly interpolated between table points. Below the
// coldest point the cold-end value holds; above the hottest point the
// table has nothing to say and the lookup fails.
func (c *Catalog) AllowableStress(material string, tempF float64) (float64, error) {
	pts, ok := c.materials[material]
	if !ok {
		return 0, calcerr.Miss("material", material)
	}
	if tempF <= pts[0].tempF {
		return pts[0].psi, nil
	}
	last := pts[len(pts)-1]
	if tempF > last.tempF {
		return 0, calcerr.Miss("material", fmt.Sprintf("%s above %.0f F", material, last.tempF))
	}
	for i := 1; i < len(pts); i++ {
		if tempF <= pts[i].tempF {
			lo, hi := pts[i-1], pts[i]
			frac := (tempF - lo.tempF) / (hi.tempF - lo.tempF)
			return lo.psi + frac*(hi.psi-lo.psi), nil
		}
	}
	return last.psi, nil
}
