package props

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"

	"Frostline/internal/calcerr"
)

// Refrigerant bundles the per-fluid constants with fitted saturation
// curves. The curves are monotone cubic fits over the table rows, so
// interpolated pressures stay physical and dP/dT is available
// analytically from the fit.
type Refrigerant struct {
	Name           string
	MolWeight      float64
	AirEquivFactor float64
	// VaporViscosityLbFtS is the saturated-vapor dynamic viscosity used
	// for Reynolds numbers. Treated as constant over the table range.
	VaporViscosityLbFtS float64

	reliefF map[string]float64

	satT  []float64
	satP  []float64
	satRV []float64
	satRL []float64
	satH  []float64

	pFit   interp.FritschButland
	rvFit  interp.FritschButland
	rlFit  interp.FritschButland
	hfgFit interp.FritschButland
}

// VesselReliefF returns the vessel relief factor f for a code family
// ("IIAR2", "ASHRAE15", "CMC"). A zero table entry means the code does
// not cover this refrigerant.
func (r *Refrigerant) VesselReliefF(codeFamily string) (float64, bool) {
	f, ok := r.reliefF[codeFamily]
	return f, ok && f > 0
}

func (r *Refrigerant) inRange(tF float64) error {
	if len(r.satT) == 0 {
		return calcerr.Miss("saturation", r.Name)
	}
	if tF < r.satT[0] || tF > r.satT[len(r.satT)-1] {
		return calcerr.Miss("saturation", fmt.Sprintf("%s at %.1f F", r.Name, tF))
	}
	return nil
}

// SatPressurePsia returns saturation pressure at tF.
func (r *Refrigerant) SatPressurePsia(tF float64) (float64, error) {
	if err := r.inRange(tF); err != nil {
		return 0, err
	}
	return r.pFit.Predict(tF), nil
}

// DPdTPsiPerF returns the local slope of the saturation curve at tF.
func (r *Refrigerant) DPdTPsiPerF(tF float64) (float64, error) {
	if err := r.inRange(tF); err != nil {
		return 0, err
	}
	return r.pFit.PredictDerivative(tF), nil
}

// SatTempF inverts the saturation curve: the temperature at which the
// fluid saturates at psia. Bisection over the fitted curve; the fit is
// monotone so the root is unique.
func (r *Refrigerant) SatTempF(psia float64) (float64, error) {
	if len(r.satT) == 0 {
		return 0, calcerr.Miss("saturation", r.Name)
	}
	lo, hi := r.satT[0], r.satT[len(r.satT)-1]
	if psia < r.pFit.Predict(lo) || psia > r.pFit.Predict(hi) {
		return 0, calcerr.Miss("saturation", fmt.Sprintf("%s at %.1f psia", r.Name, psia))
	}
	for i := 0; i < 60 && hi-lo > 1e-4; i++ {
		mid := (lo + hi) / 2.0
		if r.pFit.Predict(mid) < psia {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2.0, nil
}

// VaporDensityLbFt3 returns saturated vapor density at tF.
func (r *Refrigerant) VaporDensityLbFt3(tF float64) (float64, error) {
	if err := r.inRange(tF); err != nil {
		return 0, err
	}
	return r.rvFit.Predict(tF), nil
}

// LiquidDensityLbFt3 returns saturated liquid density at tF.
func (r *Refrigerant) LiquidDensityLbFt3(tF float64) (float64, error) {
	if err := r.inRange(tF); err != nil {
		return 0, err
	}
	return r.rlFit.Predict(tF), nil
}

// LatentHeatBTULb returns the heat of vaporization at tF.
func (r *Refrigerant) LatentHeatBTULb(tF float64) (float64, error) {
	if err := r.inRange(tF); err != nil {
		return 0, err
	}
	return r.hfgFit.Predict(tF), nil
}

type refrigerantRow struct {
	Name                string  `csv:"refrigerant"`
	MolWeight           float64 `csv:"mol_weight"`
	AirEquivFactor      float64 `csv:"air_equiv_factor"`
	VaporViscosityLbFtS float64 `csv:"vapor_viscosity_lbfts"`
	FIIAR2              float64 `csv:"vessel_f_iiar2"`
	FASHRAE15           float64 `csv:"vessel_f_ashrae15"`
	FCMC                float64 `csv:"vessel_f_cmc"`
}

type saturationRow struct {
	Name            string  `csv:"refrigerant"`
	TempF           float64 `csv:"temp_f"`
	PressurePsia    float64 `csv:"pressure_psia"`
	VaporDensity    float64 `csv:"vapor_density_lbft3"`
	LiquidDensity   float64 `csv:"liquid_density_lbft3"`
	LatentHeatBTULb float64 `csv:"latent_btu_lb"`
}

func (c *Catalog) loadRefrigerants(raw []byte) error {
	rows, err := unmarshalCSV[refrigerantRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.refrigerants[r.Name] = &Refrigerant{
			Name:                r.Name,
			MolWeight:           r.MolWeight,
			AirEquivFactor:      r.AirEquivFactor,
			VaporViscosityLbFtS: r.VaporViscosityLbFtS,
			reliefF: map[string]float64{
				"IIAR2":    r.FIIAR2,
				"ASHRAE15": r.FASHRAE15,
				"CMC":      r.FCMC,
			},
		}
	}
	return nil
}

func (c *Catalog) loadSaturation(raw []byte) error {
	rows, err := unmarshalCSV[saturationRow](raw)
	if err != nil {
		return err
	}
	for _, row := range rows {
		r, ok := c.refrigerants[row.Name]
		if !ok {
			return calcerr.Miss("refrigerant", row.Name)
		}
		r.satT = append(r.satT, row.TempF)
		r.satP = append(r.satP, row.PressurePsia)
		r.satRV = append(r.satRV, row.VaporDensity)
		r.satRL = append(r.satRL, row.LiquidDensity)
		r.satH = append(r.satH, row.LatentHeatBTULb)
	}
	return nil
}

func (r *Refrigerant) fit() error {
	if len(r.satT) < 3 {
		return fmt.Errorf("need at least 3 saturation rows, have %d", len(r.satT))
	}
	if !sort.Float64sAreSorted(r.satT) {
		return fmt.Errorf("saturation rows out of temperature order")
	}
	if err := r.pFit.Fit(r.satT, r.satP); err != nil {
		return err
	}
	if err := r.rvFit.Fit(r.satT, r.satRV); err != nil {
		return err
	}
	if err := r.rlFit.Fit(r.satT, r.satRL); err != nil {
		return err
	}
	return r.hfgFit.Fit(r.satT, r.satH)
}
