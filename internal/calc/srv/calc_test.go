package srv

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
	"Frostline/internal/props"
)

func catalog(t *testing.T) *props.Catalog {
	t.Helper()
	cat, err := props.Default()
	require.NoError(t, err)
	return cat
}

func receiverCase() Input {
	return Input{
		Class:       VesselHorizontal,
		Edition:     IIAR2_2014A,
		Refrigerant: "R-717",
		SetPsig:     250,
		DiameterFt:  6,
		LengthFt:    20,
	}
}

func TestHorizontalReceiverIIAR2(t *testing.T) {
	res, err := Size(receiverCase(), catalog(t))
	require.NoError(t, err)

	// C = f D L with f = 0.5 for ammonia.
	assert.InDelta(t, 60.0, res.RequiredAirLbMin, 1e-9)
	require.NotNil(t, res.Valve)
	// Smallest table entry rated at or above 60 lb air/min at 250 psig.
	assert.Equal(t, "H5604R", res.Valve.Model)
	assert.GreaterOrEqual(t, res.RatedAirLbMin, res.RequiredAirLbMin)
	assert.Nil(t, res.ThreeWay)
	assert.Nil(t, res.Tank)
}

func TestInsulationCreditQuartersCapacity(t *testing.T) {
	in := receiverCase()
	in.Insulated = true
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.RequiredAirLbMin, 1e-9)
}

func TestSelectionBoundaryInclusive(t *testing.T) {
	cat := catalog(t)
	var target *props.ReliefValve
	for i := range cat.Valves() {
		if cat.Valves()[i].Model == "H5606R" {
			target = &cat.Valves()[i]
		}
	}
	require.NotNil(t, target)

	required := target.RatedAirLbMin(250, 0)
	v, rated, _ := SelectValve(cat.Valves(), "Hansen", 250, 0, required)
	require.NotNil(t, v)
	assert.Equal(t, "H5606R", v.Model)
	assert.Equal(t, required, rated)
}

func TestSelectionTieBreaksOnPrice(t *testing.T) {
	twin := func(model, price string) props.ReliefValve {
		return props.ReliefValve{
			Brand: "Twin", Model: model, OrificeIn2: 0.3, Kd: 0.8,
			MinSetPsig: 50, MaxSetPsig: 400,
			ListPrice: decimal.RequireFromString(price),
		}
	}
	valves := []props.ReliefValve{twin("costly", "500.00"), twin("cheap", "350.00")}
	v, _, n := SelectValve(valves, "", 150, 0, 1)
	require.NotNil(t, v)
	assert.Equal(t, 2, n)
	assert.Equal(t, "cheap", v.Model)

	// Without prices the first table entry stands.
	valves[0].ListPrice = decimal.Zero
	valves[1].ListPrice = decimal.Zero
	v, _, _ = SelectValve(valves, "", 150, 0, 1)
	assert.Equal(t, "costly", v.Model)
}

func TestUnsupportedPair(t *testing.T) {
	in := receiverCase()
	in.Class = PlateExchanger
	in.Edition = CMC1118_2010
	in.HeatAreaFt2 = 100
	_, err := Size(in, catalog(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calcerr.ErrUnsupportedConfig))

	var uc *calcerr.UnsupportedConfigError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, string(PlateExchanger), uc.Class)
}

func TestHalocarbonVesselNotCoveredByIIAR2(t *testing.T) {
	in := receiverCase()
	in.Refrigerant = "R-22"
	_, err := Size(in, catalog(t))
	assert.True(t, errors.Is(err, calcerr.ErrUnsupportedConfig))
}

func TestScrewCompressorRelief(t *testing.T) {
	cat := catalog(t)
	in := Input{
		Class:           CompressorScrew,
		Edition:         IIAR2_2014A,
		Refrigerant:     "R-717",
		SetPsig:         250,
		DisplacementCFM: 500,
		SuctionTempF:    -20,
	}
	res, err := Size(in, cat)
	require.NoError(t, err)
	// Displacement at suction density, oil allowance, air equivalence.
	assert.InDelta(t, 500*0.06812*1.10*1.30, res.RequiredAirLbMin, 1e-6)
}

func TestShellAndTubeRelief(t *testing.T) {
	in := Input{
		Class:       ShellAndTube,
		Edition:     IIAR2_2014A,
		Refrigerant: "R-717",
		SetPsig:     150,
		HeatAreaFt2: 400,
	}
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	assert.Greater(t, res.RequiredAirLbMin, 0.0)
	assert.Equal(t, "IIAR 2-2014 A 15.3.2", res.FormulaRef)
}

func TestTwoStageOilCooling(t *testing.T) {
	in := Input{
		Class:        TwoStageOilCooling,
		Edition:      IIAR2_2014A,
		Refrigerant:  "R-717",
		SetPsig:      150,
		OilHeatBTUHr: 500000,
	}
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	assert.Greater(t, res.RequiredAirLbMin, 0.0)

	in.Edition = ASHRAE15_94
	_, err = Size(in, catalog(t))
	assert.True(t, errors.Is(err, calcerr.ErrUnsupportedConfig))
}

func TestOutletCheckRunsWhenRequested(t *testing.T) {
	in := receiverCase()
	in.Outlet = &OutletRun{LengthFt: 15, Elbows: 2}
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	require.NotNil(t, res.Outlet)
	assert.Greater(t, res.Outlet.DropPsi, 0.0)
	assert.Greater(t, res.Outlet.Reynolds, 0.0)
	assert.InDelta(t, 25.0, res.Outlet.AllowablePsi, 1e-9)
	assert.Equal(t, res.Outlet.OK, res.Outlet.DropPsi <= res.Outlet.AllowablePsi)
}

func TestDualReliefPicksThreeWay(t *testing.T) {
	in := receiverCase()
	in.DualRelief = true
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	require.NotNil(t, res.ThreeWay)
	// H5604R has a 0.75 in inlet; the matching changeover valve.
	assert.Equal(t, "H8400A", res.ThreeWay.Model)
}

func TestDiffusionTankSizing(t *testing.T) {
	in := receiverCase()
	in.TankDiffusion = true
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	require.NotNil(t, res.Tank)
	// 60 lb air/min back to ammonia, 15 minute discharge, 1 gal/lb.
	assert.InDelta(t, 60/1.30*15, res.Tank.DischargeLb, 1e-9)
	assert.InDelta(t, res.Tank.DischargeLb, res.Tank.WaterGallons, 1e-9)
	assert.Greater(t, res.Tank.TankFt3, 0.0)
}

func TestNoAdequateValveFlagsError(t *testing.T) {
	in := receiverCase()
	in.DiameterFt = 40
	in.LengthFt = 100 // required 2000 lb air/min, beyond the catalog
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	assert.Nil(t, res.Valve)
	assert.True(t, res.Flags.HasErrors())
}

func TestValidation(t *testing.T) {
	in := receiverCase()
	in.SetPsig = 0
	_, err := Size(in, catalog(t))
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}
