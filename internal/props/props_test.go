package props

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
)

func catalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Default()
	require.NoError(t, err)
	return cat
}

func TestDefaultIsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, _ := Default()
	assert.Same(t, a, b)
}

func TestPipeLookup(t *testing.T) {
	cat := catalog(t)
	p, err := cat.Pipe("2", "40")
	require.NoError(t, err)
	assert.Equal(t, 2.375, p.ODIn)
	assert.InDelta(t, 2.067, p.IDIn(), 1e-9)
	assert.Greater(t, p.FlowAreaFt2(), 0.0)
	assert.Greater(t, p.MetalWeightLbFt(), 0.0)
}

func TestPipeMiss(t *testing.T) {
	cat := catalog(t)
	_, err := cat.Pipe("17", "40")
	require.Error(t, err)
	assert.True(t, errors.Is(err, calcerr.ErrLookup))

	var miss *calcerr.LookupError
	require.True(t, errors.As(err, &miss))
	assert.Equal(t, "pipe schedule", miss.Table)
	assert.Contains(t, miss.Key, "17")
}

func TestPipeLadderAscending(t *testing.T) {
	cat := catalog(t)
	ladder, err := cat.PipeLadder("40")
	require.NoError(t, err)
	require.Greater(t, len(ladder), 2)
	for i := 1; i < len(ladder); i++ {
		assert.Greater(t, ladder[i].ODIn, ladder[i-1].ODIn)
	}
}

func TestAllowableStress(t *testing.T) {
	cat := catalog(t)

	s, err := cat.AllowableStress("A53-B", 70)
	require.NoError(t, err)
	assert.Equal(t, 17100.0, s)

	// Midway between the 300 F and 400 F points.
	s, err = cat.AllowableStress("A53-B", 350)
	require.NoError(t, err)
	assert.InDelta(t, 16850.0, s, 1e-6)

	_, err = cat.AllowableStress("A53-B", 900)
	assert.True(t, errors.Is(err, calcerr.ErrLookup))

	_, err = cat.AllowableStress("unobtainium", 100)
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}

func TestSaturationCurve(t *testing.T) {
	cat := catalog(t)
	r, err := cat.Refrigerant("R-717")
	require.NoError(t, err)

	// The fit passes through the table knots.
	p, err := r.SatPressurePsia(-40)
	require.NoError(t, err)
	assert.InDelta(t, 10.41, p, 1e-9)

	tSat, err := r.SatTempF(10.41)
	require.NoError(t, err)
	assert.InDelta(t, -40.0, tSat, 0.01)

	// dP/dT stays positive over the whole table range.
	for tF := -60.0; tF <= 120.0; tF += 10.0 {
		slope, err := r.DPdTPsiPerF(tF)
		require.NoError(t, err)
		assert.Greater(t, slope, 0.0, "at %g F", tF)
	}

	_, err = r.SatPressurePsia(200)
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}

func TestRefrigerantMiss(t *testing.T) {
	cat := catalog(t)
	_, err := cat.Refrigerant("R-999")
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}

func TestValveRatedCapacityRisesWithSetPressure(t *testing.T) {
	cat := catalog(t)
	require.NotEmpty(t, cat.Valves())
	v := cat.Valves()[0]
	assert.Greater(t, v.RatedAirLbMin(150, 0), v.RatedAirLbMin(100, 0))
}

func TestBackPressureFactor(t *testing.T) {
	assert.Equal(t, 1.0, BackPressureFactor(250, 0))
	// Heavy back pressure derates but never below the floor.
	assert.GreaterOrEqual(t, BackPressureFactor(100, 95), 0.5)
	assert.Less(t, BackPressureFactor(100, 95), 1.0)
}

func TestAirChangeGrid(t *testing.T) {
	cat := catalog(t)

	q, err := cat.AirChangeHeatBTUFt3(-10, 85)
	require.NoError(t, err)
	assert.InDelta(t, 3.24, q, 1e-9)

	// Bilinear between the 85 and 95 F ambient columns.
	q, err = cat.AirChangeHeatBTUFt3(-10, 90)
	require.NoError(t, err)
	assert.InDelta(t, 3.585, q, 1e-9)

	_, err = cat.AirChangeHeatBTUFt3(-50, 85)
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}

func TestDoorLookup(t *testing.T) {
	cat := catalog(t)
	d, err := cat.Door("swing")
	require.NoError(t, err)
	assert.Equal(t, 40.0, d.ExchangeCfmFt2)

	_, err = cat.Door("revolving")
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}

func TestSpanAndStands(t *testing.T) {
	cat := catalog(t)
	span, err := cat.RecommendedSpanFt("2")
	require.NoError(t, err)
	assert.Equal(t, 10.0, span)

	stands := cat.Stands()
	require.NotEmpty(t, stands)
	for i := 1; i < len(stands); i++ {
		assert.Greater(t, stands[i].MaxLoadLb, stands[i-1].MaxLoadLb)
	}
}

func TestExtendValves(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	before := len(cat.Valves())
	cat.ExtendValves([]ReliefValve{{Brand: "Acme", Model: "X1", OrificeIn2: 0.2, Kd: 0.8, MinSetPsig: 50, MaxSetPsig: 300}})
	assert.Equal(t, before+1, len(cat.Valves()))
}
