package riser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/props"
)

func catalog(t *testing.T) *props.Catalog {
	t.Helper()
	cat, err := props.Default()
	require.NoError(t, err)
	return cat
}

func baseInput() Input {
	return Input{
		Refrigerant:   "R-717",
		SatTempF:      -40,
		MassFlowLbMin: 2,
		System:        Recirculated,
		LengthFt:      30,
	}
}

func TestPicksSmallestInBandSize(t *testing.T) {
	res, err := Size(baseInput(), catalog(t))
	require.NoError(t, err)
	// 1.25 in runs above the 4500 ft/min ceiling at this duty; 1.5 in
	// is the first size inside the band.
	assert.Equal(t, "1.5", res.Nominal)
	assert.GreaterOrEqual(t, res.VelocityFPM, res.FloorFPM)
	assert.LessOrEqual(t, res.VelocityFPM, res.CeilingFPM)
	assert.Empty(t, res.Flags)
	assert.NotEmpty(t, res.Candidates)
}

func TestVelocityScalesWithMassFlow(t *testing.T) {
	cat := catalog(t)
	in := baseInput()
	in.Candidates = []string{"2"}

	one, err := Size(in, cat)
	require.NoError(t, err)
	in.MassFlowLbMin *= 3
	three, err := Size(in, cat)
	require.NoError(t, err)
	assert.InEpsilon(t, 3*one.VelocityFPM, three.VelocityFPM, 1e-12)
}

func TestOutOfBandFallsBackToSmallest(t *testing.T) {
	in := baseInput()
	in.MassFlowLbMin = 0.01
	res, err := Size(in, catalog(t))
	require.NoError(t, err)
	assert.Equal(t, "0.5", res.Nominal)
	require.Len(t, res.Flags, 1)
	assert.Equal(t, compliance.Warning, res.Flags[0].Severity)
}

func TestDTPenaltyFromSaturationSlope(t *testing.T) {
	cat := catalog(t)
	res, err := Size(baseInput(), cat)
	require.NoError(t, err)
	require.Greater(t, res.DropPsi, 0.0)

	ref, err := cat.Refrigerant("R-717")
	require.NoError(t, err)
	dpdt, err := ref.DPdTPsiPerF(-40)
	require.NoError(t, err)
	assert.InEpsilon(t, res.DropPsi/dpdt, res.DTPenaltyF, 1e-12)
}

func TestLiquidReserveOnlyWhenRecirculated(t *testing.T) {
	cat := catalog(t)

	in := baseInput()
	in.LiquidFlowGPM = 10
	res, err := Size(in, cat)
	require.NoError(t, err)
	require.NotNil(t, res.ReserveSec)
	assert.Greater(t, *res.ReserveSec, 0.0)

	in.System = DirectExpansion
	res, err = Size(in, cat)
	require.NoError(t, err)
	assert.Nil(t, res.ReserveSec)
}

func TestZeroMassFlowRejected(t *testing.T) {
	in := baseInput()
	in.MassFlowLbMin = 0
	_, err := Size(in, catalog(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}

func TestUnknownCandidateSurfacesLookup(t *testing.T) {
	in := baseInput()
	in.Candidates = []string{"17"}
	_, err := Size(in, catalog(t))
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}
