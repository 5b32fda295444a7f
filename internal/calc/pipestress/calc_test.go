package pipestress

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
		Nominal:     "4",
		Schedule:    "40",
		Material:    "A106-B",
		DesignPsig:  250,
		DesignTempF: 100,
	}
}

func TestHoopStressAgainstAllowable(t *testing.T) {
	res, err := Calculate(baseInput(), catalog(t))
	require.NoError(t, err)

	// S = P D / (2 t E) on the 4 in sch 40 section.
	assert.InDelta(t, 250*4.5/(2*0.237), res.HoopStressPsi, 1e-6)
	assert.Equal(t, 17100.0, res.AllowablePsi)
	assert.True(t, res.OKStress)
	assert.Empty(t, res.Flags)
	assert.Greater(t, res.RequiredWallIn, 0.0)
	assert.Less(t, res.RequiredWallIn, 0.237)
}

func TestBarlowLinearity(t *testing.T) {
	cat := catalog(t)
	in := baseInput()
	one, err := Calculate(in, cat)
	require.NoError(t, err)

	in.DesignPsig *= 2
	two, err := Calculate(in, cat)
	require.NoError(t, err)
	assert.InEpsilon(t, 2*one.HoopStressPsi, two.HoopStressPsi, 1e-12)
}

func TestOverpressureFlagsError(t *testing.T) {
	in := baseInput()
	in.ODIn = 4.5
	in.WallIn = 0.03
	in.Nominal = ""
	res, err := Calculate(in, catalog(t))
	require.NoError(t, err)
	assert.False(t, res.OKStress)
	assert.True(t, res.Flags.HasErrors())
}

func TestTestPressureCappedByWall(t *testing.T) {
	in := baseInput()
	res, err := Calculate(in, catalog(t))
	require.NoError(t, err)
	assert.InDelta(t, 375.0, res.TestPsig, 1e-9)
	assert.InDelta(t, 2*17100*0.237/4.5, res.TestCeilingPsig, 1e-6)
}

func TestJointEfficiencyBounds(t *testing.T) {
	in := baseInput()
	in.JointEfficiency = 1.2
	_, err := Calculate(in, catalog(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}

// branchInput drives the header excess near zero with a corrosion
// allowance so the pad carries the balance.
func branchInput(pad float64) Input {
	in := baseInput()
	in.DesignPsig = 300
	in.CorrosionIn = 0.19
	in.Branch = &Branch{ODIn: 2.375, WallIn: 0.218, AngleDeg: 90, PadAreaIn2: pad}
	return in
}

func TestBranchReinforcementBalance(t *testing.T) {
	cat := catalog(t)

	bare, err := Calculate(branchInput(0), cat)
	require.NoError(t, err)
	require.NotNil(t, bare.Branch)
	require.False(t, bare.Branch.OK)
	require.Greater(t, bare.Branch.ShortfallIn2, 0.0)

	// Pad exactly covering the shortfall balances the area equation.
	balanced, err := Calculate(branchInput(bare.Branch.ShortfallIn2*(1+1e-12)), cat)
	require.NoError(t, err)
	assert.True(t, balanced.Branch.OK)
	assert.Zero(t, balanced.Branch.ShortfallIn2)
	assert.Zero(t, balanced.Flags.Count(compliance.Error))

	// Shaving the pad reappears as an equal shortfall.
	short, err := Calculate(branchInput(bare.Branch.ShortfallIn2-0.01), cat)
	require.NoError(t, err)
	assert.False(t, short.Branch.OK)
	assert.InDelta(t, 0.01, short.Branch.ShortfallIn2, 1e-9)
	assert.True(t, short.Flags.HasErrors())
}

func TestBranchLargerThanHeaderRejected(t *testing.T) {
	in := baseInput()
	in.Branch = &Branch{ODIn: 6.625, WallIn: 0.28}
	_, err := Calculate(in, catalog(t))
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}

func TestUnknownMaterialSurfacesLookup(t *testing.T) {
	in := baseInput()
	in.Material = "unobtainium"
	_, err := Calculate(in, catalog(t))
	assert.True(t, errors.Is(err, calcerr.ErrLookup))
}
