package sump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
)

func TestSumpDefaults(t *testing.T) {
	res, err := Calculate(Input{PumpFlowGPM: 100})
	require.NoError(t, err)
	assert.InDelta(t, 500.0, res.WorkingGallons, 1e-9)
	assert.InDelta(t, 125.0, res.SurgeGallons, 1e-9)
	assert.InDelta(t, 625.0, res.TotalGallons, 1e-9)
	assert.InDelta(t, 625.0*0.13368, res.TotalFt3, 1e-6)
}

func TestSumpRejectsZeroFlow(t *testing.T) {
	_, err := Calculate(Input{})
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}
