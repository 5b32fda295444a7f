package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calc/roomload"
	"Frostline/internal/calc/srv"
	"Frostline/internal/config"
	"Frostline/internal/props"
)

func testCatalog(t *testing.T) *props.Catalog {
	t.Helper()
	cat, err := props.Default()
	require.NoError(t, err)
	return cat
}

func TestTuningFileReachesResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.ini")
	ini := "[roomload]\nsafety_factor = 0.2\nrun_fraction = 0.5\n" +
		"[srv]\nbackpressure_fraction = 0.15\n"
	require.NoError(t, os.WriteFile(path, []byte(ini), 0o644))
	cfg := config.Load(path)
	cat := testCatalog(t)

	res, err := dispatch("roomload", []byte(
		`{"length_ft":10,"width_ft":10,"height_ft":10,"inside_temp_f":0,"outside_temp_f":85}`), cat, cfg)
	require.NoError(t, err)
	room := res.(roomload.Result)
	assert.Equal(t, 0.2, room.SafetyFactor)
	assert.Equal(t, 0.5, room.RunFraction)

	res, err = dispatch("srv", []byte(
		`{"class":"vessel-horizontal","edition":"IIAR2-2014-AddendumA","refrigerant":"R-717",`+
			`"set_psig":250,"diameter_ft":6,"length_ft":20,"outlet":{"length_ft":15}}`), cat, cfg)
	require.NoError(t, err)
	sized := res.(srv.Result)
	require.NotNil(t, sized.Outlet)
	assert.InDelta(t, 0.15*250, sized.Outlet.AllowablePsi, 1e-9)
}

func TestSpecFieldBeatsTuningFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.SafetyFactor = 0.2

	res, err := dispatch("roomload", []byte(
		`{"length_ft":10,"width_ft":10,"height_ft":10,"inside_temp_f":0,"outside_temp_f":85,`+
			`"safety_factor":0.15}`), testCatalog(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.15, res.(roomload.Result).SafetyFactor)
}

func TestDispatchRejectsUnknownTool(t *testing.T) {
	_, err := dispatch("teleport", []byte(`{}`), testCatalog(t), config.Defaults())
	assert.Error(t, err)
}
