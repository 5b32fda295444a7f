// Package config reads the optional engine tuning file. Every value
// here is a default: the matching spec-record field, when set, always
// wins, so calculations stay reproducible from their inputs alone.
package config

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Config carries the tunable defaults.
type Config struct {
	// Solver bounds for the friction-factor iteration.
	SolverRelTol  float64
	SolverMaxIter int

	// Room-load defaults.
	SafetyFactor float64
	RunFraction  float64

	// SRV outlet-check allowance as a fraction of set pressure.
	BackPressureFraction float64
	// Diffusion-tank design discharge duration, minutes.
	DiffusionMinutes float64

	// Riser velocity band defaults, ft/min.
	RiserFloorFPM   float64
	RiserCeilingFPM float64

	// TableDir overrides the embedded property tables when set.
	TableDir string
}

// Defaults returns the built-in tuning.
func Defaults() Config {
	return Config{
		SolverRelTol:         1e-6,
		SolverMaxIter:        50,
		SafetyFactor:         0.10,
		RunFraction:          0.75,
		BackPressureFraction: 0.10,
		DiffusionMinutes:     15,
		RiserFloorFPM:        1200,
		RiserCeilingFPM:      4500,
	}
}

// Load reads an ini tuning file over the defaults. A missing file is
// not an error; the defaults stand.
func Load(path string) Config {
	cfg := Defaults()
	if path == "" {
		return cfg
	}
	file, err := ini.Load(path)
	if err != nil {
		log.WithError(err).Warn("engine tuning file not read, using defaults")
		return cfg
	}
	solver := file.Section("solver")
	cfg.SolverRelTol = solver.Key("relative_tolerance").MustFloat64(cfg.SolverRelTol)
	cfg.SolverMaxIter = solver.Key("max_iterations").MustInt(cfg.SolverMaxIter)

	room := file.Section("roomload")
	cfg.SafetyFactor = room.Key("safety_factor").MustFloat64(cfg.SafetyFactor)
	cfg.RunFraction = room.Key("run_fraction").MustFloat64(cfg.RunFraction)

	srv := file.Section("srv")
	cfg.BackPressureFraction = srv.Key("backpressure_fraction").MustFloat64(cfg.BackPressureFraction)
	cfg.DiffusionMinutes = srv.Key("diffusion_minutes").MustFloat64(cfg.DiffusionMinutes)

	riser := file.Section("riser")
	cfg.RiserFloorFPM = riser.Key("velocity_floor_fpm").MustFloat64(cfg.RiserFloorFPM)
	cfg.RiserCeilingFPM = riser.Key("velocity_ceiling_fpm").MustFloat64(cfg.RiserCeilingFPM)

	cfg.TableDir = file.Section("data").Key("table_dir").MustString(cfg.TableDir)
	return cfg
}
