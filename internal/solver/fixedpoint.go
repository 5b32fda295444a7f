// Package solver provides the one bounded fixed-point iteration shared
// by every implicit solve in the engine.
package solver

import (
	"math"

	"Frostline/internal/calcerr"
)

// Config bounds an iteration. Zero values select the defaults.
type Config struct {
	// RelTol is the relative change between successive estimates at
	// which the iteration is considered converged.
	RelTol float64
	// MaxIter caps the number of iterations.
	MaxIter int
}

const (
	// DefaultRelTol matches the tolerance the pressure-drop checks are
	// specified against.
	DefaultRelTol = 1e-6
	// DefaultMaxIter is generous for every correlation in the engine.
	DefaultMaxIter = 50
)

func (c Config) withDefaults() Config {
	if c.RelTol <= 0 {
		c.RelTol = DefaultRelTol
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	return c
}

// FixedPoint iterates x = next(x) from x0 until the relative change
// drops below cfg.RelTol, returning the converged value and the number
// of iterations taken. Exhausting cfg.MaxIter returns a
// calcerr.NonConvergenceError holding the last estimate; the caller gets
// no best-effort value.
func FixedPoint(next func(float64) float64, x0 float64, cfg Config) (float64, int, error) {
	cfg = cfg.withDefaults()
	x := x0
	for i := 1; i <= cfg.MaxIter; i++ {
		xn := next(x)
		if math.IsNaN(xn) || math.IsInf(xn, 0) {
			return 0, i, &calcerr.NonConvergenceError{LastEstimate: xn, Iterations: i}
		}
		denom := math.Abs(xn)
		if denom == 0 {
			denom = 1
		}
		if math.Abs(xn-x)/denom < cfg.RelTol {
			return xn, i, nil
		}
		x = xn
	}
	return 0, cfg.MaxIter, &calcerr.NonConvergenceError{LastEstimate: x, Iterations: cfg.MaxIter}
}
