// Package batch runs many independent calculations concurrently. The
// calculators stay pure; the goroutines live here. Results come back in
// input order, and one item's failure never touches its neighbors.
package batch

import (
	"sync"

	"Frostline/internal/calc/riser"
	"Frostline/internal/calc/roomload"
	"Frostline/internal/props"
)

// Outcome pairs one item's result with its own error.
type Outcome[R any] struct {
	Result R     `json:"result"`
	Err    error `json:"-"`
}

func fanOut[T, R any](items []T, run func(T) (R, error)) []Outcome[R] {
	out := make([]Outcome[R], len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i].Result, out[i].Err = run(items[i])
		}(i)
	}
	wg.Wait()
	return out
}

// Rooms sizes every room load in parallel.
func Rooms(items []roomload.Input, cat *props.Catalog) []Outcome[roomload.Result] {
	return fanOut(items, func(in roomload.Input) (roomload.Result, error) {
		return roomload.Calculate(in, cat)
	})
}

// Risers sizes every riser in parallel.
func Risers(items []riser.Input, cat *props.Catalog) []Outcome[riser.Result] {
	return fanOut(items, func(in riser.Input) (riser.Result, error) {
		return riser.Size(in, cat)
	})
}
