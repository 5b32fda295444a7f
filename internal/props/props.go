// Package props is the property-table provider: pipe dimensions,
// material allowable stresses, refrigerant saturation data, relief-valve
// capacity tables, and the smaller sizing tables the calculators draw
// on. Tables load once from embedded CSV (or an override directory) into
// an immutable Catalog; after load everything is read-only, so
// concurrent readers need no locking.
package props

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"Frostline/internal/calcerr"
)

//go:embed data/*.csv
var dataFS embed.FS

// Catalog is the loaded table set. Accessors return calcerr.LookupError
// for keys with no entry.
type Catalog struct {
	pipes        map[string]PipeSize
	ladder       map[string][]PipeSize
	materials    map[string][]stressPoint
	refrigerants map[string]*Refrigerant
	valves       []ReliefValve
	threeWays    []ThreeWayValve
	stands       []Stand
	spans        []spanEntry
	doors        map[string]DoorType
	air          airChangeGrid
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog built from the embedded tables. The load
// happens once; every caller shares the same immutable instance.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load("")
	})
	return defaultCat, defaultErr
}

// Load builds a catalog. With dir empty every table comes from the
// embedded data; otherwise a file of the same name under dir overrides
// the embedded copy, table by table.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		pipes:        make(map[string]PipeSize),
		ladder:       make(map[string][]PipeSize),
		materials:    make(map[string][]stressPoint),
		refrigerants: make(map[string]*Refrigerant),
		doors:        make(map[string]DoorType),
	}
	steps := []struct {
		file string
		load func([]byte) error
	}{
		{"pipe_schedule.csv", c.loadPipes},
		{"materials.csv", c.loadMaterials},
		{"refrigerants.csv", c.loadRefrigerants},
		{"saturation.csv", c.loadSaturation},
		{"relief_valves.csv", c.loadValves},
		{"threeway_valves.csv", c.loadThreeWays},
		{"stands.csv", c.loadStands},
		{"spans.csv", c.loadSpans},
		{"door_types.csv", c.loadDoors},
		{"air_change.csv", c.loadAirChange},
	}
	for _, s := range steps {
		raw, err := readTable(dir, s.file)
		if err != nil {
			return nil, err
		}
		if err := s.load(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", s.file, err)
		}
	}
	if err := c.finish(); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"pipes":        len(c.pipes),
		"materials":    len(c.materials),
		"refrigerants": len(c.refrigerants),
		"valves":       len(c.valves),
	}).Info("property tables loaded")
	return c, nil
}

func readTable(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		if raw, err := os.ReadFile(path); err == nil {
			return raw, nil
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return dataFS.ReadFile("data/" + name)
}

func unmarshalCSV[T any](raw []byte) ([]*T, error) {
	var rows []*T
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// finish derives the sorted pipe ladders and fits the saturation
// splines once all rows are in.
func (c *Catalog) finish() error {
	for sched, sizes := range c.ladder {
		sort.Slice(sizes, func(i, j int) bool { return sizes[i].ODIn < sizes[j].ODIn })
		c.ladder[sched] = sizes
	}
	for _, m := range c.materials {
		sort.Slice(m, func(i, j int) bool { return m[i].tempF < m[j].tempF })
	}
	for name, r := range c.refrigerants {
		if err := r.fit(); err != nil {
			return fmt.Errorf("saturation curve for %s: %w", name, err)
		}
	}
	return c.air.validate()
}

// Pipe returns the dimensions for a nominal size and schedule.
func (c *Catalog) Pipe(nominal, schedule string) (PipeSize, error) {
	p, ok := c.pipes[pipeKey(nominal, schedule)]
	if !ok {
		return PipeSize{}, calcerr.Miss("pipe schedule", nominal+" sch "+schedule)
	}
	return p, nil
}

// PipeLadder returns all sizes of one schedule in ascending OD order.
func (c *Catalog) PipeLadder(schedule string) ([]PipeSize, error) {
	l, ok := c.ladder[schedule]
	if !ok {
		return nil, calcerr.Miss("pipe schedule", "sch "+schedule)
	}
	return l, nil
}

// Refrigerant returns the registered fluid for a name such as "R-717".
func (c *Catalog) Refrigerant(name string) (*Refrigerant, error) {
	r, ok := c.refrigerants[name]
	if !ok {
		return nil, calcerr.Miss("refrigerant", name)
	}
	return r, nil
}

// Valves returns the relief-valve table in load order.
func (c *Catalog) Valves() []ReliefValve { return c.valves }

// ThreeWayValves returns the dual-relief changeover valve table.
func (c *Catalog) ThreeWayValves() []ThreeWayValve { return c.threeWays }

// Stands returns the support-stand table in ascending capacity order.
func (c *Catalog) Stands() []Stand { return c.stands }

// Door returns the air-exchange characteristics of a door type.
func (c *Catalog) Door(doorType string) (DoorType, error) {
	d, ok := c.doors[doorType]
	if !ok {
		return DoorType{}, calcerr.Miss("door type", doorType)
	}
	return d, nil
}

// ExtendValves appends imported valve records to the catalog. It is a
// setup-time call: run it before handing the catalog to calculators,
// never concurrently with them.
func (c *Catalog) ExtendValves(vs []ReliefValve) {
	c.valves = append(c.valves, vs...)
}

func pipeKey(nominal, schedule string) string { return nominal + "|" + schedule }
