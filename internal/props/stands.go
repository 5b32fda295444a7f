package props

import (
	"sort"

	"Frostline/internal/calcerr"
)

// Stand is one pipe-support stand catalog entry.
type Stand struct {
	Model     string  `json:"model"`
	MaxLoadLb float64 `json:"max_load_lb"`
	HeightIn  float64 `json:"height_in"`
}

type standRow struct {
	Model     string  `csv:"model"`
	MaxLoadLb float64 `csv:"max_load_lb"`
	HeightIn  float64 `csv:"height_in"`
}

type spanEntry struct {
	nominal string
	spanFt  float64
}

type spanRow struct {
	Nominal string  `csv:"nominal"`
	SpanFt  float64 `csv:"span_ft"`
}

func (c *Catalog) loadStands(raw []byte) error {
	rows, err := unmarshalCSV[standRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.stands = append(c.stands, Stand{Model: r.Model, MaxLoadLb: r.MaxLoadLb, HeightIn: r.HeightIn})
	}
	sort.Slice(c.stands, func(i, j int) bool { return c.stands[i].MaxLoadLb < c.stands[j].MaxLoadLb })
	return nil
}

func (c *Catalog) loadSpans(raw []byte) error {
	rows, err := unmarshalCSV[spanRow](raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		c.spans = append(c.spans, spanEntry{nominal: r.Nominal, spanFt: r.SpanFt})
	}
	return nil
}

// RecommendedSpanFt returns the support span for a nominal size from
// the liquid-filled steel span table.
func (c *Catalog) RecommendedSpanFt(nominal string) (float64, error) {
	for _, s := range c.spans {
		if s.nominal == nominal {
			return s.spanFt, nil
		}
	}
	return 0, calcerr.Miss("support span", nominal)
}
