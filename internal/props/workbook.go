package props

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ImportValveWorkbook reads a manufacturer relief-valve price book
// (.xlsx) into catalog records. The first sheet is read; row one is a
// header; columns follow the relief_valves.csv layout: brand, model,
// inlet, outlet, orifice area, Kd, min set, max set, list price.
// Rows that fail to parse are skipped and counted, not fatal.
func ImportValveWorkbook(path string) ([]ReliefValve, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open valve workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read valve workbook: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("valve workbook %s: no data rows", path)
	}

	var out []ReliefValve
	skipped := 0
	for i := 1; i < len(rows); i++ {
		v, err := parseValveRow(rows[i])
		if err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	log.WithFields(log.Fields{"file": path, "imported": len(out), "skipped": skipped}).
		Info("valve workbook imported")
	return out, nil
}

func parseValveRow(row []string) (ReliefValve, error) {
	if len(row) < 8 {
		return ReliefValve{}, fmt.Errorf("short row")
	}
	nums := make([]float64, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[2+i]), 64)
		if err != nil {
			return ReliefValve{}, err
		}
		nums[i] = v
	}
	price := ""
	if len(row) > 8 {
		price = strings.TrimSpace(row[8])
	}
	return ReliefValve{
		Brand:      strings.TrimSpace(row[0]),
		Model:      strings.TrimSpace(row[1]),
		InletIn:    nums[0],
		OutletIn:   nums[1],
		OrificeIn2: nums[2],
		Kd:         nums[3],
		MinSetPsig: nums[4],
		MaxSetPsig: nums[5],
		ListPrice:  parsePrice(price),
	}, nil
}
