// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"fmt"
	"io"

	"github.com/hwto/hwto/spatial"
	"github.com/xuri/excelize/v2"
)

const pairingSheet = "Distances"

var pairingHeader = []any{
	"Employee", "Team", "Department", "Postcode", "City", "Office", "Assigned",
	"Straight-line km", "Road km (est.)", "Distance", "Directions",
}

// WritePairingsXLSX writes pairings as a single-sheet workbook.
func WritePairingsXLSX(w io.Writer, pairings []Pairing, mode spatial.TravelMode) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pairingSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(pairingSheet, "A1", &pairingHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	if err := f.SetRowStyle(pairingSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, p := range pairings {
		row := []any{
			p.Employee.Name, p.Employee.Team, p.Employee.Department,
			p.Employee.Postcode, p.Employee.City, "", p.Assigned,
			nil, nil, p.Distance, "",
		}

		if p.Office != nil {
			row[5] = p.Office.Name

			if p.Employee.Coords != nil && p.Office.Coords != nil {
				row[10] = spatial.DirectionsURL(*p.Employee.Coords, *p.Office.Coords, mode)
			}
		}

		if p.StraightKm != nil {
			row[7] = round1(*p.StraightKm)
			row[8] = round1(*p.RoadKm)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(pairingSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(pairingSheet, "A", "A", 28); err != nil {
		return err
	}

	if err := f.SetColWidth(pairingSheet, "F", "F", 22); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
