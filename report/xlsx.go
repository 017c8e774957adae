package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// sheetName is the worksheet holding the route.
const sheetName = "Route"

var xlsxHeaders = []string{"Step", "Index", "Name", "Latitude", "Longitude", "Leg", "Cumulative"}

// WriteXLSX writes the route as a single-sheet workbook: one row per stop
// followed by a short summary block.
func WriteXLSX(w io.Writer, r Route) error {
	steps, err := r.Steps()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return errors.Wrap(err, "report: create sheet")
	}
	f.SetActiveSheet(index)

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	for c, h := range xlsxHeaders {
		if err = set(c+1, 1, h); err != nil {
			return errors.Wrap(err, "report: header")
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for i, s := range steps {
		row := i + 2
		values := []any{s.Position, s.Index, s.Name, s.Lat, s.Lng, s.Leg, s.Cumulative}
		for c, v := range values {
			if err = set(c+1, row, v); err != nil {
				return errors.Wrapf(err, "report: row %d", row)
			}
		}
	}

	summary := [][2]any{
		{"Total (" + r.Unit + ")", r.Result.Cost},
		{"Strategy", r.Result.Strategy.String()},
		{"Optimal", r.Result.Optimal},
		{"Partial", r.Result.Partial},
		{"Stop", r.Result.Stop.String()},
	}
	base := len(steps) + 3
	for i, kv := range summary {
		if err = set(1, base+i, kv[0]); err != nil {
			return errors.Wrap(err, "report: summary")
		}
		if err = set(2, base+i, kv[1]); err != nil {
			return errors.Wrap(err, "report: summary")
		}
	}
	_ = f.SetColWidth(sheetName, "C", "C", 24)
	_ = f.SetColWidth(sheetName, "D", "G", 14)

	if f.GetSheetName(0) != sheetName {
		if err = f.DeleteSheet("Sheet1"); err != nil {
			return errors.Wrap(err, "report: drop default sheet")
		}
	}

	return errors.Wrap(f.Write(w), "report: write xlsx")
}
