package report

import (
	"fmt"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportWorkbook writes a summary workbook for bundle: one "Templates" sheet
// ranking every generated template, and a "T<n>-Base"/"T<n>-Upper" sheet
// pair per template listing its placements in placement order.
func ExportWorkbook(path string, bundle model.Bundle) error {
	if len(bundle.Templates) == 0 {
		return fmt.Errorf("no templates to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Templates"
	f.SetSheetName("Sheet1", summarySheet)
	writeSummarySheet(f, summarySheet, bundle)

	for i, tmpl := range bundle.Templates {
		layer1Sheet := fmt.Sprintf("T%d-Base", i+1)
		layer2Sheet := fmt.Sprintf("T%d-Upper", i+1)
		f.NewSheet(layer1Sheet)
		f.NewSheet(layer2Sheet)
		writePlacementSheet(f, layer1Sheet, tmpl.Layer1)
		writePlacementSheet(f, layer2Sheet, tmpl.Layer2)
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, sheet string, bundle model.Bundle) {
	headers := []string{"#", "Template ID", "Score", "Base Boxes", "Upper Boxes"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, tmpl := range bundle.Templates {
		row := i + 2
		values := []any{i + 1, tmpl.ID, tmpl.Score, tmpl.Layer1BoxCount, tmpl.Layer2BoxCount}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
}

func writePlacementSheet(f *excelize.File, sheet string, placements []model.PlacementOut) {
	headers := []string{"Order", "X", "Y", "Width", "Height", "Rotation", "Label Face"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, p := range placements {
		row := i + 2
		values := []any{p.PlacementOrder, p.X, p.Y, p.Width, p.Height, p.Rotation, p.LabelFace}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
}
