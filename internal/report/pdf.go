// Package report renders generated templates into human-facing output:
// layout diagrams, QR traceability cards, and summary workbooks.
package report

import (
	"fmt"
	"math"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/go-pdf/fpdf"
)

// boxColors cycles through a small fixed palette so adjacent boxes in a
// layer are visually distinguishable without needing per-box metadata.
var boxColors = []struct{ R, G, B int }{
	{76, 175, 80},
	{33, 150, 243},
	{255, 152, 0},
	{156, 39, 176},
	{0, 188, 212},
}

const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders one page per layer (base then upper) of every template
// in bundle, followed by a summary page, to path.
func ExportPDF(path string, bundle model.Bundle) error {
	if len(bundle.Templates) == 0 {
		return fmt.Errorf("no templates to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, tmpl := range bundle.Templates {
		pdf.AddPage()
		renderLayerPage(pdf, bundle.PalletDimensions, tmpl.Layer1, fmt.Sprintf("Template %d (%s) - Base Layer", i+1, tmpl.ID))

		pdf.AddPage()
		renderLayerPage(pdf, bundle.PalletDimensions, tmpl.Layer2, fmt.Sprintf("Template %d (%s) - Upper Layer", i+1, tmpl.ID))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, bundle)

	return pdf.OutputFileAndClose(path)
}

func renderLayerPage(pdf *fpdf.Fpdf, pallet model.Pallet, layer []model.PlacementOut, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scaleX := drawWidth / float64(pallet.L)
	scaleY := drawHeight / float64(pallet.W)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(pallet.L) * scale
	canvasH := float64(pallet.W) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, box := range layer {
		col := boxColors[i%len(boxColors)]
		bw := float64(box.Width) * scale
		bh := float64(box.Height) * scale
		bx := offsetX + float64(box.X)*scale
		by := offsetY + float64(box.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		if bw > 12 && bh > 8 {
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("#%d", box.PlacementOrder)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	pdf.SetTextColor(0, 0, 0)
}

func renderSummaryPage(pdf *fpdf.Fpdf, bundle model.Bundle) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Palletization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "", 10)

	rows := []struct{ label, value string }{
		{"Pallet", fmt.Sprintf("%d x %d mm", bundle.PalletDimensions.L, bundle.PalletDimensions.W)},
		{"Box", fmt.Sprintf("%d x %d x %d mm", bundle.BoxDimensions.L, bundle.BoxDimensions.W, bundle.BoxDimensions.H)},
		{"Templates found", fmt.Sprintf("%d", bundle.GenerationInfo.NumSolutionsFound)},
		{"Generation time", fmt.Sprintf("%.2f s", bundle.GenerationInfo.DurationSeconds)},
	}
	for _, r := range rows {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, r.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Template Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 30, 50, 50, 50}
	headers := []string{"#", "ID", "Base Boxes", "Upper Boxes", "Score"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, tmpl := range bundle.Templates {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			tmpl.ID,
			fmt.Sprintf("%d", tmpl.Layer1BoxCount),
			fmt.Sprintf("%d", tmpl.Layer2BoxCount),
			fmt.Sprintf("%.1f", tmpl.Score),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by OptiPallet", "", 0, "C", false, 0, "")
}
