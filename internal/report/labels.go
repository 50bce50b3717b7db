package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// TraceCard holds the data encoded into each box's QR traceability card.
type TraceCard struct {
	TemplateID     string `json:"template_id"`
	Layer          int    `json:"layer"`
	PlacementOrder int    `json:"placement_order"`
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Rotation       int    `json:"rotation"`
	LabelFace      int    `json:"label_face"`
}

// Card layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per US Letter page).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportTraceCards generates a PDF of QR-coded traceability cards for every
// placed box across every template in bundle, laid out on a standard label
// sheet (3 columns x 10 rows on US Letter).
func ExportTraceCards(path string, bundle model.Bundle) error {
	if len(bundle.Templates) == 0 {
		return fmt.Errorf("no templates to generate trace cards for")
	}

	var cards []TraceCard
	for _, tmpl := range bundle.Templates {
		cards = append(cards, collectCards(tmpl, 1, tmpl.Layer1)...)
		cards = append(cards, collectCards(tmpl, 2, tmpl.Layer2)...)
	}
	if len(cards) == 0 {
		return fmt.Errorf("no placements to generate trace cards for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderCard(pdf, x, y, card); err != nil {
			return fmt.Errorf("failed to render trace card for template %s: %w", card.TemplateID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func collectCards(tmpl model.Template, layerNum int, layer []model.PlacementOut) []TraceCard {
	cards := make([]TraceCard, len(layer))
	for i, p := range layer {
		cards[i] = TraceCard{
			TemplateID:     tmpl.ID,
			Layer:          layerNum,
			PlacementOrder: p.PlacementOrder,
			X:              p.X,
			Y:              p.Y,
			Width:          p.Width,
			Height:         p.Height,
			Rotation:       p.Rotation,
			LabelFace:      p.LabelFace,
		}
	}
	return cards
}

func renderCard(pdf *fpdf.Fpdf, x, y float64, card TraceCard) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal trace card: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d_%d", card.TemplateID, card.Layer, card.PlacementOrder)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("%s L%d #%d", card.TemplateID, card.Layer, card.PlacementOrder), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d mm", card.Width, card.Height), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@(%d,%d) face %d", card.X, card.Y, card.LabelFace), "", 1, "L", false, 0, "")

	if card.Rotation != 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
