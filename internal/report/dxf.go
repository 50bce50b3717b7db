package report

import (
	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// ExportDXF writes a CAD drawing of template's two layers as a rectangle
// outline per box, base layer on layer "LAYER1" and upper layer on layer
// "LAYER2", offset apart on the X axis so both are visible in one drawing.
func ExportDXF(path string, pallet model.Pallet, template model.Template) error {
	drawing := dxf.NewDrawing()

	drawing.AddLayer("LAYER1", color.Green, dxf.DefaultLineType, true)
	drawBoxOutlines(drawing, template.Layer1, 0)

	offset := float64(pallet.L) + float64(pallet.L)/10
	drawing.AddLayer("LAYER2", color.Blue, dxf.DefaultLineType, true)
	drawBoxOutlines(drawing, template.Layer2, offset)

	return drawing.SaveAs(path)
}

func drawBoxOutlines(drawing *dxf.Drawing, placements []model.PlacementOut, xOffset float64) {
	for _, p := range placements {
		x0 := float64(p.X) + xOffset
		y0 := float64(p.Y)
		x1 := x0 + float64(p.Width)
		y1 := y0 + float64(p.Height)

		drawing.Line(x0, y0, 0, x1, y0, 0)
		drawing.Line(x1, y0, 0, x1, y1, 0)
		drawing.Line(x1, y1, 0, x0, y1, 0)
		drawing.Line(x0, y1, 0, x0, y0, 0)
	}
}
