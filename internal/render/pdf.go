/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"drivechart/internal/domain"
	"drivechart/internal/layout"
)

// WritePDF exports the chart as a single-page PDF. Layout pixels map 1:1
// to points; built-in Helvetica keeps the text vector without embedding.
func WritePDF(c *layout.Chart, g *domain.Game, path string) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: c.Width, Ht: c.Height},
		OrientationStr: "",
	})
	pdf.SetTitle(fmt.Sprintf("%s at %s — drive chart", g.Road.Abbrev, g.Home.Abbrev), false)
	pdf.SetAuthor("drivechart", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: c.Width, Ht: c.Height})

	// Outer border
	setDrawColor(pdf, domain.Color{A: 255})
	pdf.SetLineWidth(1)
	pdf.Rect(0, 0, c.Width, c.Height, "D")

	// End zones with rotated nicknames.
	endZone := func(r domain.Rect, info domain.TeamInfo, angle float64) {
		setFillColor(pdf, info.Primary)
		pdf.Rect(r.X, r.Y, r.Width, r.Height, "F")
		setTextColor(pdf, info.Secondary)
		pdf.SetFont("Helvetica", "B", 14)
		name := strings.ToUpper(info.Nickname)
		cx := r.X + r.Width/2
		cy := r.Y + r.Height/2
		pdf.TransformBegin()
		pdf.TransformRotate(angle, cx, cy)
		pdf.Text(cx-pdf.GetStringWidth(name)/2, cy+5, name)
		pdf.TransformEnd()
	}
	endZone(c.HomeEndZone, g.Home, 90)
	endZone(c.RoadEndZone, g.Road, -90)

	// Field stripes and markers.
	setFillColor(pdf, domain.Color{G: 128, A: 255})
	for _, s := range c.Stripes {
		pdf.Rect(s.X, s.Y, s.Width, s.Height, "F")
	}
	pdf.SetFont("Helvetica", "B", 8)
	for _, m := range c.Markers {
		setFillColor(pdf, domain.Color{G: 128, A: 255})
		pdf.Rect(m.Rect.X, m.Rect.Y, m.Rect.Width, m.Rect.Height, "F")
		setTextColor(pdf, domain.Color{R: 255, G: 255, B: 255, A: 255})
		cx := m.Rect.X + m.Rect.Width/2
		cy := m.Rect.Y + m.Rect.Height/2
		pdf.TransformBegin()
		if m.Flip {
			pdf.TransformRotate(180, cx, cy)
		}
		pdf.Text(cx-pdf.GetStringWidth(m.Text)/2, cy+3, m.Text)
		pdf.TransformEnd()
	}

	// Quarter separators.
	setDrawColor(pdf, domain.Color{A: 255})
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{4, 3}, 0)
	for _, sep := range c.Separators {
		pdf.Line(1, sep.Y, c.Width-1, sep.Y)
	}
	pdf.SetDashPattern([]float64{}, 0)

	// Drive boxes, arrows, labels.
	pdf.SetFont("Helvetica", "B", 7)
	for _, b := range c.Boxes {
		team := g.Road
		if b.Home {
			team = g.Home
		}
		setFillColor(pdf, team.Primary)
		setDrawColor(pdf, team.Secondary)
		pdf.SetLineWidth(1)
		pdf.Rect(b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height, "FD")
		if b.Hatch {
			hatchPDF(pdf, b.Rect, team.Secondary)
		}
		pdf.Polygon([]gofpdf.PointType{
			{X: b.Arrow[0].X, Y: b.Arrow[0].Y},
			{X: b.Arrow[1].X, Y: b.Arrow[1].Y},
			{X: b.Arrow[2].X, Y: b.Arrow[2].Y},
		}, "FD")

		if b.Label.Inside {
			setTextColor(pdf, domain.Color{R: 255, G: 255, B: 255, A: 255})
		} else {
			setTextColor(pdf, domain.Color{A: 255})
		}
		x := b.Label.X
		if b.Label.Align == layout.AlignRight {
			x -= pdf.GetStringWidth(b.Label.Text)
		}
		pdf.Text(x, b.Label.Y+2.5, b.Label.Text)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// hatchPDF draws the diagonal pattern for drives that lost yards.
func hatchPDF(pdf *gofpdf.Fpdf, r domain.Rect, col domain.Color) {
	setDrawColor(pdf, col)
	pdf.SetLineWidth(0.4)
	pdf.ClipRect(r.X, r.Y, r.Width, r.Height, false)
	for x := r.X - r.Height; x < r.X+r.Width; x += 4 {
		pdf.Line(x, r.Y+r.Height, x+r.Height, r.Y)
	}
	pdf.ClipEnd()
}

func setDrawColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
