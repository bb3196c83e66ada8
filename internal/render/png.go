/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render draws a computed chart to PNG, SVG, or PDF, and prints
// the ASCII fallback chart.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"drivechart/internal/domain"
	"drivechart/internal/layout"
)

var (
	fieldGreen = color.RGBA{0, 128, 0, 255}
	black      = color.RGBA{0, 0, 0, 255}
	white      = color.RGBA{255, 255, 255, 255}
)

// Measurer returns the text measurer matching the PNG renderer's face, so
// layout fit decisions line up with what gets drawn.
func Measurer() layout.TextMeasurer {
	return layout.FaceMeasurer{Face: basicfont.Face7x13}
}

// WritePNG rasterizes the chart and writes it to path.
func WritePNG(c *layout.Chart, g *domain.Game, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, int(c.Width), int(c.Height)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)

	// Outer border
	strokeRect(img, 0, 0, int(c.Width)-1, int(c.Height)-1, black)

	// End zones in team primary colors with rotated nicknames.
	fillRectF(img, c.HomeEndZone, toRGBA(g.Home.Primary))
	fillRectF(img, c.RoadEndZone, toRGBA(g.Road.Primary))
	drawRotatedString(img,
		int(c.HomeEndZone.X+c.HomeEndZone.Width/2), int(c.HomeEndZone.Y+c.HomeEndZone.Height/2),
		strings.ToUpper(g.Home.Nickname), toRGBA(g.Home.Secondary), 1)
	drawRotatedString(img,
		int(c.RoadEndZone.X+c.RoadEndZone.Width/2), int(c.RoadEndZone.Y+c.RoadEndZone.Height/2),
		strings.ToUpper(g.Road.Nickname), toRGBA(g.Road.Secondary), 3)

	// Field stripes and yardage markers.
	for _, s := range c.Stripes {
		fillRectF(img, s, fieldGreen)
	}
	for _, m := range c.Markers {
		fillRectF(img, m.Rect, fieldGreen)
		cx := int(m.Rect.X + m.Rect.Width/2)
		cy := int(m.Rect.Y + m.Rect.Height/2)
		if m.Flip {
			drawRotatedString(img, cx, cy, m.Text, white, 2)
		} else {
			drawRotatedString(img, cx, cy, m.Text, white, 0)
		}
	}

	// Quarter separators.
	for _, sep := range c.Separators {
		dashedHLine(img, 1, int(c.Width)-2, int(sep.Y), black)
	}

	// Drive boxes, arrows, labels.
	for _, b := range c.Boxes {
		team := g.Road
		if b.Home {
			team = g.Home
		}
		fill := toRGBA(team.Primary)
		edge := toRGBA(team.Secondary)
		x0 := int(b.Rect.X)
		y0 := int(b.Rect.Y)
		x1 := int(b.Rect.X + b.Rect.Width - 1)
		y1 := int(b.Rect.Y + b.Rect.Height - 1)
		fillRect(img, x0, y0, x1, y1, fill)
		if b.Hatch {
			hatchRect(img, x0, y0, x1, y1, edge)
		}
		strokeRect(img, x0, y0, x1, y1, edge)
		fillTriangle(img, b.Arrow, fill)

		col := black
		if b.Label.Inside {
			col = white
		}
		drawAligned(img, b.Label, col)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func toRGBA(c domain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func fillRectF(img *image.RGBA, r domain.Rect, col color.RGBA) {
	fillRect(img, int(r.X), int(r.Y), int(r.X+r.Width-1), int(r.Y+r.Height-1), col)
}

// hatchRect overlays the diagonal pattern used for drives that lost yards.
func hatchRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if (x+y)%4 == 0 {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func dashedHLine(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		if (x/4)%2 == 0 {
			img.SetRGBA(x, y, col)
		}
	}
}

// fillTriangle fills the direction arrow with a point-in-triangle test
// over its bounding box; the arrows are a few pixels tall so this is cheap.
func fillTriangle(img *image.RGBA, p [3]domain.Point, col color.RGBA) {
	minX, maxX := p[0].X, p[0].X
	minY, maxY := p[0].Y, p[0].Y
	for _, pt := range p[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	sign := func(ax, ay, bx, by, cx, cy float64) float64 {
		return (ax-cx)*(by-cy) - (bx-cx)*(ay-cy)
	}
	for y := int(minY); y <= int(maxY); y++ {
		for x := int(minX); x <= int(maxX); x++ {
			fx := float64(x) + 0.5
			fy := float64(y) + 0.5
			d1 := sign(fx, fy, p[0].X, p[0].Y, p[1].X, p[1].Y)
			d2 := sign(fx, fy, p[1].X, p[1].Y, p[2].X, p[2].Y)
			d3 := sign(fx, fy, p[2].X, p[2].Y, p[0].X, p[0].Y)
			hasNeg := d1 < 0 || d2 < 0 || d3 < 0
			hasPos := d1 > 0 || d2 > 0 || d3 > 0
			if !(hasNeg && hasPos) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawAligned draws a label anchored at its X with vertical centering on Y.
func drawAligned(img *image.RGBA, l layout.Label, col color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
	x := l.X
	if l.Align == layout.AlignRight {
		x -= float64(d.MeasureString(l.Text) >> 6)
	}
	met := face.Metrics()
	baseline := int(l.Y) + (met.Ascent.Round()-met.Descent.Round())/2
	d.Dot = fixed.P(int(x), baseline)
	d.DrawString(l.Text)
}

// drawRotatedString renders s centered at (cx, cy) rotated by quarterTurns
// times 90 degrees. It rasterizes to a scratch image and copies pixels,
// which is plenty for end zone lettering and yard markers.
func drawRotatedString(img *image.RGBA, cx, cy int, s string, col color.RGBA, quarterTurns int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	w := int(d.MeasureString(s) >> 6)
	if w <= 0 {
		return
	}
	met := face.Metrics()
	h := met.Height.Round()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = tmp
	d.Src = image.NewUniform(col)
	d.Dot = fixed.P(0, met.Ascent.Round())
	d.DrawString(s)

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := tmp.RGBAAt(px, py)
			if c.A == 0 {
				continue
			}
			dx := px - w/2
			dy := py - h/2
			var nx, ny int
			switch quarterTurns % 4 {
			case 1: // 90 degrees, reading bottom-to-top
				nx, ny = cx+dy, cy-dx
			case 2: // upside down
				nx, ny = cx-dx, cy-dy
			case 3: // 270 degrees, reading top-to-bottom
				nx, ny = cx-dy, cy+dx
			default:
				nx, ny = cx+dx, cy+dy
			}
			img.SetRGBA(nx, ny, c)
		}
	}
}
