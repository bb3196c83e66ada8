/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout turns a merged game into chart geometry: one row of field
// with team end zones, yard stripes and markers, one box per drawable
// drive, direction arrows, quarter separators, and label placement.
//
// Coordinates are pixels with the origin at the top-left; renderers map
// them 1:1.
package layout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"drivechart/internal/domain"
)

// Geometry holds the chart's pixel knobs. BoxHeight should be even so the
// direction arrows center cleanly.
type Geometry struct {
	PixelsPerYard  int
	BoxHeight      int
	BoxGap         int
	BorderYards    int
	MarkerInset    int
	MarkerHeight   int
	MinFieldHeight int
}

// DefaultGeometry mirrors the config defaults; tests use it directly.
func DefaultGeometry() Geometry {
	return Geometry{
		PixelsPerYard:  2,
		BoxHeight:      8,
		BoxGap:         4,
		BorderYards:    3,
		MarkerInset:    2,
		MarkerHeight:   10,
		MinFieldHeight: 58,
	}
}

// Yd converts yards to pixels.
func (g Geometry) Yd(n int) float64 { return float64(n * g.PixelsPerYard) }

// Border is the outer margin in pixels.
func (g Geometry) Border() float64 { return g.Yd(g.BorderYards) }

// FieldWidth is the full field, end zones included.
func (g Geometry) FieldWidth() float64 { return g.Yd(120) }

// XAt maps a 0-100 field position (home-oriented) to a pixel x coordinate.
func (g Geometry) XAt(yd int) float64 { return g.Border() + g.Yd(10+yd) }

// Align selects the horizontal anchoring of a label at its X coordinate.
type Align int

const (
	AlignLeft  Align = iota // text extends right of X
	AlignRight              // text extends left of X
)

// Label is a placed piece of drive annotation text. Inside labels sit on
// the drive box and are drawn light; outside labels are drawn dark.
type Label struct {
	Text   string
	X, Y   float64 // Y is the vertical center of the drive box
	Align  Align
	Inside bool
}

// Box is one drawable drive.
type Box struct {
	Drive domain.Drive
	Rect  domain.Rect
	Arrow [3]domain.Point // direction triangle at the advancing end
	Hatch bool            // drive lost yardage
	Home  bool
	Label Label
}

// Marker is a yardage number on the field ("<10", "50", "40>").
type Marker struct {
	Text string
	Rect domain.Rect
	Flip bool // top-row markers are rotated 180 degrees
}

// Separator is a dashed line between drives of different quarters.
type Separator struct {
	Quarter int // quarter that ends above the line
	Y       float64
}

// Chart is the computed scene.
type Chart struct {
	Geo           Geometry
	Width, Height float64
	FieldHeight   float64 // inner height, borders excluded
	HomeEndZone   domain.Rect
	RoadEndZone   domain.Rect
	Stripes       []domain.Rect
	Markers       []Marker
	Boxes         []Box
	Separators    []Separator
}

// TextMeasurer reports rendered label width in pixels. The renderer that
// will draw the labels supplies its own face so fit decisions match the
// actual output.
type TextMeasurer interface {
	Width(s string) float64
}

// FaceMeasurer measures with an x/image font face.
type FaceMeasurer struct {
	Face font.Face
}

func (m FaceMeasurer) Width(s string) float64 {
	d := &font.Drawer{Face: m.Face}
	return float64(d.MeasureString(s) >> 6)
}

// DefaultMeasurer uses the fixed 7x13 face, the same one the PNG renderer
// draws with.
func DefaultMeasurer() TextMeasurer { return FaceMeasurer{Face: basicfont.Face7x13} }

const labelPad = 4.0

// Build computes the chart geometry for a merged game.
func Build(g *domain.Game, geo Geometry, m TextMeasurer) *Chart {
	if m == nil {
		m = DefaultMeasurer()
	}

	drawable := 0
	for _, d := range g.Drives {
		if d.Drawable() {
			drawable++
		}
	}

	rowPitch := geo.BoxHeight + geo.BoxGap
	fieldHeight := float64(drawable*rowPitch + 2*(geo.MarkerInset+geo.MarkerHeight) + geo.BoxGap)
	if fieldHeight < float64(geo.MinFieldHeight) {
		fieldHeight = float64(geo.MinFieldHeight)
	}

	c := &Chart{
		Geo:         geo,
		Width:       geo.FieldWidth() + 2*geo.Border(),
		Height:      fieldHeight + 2*geo.Border(),
		FieldHeight: fieldHeight,
	}

	border := geo.Border()
	c.HomeEndZone = domain.Rect{X: border, Y: border, Width: geo.Yd(10), Height: fieldHeight}
	c.RoadEndZone = domain.Rect{X: border + geo.Yd(110), Y: border, Width: geo.Yd(10), Height: fieldHeight}

	// Green stripes between the 5-yard lines, leaving a 1-yard gap for
	// each line itself.
	for k := 0; k < 20; k++ {
		c.Stripes = append(c.Stripes, domain.Rect{
			X:      border + geo.Yd(11+5*k),
			Y:      border,
			Width:  geo.Yd(4),
			Height: fieldHeight,
		})
	}
	c.Markers = buildMarkers(geo, fieldHeight)

	arrowW := float64(geo.BoxHeight)
	y := border + float64(geo.MarkerInset+geo.MarkerHeight+geo.BoxGap)
	quarter := 1
	for _, d := range g.Drives {
		if !d.Drawable() {
			continue
		}
		if d.Quarter > quarter {
			c.Separators = append(c.Separators, Separator{Quarter: quarter, Y: y - float64(geo.BoxGap)/2})
			quarter = d.Quarter
		}

		startYd, endYd := d.StartYd, d.EndYd
		leftYd := startYd
		if endYd < leftYd {
			leftYd = endYd
		}
		widthYds := endYd - startYd
		if widthYds < 0 {
			widthYds = -widthYds
		}
		widthYds++

		box := Box{
			Drive: d,
			Home:  d.Side == domain.Home,
			Hatch: d.NetYards < 0,
			Rect: domain.Rect{
				X:      c.Geo.XAt(leftYd),
				Y:      y,
				Width:  geo.Yd(widthYds),
				Height: float64(geo.BoxHeight),
			},
		}
		box.Arrow = arrowFor(box, arrowW)
		box.Label = placeLabel(c, box, arrowW, m)
		c.Boxes = append(c.Boxes, box)
		y += float64(rowPitch)
	}
	return c
}

// arrowFor builds the direction triangle: a 1px spacer off the advancing
// edge, shrunk by 2px vertically so it sits centered on the box.
func arrowFor(b Box, width float64) [3]domain.Point {
	top := b.Rect.Y + 1
	bottom := b.Rect.Y + b.Rect.Height - 1
	mid := b.Rect.Y + b.Rect.Height/2
	if b.Home {
		x := b.Rect.X + b.Rect.Width + 1
		return [3]domain.Point{{X: x, Y: top}, {X: x + width/2, Y: mid}, {X: x, Y: bottom}}
	}
	x := b.Rect.X - 1
	return [3]domain.Point{{X: x, Y: top}, {X: x - width/2, Y: mid}, {X: x, Y: bottom}}
}

// placeLabel decides where the drive annotation goes. If the measured text
// fits inside the box it is drawn there; otherwise it goes beside the box,
// flipping to the open side for drives backed up inside their own 10.
// Imprecise by nature: measurement uses the renderer's face but ignores
// collisions with neighboring labels.
func placeLabel(c *Chart, b Box, arrowW float64, m TextMeasurer) Label {
	d := b.Drive
	var text string
	if b.Home {
		text = strings.TrimSpace(d.Note + " (" + d.Summary() + ") " + domain.ResultCode(d.Result))
	} else {
		text = strings.TrimSpace(domain.ResultCode(d.Result) + " (" + d.Summary() + ") " + d.Note)
	}
	centerY := b.Rect.Y + b.Rect.Height/2

	if m.Width(text) <= b.Rect.Width-2*labelPad {
		if b.Home {
			return Label{Text: text, X: b.Rect.X + b.Rect.Width - labelPad, Y: centerY, Align: AlignRight, Inside: true}
		}
		return Label{Text: text, X: b.Rect.X + labelPad, Y: centerY, Align: AlignLeft, Inside: true}
	}

	if b.Home {
		// Backed up near the home end zone there is no room to the
		// left, so the text follows the arrow instead.
		if b.Rect.X < c.Geo.XAt(10) {
			return Label{Text: text, X: b.Rect.X + b.Rect.Width + arrowW + labelPad, Y: centerY, Align: AlignLeft}
		}
		return Label{Text: text, X: b.Rect.X - labelPad, Y: centerY, Align: AlignRight}
	}
	if b.Rect.X+b.Rect.Width > c.Geo.XAt(90) {
		return Label{Text: text, X: b.Rect.X - arrowW - labelPad, Y: centerY, Align: AlignRight}
	}
	return Label{Text: text, X: b.Rect.X + b.Rect.Width + labelPad, Y: centerY, Align: AlignLeft}
}

func buildMarkers(geo Geometry, fieldHeight float64) []Marker {
	labels := []string{"<10", "<20", "<30", "<40", "50", "40>", "30>", "20>", "10>"}
	border := geo.Border()
	bottomY := border + fieldHeight - float64(geo.MarkerInset+geo.MarkerHeight)
	topY := border + float64(geo.MarkerInset)
	markers := make([]Marker, 0, 2*len(labels))
	for i, text := range labels {
		// Each marker is centered between two successive 5-yard lines.
		r := domain.Rect{
			X:      border + geo.Yd(16+10*i),
			Width:  geo.Yd(9),
			Height: float64(geo.MarkerHeight),
		}
		bottom := r
		bottom.Y = bottomY
		markers = append(markers, Marker{Text: text, Rect: bottom})
		top := r
		top.Y = topY
		// The top row reads for the far sideline, so the arrows point
		// the other way and the glyphs are flipped.
		markers = append(markers, Marker{Text: labels[len(labels)-1-i], Rect: top, Flip: true})
	}
	return markers
}

// TeamBoxWidth sums the drawn box widths for one team, used to check that
// drawn width tracks yardage.
func (c *Chart) TeamBoxWidth(abbrev string) float64 {
	var w float64
	for _, b := range c.Boxes {
		if b.Drive.Team == abbrev {
			w += b.Rect.Width
		}
	}
	return w
}
