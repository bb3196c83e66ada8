/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"drivechart/internal/domain"
	"drivechart/internal/layout"
)

// WriteSVG writes the chart as a standalone SVG document. The coordinate
// system matches the layout pixels 1:1.
func WriteSVG(c *layout.Chart, g *domain.Game, path string) error {
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", c.Width, c.Height, c.Width, c.Height)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\" stroke=\"#000000\" stroke-width=\"1\"/>\n", c.Width, c.Height)

	// Hatch pattern for drives that lost yards, one per team color.
	wf("  <defs>\n")
	wf("    <pattern id=\"hatch-home\" width=\"4\" height=\"4\" patternTransform=\"rotate(45)\" patternUnits=\"userSpaceOnUse\"><line x1=\"0\" y1=\"0\" x2=\"0\" y2=\"4\" stroke=\"%s\" stroke-width=\"1\"/></pattern>\n", g.Home.Secondary.Hex())
	wf("    <pattern id=\"hatch-road\" width=\"4\" height=\"4\" patternTransform=\"rotate(45)\" patternUnits=\"userSpaceOnUse\"><line x1=\"0\" y1=\"0\" x2=\"0\" y2=\"4\" stroke=\"%s\" stroke-width=\"1\"/></pattern>\n", g.Road.Secondary.Hex())
	wf("  </defs>\n")

	// End zones with rotated nicknames.
	ezText := func(r domain.Rect, info domain.TeamInfo, deg int) {
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", r.X, r.Y, r.Width, r.Height, info.Primary.Hex())
		cx := r.X + r.Width/2
		cy := r.Y + r.Height/2
		wf("  <text x=\"%g\" y=\"%g\" fill=\"%s\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"14\" font-weight=\"bold\" text-anchor=\"middle\" dominant-baseline=\"central\" transform=\"rotate(%d %g %g)\">%s</text>\n",
			cx, cy, info.Secondary.Hex(), deg, cx, cy, escText(strings.ToUpper(info.Nickname)))
	}
	ezText(c.HomeEndZone, g.Home, -90)
	ezText(c.RoadEndZone, g.Road, 90)

	for _, s := range c.Stripes {
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"#008000\"/>\n", s.X, s.Y, s.Width, s.Height)
	}
	for _, m := range c.Markers {
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"#008000\"/>\n", m.Rect.X, m.Rect.Y, m.Rect.Width, m.Rect.Height)
		cx := m.Rect.X + m.Rect.Width/2
		cy := m.Rect.Y + m.Rect.Height/2
		rot := ""
		if m.Flip {
			rot = fmt.Sprintf(" transform=\"rotate(180 %g %g)\"", cx, cy)
		}
		wf("  <text x=\"%g\" y=\"%g\" fill=\"#ffffff\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"8\" font-weight=\"bold\" text-anchor=\"middle\" dominant-baseline=\"central\"%s>%s</text>\n",
			cx, cy, rot, escText(m.Text))
	}

	for _, sep := range c.Separators {
		wf("  <line x1=\"1\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"#000000\" stroke-dasharray=\"4 3\"/>\n", sep.Y, c.Width-1, sep.Y)
	}

	for _, b := range c.Boxes {
		team := g.Road
		hatch := "hatch-road"
		if b.Home {
			team = g.Home
			hatch = "hatch-home"
		}
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height, team.Primary.Hex(), team.Secondary.Hex())
		if b.Hatch {
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"url(#%s)\"/>\n",
				b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height, hatch)
		}
		wf("  <polygon points=\"%g,%g %g,%g %g,%g\" fill=\"%s\" stroke=\"%s\"/>\n",
			b.Arrow[0].X, b.Arrow[0].Y, b.Arrow[1].X, b.Arrow[1].Y, b.Arrow[2].X, b.Arrow[2].Y,
			team.Primary.Hex(), team.Secondary.Hex())

		fill := "#000000"
		if b.Label.Inside {
			fill = "#ffffff"
		}
		anchor := "start"
		if b.Label.Align == layout.AlignRight {
			anchor = "end"
		}
		wf("  <text x=\"%g\" y=\"%g\" fill=\"%s\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"7\" font-weight=\"bold\" text-anchor=\"%s\" dominant-baseline=\"central\">%s</text>\n",
			b.Label.X, b.Label.Y, fill, anchor, escText(b.Label.Text))
	}

	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, []byte("&amp;")...)
		case '<':
			out = append(out, []byte("&lt;")...)
		case '>':
			out = append(out, []byte("&gt;")...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
