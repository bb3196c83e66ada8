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

	"drivechart/internal/domain"
)

// The text chart maps one column to one yard. Each drive row carries a
// stats prefix, then the 100-yard field bracketed by the two end zone
// abbreviations.
const (
	textPrefix  = " Q TM      P-YD TIME [START] "
	fieldHeader = "....'....|....'....|....'....|....'....|....'....|....'....|....'....|....'....|....'....|....'...."
	yardHeader  = "        1 0       2 0       3 0       4 0       5 0       4 0       3 0       2 0       1 0        "
)

// TextChart renders the whole game as a fixed-width text chart: a yard
// marker line, a column header, and one line per drive with '>' or '<'
// showing direction and the result letter at the drive's final spot.
func TextChart(g *domain.Game) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", len(textPrefix)+len(g.Home.Abbrev)))
	sb.WriteString(yardHeader)
	sb.WriteByte('\n')
	sb.WriteString(textPrefix)
	sb.WriteString(g.Home.Abbrev)
	sb.WriteString(fieldHeader)
	sb.WriteString(g.Road.Abbrev)
	sb.WriteByte('\n')
	for _, d := range g.Drives {
		sb.WriteString(driveLine(d, g.Home.Abbrev))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TableText renders the merged drives as one CSV table, handy for piping
// into other tools.
func TableText(g *domain.Game) string {
	var sb strings.Builder
	sb.WriteString("Team,Q,StartTime,StartYardline,Plays,Time,Yards,Result\n")
	for _, d := range g.Drives {
		start := ""
		if d.StartYd >= 0 {
			start = fmt.Sprintf("%d", d.StartYd)
		}
		fmt.Fprintf(&sb, "%s,%d,%s,%s,%d,%s,%d,%s\n",
			d.Team, d.Quarter, d.Start, start, d.Plays, d.Duration, d.NetYards, d.Result)
	}
	return sb.String()
}

// driveLine builds one chart row. Field columns run left to right from
// the home end zone, so home drives read like ">----T" and road drives
// like "P----<".
func driveLine(d domain.Drive, home string) string {
	summary := fmt.Sprintf("%d-%s", d.Plays, domain.NetYardsString(d.NetYards))
	row := fmt.Sprintf("%2d %2s: %7s %4s [%4s]", d.Quarter, d.Team, summary, d.Duration, d.Start)
	row += strings.Repeat(" ", len(home)+len(fieldHeader)+len(home))

	if !d.Drawable() {
		return row
	}

	// Stats prefix plus the home abbreviation, minus one so yard 0 lands
	// on the first field column.
	prefixWidth := len(textPrefix) + len(home) - 1

	// A drive ending in the end zone (or a safety pushing past the goal
	// line) can place EndYd outside 0-100; pin the marks to the field.
	startYd := clampYd(d.StartYd)
	endYd := clampYd(d.EndYd)

	dashes := endYd - startYd
	if dashes < 0 {
		dashes = -dashes
	}
	dashes--
	if dashes < 0 {
		dashes = 0
	}
	letter := domain.ResultLetter(d.Result)

	var field string
	var left, right int
	if d.Side == domain.Home {
		left = startYd + prefixWidth
		right = endYd + prefixWidth
		if endYd >= startYd {
			field = ">" + strings.Repeat("-", dashes) + letter
		} else {
			left, right = right, left
			field = letter + strings.Repeat("-", dashes) + ">"
		}
	} else {
		left = endYd + prefixWidth
		right = startYd + prefixWidth
		if startYd >= endYd {
			field = letter + strings.Repeat("-", dashes) + "<"
		} else {
			left, right = right, left
			field = "<" + strings.Repeat("-", dashes) + letter
		}
	}
	return row[:left] + field + row[right+1:]
}

func clampYd(yd int) int {
	if yd < 0 {
		return 0
	}
	if yd > 100 {
		return 100
	}
	return yd
}
