/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the core data model for drive charts: drives,
// games, clocks, and the geometry/color primitives shared by the layout
// engine and the renderers.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Side says which sideline a team occupies on the chart. Home drives are
// drawn left-to-right, road drives right-to-left.
type Side int

const (
	Road Side = iota
	Home
)

func (s Side) String() string {
	if s == Home {
		return "HOME"
	}
	return "ROAD"
}

// Clock is a game clock value (minutes:seconds remaining in a quarter, or
// the duration of a drive).
type Clock struct {
	Min int
	Sec int
}

// ParseClock parses "M:SS" or "MM:SS".
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("clock %q: want M:SS", s)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("clock %q: minutes: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("clock %q: seconds: %w", s, err)
	}
	if m < 0 || sec < 0 || sec > 59 {
		return Clock{}, fmt.Errorf("clock %q: out of range", s)
	}
	return Clock{Min: m, Sec: sec}, nil
}

// Seconds returns the total number of seconds on the clock.
func (c Clock) Seconds() int { return c.Min*60 + c.Sec }

// IsZero reports a 0:00 clock.
func (c Clock) IsZero() bool { return c.Min == 0 && c.Sec == 0 }

func (c Clock) String() string { return fmt.Sprintf("%d:%02d", c.Min, c.Sec) }

// QuarterSeconds is the length of a regulation quarter. Overtime periods
// are shorter, but the value is only used for ordering drives, where the
// overestimate is harmless.
const QuarterSeconds = 15 * 60

// Drive is one possession as listed in a box-score drive table, plus the
// derived values needed for chart placement.
type Drive struct {
	Number   int    // per-team drive number from the file
	Quarter  int    // quarter the drive began in
	Start    Clock  // clock time remaining when the drive began
	Plays    int
	Duration Clock
	NetYards int
	Result   string // e.g. "Punt", "Touchdown", "Field Goal"
	Note     string // optional trailing free-text column
	Team     string // offensive team abbreviation
	Side     Side

	// Elapsed is seconds since kickoff at the start of the drive,
	// assuming QuarterSeconds quarters. Used only for merge ordering.
	Elapsed int

	// StartYd/EndYd are field positions on a 0-100 scale oriented
	// left-to-right from the home end zone. Both are -1 for zero-play
	// drives (e.g. a kneel-down kickoff before halftime), which are
	// never drawn.
	StartYd int
	EndYd   int
}

// Drawable reports whether the drive produces a box on the chart.
func (d Drive) Drawable() bool { return d.Plays > 0 && d.StartYd >= 0 }

// Summary returns the "plays-yards time" string shown in drive labels,
// e.g. "9-75 4:12" or "3-(8) 1:40" for a negative drive.
func (d Drive) Summary() string {
	return fmt.Sprintf("%d-%s %s", d.Plays, NetYardsString(d.NetYards), d.Duration)
}

// NetYardsString renders negative yardage in accounting style: -8 -> "(8)".
func NetYardsString(n int) string {
	if n >= 0 {
		return strconv.Itoa(n)
	}
	return "(" + strconv.Itoa(-n) + ")"
}

// ResultCode maps a drive result to the short form used on chart labels.
func ResultCode(result string) string {
	switch result {
	case "Field Goal":
		return "FG"
	case "Missed FG":
		return "MISS FG"
	case "Touchdown":
		return "TD"
	case "Interception":
		// A pick six is still listed as Interception; the return TD
		// belongs to the other team's table.
		return "INT"
	case "Fumble":
		return "FUM"
	case "Punt":
		return "PUNT"
	case "End of Half":
		return "HALF"
	case "End of Game":
		return "END"
	case "Downs":
		return "DOWNS"
	case "Safety":
		return "SAF"
	}
	if result == "" {
		return "?"
	}
	return result[:1]
}

// ResultLetter maps a drive result to the single letter used by the ASCII
// chart. Field Goal and End of Half get letters that do not collide with
// Fumble and End of Game.
func ResultLetter(result string) string {
	switch result {
	case "Field Goal":
		return "G"
	case "End of Half":
		return "H"
	}
	if result == "" {
		return "?"
	}
	return result[:1]
}

// Game holds everything needed to draw one chart.
type Game struct {
	Road   TeamInfo
	Home   TeamInfo
	Drives []Drive // merged, chronological
}

// TeamInfo is the resolved profile of one participating team.
type TeamInfo struct {
	Abbrev    string
	Nickname  string
	Primary   Color
	Secondary Color
}

// SwapColors exchanges the primary and secondary colors, used when the two
// teams' primary colors are too close to tell apart.
func (t *TeamInfo) SwapColors() { t.Primary, t.Secondary = t.Secondary, t.Primary }

// DriveCount returns the number of drives credited to abbrev.
func (g *Game) DriveCount(abbrev string) int {
	n := 0
	for _, d := range g.Drives {
		if d.Team == abbrev {
			n++
		}
	}
	return n
}

// Geometry and rendering primitives.

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type Point struct {
	X float64
	Y float64
}

type Color struct {
	R, G, B, A uint8
}

// ParseHexColor parses "#RRGGBB" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustHexColor is ParseHexColor for static tables; it panics on bad input.
func MustHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns "#rrggbb".
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

type Stroke struct {
	Color Color
	Width float64
}
