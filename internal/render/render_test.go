/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drivechart/internal/domain"
	"drivechart/internal/layout"
)

func testGame() *domain.Game {
	return &domain.Game{
		Road: domain.TeamInfo{
			Abbrev: "SEA", Nickname: "Seahawks",
			Primary:   domain.MustHexColor("#002244"),
			Secondary: domain.MustHexColor("#69be28"),
		},
		Home: domain.TeamInfo{
			Abbrev: "NWE", Nickname: "Patriots",
			Primary:   domain.MustHexColor("#0a2342"),
			Secondary: domain.MustHexColor("#c8102e"),
		},
		Drives: []domain.Drive{
			{Quarter: 1, Start: domain.Clock{Min: 15}, Plays: 9, Duration: domain.Clock{Min: 4, Sec: 12},
				NetYards: 35, Result: "Punt", Team: "NWE", Side: domain.Home, StartYd: 25, EndYd: 60},
			{Quarter: 1, Start: domain.Clock{Min: 10, Sec: 48}, Plays: 7, Duration: domain.Clock{Min: 3, Sec: 2},
				NetYards: 30, Result: "Touchdown", Team: "SEA", Side: domain.Road, StartYd: 70, EndYd: 40},
			{Quarter: 2, Start: domain.Clock{Min: 14, Sec: 30}, Plays: 3, Duration: domain.Clock{Min: 1, Sec: 40},
				NetYards: -8, Result: "Fumble", Team: "NWE", Side: domain.Home, StartYd: 44, EndYd: 36},
			{Quarter: 2, Plays: 0, Result: "End of Half", Team: "SEA", Side: domain.Road, StartYd: -1, EndYd: -1},
		},
	}
}

func testChart(g *domain.Game) *layout.Chart {
	return layout.Build(g, layout.DefaultGeometry(), Measurer())
}

func TestWritePNG(t *testing.T) {
	g := testGame()
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := WritePNG(testChart(g), g, path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("png file is empty")
	}
}

func TestWriteSVG(t *testing.T) {
	g := testGame()
	path := filepath.Join(t.TempDir(), "chart.svg")
	if err := WriteSVG(testChart(g), g, path); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "<?xml") || !strings.Contains(s, "</svg>") {
		t.Fatalf("svg document malformed")
	}
	if !strings.Contains(s, "PATRIOTS") || !strings.Contains(s, "SEAHAWKS") {
		t.Fatalf("end zone nicknames missing")
	}
	if !strings.Contains(s, "url(#hatch-home)") {
		t.Fatalf("negative home drive should use the hatch pattern")
	}
}

func TestWritePDF(t *testing.T) {
	g := testGame()
	path := filepath.Join(t.TempDir(), "chart.pdf")
	if err := WritePDF(testChart(g), g, path); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("output is not a PDF")
	}
}

func TestTextChartRows(t *testing.T) {
	lines := strings.Split(strings.TrimRight(TextChart(testGame()), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 2 header + 4 drives", len(lines))
	}

	header := lines[1]
	if !strings.HasPrefix(header, textPrefix+"NWE") || !strings.HasSuffix(header, "SEA") {
		t.Fatalf("header = %q", header)
	}

	// Home drive 25 -> 60: right arrow at the start, P(unt) at the end.
	home := lines[2]
	pw := len(textPrefix) + len("NWE") - 1
	if home[pw+25] != '>' {
		t.Fatalf("home drive start marker: %q", home)
	}
	if home[pw+60] != 'P' {
		t.Fatalf("home drive result letter: %q", home)
	}
	if !strings.Contains(home, "9-35") {
		t.Fatalf("home drive summary missing: %q", home)
	}

	// Road drive 70 -> 40: T(ouchdown) at the end, left arrow at the start.
	road := lines[3]
	if road[pw+70] != '<' || road[pw+40] != 'T' {
		t.Fatalf("road drive markers: %q", road)
	}

	// Negative home drive 44 -> 36: letter at the regressed end, arrow at the start.
	neg := lines[4]
	if neg[pw+36] != 'F' || neg[pw+44] != '>' {
		t.Fatalf("negative drive markers: %q", neg)
	}
	if !strings.Contains(neg, "3-(8)") {
		t.Fatalf("negative yardage summary: %q", neg)
	}

	// Zero-play drive renders stats only, no field marks.
	ghost := lines[5]
	if strings.ContainsAny(ghost[pw:], "<>-") {
		t.Fatalf("ghost drive should not mark the field: %q", ghost)
	}
}

func TestTextChartPinsMarksToField(t *testing.T) {
	// A safety can push the end position past the goal line (road team
	// backed up at its own 5 losing 9 yards ends at 104); the marks must
	// stay on the 0-100 columns instead of slicing past the row.
	g := testGame()
	g.Drives = []domain.Drive{
		{Quarter: 2, Start: domain.Clock{Min: 3}, Plays: 3, Duration: domain.Clock{Min: 1, Sec: 40},
			NetYards: -9, Result: "Safety", Team: "SEA", Side: domain.Road, StartYd: 95, EndYd: 104},
		{Quarter: 3, Start: domain.Clock{Min: 9}, Plays: 2, Duration: domain.Clock{Min: 0, Sec: 50},
			NetYards: -9, Result: "Safety", Team: "NWE", Side: domain.Home, StartYd: 5, EndYd: -4},
	}
	lines := strings.Split(TextChart(g), "\n")
	pw := len(textPrefix) + len("NWE") - 1

	road := lines[2]
	if road[pw+95] != '<' || road[pw+100] != 'S' {
		t.Fatalf("road safety marks: %q", road)
	}

	home := lines[3]
	if home[pw+0] != 'S' || home[pw+5] != '>' {
		t.Fatalf("home safety marks: %q", home)
	}
}

func TestTextChartFieldGoalLetter(t *testing.T) {
	g := testGame()
	g.Drives = g.Drives[:1]
	g.Drives[0].Result = "Field Goal"
	out := TextChart(g)
	pw := len(textPrefix) + len("NWE") - 1
	row := strings.Split(out, "\n")[2]
	if row[pw+60] != 'G' {
		t.Fatalf("field goal letter: %q", row)
	}
}

func TestTableText(t *testing.T) {
	out := TableText(testGame())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Team,Q,StartTime,StartYardline,Plays,Time,Yards,Result" {
		t.Fatalf("table header = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("table rows = %d, want 4", len(lines)-1)
	}
	if lines[1] != "NWE,1,15:00,25,9,4:12,35,Punt" {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[4] != "SEA,2,0:00,,0,0:00,0,End of Half" {
		t.Fatalf("ghost row = %q", lines[4])
	}
}
