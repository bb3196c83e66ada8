/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package archive

import (
	"context"
	"path/filepath"
	"testing"

	"drivechart/internal/domain"
)

func testGame() *domain.Game {
	return &domain.Game{
		Road: domain.TeamInfo{Abbrev: "SEA"},
		Home: domain.TeamInfo{Abbrev: "NWE"},
		Drives: []domain.Drive{
			{Team: "NWE", Quarter: 1, Start: domain.Clock{Min: 15}, Plays: 9,
				Duration: domain.Clock{Min: 4, Sec: 12}, NetYards: 35, Result: "Punt",
				Side: domain.Home, StartYd: 25, EndYd: 60},
			{Team: "SEA", Quarter: 1, Start: domain.Clock{Min: 10, Sec: 48}, Plays: 7,
				Duration: domain.Clock{Min: 3, Sec: 2}, NetYards: 30, Result: "Touchdown",
				Note: "screen pass", Side: domain.Road, StartYd: 70, EndYd: 40},
		},
	}
}

func TestOpenRecordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.sqlite")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.Record(ctx, testGame(), "sea-at-nwe.png")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a game id")
	}

	games, err := a.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games = %d, want 1", len(games))
	}
	g := games[0]
	if g.Road != "SEA" || g.Home != "NWE" || g.DriveCount != 2 || g.OutputPath != "sea-at-nwe.png" {
		t.Fatalf("unexpected record: %+v", g)
	}
}

func TestDrivesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.sqlite")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	id, err := a.Record(ctx, testGame(), "")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	drives, err := a.Drives(ctx, id)
	if err != nil {
		t.Fatalf("Drives: %v", err)
	}
	if len(drives) != 2 {
		t.Fatalf("drives = %d, want 2", len(drives))
	}
	d := drives[1]
	if d.Team != "SEA" || d.Plays != 7 || d.NetYards != 30 || d.Note != "screen pass" {
		t.Fatalf("unexpected drive: %+v", d)
	}
	if d.Start.Seconds() != 10*60+48 || d.Duration.Seconds() != 3*60+2 {
		t.Fatalf("clock round trip: %+v", d)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.sqlite")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := a.Record(context.Background(), testGame(), ""); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	a, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer a.Close()
	games, err := a.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games after reopen = %d, want 1", len(games))
	}
}
