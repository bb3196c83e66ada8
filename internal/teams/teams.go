/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package teams maps Pro Football Reference team abbreviations to display
// names and colors. The built-in table covers 2000-present including
// relocation aliases (SDG/LAC, OAK/LVR, STL/LAR); it can be extended or
// overridden with a JSON file validated against an embedded schema.
package teams

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"drivechart/internal/domain"
)

// Profile is one team's chart appearance. Primary fills the end zone and
// drive boxes; Secondary is used for outlines and end zone lettering.
type Profile struct {
	Abbrev    string
	Nickname  string
	Primary   domain.Color
	Secondary domain.Color
}

// Info converts the profile to the domain representation.
func (p Profile) Info() domain.TeamInfo {
	return domain.TeamInfo{
		Abbrev:    p.Abbrev,
		Nickname:  p.Nickname,
		Primary:   p.Primary,
		Secondary: p.Secondary,
	}
}

// Table resolves abbreviations to profiles.
type Table struct {
	profiles map[string]Profile
}

// NewTable returns the built-in table.
func NewTable() *Table {
	t := &Table{profiles: make(map[string]Profile, len(builtin))}
	for ab, e := range builtin {
		t.profiles[ab] = Profile{
			Abbrev:    ab,
			Nickname:  e.nickname,
			Primary:   domain.MustHexColor(e.primary),
			Secondary: domain.MustHexColor(e.secondary),
		}
	}
	return t
}

// Lookup returns the profile for abbrev, or an error naming the unknown
// abbreviation.
func (t *Table) Lookup(abbrev string) (Profile, error) {
	p, ok := t.profiles[abbrev]
	if !ok {
		return Profile{}, fmt.Errorf("unknown team abbreviation %q", abbrev)
	}
	return p, nil
}

// Abbrevs lists all known abbreviations, sorted.
func (t *Table) Abbrevs() []string {
	out := make([]string, 0, len(t.profiles))
	for ab := range t.profiles {
		out = append(out, ab)
	}
	sort.Strings(out)
	return out
}

// overrideFile is the shape of a -teamfile document.
type overrideFile struct {
	Teams []overrideEntry `json:"teams"`
}

type overrideEntry struct {
	Abbrev    string `json:"abbrev"`
	Nickname  string `json:"nickname"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// overrideSchema validates -teamfile documents before they are applied.
const overrideSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["teams"],
  "properties": {
    "teams": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["abbrev", "nickname", "primary", "secondary"],
        "properties": {
          "abbrev":    {"type": "string", "minLength": 2, "maxLength": 3},
          "nickname":  {"type": "string", "minLength": 1},
          "primary":   {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
          "secondary": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// LoadOverrides reads a JSON team file, validates it against the schema,
// and merges its entries into the table (replacing or adding profiles).
func (t *Table) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read team file: %w", err)
	}
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(overrideSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate team file: %w", err)
	}
	if !res.Valid() {
		msgs := res.Errors()
		if len(msgs) > 0 {
			return fmt.Errorf("team file %s: %s", path, msgs[0].String())
		}
		return fmt.Errorf("team file %s: invalid", path)
	}
	var of overrideFile
	if err := json.Unmarshal(data, &of); err != nil {
		return fmt.Errorf("decode team file: %w", err)
	}
	for _, e := range of.Teams {
		pc, err := domain.ParseHexColor(e.Primary)
		if err != nil {
			return fmt.Errorf("team %s: %w", e.Abbrev, err)
		}
		sc, err := domain.ParseHexColor(e.Secondary)
		if err != nil {
			return fmt.Errorf("team %s: %w", e.Abbrev, err)
		}
		t.profiles[e.Abbrev] = Profile{Abbrev: e.Abbrev, Nickname: e.Nickname, Primary: pc, Secondary: sc}
	}
	return nil
}

type entry struct {
	nickname  string
	primary   string
	secondary string
}

// Colors from the published team palettes. If a team's primary is too
// close to the opponent's, the -exchangecolor flag swaps in the secondary.
var builtin = map[string]entry{
	"NWE": {"Patriots", "#002244", "#B0B7BC"},
	"BAL": {"Ravens", "#241773", "#9E7C0C"},
	"BUF": {"Bills", "#00338D", "#C60C30"},
	"CIN": {"Bengals", "#FB4F14", "#000000"},
	"CLE": {"Browns", "#311D00", "#FF3C00"},
	"DEN": {"Broncos", "#FB4F14", "#002244"},
	"HOU": {"Texans", "#03202F", "#A71930"},
	"IND": {"Colts", "#002C5F", "#A2AAAD"},
	"JAX": {"Jaguars", "#D7A22A", "#006778"},
	"KAN": {"Chiefs", "#E31837", "#FFB81C"},
	"LAC": {"Chargers", "#0080C6", "#FFC20E"},
	"SDG": {"Chargers", "#0080C6", "#FFC20E"},
	"LVR": {"Raiders", "#000000", "#A5ACAF"},
	"OAK": {"Raiders", "#000000", "#A5ACAF"},
	"MIA": {"Dolphins", "#008E97", "#FC4C02"},
	"NYJ": {"Jets", "#125740", "#000000"},
	"PIT": {"Steelers", "#101820", "#FFB612"},
	"TEN": {"Titans", "#0C2340", "#4B92DB"},
	"ARI": {"Cardinals", "#97233F", "#000000"},
	"ATL": {"Falcons", "#A71930", "#000000"},
	"CAR": {"Panthers", "#0085CA", "#101820"},
	"CHI": {"Bears", "#0B162A", "#C83803"},
	"DAL": {"Cowboys", "#041E42", "#869397"},
	"DET": {"Lions", "#0076B6", "#B0B7BC"},
	"GNB": {"Packers", "#203731", "#FFB612"},
	"LAR": {"Rams", "#003594", "#FFA300"},
	"STL": {"Rams", "#002244", "#866D4B"},
	"MIN": {"Vikings", "#4F2683", "#FFC62F"},
	"NOR": {"Saints", "#101820", "#D3BC8D"},
	"NYG": {"Giants", "#0B2265", "#A71930"},
	"PHI": {"Eagles", "#004C54", "#ACC0C6"},
	"SEA": {"Seahawks", "#002244", "#69BE28"},
	"SFO": {"49ers", "#AA0000", "#B3995D"},
	"TAM": {"Buccaneers", "#FF7900", "#34302B"},
	"WAS": {"Commanders", "#5A1414", "#FFB612"},
}
