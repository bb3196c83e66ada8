/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package boxscore parses Pro Football Reference drive-table CSV exports
// into domain.Drive records and merges the two teams' sequences into game
// order.
//
// Expected row format:
//
//	#,Quarter,Time,LOS,Plays,Length,Net Yds,Result[,Note]
//
// Header rows and blank lines are skipped. Malformed rows are reported and
// skipped rather than aborting the whole file.
package boxscore

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"drivechart/internal/domain"
)

// RowError describes one skipped input row.
type RowError struct {
	File string
	Line int
	Msg  string
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// column indexes in a drive-table row.
const (
	colNumber = iota
	colQuarter
	colTime
	colLOS
	colPlays
	colLength
	colNetYards
	colResult
	minColumns = colResult + 1
)

// ReadFile parses one team's drive file. road/home orient the LOS values
// and side selects the drawing direction (home drives run left-to-right).
// Malformed rows are returned as RowErrors; only I/O failures are fatal.
func ReadFile(path, road, home string, side domain.Side) ([]domain.Drive, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open drive data: %w", err)
	}
	defer f.Close()

	team := road
	if side == domain.Home {
		team = home
	}

	var drives []domain.Drive
	var rowErrs []RowError
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Header row from the PFR export.
		if strings.Contains(line, "Quarter") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < minColumns {
			rowErrs = append(rowErrs, RowError{File: path, Line: lineNo, Msg: fmt.Sprintf("want at least %d columns, got %d", minColumns, len(fields))})
			continue
		}
		d, err := parseRow(fields, team, home, side)
		if err != nil {
			rowErrs = append(rowErrs, RowError{File: path, Line: lineNo, Msg: err.Error()})
			continue
		}
		drives = append(drives, d)
	}
	if err := scanner.Err(); err != nil {
		return drives, rowErrs, fmt.Errorf("read drive data: %w", err)
	}
	return drives, rowErrs, nil
}

func parseRow(fields []string, team, home string, side domain.Side) (domain.Drive, error) {
	var d domain.Drive
	var err error

	if d.Number, err = strconv.Atoi(strings.TrimSpace(fields[colNumber])); err != nil {
		return d, fmt.Errorf("drive number %q", fields[colNumber])
	}
	if d.Quarter, err = strconv.Atoi(strings.TrimSpace(fields[colQuarter])); err != nil || d.Quarter < 1 {
		return d, fmt.Errorf("quarter %q", fields[colQuarter])
	}
	if d.Start, err = domain.ParseClock(fields[colTime]); err != nil {
		return d, err
	}
	if d.Plays, err = strconv.Atoi(strings.TrimSpace(fields[colPlays])); err != nil || d.Plays < 0 {
		return d, fmt.Errorf("plays %q", fields[colPlays])
	}
	if d.Duration, err = domain.ParseClock(fields[colLength]); err != nil {
		return d, err
	}
	if d.NetYards, err = strconv.Atoi(strings.TrimSpace(fields[colNetYards])); err != nil {
		return d, fmt.Errorf("net yards %q", fields[colNetYards])
	}
	d.Result = strings.TrimSpace(fields[colResult])
	if d.Result == "" {
		return d, fmt.Errorf("empty result")
	}
	// Anything after the result column is the optional free-text note;
	// rejoin so commas inside the note survive.
	if len(fields) > minColumns {
		d.Note = strings.TrimSpace(strings.Join(fields[minColumns:], ","))
	}
	d.Team = team
	d.Side = side

	// Elapsed game clock at the start of the drive. Regulation quarters
	// are 15 minutes; for overtime this overestimates, which is fine for
	// ordering.
	d.Elapsed = domain.QuarterSeconds*d.Quarter - d.Start.Seconds()

	if d.StartYd, d.EndYd, err = fieldPosition(fields[colLOS], d.Plays, d.NetYards, home, side); err != nil {
		return d, err
	}
	return d, nil
}

// fieldPosition maps the LOS column to 0-100 start/end positions oriented
// left-to-right from the home end zone. Zero-play drives (a kickoff into a
// kneel before halftime) have no usable line of scrimmage and yield -1/-1.
// A blank LOS on a real drive is assumed to be midfield; the PFR export
// leaves it empty when a drive starts exactly at the 50. A non-blank LOS
// that is not "TEAM yard" is a malformed row.
func fieldPosition(los string, plays, netYards int, home string, side domain.Side) (start, end int, err error) {
	if plays <= 0 {
		return -1, -1, nil
	}
	start = 50
	los = strings.TrimSpace(los)
	if los != "" {
		parts := strings.Fields(los)
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("los %q: want TEAM yard", los)
		}
		yd, convErr := strconv.Atoi(parts[1])
		if convErr != nil {
			return 0, 0, fmt.Errorf("los %q: yard %q", los, parts[1])
		}
		if parts[0] == home {
			start = yd
		} else {
			start = 100 - yd
		}
	}
	if side == domain.Home {
		end = start + netYards
	} else {
		end = start - netYards
	}
	return start, end, nil
}
