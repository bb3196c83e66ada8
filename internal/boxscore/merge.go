/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package boxscore

import (
	"errors"

	"drivechart/internal/domain"
)

// ErrSimultaneousDrives is returned when both teams have a drive starting
// at the same game clock and neither lasted zero seconds; the input data
// is inconsistent at that point.
var ErrSimultaneousDrives = errors.New("two overlapping drives start at the same game clock")

// Merge interleaves the two teams' drive sequences by elapsed start time.
// Each input is already chronological (file order). When two drives start
// at the same instant, the zero-duration drive goes first: that pattern
// shows up when a half ends on a kickoff that is downed immediately.
func Merge(a, b []domain.Drive) ([]domain.Drive, error) {
	merged := make([]domain.Drive, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Elapsed < b[j].Elapsed:
			merged = append(merged, a[i])
			i++
		case a[i].Elapsed > b[j].Elapsed:
			merged = append(merged, b[j])
			j++
		case a[i].Duration.IsZero():
			merged = append(merged, a[i])
			i++
		case b[j].Duration.IsZero():
			merged = append(merged, b[j])
			j++
		default:
			return nil, ErrSimultaneousDrives
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged, nil
}
