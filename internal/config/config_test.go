/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"testing"
)

func TestDefaultsAreSane(t *testing.T) {
	cfg := Defaults()
	if cfg.Chart.PixelsPerYard <= 0 {
		t.Fatalf("PixelsPerYard = %d", cfg.Chart.PixelsPerYard)
	}
	if cfg.Chart.BoxHeight%2 != 0 {
		t.Fatalf("BoxHeight must be even for arrow centering, got %d", cfg.Chart.BoxHeight)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestEnvOverridesPixelsPerYard(t *testing.T) {
	t.Setenv(EnvPixelsPerYard, "4")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Chart.PixelsPerYard != 4 {
		t.Fatalf("PixelsPerYard = %d, want 4 from env", cfg.Chart.PixelsPerYard)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvLogSource, "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || !cfg.Logging.Source {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
}

func TestMergeKeepsDefaultsForZeroValues(t *testing.T) {
	dst := Defaults()
	src := AppConfig{} // empty file config
	mergeInto(&dst, &src)
	if dst.Chart.PixelsPerYard != Defaults().Chart.PixelsPerYard {
		t.Fatalf("zero src must not clobber defaults")
	}
}

func TestMergeAppliesFileValues(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Chart.PixelsPerYard = 3
	src.Logging.Level = "Debug"
	src.Logging.File = " /tmp/dch.log "
	mergeInto(&dst, &src)
	if dst.Chart.PixelsPerYard != 3 {
		t.Fatalf("PixelsPerYard not merged: %d", dst.Chart.PixelsPerYard)
	}
	if dst.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", dst.Logging.Level)
	}
	if dst.Logging.File != "/tmp/dch.log" {
		t.Fatalf("file not trimmed: %q", dst.Logging.File)
	}
}
