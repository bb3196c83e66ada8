/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable YAML configuration for the drive
// chart tool: chart geometry and logging. Environment variables are treated
// as read-only overrides at runtime.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChartConfig holds the geometry knobs of the rendered chart. All pixel
// values are at scale 1; PixelsPerYard scales the horizontal axis.
type ChartConfig struct {
	PixelsPerYard  int `yaml:"pixels_per_yard"`
	BoxHeight      int `yaml:"box_height"` // kept even so direction arrows center cleanly
	BoxGap         int `yaml:"box_gap"`
	BorderYards    int `yaml:"border_yards"`
	MarkerInset    int `yaml:"marker_inset"`
	MarkerHeight   int `yaml:"marker_height"`
	MinFieldHeight int `yaml:"min_field_height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Chart         ChartConfig   `yaml:"chart"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults. The chart numbers reproduce
// the proportions of a 120-yard field with 8px drive boxes at 2px/yard.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Chart: ChartConfig{
			PixelsPerYard:  2,
			BoxHeight:      8,
			BoxGap:         4,
			BorderYards:    3,
			MarkerInset:    2,
			MarkerHeight:   10,
			MinFieldHeight: 58,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvPixelsPerYard = "DCH_PIXELS_PER_YARD"
	EnvLogLevel      = "DCH_LOG_LEVEL"
	EnvLogFormat     = "DCH_LOG_FORMAT"
	EnvLogSource     = "DCH_LOG_SOURCE"
	EnvLogFile       = "DCH_LOG_FILE"
)

// Dir returns the per-user data/config directory for the tool.
func Dir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "DriveChart")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "DriveChart")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "drivechart")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Chart.PixelsPerYard > 0 {
		dst.Chart.PixelsPerYard = src.Chart.PixelsPerYard
	}
	if src.Chart.BoxHeight > 0 {
		dst.Chart.BoxHeight = src.Chart.BoxHeight
	}
	if src.Chart.BoxGap > 0 {
		dst.Chart.BoxGap = src.Chart.BoxGap
	}
	if src.Chart.BorderYards > 0 {
		dst.Chart.BorderYards = src.Chart.BorderYards
	}
	if src.Chart.MarkerInset > 0 {
		dst.Chart.MarkerInset = src.Chart.MarkerInset
	}
	if src.Chart.MarkerHeight > 0 {
		dst.Chart.MarkerHeight = src.Chart.MarkerHeight
	}
	if src.Chart.MinFieldHeight > 0 {
		dst.Chart.MinFieldHeight = src.Chart.MinFieldHeight
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvPixelsPerYard)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Chart.PixelsPerYard = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
