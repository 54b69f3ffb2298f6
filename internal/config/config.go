/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the optional user configuration read from a YAML file in the user scope.
// Environment variables are read-only overrides applied on top of the file.
// The editing session itself (document, zoom, colours) is never written here.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Print         PrintConfig   `yaml:"print"`
	Logging       LoggingConfig `yaml:"logging"`
}

type EditorConfig struct {
	FontFamily    string  `yaml:"font_family"`
	FontSize      float64 `yaml:"font_size"`
	WordWrap      bool    `yaml:"word_wrap"`
	ShowStatusBar bool    `yaml:"show_status_bar"`
	ShowToolbar   bool    `yaml:"show_toolbar"`
	// LayoutFile replaces the embedded layout resource when set.
	LayoutFile string `yaml:"layout_file"`
}

type PrintConfig struct {
	Printer  string  `yaml:"printer"`
	PageSize string  `yaml:"page_size"` // "A4" | "Letter"
	MarginPt float64 `yaml:"margin_pt"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor: EditorConfig{
			FontFamily:    "Go",
			FontSize:      12,
			WordWrap:      true,
			ShowStatusBar: true,
			ShowToolbar:   true,
		},
		Print:   PrintConfig{PageSize: "A4", MarginPt: 56},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath = "NOTEPADINO_CONFIG"
	EnvFontFamily = "NOTEPADINO_FONT_FAMILY"
	EnvFontSize   = "NOTEPADINO_FONT_SIZE"
	EnvWordWrap   = "NOTEPADINO_WORD_WRAP"
	EnvLayoutFile = "NOTEPADINO_LAYOUT"
	EnvPrinter    = "NOTEPADINO_PRINTER"
	EnvPageSize   = "NOTEPADINO_PAGE_SIZE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "NOTEPADINO_LOG_LEVEL"
	EnvLogFormat = "NOTEPADINO_LOG_FORMAT"
	EnvLogSource = "NOTEPADINO_LOG_SOURCE"
	EnvLogFile   = "NOTEPADINO_LOG_FILE"
)

// ConfigPath returns the per-user config file path. NOTEPADINO_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Notepadino")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Notepadino")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "notepadino")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "notepadino")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing file is not an error; a file that cannot be parsed is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg, data)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML to the user config path and returns that path.
func Save(cfg AppConfig) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// mergeInto copies the values present in the file over the defaults. Booleans are only
// taken from the file when the key is spelled out, so a partial file keeps default toggles.
func mergeInto(dst *AppConfig, src *AppConfig, raw []byte) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Editor.FontFamily); v != "" {
		dst.Editor.FontFamily = v
	}
	if src.Editor.FontSize > 0 {
		dst.Editor.FontSize = src.Editor.FontSize
	}
	if v := strings.TrimSpace(src.Editor.LayoutFile); v != "" {
		dst.Editor.LayoutFile = v
	}
	var keys struct {
		Editor  map[string]any `yaml:"editor"`
		Logging map[string]any `yaml:"logging"`
	}
	_ = yaml.Unmarshal(raw, &keys)
	if _, ok := keys.Editor["word_wrap"]; ok {
		dst.Editor.WordWrap = src.Editor.WordWrap
	}
	if _, ok := keys.Editor["show_status_bar"]; ok {
		dst.Editor.ShowStatusBar = src.Editor.ShowStatusBar
	}
	if _, ok := keys.Editor["show_toolbar"]; ok {
		dst.Editor.ShowToolbar = src.Editor.ShowToolbar
	}
	if v := strings.TrimSpace(src.Print.Printer); v != "" {
		dst.Print.Printer = v
	}
	if v := strings.TrimSpace(src.Print.PageSize); v != "" {
		dst.Print.PageSize = v
	}
	if src.Print.MarginPt > 0 {
		dst.Print.MarginPt = src.Print.MarginPt
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if _, ok := keys.Logging["source"]; ok {
		dst.Logging.Source = src.Logging.Source
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvFontFamily)); v != "" {
		cfg.Editor.FontFamily = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontSize)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Editor.FontSize = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvWordWrap)); v != "" {
		cfg.Editor.WordWrap = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLayoutFile)); v != "" {
		cfg.Editor.LayoutFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrinter)); v != "" {
		cfg.Print.Printer = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPageSize)); v != "" {
		cfg.Print.PageSize = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

var overrideKeys = map[string]string{
	"editor.font_family": EnvFontFamily,
	"editor.font_size":   EnvFontSize,
	"editor.word_wrap":   EnvWordWrap,
	"editor.layout_file": EnvLayoutFile,
	"print.printer":      EnvPrinter,
	"print.page_size":    EnvPageSize,
	"logging.level":      EnvLogLevel,
	"logging.format":     EnvLogFormat,
	"logging.source":     EnvLogSource,
	"logging.file":       EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := overrideKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
