/*
 * config.go, part of goStoich.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package web

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8501"

// Config holds everything the server needs to start.
type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	RateRPS           float64 //requests per second per client, <= 0 disables the limiter
	RateBurst         int
	RateIdleTTL       time.Duration
	LogLevel          string
	ChartWidthCm      float64
	ChartHeightCm     float64
}

// DefaultConfig returns the configuration used for anything the file,
// the environment and the flags leave unset.
func DefaultConfig() Config {
	return Config{
		Addr:              DefaultAddr,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		RateRPS:           10,
		RateBurst:         20,
		RateIdleTTL:       10 * time.Minute,
		LogLevel:          "info",
		ChartWidthCm:      12,
		ChartHeightCm:     9,
	}
}

// FileConfig is the layout of the YAML configuration file.
type FileConfig struct {
	Server    ServerFileConfig    `yaml:"server"`
	RateLimit RateLimitFileConfig `yaml:"rateLimit"`
	Log       LogFileConfig       `yaml:"log"`
	Chart     ChartFileConfig     `yaml:"chart"`
}

type ServerFileConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

type RateLimitFileConfig struct {
	RPS     *float64      `yaml:"rps"`
	Burst   int           `yaml:"burst"`
	IdleTTL time.Duration `yaml:"idleTTL"`
}

type LogFileConfig struct {
	Level string `yaml:"level"`
}

type ChartFileConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

var defaultConfigPaths = []string{
	"configs/gostoich.yaml",
	"gostoich.yaml",
}

// LoadFromPath reads the configuration from configPath, or, if it is empty, from
// the first default location that exists. Missing default files are not an
// error; a missing or broken explicit file is. Environment overrides are
// applied last.
func LoadFromPath(configPath string) (Config, error) {
	cfg := DefaultConfig()
	candidates := defaultConfigPaths
	if configPath != "" {
		candidates = []string{configPath}
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if configPath != "" {
				return cfg, err
			}
			continue
		}
		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		Merge(&cfg, parsed)
		break
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// Merge copies every non-zero value of src into dst.
func Merge(dst *Config, src FileConfig) {
	if src.Server.Addr != "" {
		dst.Addr = src.Server.Addr
	}
	if src.Server.ReadHeaderTimeout > 0 {
		dst.ReadHeaderTimeout = src.Server.ReadHeaderTimeout
	}
	if src.Server.ShutdownTimeout > 0 {
		dst.ShutdownTimeout = src.Server.ShutdownTimeout
	}
	if src.RateLimit.RPS != nil {
		dst.RateRPS = *src.RateLimit.RPS
	}
	if src.RateLimit.Burst > 0 {
		dst.RateBurst = src.RateLimit.Burst
	}
	if src.RateLimit.IdleTTL > 0 {
		dst.RateIdleTTL = src.RateLimit.IdleTTL
	}
	if src.Log.Level != "" {
		dst.LogLevel = src.Log.Level
	}
	if src.Chart.Width > 0 {
		dst.ChartWidthCm = src.Chart.Width
	}
	if src.Chart.Height > 0 {
		dst.ChartHeightCm = src.Chart.Height
	}
}

// ApplyEnvOverrides reads GOSTOICH_ADDR, GOSTOICH_LOG_LEVEL, GOSTOICH_RATE_RPS
// and GOSTOICH_RATE_BURST. Unparseable values are ignored.
func ApplyEnvOverrides(dst *Config) {
	if v := strings.TrimSpace(os.Getenv("GOSTOICH_ADDR")); v != "" {
		dst.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("GOSTOICH_LOG_LEVEL")); v != "" {
		dst.LogLevel = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("GOSTOICH_RATE_RPS")), 64); err == nil {
		dst.RateRPS = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("GOSTOICH_RATE_BURST"))); err == nil && v > 0 {
		dst.RateBurst = v
	}
}

// SlogLevel translates LogLevel. Unknown levels are info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
