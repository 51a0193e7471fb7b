// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config holds settings for the ies command, read from an optional
// .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvWorkers   = "IES_WORKERS"
	EnvOutputDir = "IES_OUTPUT_DIR"
	EnvEncoding  = "IES_ENCODING"
	EnvLogLevel  = "IES_LOG_LEVEL"
	EnvDSN       = "IES_DSN"
)

type Config struct {
	// Workers bounds how many files are converted at once.
	Workers int
	// OutputDir is where converted files go; empty means next to the input.
	OutputDir string
	// Encoding names the text encoding of strings in the input files.
	Encoding string
	LogLevel slog.Level
	// DSN is the postgres connection string used by `ies load`.
	DSN string
}

func Default() *Config {
	return &Config{
		Workers:  runtime.GOMAXPROCS(0),
		Encoding: "utf-8",
		LogLevel: slog.LevelInfo,
	}
}

// Load reads envFile into the process environment (a missing file is not
// an error; variables already set win) and then builds a Config from the
// environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Load(%s): %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the variables visible through lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("%s must be at least 1, got %d", EnvWorkers, n)
		}
		cfg.Workers = n
	}
	if v, ok := lookup(EnvOutputDir); ok {
		cfg.OutputDir = v
	}
	if v, ok := lookup(EnvEncoding); ok && v != "" {
		cfg.Encoding = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v, ok := lookup(EnvDSN); ok {
		cfg.DSN = v
	}
	return cfg, nil
}
